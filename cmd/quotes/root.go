package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/famous-quotes/internal/adapters/clients"
	"github.com/jsamuelsen/famous-quotes/internal/adapters/clients/acl"
	"github.com/jsamuelsen/famous-quotes/internal/platform/config"
	"github.com/jsamuelsen/famous-quotes/internal/platform/logging"
	"github.com/jsamuelsen/famous-quotes/internal/ports"
	"github.com/jsamuelsen/famous-quotes/internal/ui"
)

// session is what every command needs once flags and config are resolved.
type session struct {
	api     ports.QuoteAPI
	logger  *slog.Logger
	timeout time.Duration
}

type rootOptions struct {
	apiURL  string
	profile string

	sess *session
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "quotes",
		Short: "Browse and manage famous quotes",
		Long: `quotes talks to the famous-quotes API.

Run without a subcommand to open the interactive terminal UI, or use one of
the subcommands for one-shot operations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := opts.connect()
			if err != nil {
				return err
			}
			opts.sess = sess
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, opts.sess)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "",
		"quotes collection URL (default from services.quotes.base_url)")
	cmd.PersistentFlags().StringVar(&opts.profile, "profile", envOr("APP_ENVIRONMENT", "local"),
		"configuration profile to load from configs/")

	cmd.AddCommand(
		newUICmd(opts),
		newListCmd(opts),
		newGetCmd(opts),
		newAddCmd(opts),
		newDeleteCmd(opts),
	)

	return cmd
}

// connect loads configuration and builds the API adapter.
func (o *rootOptions) connect() (*session, error) {
	cfg, err := config.Load(o.profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if o.apiURL != "" {
		cfg.Services.Quotes.BaseURL = o.apiURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := newLogger(cfg)
	logging.SetDefault(logger)

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Quotes.BaseURL,
		ServiceName: cfg.Services.Quotes.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}

	return &session{
		api: acl.NewQuoteClient(acl.QuoteClientConfig{
			Client:      httpClient,
			ServiceName: cfg.Services.Quotes.Name,
			Logger:      logger,
		}),
		logger:  logger,
		timeout: cfg.Client.Timeout,
	}, nil
}

// newLogger writes to the log file only. The terminal belongs to the UI and
// to command output, so nothing is logged there.
func newLogger(cfg *config.Config) *slog.Logger {
	return logging.NewWithWriter(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  logging.FormatJSON,
		Service: "quotes-cli",
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	}, io.Discard)
}

func newUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, opts.sess)
		},
	}
}

func runUI(cmd *cobra.Command, sess *session) error {
	model := ui.NewModel(sess.api,
		ui.WithLogger(sess.logger),
		ui.WithRequestTimeout(sess.timeout),
		ui.WithContext(cmd.Context()),
	)

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running UI: %w", err)
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
