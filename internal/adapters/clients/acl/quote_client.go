package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jsamuelsen/famous-quotes/internal/adapters/clients"
	"github.com/jsamuelsen/famous-quotes/internal/domain"
	"github.com/jsamuelsen/famous-quotes/internal/platform/logging"
)

// DefaultServiceName is used in errors and logs when the config does not name the API.
const DefaultServiceName = "quotes-api"

// QuoteClientConfig contains configuration for the quote client.
type QuoteClientConfig struct {
	// Client is the HTTP client. Its BaseURL points at the quotes collection,
	// e.g. http://localhost:8080/api/quotes.
	Client *clients.Client

	// ServiceName defaults to DefaultServiceName.
	ServiceName string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// QuoteClient implements ports.QuoteAPI against the quotes HTTP API.
type QuoteClient struct {
	client      *clients.Client
	serviceName string
	logger      *slog.Logger
}

// NewQuoteClient creates a new quote client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewQuoteClient(cfg QuoteClientConfig) *QuoteClient {
	if cfg.Client == nil {
		panic("QuoteClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	name := cfg.ServiceName
	if name == "" {
		name = DefaultServiceName
	}

	return &QuoteClient{
		client:      cfg.Client,
		serviceName: name,
		logger:      logger,
	}
}

// List fetches every quote.
func (c *QuoteClient) List(ctx context.Context) ([]domain.Quote, error) {
	const op = "list quotes"
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("op", op))

	resp, err := c.client.Get(ctx, "")
	if err != nil {
		return nil, MapHTTPError(nil, err, c.serviceName, op, 0)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.fail(ctx, resp, op, 0)
	}

	items, err := DecodeResponse[[]quoteResource](resp.Body)
	if err != nil {
		return nil, domain.NewUnavailableError(c.serviceName, err.Error())
	}

	quotes, err := TranslateSlice(*items, translateQuote)
	if err != nil {
		return nil, domain.NewUnavailableError(c.serviceName, err.Error())
	}

	c.logger.DebugContext(ctx, "quotes fetched", slog.Int("count", len(quotes)))

	return quotes, nil
}

// Get fetches a single quote.
func (c *QuoteClient) Get(ctx context.Context, id int64) (*domain.Quote, error) {
	const op = "get quote"
	c.logger.Log(ctx, logging.LevelTrace, "starting request",
		slog.String("op", op),
		slog.Int64("quote_id", id))

	resp, err := c.client.Get(ctx, quotePath(id))
	if err != nil {
		return nil, MapHTTPError(nil, err, c.serviceName, op, id)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.fail(ctx, resp, op, id)
	}

	return c.decodeQuote(resp)
}

// Create posts a new quote and returns it as stored.
func (c *QuoteClient) Create(ctx context.Context, author, content string) (*domain.Quote, error) {
	const op = "create quote"
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("op", op))

	body, err := json.Marshal(createQuoteBody{Author: author, Content: content})
	if err != nil {
		return nil, fmt.Errorf("encoding quote: %w", err)
	}

	resp, err := c.client.Post(ctx, "", bytes.NewReader(body))
	if err != nil {
		return nil, MapHTTPError(nil, err, c.serviceName, op, 0)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, c.fail(ctx, resp, op, 0)
	}

	quote, err := c.decodeQuote(resp)
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "quote created", slog.Int64("quote_id", quote.ID))

	return quote, nil
}

// Delete removes a quote.
func (c *QuoteClient) Delete(ctx context.Context, id int64) error {
	const op = "delete quote"
	c.logger.Log(ctx, logging.LevelTrace, "starting request",
		slog.String("op", op),
		slog.Int64("quote_id", id))

	resp, err := c.client.Delete(ctx, quotePath(id))
	if err != nil {
		return MapHTTPError(nil, err, c.serviceName, op, id)
	}

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return c.fail(ctx, resp, op, id)
	}
	_ = resp.Body.Close()

	c.logger.InfoContext(ctx, "quote deleted", slog.Int64("quote_id", id))

	return nil
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *QuoteClient) Name() string {
	return c.serviceName
}

// Check reports whether the quotes collection answers.
// Implements ports.HealthChecker.
func (c *QuoteClient) Check(ctx context.Context) error {
	resp, err := c.client.Get(ctx, "")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("quotes API returned status %d", resp.StatusCode)
	}

	return nil
}

func (c *QuoteClient) decodeQuote(resp *http.Response) (*domain.Quote, error) {
	ext, err := DecodeResponse[quoteResource](resp.Body)
	if err != nil {
		return nil, domain.NewUnavailableError(c.serviceName, err.Error())
	}

	quote, err := translateQuote(ext)
	if err != nil {
		return nil, domain.NewUnavailableError(c.serviceName, err.Error())
	}

	return quote, nil
}

// fail maps a non-success response to a domain error and closes its body.
func (c *QuoteClient) fail(ctx context.Context, resp *http.Response, op string, id int64) error {
	defer func() { _ = resp.Body.Close() }()

	err := MapHTTPError(resp, nil, c.serviceName, op, id)

	c.logger.WarnContext(ctx, "quotes API error",
		slog.String("op", op),
		slog.Int("status_code", resp.StatusCode),
		slog.Any("error", err),
	)

	return err
}

func quotePath(id int64) string {
	return "/" + strconv.FormatInt(id, 10)
}
