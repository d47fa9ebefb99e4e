package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/famous-quotes/internal/domain"
	"github.com/jsamuelsen/famous-quotes/internal/ui"
)

const dateLayout = "Jan 2, 2006"

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all quotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := opts.sess.requestContext(cmd)
			defer cancel()

			quotes, err := opts.sess.api.List(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", ui.MsgFetchFailed, err)
			}

			out := cmd.OutOrStdout()
			if len(quotes) == 0 {
				fmt.Fprintln(out, "No quotes yet.")
				return nil
			}

			for i := range quotes {
				printQuote(out, &quotes[i])
			}

			return nil
		},
	}
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := opts.sess.requestContext(cmd)
			defer cancel()

			quote, err := opts.sess.api.Get(ctx, id)
			if err != nil {
				return err
			}

			printQuote(cmd.OutOrStdout(), quote)

			return nil
		},
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var author, content string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := opts.sess.requestContext(cmd)
			defer cancel()

			quote, err := opts.sess.api.Create(ctx, author, content)
			if err != nil {
				return describeCreateError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", ui.MsgCreated, quote.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "who said it")
	cmd.Flags().StringVar(&content, "content", "", "the quote text")
	_ = cmd.MarkFlagRequired("author")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a quote",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := opts.sess.requestContext(cmd)
			defer cancel()

			if err := opts.sess.api.Delete(ctx, id); err != nil {
				if domain.IsNotFound(err) {
					return err
				}
				return fmt.Errorf("%s: %w", ui.MsgDeleteFailed, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Quote %d deleted.\n", id)

			return nil
		},
	}
}

func (s *session) requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), s.timeout)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid quote id %q", arg)
	}

	return id, nil
}

// describeCreateError keeps validation details, which tell the user what to fix.
func describeCreateError(err error) error {
	if domain.IsValidation(err) {
		return err
	}

	return fmt.Errorf("%s: %w", ui.MsgCreateFailed, err)
}

func printQuote(w io.Writer, q *domain.Quote) {
	fmt.Fprintf(w, "#%d “%s”\n", q.ID, strings.TrimSpace(q.Content))
	fmt.Fprintf(w, "    - %s\n", q.Author)
	fmt.Fprintf(w, "    Added: %s\n\n", q.DateAdded.Format(dateLayout))
}
