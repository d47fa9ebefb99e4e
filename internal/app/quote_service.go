// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jsamuelsen/famous-quotes/internal/domain"
	"github.com/jsamuelsen/famous-quotes/internal/ports"
)

// Operation and result label values for quoteOperations.
const (
	opList   = "list"
	opGet    = "get"
	opCreate = "create"
	opDelete = "delete"

	resultSuccess  = "success"
	resultNotFound = "not_found"
	resultInvalid  = "invalid"
	resultError    = "error"
)

var quoteOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "quotes_operations_total",
	Help: "The total number of quote use case invocations by operation and result",
}, []string{"operation", "result"})

// QuoteService orchestrates quote-related use cases.
// It depends on port interfaces, not concrete implementations,
// following the Dependency Inversion Principle.
type QuoteService struct {
	repo   ports.QuoteRepository
	logger *slog.Logger
	now    func() time.Time
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Repository ports.QuoteRepository
	Logger     *slog.Logger

	// Now overrides the clock used to stamp new quotes. Defaults to time.Now.
	Now func() time.Time
}

// NewQuoteService creates a new quote service with the provided dependencies.
// Panics if Repository is nil.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Repository == nil {
		panic("app: QuoteServiceConfig.Repository is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &QuoteService{
		repo:   cfg.Repository,
		logger: logger,
		now:    now,
	}
}

// List returns all stored quotes. The result is never nil.
func (s *QuoteService) List(ctx context.Context) ([]domain.Quote, error) {
	quotes, err := s.repo.List(ctx)
	if err != nil {
		s.record(opList, err)
		s.logger.ErrorContext(ctx, "failed to list quotes",
			slog.Any("error", err),
		)
		return nil, err
	}

	if quotes == nil {
		quotes = []domain.Quote{}
	}

	s.record(opList, nil)
	s.logger.DebugContext(ctx, "listed quotes",
		slog.Int("count", len(quotes)),
	)

	return quotes, nil
}

// Get returns a single quote by id.
func (s *QuoteService) Get(ctx context.Context, id int64) (*domain.Quote, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.record(opGet, err)
		s.logFailure(ctx, "failed to get quote", id, err)
		return nil, err
	}

	s.record(opGet, nil)

	return quote, nil
}

// Create validates and stores a new quote.
// A zero DateAdded is stamped with the current UTC time.
func (s *QuoteService) Create(ctx context.Context, quote *domain.Quote) (*domain.Quote, error) {
	if err := quote.Validate(); err != nil {
		s.record(opCreate, err)
		s.logger.InfoContext(ctx, "rejected invalid quote",
			slog.Any("error", err),
		)
		return nil, err
	}

	candidate := domain.Quote{
		Author:    quote.Author,
		Content:   quote.Content,
		DateAdded: quote.DateAdded,
	}
	if candidate.DateAdded.IsZero() {
		candidate.DateAdded = s.now().UTC()
	}

	created, err := s.repo.Insert(ctx, &candidate)
	if err != nil {
		s.record(opCreate, err)
		s.logger.ErrorContext(ctx, "failed to create quote",
			slog.Any("error", err),
		)
		return nil, err
	}

	s.record(opCreate, nil)
	s.logger.InfoContext(ctx, "created quote",
		slog.Int64("quote_id", created.ID),
		slog.String("author", created.Author),
	)

	return created, nil
}

// Delete permanently removes a quote by id.
func (s *QuoteService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.record(opDelete, err)
		s.logFailure(ctx, "failed to delete quote", id, err)
		return err
	}

	s.record(opDelete, nil)
	s.logger.InfoContext(ctx, "deleted quote",
		slog.Int64("quote_id", id),
	)

	return nil
}

// logFailure logs not-found at debug level and everything else as an error.
func (s *QuoteService) logFailure(ctx context.Context, msg string, id int64, err error) {
	level := slog.LevelError
	if domain.IsNotFound(err) {
		level = slog.LevelDebug
	}

	s.logger.Log(ctx, level, msg,
		slog.Int64("quote_id", id),
		slog.Any("error", err),
	)
}

func (s *QuoteService) record(operation string, err error) {
	quoteOperations.WithLabelValues(operation, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return resultSuccess
	case domain.IsNotFound(err):
		return resultNotFound
	case domain.IsValidation(err):
		return resultInvalid
	default:
		return resultError
	}
}
