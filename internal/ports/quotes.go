// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrValidation, etc.)
package ports

import (
	"context"

	"github.com/jsamuelsen/famous-quotes/internal/domain"
)

// QuoteRepository is the persistence port for quotes.
type QuoteRepository interface {
	// List returns every stored quote. Order is store-native and not part of the contract.
	List(ctx context.Context) ([]domain.Quote, error)

	// GetByID returns the quote with the given id.
	// Returns domain.ErrNotFound if the quote does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Quote, error)

	// Insert stores a new quote and returns it with the store-assigned ID.
	Insert(ctx context.Context, quote *domain.Quote) (*domain.Quote, error)

	// DeleteByID permanently removes the quote with the given id.
	// Returns domain.ErrNotFound if the quote does not exist.
	DeleteByID(ctx context.Context, id int64) error
}

// QuoteAPI is the client-side port for the remote quotes service.
// Implementations map transport failures to domain.ErrUnavailable.
type QuoteAPI interface {
	List(ctx context.Context) ([]domain.Quote, error)
	Get(ctx context.Context, id int64) (*domain.Quote, error)
	Create(ctx context.Context, author, content string) (*domain.Quote, error)
	Delete(ctx context.Context, id int64) error
}
