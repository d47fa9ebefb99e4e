package dto

import (
	"time"

	"github.com/jsamuelsen/famous-quotes/internal/domain"
)

// CreateQuoteRequest is the body of POST /api/quotes.
// A client-supplied id is accepted for compatibility and ignored.
type CreateQuoteRequest struct {
	ID        *int64     `json:"id,omitempty"`
	Author    string     `json:"author" validate:"required,notempty"`
	Content   string     `json:"content" validate:"required,notempty"`
	DateAdded *time.Time `json:"dateAdded,omitempty"`
}

// ToDomain converts the request into a new, unsaved domain quote.
func (r *CreateQuoteRequest) ToDomain() *domain.Quote {
	q := &domain.Quote{
		Author:  r.Author,
		Content: r.Content,
	}
	if r.DateAdded != nil {
		q.DateAdded = r.DateAdded.UTC()
	}

	return q
}

// QuoteResponse is the wire representation of a stored quote.
type QuoteResponse struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	DateAdded time.Time `json:"dateAdded"`
}

// NewQuoteResponse converts a domain quote to its wire form.
func NewQuoteResponse(q *domain.Quote) QuoteResponse {
	return QuoteResponse{
		ID:        q.ID,
		Author:    q.Author,
		Content:   q.Content,
		DateAdded: q.DateAdded.UTC(),
	}
}

// NewQuoteListResponse converts quotes to their wire form.
// The result is never nil so an empty list encodes as [].
func NewQuoteListResponse(quotes []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for i := range quotes {
		out = append(out, NewQuoteResponse(&quotes[i]))
	}

	return out
}
