package domain

import (
	"strings"
	"time"
)

// Quote is an attributed piece of text.
type Quote struct {
	// ID is assigned by the store on creation and never changes afterwards.
	ID int64

	// Author is who said or wrote the quote.
	Author string

	// Content is the text of the quote.
	Content string

	// DateAdded is when the quote was stored, in UTC.
	DateAdded time.Time
}

// Validate checks the required fields of a quote.
// Whitespace-only values count as empty.
func (q *Quote) Validate() error {
	if strings.TrimSpace(q.Author) == "" {
		return NewValidationError("author", "is required")
	}

	if strings.TrimSpace(q.Content) == "" {
		return NewValidationError("content", "is required")
	}

	return nil
}

// SavedQuote references a quote that was saved for later.
// The saved_quotes table exists in the schema but no use case reads or writes it.
type SavedQuote struct {
	ID        int64
	QuoteID   int64
	DateSaved time.Time
}
