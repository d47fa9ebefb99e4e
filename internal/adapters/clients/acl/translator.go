package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jsamuelsen/famous-quotes/internal/domain"
)

// quoteResource is a quote as the API serves it. Never exposed outside the package.
type quoteResource struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	DateAdded time.Time `json:"dateAdded"`
}

// createQuoteBody is the POST body. The server assigns id and dateAdded.
type createQuoteBody struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

// translateQuote converts a served quote to a domain quote.
// A quote without an id did not come from the store and is rejected.
func translateQuote(ext *quoteResource) (*domain.Quote, error) {
	if err := ValidatePositive(ext.ID, "id"); err != nil {
		return nil, err
	}

	return &domain.Quote{
		ID:        ext.ID,
		Author:    ext.Author,
		Content:   ext.Content,
		DateAdded: ext.DateAdded.UTC(),
	}, nil
}

// DecodeResponse reads and decodes a JSON body into the target type and closes it.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, errors.New("response body is nil")
	}
	defer func() { _ = body.Close() }()

	var result T
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// ValidatePositive checks that a numeric value is positive.
func ValidatePositive[T ~int | ~int64 | ~float64](value T, fieldName string) error {
	if value <= 0 {
		return domain.NewValidationError(fieldName, "must be positive")
	}

	return nil
}

// Translator converts an external DTO to a domain type, validating it on the way.
type Translator[External any, Domain any] func(ext *External) (*Domain, error)

// TranslateSlice applies translate to every item and stops at the first error.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]D, error) {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, *translated)
	}

	return result, nil
}
