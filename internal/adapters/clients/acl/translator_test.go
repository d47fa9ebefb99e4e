package acl

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/famous-quotes/internal/domain"
)

func TestTranslateQuote(t *testing.T) {
	added := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	quote, err := translateQuote(&quoteResource{
		ID:        7,
		Author:    "Ada Lovelace",
		Content:   "That brain of mine is something more than merely mortal.",
		DateAdded: added,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), quote.ID)
	assert.Equal(t, "Ada Lovelace", quote.Author)
	assert.Equal(t, time.UTC, quote.DateAdded.Location())
	assert.True(t, quote.DateAdded.Equal(added))
}

func TestTranslateQuote_RejectsMissingID(t *testing.T) {
	_, err := translateQuote(&quoteResource{Author: "a", Content: "c"})

	var validationErr *domain.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "id", validationErr.Field)
}

func TestDecodeResponse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		body := io.NopCloser(strings.NewReader(`{"id":1,"author":"a","content":"c","dateAdded":"2024-01-02T03:04:05Z"}`))

		got, err := DecodeResponse[quoteResource](body)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, 2024, got.DateAdded.Year())
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := DecodeResponse[quoteResource](io.NopCloser(strings.NewReader("{")))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding response")
	})

	t.Run("nil body", func(t *testing.T) {
		_, err := DecodeResponse[quoteResource](nil)
		require.Error(t, err)
	})
}

func TestTranslateSlice(t *testing.T) {
	t.Run("translates every item", func(t *testing.T) {
		items := []quoteResource{
			{ID: 1, Author: "a", Content: "one"},
			{ID: 2, Author: "b", Content: "two"},
		}

		quotes, err := TranslateSlice(items, translateQuote)
		require.NoError(t, err)
		require.Len(t, quotes, 2)
		assert.Equal(t, "two", quotes[1].Content)
	})

	t.Run("stops at first invalid item", func(t *testing.T) {
		items := []quoteResource{{ID: 1}, {ID: 0}}

		_, err := TranslateSlice(items, translateQuote)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "translating item 1")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("empty input gives empty non-nil slice", func(t *testing.T) {
		quotes, err := TranslateSlice([]quoteResource{}, translateQuote)
		require.NoError(t, err)
		assert.NotNil(t, quotes)
		assert.Empty(t, quotes)
	})
}

func TestValidatePositive(t *testing.T) {
	assert.NoError(t, ValidatePositive(int64(1), "id"))
	assert.Error(t, ValidatePositive(int64(0), "id"))
	assert.Error(t, ValidatePositive(-1.5, "score"))
}
