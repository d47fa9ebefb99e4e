package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote_Validate(t *testing.T) {
	tests := []struct {
		name      string
		quote     Quote
		wantField string
	}{
		{name: "valid", quote: Quote{Author: "Test Author 1", Content: "Test quote 1"}},
		{name: "empty author", quote: Quote{Content: "Test quote 1"}, wantField: "author"},
		{name: "blank author", quote: Quote{Author: "   ", Content: "Test quote 1"}, wantField: "author"},
		{name: "empty content", quote: Quote{Author: "Test Author 1"}, wantField: "content"},
		{name: "both empty reports author first", quote: Quote{}, wantField: "author"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.quote.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.wantField, validation.Field)
			assert.True(t, IsValidation(err))
		})
	}
}
