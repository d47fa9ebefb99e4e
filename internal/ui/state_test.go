package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen/famous-quotes/internal/domain"
)

var errAPI = errors.New("connection refused")

func TestState_Apply(t *testing.T) {
	existing := []domain.Quote{{ID: 1, Author: "A", Content: "one"}}
	fresh := []domain.Quote{{ID: 1, Author: "A", Content: "one"}, {ID: 2, Author: "B", Content: "two"}}

	tests := []struct {
		name        string
		start       State
		event       Event
		want        State
		wantRefresh bool
	}{
		{
			name:  "fetch started sets loading and clears error only",
			start: State{Quotes: existing, Error: MsgCreateFailed, Success: MsgCreated},
			event: FetchStarted{},
			want:  State{Quotes: existing, Success: MsgCreated, Loading: true},
		},
		{
			name:  "fetch succeeded replaces the list",
			start: State{Quotes: existing, Loading: true},
			event: FetchSucceeded{Quotes: fresh},
			want:  State{Quotes: fresh},
		},
		{
			name:  "fetch succeeded with nil gives an empty list",
			start: State{Quotes: existing, Loading: true},
			event: FetchSucceeded{},
			want:  State{Quotes: []domain.Quote{}},
		},
		{
			name:  "fetch failed keeps the previous list",
			start: State{Quotes: existing, Loading: true},
			event: FetchFailed{Err: errAPI},
			want:  State{Quotes: existing, Error: MsgFetchFailed},
		},
		{
			name:  "submit clears both messages and records the draft",
			start: State{Error: MsgDeleteFailed, Success: MsgCreated},
			event: SubmitStarted{Draft: Draft{Author: "Yoda", Content: "Do or do not."}},
			want:  State{Draft: Draft{Author: "Yoda", Content: "Do or do not."}},
		},
		{
			name:        "create succeeded clears the draft and asks for refresh",
			start:       State{Quotes: existing, Draft: Draft{Author: "Yoda", Content: "Do or do not."}},
			event:       CreateSucceeded{Quote: &domain.Quote{ID: 9, Author: "Yoda", Content: "Do or do not."}},
			want:        State{Quotes: existing, Success: MsgCreated},
			wantRefresh: true,
		},
		{
			name:  "create failed keeps the draft",
			start: State{Draft: Draft{Author: "Yoda"}},
			event: CreateFailed{Err: errAPI},
			want:  State{Draft: Draft{Author: "Yoda"}, Error: MsgCreateFailed},
		},
		{
			name:  "delete started clears error but not success",
			start: State{Quotes: existing, Error: MsgFetchFailed, Success: MsgCreated},
			event: DeleteStarted{ID: 1},
			want:  State{Quotes: existing, Success: MsgCreated},
		},
		{
			name:        "delete succeeded leaves the list to the refresh",
			start:       State{Quotes: existing},
			event:       DeleteSucceeded{ID: 1},
			want:        State{Quotes: existing},
			wantRefresh: true,
		},
		{
			name:  "delete failed leaves the list alone",
			start: State{Quotes: existing},
			event: DeleteFailed{ID: 1, Err: errAPI},
			want:  State{Quotes: existing, Error: MsgDeleteFailed},
		},
		{
			name:  "error and success can be shown together",
			start: State{Success: MsgCreated},
			event: FetchFailed{Err: errAPI},
			want:  State{Success: MsgCreated, Error: MsgFetchFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, refresh := tt.start.Apply(tt.event)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRefresh, refresh)
		})
	}
}

func TestState_ApplyDoesNotModifyReceiver(t *testing.T) {
	start := State{Quotes: []domain.Quote{{ID: 1, Content: "one"}}}

	next, _ := start.Apply(FetchSucceeded{Quotes: []domain.Quote{{ID: 2, Content: "two"}}})
	next.Quotes[0].Content = "changed"

	assert.Equal(t, "one", start.Quotes[0].Content)
	assert.False(t, start.Loading)
}

func TestState_ApplyCopiesIncomingQuotes(t *testing.T) {
	incoming := []domain.Quote{{ID: 1, Content: "one"}}

	next, _ := State{}.Apply(FetchSucceeded{Quotes: incoming})
	incoming[0].Content = "changed"

	assert.Equal(t, "one", next.Quotes[0].Content)
}
