// Package ui implements the terminal client for the quotes API.
//
// State holds everything the view renders and changes only through Apply,
// which is pure: it never performs I/O and never edits the quote list
// locally. Mutations that succeed ask for a refresh instead.
package ui

import (
	"slices"

	"github.com/jsamuelsen/famous-quotes/internal/domain"
)

// Messages shown to the user. At most one of each kind is visible at a time.
const (
	MsgFetchFailed  = "Failed to fetch quotes. Please make sure the API is running."
	MsgCreateFailed = "Failed to add quote. Please try again."
	MsgDeleteFailed = "Failed to delete quote. Please try again."
	MsgCreated      = "Quote added successfully!"
)

// Draft is the new-quote form.
type Draft struct {
	Author  string
	Content string
}

// State is the view state of the client.
type State struct {
	Quotes  []domain.Quote
	Draft   Draft
	Error   string
	Success string
	Loading bool
}

// Event is something that happened to the client. Events double as tea messages.
type Event interface {
	event()
}

// FetchStarted is applied when a list request is issued.
type FetchStarted struct{}

// FetchSucceeded carries a fresh list from the server.
type FetchSucceeded struct {
	Quotes []domain.Quote
}

// FetchFailed reports a list request that did not complete.
type FetchFailed struct {
	Err error
}

// SubmitStarted is applied when the form is submitted.
type SubmitStarted struct {
	Draft Draft
}

// CreateSucceeded reports a stored quote.
type CreateSucceeded struct {
	Quote *domain.Quote
}

// CreateFailed reports a rejected or failed create.
type CreateFailed struct {
	Err error
}

// DeleteStarted is applied when a delete request is issued.
type DeleteStarted struct {
	ID int64
}

// DeleteSucceeded reports a removed quote.
type DeleteSucceeded struct {
	ID int64
}

// DeleteFailed reports a delete that did not complete.
type DeleteFailed struct {
	ID  int64
	Err error
}

func (FetchStarted) event()    {}
func (FetchSucceeded) event()  {}
func (FetchFailed) event()     {}
func (SubmitStarted) event()   {}
func (CreateSucceeded) event() {}
func (CreateFailed) event()    {}
func (DeleteStarted) event()   {}
func (DeleteSucceeded) event() {}
func (DeleteFailed) event()    {}

// Apply returns the state after ev and whether the list must be fetched again.
// The receiver is not modified.
func (s State) Apply(ev Event) (State, bool) {
	next := s
	next.Quotes = slices.Clone(s.Quotes)

	switch ev := ev.(type) {
	case FetchStarted:
		next.Loading = true
		next.Error = ""

	case FetchSucceeded:
		next.Loading = false
		next.Quotes = slices.Clone(ev.Quotes)
		if next.Quotes == nil {
			next.Quotes = []domain.Quote{}
		}

	case FetchFailed:
		next.Loading = false
		next.Error = MsgFetchFailed

	case SubmitStarted:
		next.Draft = ev.Draft
		next.Error = ""
		next.Success = ""

	case CreateSucceeded:
		next.Draft = Draft{}
		next.Success = MsgCreated
		return next, true

	case CreateFailed:
		next.Error = MsgCreateFailed

	case DeleteStarted:
		next.Error = ""

	case DeleteSucceeded:
		return next, true

	case DeleteFailed:
		next.Error = MsgDeleteFailed
	}

	return next, false
}
