package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen/famous-quotes/internal/domain"
	"github.com/jsamuelsen/famous-quotes/internal/ports"
)

// DefaultRequestTimeout bounds a single API call made from the UI.
const DefaultRequestTimeout = 10 * time.Second

// dateLayout is how a quote's DateAdded is shown.
const dateLayout = "Jan 2, 2006"

// Focus targets, in tab order.
const (
	focusContent = iota
	focusAuthor
	focusSubmit
	focusList
	focusCount
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	noStyle      = lipgloss.NewStyle()
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	authorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Italic(true)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	selectedCardStyle = cardStyle.BorderForeground(lipgloss.Color("205"))

	focusedButton = focusedStyle.Render("[ Add Quote ]")
	blurredButton = fmt.Sprintf("[ %s ]", blurredStyle.Render("Add Quote"))
)

// Model is the bubbletea model of the quotes client.
type Model struct {
	api     ports.QuoteAPI
	logger  *slog.Logger
	ctx     context.Context
	timeout time.Duration

	state   State
	spinner spinner.Model
	inputs  []textinput.Model
	focus   int
	cursor  int
	width   int
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for API failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithRequestTimeout overrides DefaultRequestTimeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithContext sets the parent context of every API call.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// NewModel creates the client model. The initial fetch is already marked as started.
func NewModel(api ports.QuoteAPI, opts ...Option) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := Model{
		api:     api,
		logger:  slog.Default(),
		ctx:     context.Background(),
		timeout: DefaultRequestTimeout,
		spinner: s,
		inputs:  make([]textinput.Model, 2),
	}

	for _, opt := range opts {
		opt(&m)
	}

	for i := range m.inputs {
		t := textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 1024

		switch i {
		case focusContent:
			t.Placeholder = "Quote Text"
			t.Focus()
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		case focusAuthor:
			t.Placeholder = "Author"
			t.CharLimit = 256
		}

		m.inputs[i] = t
	}

	m.state, _ = m.state.Apply(FetchStarted{})

	return m
}

// State returns the current view state.
func (m Model) State() State {
	return m.state
}

// Init starts the spinner and the initial fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, textinput.Blink, m.fetchQuotes())
}

// Update handles key presses and API results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Event:
		return m.applyEvent(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.updateInputs(msg)
}

func (m Model) applyEvent(ev Event) (tea.Model, tea.Cmd) {
	m.logEvent(ev)

	var refresh bool
	m.state, refresh = m.state.Apply(ev)

	if _, ok := ev.(CreateSucceeded); ok {
		m.syncInputs()
	}

	m.clampCursor()

	if refresh {
		return m.startFetch()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "shift+tab":
		if msg.String() == "tab" {
			m.focus = (m.focus + 1) % focusCount
		} else {
			m.focus = (m.focus + focusCount - 1) % focusCount
		}
		return m, m.focusInputs()

	case "enter":
		switch m.focus {
		case focusContent:
			m.focus = focusAuthor
			return m, m.focusInputs()
		case focusAuthor, focusSubmit:
			return m.submit()
		}
		return m, nil
	}

	if m.focus == focusList {
		return m.handleListKey(msg)
	}

	if m.focus == focusSubmit {
		return m, nil
	}

	return m, m.updateInputs(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Quotes)-1 {
			m.cursor++
		}
	case "r":
		if !m.state.Loading {
			return m.startFetch()
		}
	case "d", "delete":
		if m.state.Loading || len(m.state.Quotes) == 0 {
			return m, nil
		}
		id := m.state.Quotes[m.cursor].ID
		m.state, _ = m.state.Apply(DeleteStarted{ID: id})
		return m, m.deleteQuote(id)
	}

	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	draft := Draft{
		Content: m.inputs[focusContent].Value(),
		Author:  m.inputs[focusAuthor].Value(),
	}
	m.state, _ = m.state.Apply(SubmitStarted{Draft: draft})

	return m, m.createQuote(draft)
}

func (m Model) startFetch() (tea.Model, tea.Cmd) {
	m.state, _ = m.state.Apply(FetchStarted{})
	return m, tea.Batch(m.spinner.Tick, m.fetchQuotes())
}

func (m Model) fetchQuotes() tea.Cmd {
	api, parent, timeout := m.api, m.ctx, m.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		quotes, err := api.List(ctx)
		if err != nil {
			return FetchFailed{Err: err}
		}
		return FetchSucceeded{Quotes: quotes}
	}
}

func (m Model) createQuote(draft Draft) tea.Cmd {
	api, parent, timeout := m.api, m.ctx, m.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		quote, err := api.Create(ctx, draft.Author, draft.Content)
		if err != nil {
			return CreateFailed{Err: err}
		}
		return CreateSucceeded{Quote: quote}
	}
}

func (m Model) deleteQuote(id int64) tea.Cmd {
	api, parent, timeout := m.api, m.ctx, m.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		if err := api.Delete(ctx, id); err != nil {
			return DeleteFailed{ID: id, Err: err}
		}
		return DeleteSucceeded{ID: id}
	}
}

func (m Model) logEvent(ev Event) {
	switch ev := ev.(type) {
	case FetchFailed:
		m.logger.WarnContext(m.ctx, "fetch quotes failed", slog.Any("error", ev.Err))
	case CreateFailed:
		m.logger.WarnContext(m.ctx, "create quote failed", slog.Any("error", ev.Err))
	case DeleteFailed:
		m.logger.WarnContext(m.ctx, "delete quote failed",
			slog.Int64("quote_id", ev.ID),
			slog.Any("error", ev.Err))
	case CreateSucceeded:
		if ev.Quote != nil {
			m.logger.InfoContext(m.ctx, "quote added", slog.Int64("quote_id", ev.Quote.ID))
		}
	case DeleteSucceeded:
		m.logger.InfoContext(m.ctx, "quote deleted", slog.Int64("quote_id", ev.ID))
	}
}

// syncInputs writes the draft back into the form.
func (m *Model) syncInputs() {
	m.inputs[focusContent].SetValue(m.state.Draft.Content)
	m.inputs[focusAuthor].SetValue(m.state.Draft.Author)
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.state.Quotes) {
		m.cursor = len(m.state.Quotes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) focusInputs() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		if i == m.focus {
			cmds[i] = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle
			continue
		}
		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = noStyle
		m.inputs[i].TextStyle = noStyle
	}

	return tea.Batch(cmds...)
}

// updateInputs forwards msg to the inputs. Only the focused one reacts.
func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

// View renders the client.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Famous Quotes"))
	b.WriteString("\n\n")

	if m.state.Error != "" {
		b.WriteString(errorStyle.Render("✗ " + m.state.Error))
		b.WriteString("\n")
	}
	if m.state.Success != "" {
		b.WriteString(successStyle.Render("✓ " + m.state.Success))
		b.WriteString("\n")
	}
	if m.state.Error != "" || m.state.Success != "" {
		b.WriteString("\n")
	}

	b.WriteString(headerStyle.Render("Add New Quote"))
	b.WriteString("\n")
	fmt.Fprintf(&b, " %s\n %s\n\n", blurredStyle.Render("Quote Text:"), m.inputs[focusContent].View())
	fmt.Fprintf(&b, " %s\n %s\n\n", blurredStyle.Render("Author:"), m.inputs[focusAuthor].View())

	button := blurredButton
	if m.focus == focusSubmit {
		button = focusedButton
	}
	fmt.Fprintf(&b, " %s\n\n", button)

	b.WriteString(m.listView())

	b.WriteString("\n")
	b.WriteString(blurredStyle.Render(" tab/shift+tab: navigate • enter: submit • ↑/↓: select • d: delete • r: reload • esc: quit"))

	return b.String()
}

func (m Model) listView() string {
	if m.state.Loading {
		return fmt.Sprintf(" %s Loading quotes...\n", m.spinner.View())
	}

	if len(m.state.Quotes) == 0 {
		return blurredStyle.Render(" No quotes yet.") + "\n"
	}

	var b strings.Builder
	for i := range m.state.Quotes {
		style := cardStyle
		if m.focus == focusList && i == m.cursor {
			style = selectedCardStyle
		}
		if m.width > 4 {
			style = style.Width(m.width - 4)
		}

		b.WriteString(style.Render(renderQuote(&m.state.Quotes[i])))
		b.WriteString("\n")
	}

	return b.String()
}

func renderQuote(q *domain.Quote) string {
	return fmt.Sprintf("“%s”\n%s\n%s",
		q.Content,
		authorStyle.Render("- "+q.Author),
		blurredStyle.Render("Added: "+q.DateAdded.Format(dateLayout)),
	)
}
