package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"wikibrief/demo/client"
)

// State represents the application state machine
type State string

const (
	StateIdle      State = "idle"
	StateSearching State = "searching"
	StateResult    State = "result"
	StateError     State = "error"
)

// Searcher runs a lookup against the server. *client.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string) (*client.SearchResponse, error)
}

// Model represents the TUI client state
type Model struct {
	searcher Searcher
	input    textinput.Model
	spinner  spinner.Model
	width    int

	State     State
	LastQuery string
	Response  *client.SearchResponse
	Err       error
}

// NewModel creates a new TUI model
func NewModel(searcher Searcher) Model {
	input := textinput.New()
	input.Placeholder = "Rechercher sur Wikipédia..."
	input.CharLimit = 200
	input.Width = 50
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = searchingStyle

	return Model{
		searcher: searcher,
		input:    input,
		spinner:  sp,
		State:    StateIdle,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}
