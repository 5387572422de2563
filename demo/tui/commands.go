package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// searchTimeout bounds one request from the demo.
const searchTimeout = 30 * time.Second

// runSearch creates a command that queries the server
func runSearch(s Searcher, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		resp, err := s.Search(ctx, query)
		return SearchResultMsg{Query: query, Response: resp, Err: err}
	}
}
