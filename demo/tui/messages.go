package tui

import "wikibrief/demo/client"

// SearchResultMsg is sent when a search request returns
type SearchResultMsg struct {
	Query    string
	Response *client.SearchResponse
	Err      error
}
