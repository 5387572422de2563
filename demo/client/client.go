// Package client is a small HTTP client for the search API, used by the demo.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SearchResponse is the body of /wikipedia/search. Exactly one of Title
// and Error is non-empty.
type SearchResponse struct {
	Title           string   `json:"title"`
	Description     *string  `json:"description"`
	Extract         *string  `json:"extract"`
	Thumbnail       *string  `json:"thumbnail"`
	URL             *string  `json:"url"`
	FirstParagraphs []string `json:"firstParagraphs"`

	Error   string `json:"error"`
	Query   string `json:"query"`
	Details string `json:"details"`
}

// Failed reports whether the server answered with an error object.
func (r *SearchResponse) Failed() bool { return r.Error != "" }

// Client represents the search API client
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new search API client
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Search runs one lookup against the server. Error objects in the body are
// returned as a SearchResponse, not as an error.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	endpoint := c.baseURL + "/wikipedia/search?" + url.Values{"query": {query}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusInternalServerError {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var out SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}
