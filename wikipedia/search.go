package wikipedia

import (
	"context"
	"net/url"

	"wikibrief/metrics"
	"wikibrief/types"
)

type searchResponse struct {
	Error *apiError `json:"error"`
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

// ResolveTitle asks the search endpoint for the single best-matching article
// title. An empty Value means no match; Degraded is set when the upstream
// call failed, which callers treat the same way.
func (c *Client) ResolveTitle(ctx context.Context, query string) types.Fetched[string] {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"format":   {"json"},
		"srprop":   {"snippet"},
		"srlimit":  {"1"},
		"origin":   {"*"},
	}

	var resp searchResponse
	err := c.getJSON(ctx, endpointSearch, c.actionURL+"?"+params.Encode(), &resp)
	if err == nil && resp.Error != nil {
		err = resp.Error
	}
	if err != nil {
		c.logger.Warn("error searching title", "query", query, "error", err)
		metrics.RecordDegraded(endpointSearch)
		return types.Degrade("", err)
	}

	if len(resp.Query.Search) == 0 {
		c.logger.Debug("no search results", "query", query)
		return types.Success("")
	}
	return types.Success(resp.Query.Search[0].Title)
}
