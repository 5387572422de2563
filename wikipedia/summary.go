package wikipedia

import (
	"context"
	"net/url"

	"wikibrief/metrics"
	"wikibrief/types"
)

type summaryResponse struct {
	Description string `json:"description"`
	Extract     string `json:"extract"`
	Thumbnail   *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	ContentURLs *struct {
		Desktop *struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// toSummary maps the response onto Summary. Empty strings count as absent.
func (r *summaryResponse) toSummary() types.Summary {
	s := types.Summary{
		Description: types.StringPtr(r.Description),
		Extract:     types.StringPtr(r.Extract),
	}
	if r.Thumbnail != nil {
		s.Thumbnail = types.StringPtr(r.Thumbnail.Source)
	}
	if r.ContentURLs != nil && r.ContentURLs.Desktop != nil {
		s.URL = types.StringPtr(r.ContentURLs.Desktop.Page)
	}
	return s
}

// FetchSummary fetches the page summary for an exact title. On failure the
// returned Summary has every field absent.
func (c *Client) FetchSummary(ctx context.Context, title string) types.Fetched[types.Summary] {
	rawURL := c.restURL + "/page/summary/" + url.PathEscape(title)

	var resp summaryResponse
	if err := c.getJSON(ctx, endpointSummary, rawURL, &resp); err != nil {
		c.logger.Warn("error getting summary", "title", title, "error", err)
		metrics.RecordDegraded(endpointSummary)
		return types.Degrade(types.Summary{}, err)
	}
	return types.Success(resp.toSummary())
}
