package wikipedia

import (
	"context"
	"errors"
	"net/url"

	"wikibrief/metrics"
	"wikibrief/types"
)

var errMissingText = errors.New("parse response has no text")

type parseResponse struct {
	Error *apiError `json:"error"`
	Parse *struct {
		Title string            `json:"title"`
		Text  map[string]string `json:"text"`
	} `json:"parse"`
}

// FetchParagraphs fetches the introductory section of an exact title and
// returns at most limit paragraphs from it. On failure the list is empty.
// A non-positive limit yields an empty list without calling the upstream.
func (c *Client) FetchParagraphs(ctx context.Context, title string, limit int) types.Fetched[[]string] {
	if limit <= 0 {
		return types.Success([]string{})
	}

	params := url.Values{
		"action":  {"parse"},
		"page":    {title},
		"format":  {"json"},
		"prop":    {"text"},
		"section": {"0"},
		"origin":  {"*"},
	}

	var resp parseResponse
	err := c.getJSON(ctx, endpointParse, c.actionURL+"?"+params.Encode(), &resp)
	if err == nil && resp.Error != nil {
		err = resp.Error
	}
	var markup string
	if err == nil {
		if resp.Parse == nil {
			err = errMissingText
		} else if text, ok := resp.Parse.Text["*"]; !ok {
			err = errMissingText
		} else {
			markup = text
		}
	}
	if err != nil {
		c.logger.Warn("error getting paragraphs", "title", title, "error", err)
		metrics.RecordDegraded(endpointParse)
		return types.Degrade([]string{}, err)
	}

	paragraphs := c.extractor.ExtractParagraphs(markup)
	if len(paragraphs) > limit {
		paragraphs = paragraphs[:limit:limit]
	}
	return types.Success(paragraphs)
}
