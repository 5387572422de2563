// Package wikipedia talks to the wiki action and REST APIs. Each lookup
// method absorbs its own upstream faults and reports them through
// types.Fetched instead of an error return.
package wikipedia

import (
	"log/slog"
	"net/http"
	"time"

	"wikibrief/config"
	"wikibrief/extractor"
)

// Endpoint labels used in logs and metrics.
const (
	endpointSearch  = "search"
	endpointSummary = "summary"
	endpointParse   = "parse"
)

// Options configures a Client. Zero values fall back to package defaults.
type Options struct {
	ActionAPIURL string
	RestAPIURL   string
	UserAgent    string
	Timeout      time.Duration
	HTTPClient   *http.Client
	Extractor    extractor.Extractor
	Logger       *slog.Logger
}

// Client represents the wiki API client. It is safe for concurrent use.
type Client struct {
	actionURL  string
	restURL    string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
	extractor  extractor.Extractor
	logger     *slog.Logger
}

// NewClient creates a new wiki API client
func NewClient(opts Options) *Client {
	defaultAction, defaultRest := config.ResolveWikiURLs(config.DefaultWikiLang)

	c := &Client{
		actionURL:  opts.ActionAPIURL,
		restURL:    opts.RestAPIURL,
		userAgent:  opts.UserAgent,
		timeout:    opts.Timeout,
		httpClient: opts.HTTPClient,
		extractor:  opts.Extractor,
		logger:     opts.Logger,
	}
	if c.actionURL == "" {
		c.actionURL = defaultAction
	}
	if c.restURL == "" {
		c.restURL = defaultRest
	}
	if c.userAgent == "" {
		c.userAgent = config.DefaultUserAgent
	}
	if c.timeout <= 0 {
		c.timeout = config.DefaultUpstreamTimeout
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	if c.extractor == nil {
		c.extractor = extractor.Regex{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}
