package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Readability runs go-readability over the section before walking its
// paragraphs, which removes infoboxes and navigation boxes. It falls back to
// the DOM strategy on the raw markup when readability finds nothing.
type Readability struct {
	pageURL *url.URL
}

// defaultPageURL stands in when no page URL is configured; readability
// resolves relative links against it.
var defaultPageURL = &url.URL{Scheme: "https", Host: "wikipedia.org", Path: "/"}

// NewReadability creates a readability extractor. A nil pageURL uses wikipedia.org.
func NewReadability(pageURL *url.URL) Readability {
	if pageURL == nil {
		pageURL = defaultPageURL
	}
	return Readability{pageURL: pageURL}
}

// ExtractParagraphs implements Extractor.
func (r Readability) ExtractParagraphs(markup string) []string {
	if strings.TrimSpace(markup) == "" {
		return []string{}
	}

	article, err := readability.FromReader(strings.NewReader(markup), r.pageURL)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		return DOM{}.ExtractParagraphs(markup)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return DOM{}.ExtractParagraphs(markup)
	}

	paragraphs := paragraphsFromDocument(doc)
	if len(paragraphs) == 0 {
		return DOM{}.ExtractParagraphs(markup)
	}
	return paragraphs
}
