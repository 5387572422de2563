// Package extractor turns wiki section markup into plain-text paragraphs.
//
// Every strategy honours the same contract: paragraphs come back in document
// order, stripped of markup and footnote markers, with empty paragraphs
// dropped. Malformed markup yields an empty or partial list, never an error.
package extractor

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"
)

// Extractor produces the ordered paragraphs found in a markup fragment.
type Extractor interface {
	ExtractParagraphs(markup string) []string
}

// Strategy names accepted by New.
const (
	StrategyRegex       = "regex"
	StrategyDOM         = "dom"
	StrategyReadability = "readability"
)

var (
	// footnoteRe matches reference markers such as [3].
	footnoteRe = regexp.MustCompile(`\[\d+\]`)
	// entityRe matches named, decimal and hex character references.
	entityRe = regexp.MustCompile(`&(?:#[0-9]+|#[xX][0-9a-fA-F]+|[a-zA-Z][a-zA-Z0-9]*);`)
)

// markupEscaper re-encodes the characters that would change meaning if a
// paragraph were embedded in markup again.
var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// New returns the extractor registered under name. pageURL is only used by
// the readability strategy to resolve relative links and may be empty.
func New(name, pageURL string) (Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyRegex:
		return Regex{}, nil
	case StrategyDOM:
		return DOM{}, nil
	case StrategyReadability:
		var base *url.URL
		if pageURL != "" {
			u, err := url.Parse(pageURL)
			if err != nil {
				return nil, fmt.Errorf("invalid page URL %q: %w", pageURL, err)
			}
			base = u
		}
		return NewReadability(base), nil
	default:
		return nil, fmt.Errorf("unknown extractor %q", name)
	}
}

// cleanText decodes character references, removes footnote markers and trims.
// References are decoded first because the wiki renders markers as &#91;3&#93;.
// References to &, < and > stay encoded, in their named form, so a paragraph
// wrapped in <p> extracts to itself.
func cleanText(text string) string {
	text = entityRe.ReplaceAllStringFunc(text, decodeReference)
	text = footnoteRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// decodeReference decodes one character reference unless it stands for a
// markup-significant character.
func decodeReference(ref string) string {
	decoded := html.UnescapeString(ref)
	switch decoded {
	case "&", "<", ">":
		return markupEscaper.Replace(decoded)
	}
	return decoded
}

// escapeText encodes the markup-significant characters of text extracted
// from a parsed document, matching what cleanText keeps encoded.
func escapeText(text string) string {
	return markupEscaper.Replace(text)
}
