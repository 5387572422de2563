package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DOM parses the markup and walks its paragraph nodes.
type DOM struct{}

// ExtractParagraphs implements Extractor.
func (DOM) ExtractParagraphs(markup string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return []string{}
	}
	return paragraphsFromDocument(doc)
}

func paragraphsFromDocument(doc *goquery.Document) []string {
	// Reference markers live in <sup class="reference">; drop them before reading text.
	doc.Find("sup.reference, style, script").Remove()

	paragraphs := []string{}
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := footnoteRe.ReplaceAllString(escapeText(s.Text()), "")
		if text = strings.TrimSpace(text); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return paragraphs
}
