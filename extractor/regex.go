package extractor

import "regexp"

var (
	paragraphRe = regexp.MustCompile(`(?is)<p(?:\s[^>]*)?>(.*?)</p>`)
	tagRe       = regexp.MustCompile(`<[^>]*>`)
)

// Regex extracts paragraphs by matching <p> elements directly.
type Regex struct{}

// ExtractParagraphs implements Extractor.
func (Regex) ExtractParagraphs(markup string) []string {
	matches := paragraphRe.FindAllStringSubmatch(markup, -1)
	paragraphs := make([]string, 0, len(matches))
	for _, m := range matches {
		text := cleanText(tagRe.ReplaceAllString(m[1], ""))
		if text == "" {
			continue
		}
		paragraphs = append(paragraphs, text)
	}
	return paragraphs
}
