package types

// Summary holds the structured metadata returned by the page summary endpoint.
// Every field is optional; a nil pointer means the upstream did not provide it.
type Summary struct {
	Description *string `json:"description"`
	Extract     *string `json:"extract"`
	Thumbnail   *string `json:"thumbnail"`
	URL         *string `json:"url"`
}

// Result is the merged payload for one resolved article.
type Result struct {
	Title      string   `json:"title"`
	Summary    Summary  `json:"-"`
	Paragraphs []string `json:"firstParagraphs"`
}

// Payload flattens a Result into the wire shape served by the search endpoint.
func (r *Result) Payload() map[string]any {
	paragraphs := r.Paragraphs
	if paragraphs == nil {
		paragraphs = []string{}
	}
	return map[string]any{
		"title":           r.Title,
		"description":     r.Summary.Description,
		"extract":         r.Summary.Extract,
		"thumbnail":       r.Summary.Thumbnail,
		"url":             r.Summary.URL,
		"firstParagraphs": paragraphs,
	}
}

// StringPtr returns nil for an empty string, otherwise a pointer to a copy of s.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
