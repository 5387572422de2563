package tui

import (
	"fmt"
	"strings"

	"wikibrief/demo/client"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Wikipédia, en bref"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch m.State {
	case StateSearching:
		b.WriteString(m.spinner.View())
		b.WriteString(searchingStyle.Render(fmt.Sprintf(" Recherche de %q...", m.LastQuery)))
		b.WriteString("\n\n")
	case StateError:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
		b.WriteString("\n\n")
	case StateResult:
		if m.Response != nil {
			box := resultBoxStyle.Width(boxWidth(m.width))
			b.WriteString(box.Render(formatResponse(m.Response)))
			b.WriteString("\n\n")
		}
	}

	b.WriteString(helpStyle.Render("enter: search | esc: clear, again to quit | ctrl+c: quit"))
	return b.String()
}

// formatResponse renders either the article or the server's error object
func formatResponse(r *client.SearchResponse) string {
	if r.Failed() {
		lines := []string{errorStyle.Render(r.Error)}
		if r.Query != "" {
			lines = append(lines, mutedStyle.Render("query: "+r.Query))
		}
		if r.Details != "" {
			lines = append(lines, mutedStyle.Render(r.Details))
		}
		return strings.Join(lines, "\n")
	}

	lines := []string{articleTitleStyle.Render(r.Title)}
	if r.Description != nil {
		lines = append(lines, mutedStyle.Render(*r.Description))
	}
	if r.URL != nil {
		lines = append(lines, linkStyle.Render(*r.URL))
	}
	if r.Thumbnail != nil {
		lines = append(lines, mutedStyle.Render("image: "+*r.Thumbnail))
	}

	paragraphs := r.FirstParagraphs
	if len(paragraphs) == 0 && r.Extract != nil {
		paragraphs = []string{*r.Extract}
	}
	for _, p := range paragraphs {
		lines = append(lines, paragraphStyle.Render(p))
	}
	return strings.Join(lines, "\n")
}
