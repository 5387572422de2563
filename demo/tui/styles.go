package tui

import "github.com/charmbracelet/lipgloss"

// Colours follow the wiki's own palette, with a lighter variant for dark terminals.
var (
	wikiBlue  = lipgloss.AdaptiveColor{Light: "#3366CC", Dark: "#6B9BF2"}
	wikiRed   = lipgloss.AdaptiveColor{Light: "#D73333", Dark: "#FD7865"}
	wikiGreen = lipgloss.AdaptiveColor{Light: "#14866D", Dark: "#3EB88F"}
	wikiGrey  = lipgloss.AdaptiveColor{Light: "#72777D", Dark: "#A2A9B1"}
)

// maxBoxWidth keeps paragraphs readable on wide terminals.
const maxBoxWidth = 100

var (
	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(wikiBlue).
		MarginTop(1).
		MarginBottom(1)

	searchingStyle = lipgloss.NewStyle().Foreground(wikiGreen)
	errorStyle     = lipgloss.NewStyle().Foreground(wikiRed)
	mutedStyle     = lipgloss.NewStyle().Foreground(wikiGrey)
	helpStyle      = mutedStyle.Italic(true)

	articleTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Underline(true).
		Foreground(wikiBlue)

	linkStyle = lipgloss.NewStyle().Foreground(wikiBlue)

	// Paragraphs are separated by a blank line, not indented.
	paragraphStyle = lipgloss.NewStyle().MarginTop(1)

	resultBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(wikiGrey).
		PaddingLeft(2)
)

// boxWidth sizes the result box to the terminal, capped at maxBoxWidth.
// A zero width means no size has been reported yet.
func boxWidth(termWidth int) int {
	if termWidth <= 0 {
		return maxBoxWidth
	}
	return max(min(termWidth-resultBoxStyle.GetHorizontalFrameSize(), maxBoxWidth), 20)
}
