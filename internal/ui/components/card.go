package components

import (
	"strings"

	"github.com/abhisek/wayhome/internal/ui/theme"
)

// ContentWidth clamps a terminal width to the inner width used by cards.
func ContentWidth(termWidth int) int {
	// Leave room for border (2) + padding (4)
	w := termWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 24 {
		w = 24
	}
	return w
}

// Card wraps a titled section in a rounded border sized to its content.
func Card(title string, lines []string) string {
	body := theme.Heading.Render(title)
	if len(lines) > 0 {
		body += "\n" + strings.Join(lines, "\n")
	}
	return theme.Card.Render(body)
}

// Badges renders badge labels as pills separated by spaces.
func Badges(labels []string) string {
	if len(labels) == 0 {
		return theme.Hint.Render("no badges yet")
	}
	pills := make([]string, len(labels))
	for i, l := range labels {
		pills[i] = theme.Badge.Render(l)
	}
	return strings.Join(pills, " ")
}
