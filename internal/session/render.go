package session

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuidict/internal/dictionary"
)

const (
	bulletPrefix = "- "
	bulletIndent = "  "
)

// FormatEntry renders an entry as the session prints it. Empty
// sub-definitions are skipped. A positive width wraps each bullet.
func FormatEntry(entry dictionary.Entry, width int, label lipgloss.Style) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(label.Render("Word:") + " " + entry.Name + "\n")
	b.WriteString(label.Render("Type:") + " " + entry.Category.Label() + "\n")
	b.WriteString(label.Render("Definition:") + "\n")
	for _, def := range entry.Definitions() {
		if def == "" {
			continue
		}
		for i, line := range wrapWords(def, width-runewidth.StringWidth(bulletPrefix)) {
			if i == 0 {
				b.WriteString(bulletPrefix)
			} else {
				b.WriteString(bulletIndent)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// wrapWords greedily breaks text at spaces so no line exceeds width display
// cells. Words wider than width get a line of their own. Non-positive width
// returns text unchanged.
func wrapWords(text string, width int) []string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return []string{text}
	}
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)
		if lineWidth > 0 && lineWidth+1+w > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += w
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}
