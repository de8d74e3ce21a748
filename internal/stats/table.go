package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	columnGap = "  "
	clipTail  = "..."
)

// column describes one table column. Max caps the cell width in display
// cells; zero leaves it unbounded.
type column struct {
	Title string
	Right bool
	Max   int
}

// renderTable lays out the header and rows, one line each, with trailing
// spaces trimmed.
func renderTable(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	grid := make([][]string, 0, len(rows)+1)
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.Title
	}
	grid = append(grid, header)
	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, col := range cols {
			if i < len(row) {
				cells[i] = clipCell(row[i], col.Max)
			}
		}
		grid = append(grid, cells)
	}

	widths := make([]int, len(cols))
	for _, cells := range grid {
		for i, cell := range cells {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	lines := make([]string, len(grid))
	for n, cells := range grid {
		var b strings.Builder
		for i, cell := range cells {
			if i > 0 {
				b.WriteString(columnGap)
			}
			if cols[i].Right {
				b.WriteString(runewidth.FillLeft(cell, widths[i]))
			} else {
				b.WriteString(runewidth.FillRight(cell, widths[i]))
			}
		}
		lines[n] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

func clipCell(cell string, limit int) string {
	if limit <= 0 {
		return cell
	}
	return runewidth.Truncate(cell, limit, clipTail)
}
