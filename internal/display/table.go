package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders an aligned text table. Widths are measured in terminal cells,
// so Arabic and Arabic-Indic digits line up with Latin text.
type Table struct {
	headers []string
	rows    [][]string
	// highlightRow is the 0-based row index to highlight. -1 = none.
	highlightRow int
	rtl          bool
}

// NewTable creates a new table with the given column headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:      headers,
		highlightRow: -1,
	}
}

// AddRow appends a row of values. The number of values should match the number of headers.
func (t *Table) AddRow(values []string) {
	t.rows = append(t.rows, values)
}

// SetHighlightRow sets which row index (0-based) should be highlighted.
func (t *Table) SetHighlightRow(idx int) {
	t.highlightRow = idx
}

// SetRTL lays the columns out right to left with right-aligned cells.
func (t *Table) SetRTL(rtl bool) {
	t.rtl = rtl
}

// Render produces the formatted table string with leading indent.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder

	sb.WriteString("  " + Bold(t.formatRow(t.headers, widths)) + "\n")

	sepParts := make([]string, len(widths))
	for i, w := range widths {
		sepParts[i] = strings.Repeat("─", w)
	}
	sb.WriteString("  " + Dim(strings.Join(sepParts, "  ")) + "\n")

	for i, row := range t.rows {
		line := t.formatRow(row, widths)
		if i == t.highlightRow {
			line = Highlight(line)
		}
		sb.WriteString("  " + line + "\n")
	}

	return sb.String()
}

func (t *Table) formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", w-lipgloss.Width(cell))
		if t.rtl {
			parts[len(widths)-1-i] = pad + cell
		} else {
			parts[i] = cell + pad
		}
	}
	return strings.Join(parts, "  ")
}
