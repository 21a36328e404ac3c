package output

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Align is the horizontal alignment of a column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Table represents an ASCII table for formatted output.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
	align   []Align
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	t := &Table{
		headers: headers,
		widths:  make([]int, len(headers)),
		align:   make([]Align, len(headers)),
	}
	for i, h := range headers {
		t.widths[i] = displayWidth(h)
	}
	return t
}

// AlignRight right-aligns the given columns, typically numbers.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		if c >= 0 && c < len(t.align) {
			t.align[c] = AlignRight
		}
	}
	return t
}

// AddRow adds a row to the table. Missing cells are blank and extra cells
// are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
	for i, cell := range row {
		if w := displayWidth(cell); w > t.widths[i] {
			t.widths[i] = w
		}
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render returns the table with a separator after every row.
func (t *Table) Render() string {
	return t.render(true)
}

// RenderCompact returns the table without row separators (only header separator).
func (t *Table) RenderCompact() string {
	return t.render(false)
}

func (t *Table) render(rowSeparators bool) string {
	if len(t.headers) == 0 {
		return ""
	}

	var sb strings.Builder
	line := func(s string) {
		sb.WriteString(s)
		sb.WriteString("\n")
	}

	line(t.renderSeparator("-", "+"))
	line(t.renderRow(t.headers, false))
	line(t.renderSeparator("=", "+"))

	for _, row := range t.rows {
		line(t.renderRow(row, true))
		if rowSeparators {
			line(t.renderSeparator("-", "+"))
		}
	}
	if !rowSeparators {
		line(t.renderSeparator("-", "+"))
	}

	return sb.String()
}

// renderSeparator creates a line like +-----+-----+
func (t *Table) renderSeparator(fill, corner string) string {
	parts := make([]string, len(t.widths))
	for i, w := range t.widths {
		parts[i] = strings.Repeat(fill, w+2)
	}
	return corner + strings.Join(parts, corner) + corner
}

// renderRow creates a line like | val | val |. Header cells are always
// left-aligned.
func (t *Table) renderRow(cells []string, aligned bool) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		var padded string
		if aligned && t.align[i] == AlignRight {
			padded = padLeftToWidth(cell, t.widths[i])
		} else {
			padded = padToWidth(cell, t.widths[i])
		}
		parts[i] = " " + padded + " "
	}
	return "|" + strings.Join(parts, "|") + "|"
}

// displayWidth returns the terminal column width of a string, ignoring ANSI
// escape codes. East Asian wide characters count as two columns.
func displayWidth(s string) int {
	return runewidth.StringWidth(stripANSI(s))
}

// stripANSI removes ANSI escape codes from a string.
func stripANSI(s string) string {
	var result strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

func padToWidth(s string, width int) string {
	if w := displayWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeftToWidth(s string, width int) string {
	if w := displayWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// TruncateCell truncates text for a table cell. Colored text loses its
// color when truncated.
func TruncateCell(text string, maxWidth int) string {
	stripped := stripANSI(text)
	if runewidth.StringWidth(stripped) <= maxWidth {
		return text
	}
	return Truncate(stripped, maxWidth)
}
