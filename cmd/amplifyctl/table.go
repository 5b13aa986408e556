package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("#8BC34A")
	muted  = lipgloss.Color("#6B7280")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	sepStyle    = lipgloss.NewStyle().Foreground(muted)
)

// table renders static rows with aligned columns.
type table struct {
	title   string
	headers []string
	rows    [][]string
}

func newTable(title string, headers ...string) *table {
	return &table{title: title, headers: headers}
}

func (t *table) add(row ...string) {
	t.rows = append(t.rows, row)
}

func (t *table) String() string {
	var sb strings.Builder
	if t.title != "" {
		sb.WriteString(titleStyle.Render(t.title))
		sb.WriteString("\n")
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	// Width includes padding
	total := len(widths) - 1
	for i := range widths {
		widths[i] += 2
		total += widths[i]
	}

	writeLine(&sb, t.headers, widths, headerStyle)
	sb.WriteString(sepStyle.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")
	for _, row := range t.rows {
		writeLine(&sb, row, widths, cellStyle)
	}
	return sb.String()
}

func writeLine(sb *strings.Builder, cells []string, widths []int, style lipgloss.Style) {
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			sb.WriteString(sepStyle.Render("|"))
		}
		sb.WriteString(style.Width(widths[i]).Render(cell))
	}
	sb.WriteString("\n")
}
