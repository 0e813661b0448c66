package main

import (
	"strings"

	"postdeck/cmd/postdeck/ui"
)

// cellLimit keeps any single column from swallowing the terminal.
const cellLimit = 60

// renderTable lays out rows under a styled header, sized to the widest
// cell per column.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	for r, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				continue
			}
			rows[r][i] = clip(cell, cellLimit)
			if n := len([]rune(rows[r][i])); n > widths[i] {
				widths[i] = n
			}
		}
	}

	styles := ui.DefaultStyles()
	var sb strings.Builder
	sb.WriteString(styles.TableHeader.Render(formatRow(headers, widths)))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(formatRow(row, widths))
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = pad(cell, widths[i])
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// clip flattens newlines and bounds a cell to max runes.
func clip(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
