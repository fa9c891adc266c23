package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/zentools/pkg/frame"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	cellStyle = lipgloss.NewStyle().Padding(0, 1)
)

// renderTable renders every row of f, with a time index as the first column.
func renderTable(f *frame.Frame) string {
	f = f.ResetIndex()
	headers := f.Columns()

	rows := make([][]string, f.Len())
	for r := range rows {
		row := make([]string, len(headers))

		for i, name := range headers {
			c, err := f.Column(name)
			if err != nil {
				continue
			}

			row[i] = formatCell(c, r)
		}

		rows[r] = row
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(HelpStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TitleStyle.Padding(0, 1)
			}

			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}

// formatCell formats a price-like float with four decimals. Missing values print as NaN.
func formatCell(c *frame.Column, r int) string {
	if c.IsMissing(r) {
		return "NaN"
	}

	switch c.Kind() {
	case frame.KindString:
		return c.StringAt(r).Unwrap()
	case frame.KindTime:
		return c.TimeAt(r).Unwrap().Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%.4f", c.FloatAt(r))
	}
}
