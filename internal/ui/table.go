package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/mosdef/internal/display"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a new Bubbles table with default styling.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+2), // header and its bottom border
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	// Nothing is focused, so the first row must not look selected.
	s.Selected = s.Cell

	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders a non-interactive table string.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	t := NewTable(columns, tableRows)
	return t.View()
}

// DisplayColumns are the columns of the --list table.
var DisplayColumns = []TableColumn{
	{Title: "ID", Width: 4},
	{Title: "Name", Width: 24},
	{Title: "Device", Width: 20},
	{Title: "Connection", Width: 11},
	{Title: "Resolution", Width: 11},
	{Title: "Rotation", Width: 8},
	{Title: "Path Key", Width: display.PathKeyLength + 1},
}

// DisplayRow turns a display into the cells of DisplayColumns.
func DisplayRow(d display.Display) []string {
	return []string{
		d.ID,
		d.Name,
		truncate(d.DevicePath, 20),
		d.Connection.String(),
		d.Resolution(),
		d.Rotation.String(),
		d.PathKey,
	}
}

// RenderDisplayTable renders the display inventory, one row per display in
// ID order.
func RenderDisplayTable(displays []display.Display) string {
	if len(displays) == 0 {
		return "No displays found."
	}

	rows := make([][]string, len(displays))
	for i, d := range display.SortByIndex(displays) {
		rows[i] = DisplayRow(d)
	}
	return RenderSimpleTable(DisplayColumns, rows)
}

// truncate shortens s to width runes, ending in "...".
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// padRight pads a string to the specified width.
func padRight(s string, width int) string {
	// Account for ANSI codes when calculating visible length
	visibleLen := lipgloss.Width(s)
	if visibleLen >= width {
		return s
	}
	padding := width - visibleLen
	for i := 0; i < padding; i++ {
		s += " "
	}
	return s
}
