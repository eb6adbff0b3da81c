package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table renders rows aligned on spaces without borders. Cell widths are
// measured with lipgloss so styled cells align correctly.
type Table struct {
	rows       [][]string
	colWidths  []int
	colPadding int
}

// NewTable creates a new table with the specified number of columns
func NewTable(cols int) *Table {
	return &Table{
		colWidths:  make([]int, cols),
		colPadding: 2,
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.colWidths))
	for i := 0; i < len(t.colWidths) && i < len(cells); i++ {
		row[i] = cells[i]
		if w := lipgloss.Width(cells[i]); w > t.colWidths[i] {
			t.colWidths[i] = w
		}
	}
	t.rows = append(t.rows, row)
}

// String renders the table as a string
func (t *Table) String() string {
	if len(t.rows) == 0 {
		return ""
	}

	var sb strings.Builder
	padding := strings.Repeat(" ", t.colPadding)

	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(padding)
			}
			sb.WriteString(cell)
			// Pad every column except the last.
			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", t.colWidths[i]-lipgloss.Width(cell)))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// SnippetRow is one line of a snippet listing.
type SnippetRow struct {
	ID        int
	Title     string
	Language  string
	Tags      string
	Favourite bool
}

// SnippetTable renders a bordered summary table of snippets, truncating the
// title and tags columns to fit width.
func SnippetTable(rows []SnippetRow, width int) string {
	if width <= 0 {
		width = DefaultTermWidth
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(Muted).
		Headers("ID", "", "TITLE", "LANGUAGE", "TAGS").
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			switch col {
			case 0, 1:
				return style.Inherit(Accent)
			case 3, 4:
				return style.Inherit(Muted)
			}
			return style
		})

	for _, r := range rows {
		fav := ""
		if r.Favourite {
			fav = SymbolFavourite
		}
		t.Row(strconv.Itoa(r.ID), fav, r.Title, r.Language, r.Tags)
	}

	return t.Render() + "\n"
}
