package cli

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/snip/internal/snippet"
	"github.com/aidanlsb/snip/internal/ui"
)

const separatorWidth = 40

// formatSnippet renders one snippet in the listing format:
//
//	[3] Merge sort (go) *
//	Tags: algo,sort
//	<code>
//	----------------------------------------
//
// Code is syntax highlighted when stdout is a terminal.
func formatSnippet(s snippet.Snippet, display *ui.DisplayContext) string {
	var b strings.Builder
	b.WriteString(ui.SnippetHeading(s.ID, s.Title, s.Language, s.IsFavourite))
	b.WriteString("\n")
	b.WriteString("Tags: ")
	b.WriteString(s.Tags)
	b.WriteString("\n")
	b.WriteString(renderCode(s, display))
	b.WriteString(ui.Hint(strings.Repeat("-", separatorWidth)))
	b.WriteString("\n")
	return b.String()
}

func renderCode(s snippet.Snippet, display *ui.DisplayContext) string {
	if display != nil && display.IsTTY {
		out, err := ui.RenderCode(s.Code, s.Language, display.CodeWidth())
		if err == nil {
			return out
		}
		logger.Debug("code highlighting failed, printing plain code", "id", s.ID, "error", err)
	}
	if strings.HasSuffix(s.Code, "\n") {
		return s.Code
	}
	return s.Code + "\n"
}

// printSnippets prints snippets as a summary table, or in the listing
// format with full.
func printSnippets(snippets []snippet.Snippet, full bool) {
	display := ui.NewDisplayContext()
	if full {
		for _, s := range snippets {
			fmt.Print(formatSnippet(s, display))
		}
		return
	}
	fmt.Print(ui.SnippetTable(snippetRows(snippets), display.TermWidth))
}

func snippetRows(snippets []snippet.Snippet) []ui.SnippetRow {
	rows := make([]ui.SnippetRow, len(snippets))
	for i, s := range snippets {
		rows[i] = ui.SnippetRow{
			ID:        s.ID,
			Title:     s.Title,
			Language:  s.Language,
			Tags:      s.Tags,
			Favourite: s.IsFavourite,
		}
	}
	return rows
}
