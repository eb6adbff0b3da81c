package ui

import (
	"fmt"
	"strings"
)

// Status symbols. Outcomes are told apart by symbol, never by color.
const (
	SymbolSuccess   = "✓"
	SymbolError     = "✗"
	SymbolWarning   = "⚠"
	SymbolInfo      = "ℹ"
	SymbolFavourite = "*"
)

func withSymbol(symbol, msg string) string {
	return symbol + " " + msg
}

func Success(msg string) string { return withSymbol(SymbolSuccess, msg) }

func Successf(format string, args ...interface{}) string {
	return Success(fmt.Sprintf(format, args...))
}

func Error(msg string) string { return withSymbol(SymbolError, msg) }

func Warning(msg string) string { return withSymbol(SymbolWarning, msg) }

func Warningf(format string, args ...interface{}) string {
	return Warning(fmt.Sprintf(format, args...))
}

func Infof(format string, args ...interface{}) string {
	return withSymbol(SymbolInfo, fmt.Sprintf(format, args...))
}

// Header renders a section header.
func Header(msg string) string {
	return Bold.Render(msg)
}

// FilePath renders a path in the accent color.
func FilePath(path string) string {
	return Accent.Render(path)
}

// SnippetID renders the "[id]" label used in every listing.
func SnippetID(id int) string {
	return Accent.Render(fmt.Sprintf("[%d]", id))
}

// FavouriteMark returns the favourite marker, or "" for non-favourites.
func FavouriteMark(fav bool) string {
	if !fav {
		return ""
	}
	return AccentBold.Render(SymbolFavourite)
}

// SnippetHeading renders the first line of a listed snippet:
//
//	[3] Merge sort (go) *
func SnippetHeading(id int, title, language string, fav bool) string {
	var b strings.Builder
	b.WriteString(SnippetID(id))
	b.WriteString(" ")
	b.WriteString(Bold.Render(title))
	b.WriteString(" (" + language + ")")
	if fav {
		b.WriteString(" " + FavouriteMark(true))
	}
	return b.String()
}

// Hint renders muted secondary text.
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Plural returns "1 snippet" or "n snippets".
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// Count wraps Plural in parentheses, e.g. "(3 snippets)".
func Count(n int, singular, plural string) string {
	return "(" + Plural(n, singular, plural) + ")"
}
