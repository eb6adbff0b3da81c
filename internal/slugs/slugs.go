// Package slugs turns snippet titles into file-name-safe slugs.
package slugs

import (
	"strconv"
	"strings"

	goslug "github.com/gosimple/slug"
)

// maxSlugLen keeps exported file names readable.
const maxSlugLen = 60

// ComponentSlug converts s to a lower-case, dash-separated slug suitable for a
// single path component. Titles with nothing slug-able yield "snippet".
func ComponentSlug(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".md")
	slugged := goslug.Make(s)
	if len(slugged) > maxSlugLen {
		slugged = strings.TrimRight(slugged[:maxSlugLen], "-")
	}
	if slugged == "" {
		return "snippet"
	}
	return slugged
}

// SnippetFileName returns the Markdown file name for a snippet,
// "<id>-<slug>.md". The id prefix keeps names unique when titles repeat.
func SnippetFileName(id int, title string) string {
	return strconv.Itoa(id) + "-" + ComponentSlug(title) + ".md"
}
