// Package snippet owns the snippet collection: the record type, the on-disk
// JSON format, the id counter, and every operation that reads or mutates them.
package snippet

import (
	"sort"
	"strings"
)

// Snippet is a single stored code fragment.
//
// The JSON field names are the on-disk format and must not change.
type Snippet struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Language    string `json:"language"`
	Tags        string `json:"tags"`
	Code        string `json:"code"`
	IsFavourite bool   `json:"is_favourite"`
}

// TagList splits the raw tags text into trimmed, lower-cased, non-empty
// segments. Duplicates are kept; order follows the text.
func (s Snippet) TagList() []string {
	return splitTags(s.Tags)
}

// HasTagSubstring reports whether query occurs anywhere in the raw tags text,
// ignoring case. "py" matches "python".
func (s Snippet) HasTagSubstring(query string) bool {
	return strings.Contains(strings.ToLower(s.Tags), strings.ToLower(query))
}

func splitTags(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// DistinctTags returns the sorted set of tags across snippets.
func DistinctTags(snippets []Snippet) []string {
	seen := make(map[string]struct{})
	for _, s := range snippets {
		for _, tag := range splitTags(s.Tags) {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// normalizeCode trims trailing whitespace and leading blank lines while
// keeping the indentation of the first non-blank line.
func normalizeCode(code string) string {
	code = strings.TrimRight(code, " \t\r\n")
	for {
		nl := strings.IndexByte(code, '\n')
		if nl < 0 || strings.TrimSpace(code[:nl]) != "" {
			break
		}
		code = code[nl+1:]
	}
	if strings.TrimSpace(code) == "" {
		return ""
	}
	return code
}
