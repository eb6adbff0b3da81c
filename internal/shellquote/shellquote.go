// Package shellquote quotes paths and arguments for display in suggested
// commands and for editor invocations run through sh -c.
package shellquote

import "strings"

// Quote wraps s in single quotes, escaping any internal single quotes.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteIfNeeded quotes strings a shell would split or expand.
func QuoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n#[]()|&;<>*?$`!\"'\\~{}") {
		return Quote(s)
	}
	return s
}

// Join quotes each argument as needed and joins them with spaces.
func Join(args ...string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = QuoteIfNeeded(a)
	}
	return strings.Join(quoted, " ")
}
