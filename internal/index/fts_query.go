package index

import (
	"strings"
	"unicode"
)

// searchColumns are the columns a query token may be scoped to, as in
// `tags:go` or `title:sort`.
var searchColumns = map[string]bool{
	"title":    true,
	"language": true,
	"tags":     true,
	"code":     true,
}

// BuildFTSQuery turns user input into a FTS5 MATCH expression that always
// parses. Quoted phrases, parentheses, AND/OR/NOT and column scopes pass
// through; other tokens FTS5 would reject (c++, foo.bar, quick-sort) are
// quoted as phrases. Stray input is repaired rather than rejected:
//
//   - an unmatched ")" is dropped and an unclosed "(" is closed
//   - empty groups are dropped
//   - an operator with no left or right operand is searched as a word
//   - "AND NOT" collapses to NOT, the last of consecutive operators wins
//   - a column scope with nothing to apply to is dropped
//
// Input that leaves nothing to match yields "".
func BuildFTSQuery(userQuery string) string {
	b := ftsBuilder{}
	for _, tok := range lexFTS(userQuery) {
		b.add(tok)
	}
	return b.finish()
}

type ftsKind int

const (
	ftsTerm ftsKind = iota
	ftsOperator
	ftsScope
	ftsOpen
	ftsClose
)

type ftsToken struct {
	kind ftsKind
	text string
}

// lexFTS splits q into terms, operators, column scopes and parentheses.
// Term text is already in valid FTS5 form.
func lexFTS(q string) []ftsToken {
	var toks []ftsToken
	i := 0
	for i < len(q) {
		c := q[i]
		switch {
		case isSpace(c):
			i++
		case c == '(':
			toks = append(toks, ftsToken{kind: ftsOpen})
			i++
		case c == ')':
			toks = append(toks, ftsToken{kind: ftsClose})
			i++
		case c == '"':
			// An unterminated phrase runs to the end of the input.
			end := strings.IndexByte(q[i+1:], '"')
			var phrase string
			if end < 0 {
				phrase, i = q[i+1:], len(q)
			} else {
				phrase, i = q[i+1:i+1+end], i+2+end
			}
			if strings.TrimSpace(phrase) != "" {
				toks = append(toks, ftsToken{kind: ftsTerm, text: `"` + phrase + `"`})
			}
		default:
			start := i
			for i < len(q) && !isSpace(q[i]) && q[i] != '"' && q[i] != '(' && q[i] != ')' {
				i++
			}
			toks = append(toks, wordToken(q[start:i]))
		}
	}
	return toks
}

func wordToken(word string) ftsToken {
	switch up := strings.ToUpper(word); up {
	case "AND", "OR", "NOT":
		return ftsToken{kind: ftsOperator, text: up}
	}
	if col, rest, ok := strings.Cut(word, ":"); ok && searchColumns[strings.ToLower(col)] {
		col = strings.ToLower(col)
		if rest == "" {
			// Scope for a following phrase or group.
			return ftsToken{kind: ftsScope, text: col + ":"}
		}
		return ftsToken{kind: ftsTerm, text: col + ":" + termText(rest)}
	}
	return ftsToken{kind: ftsTerm, text: termText(word)}
}

// termText returns word unquoted when FTS5 reads it as a plain term and
// as a quoted phrase otherwise. Keywords are always quoted; NEAR opens a
// NEAR group when followed by "(".
func termText(word string) string {
	switch strings.ToUpper(word) {
	case "AND", "OR", "NOT", "NEAR":
	default:
		if isBareword(word) {
			return word
		}
	}
	return `"` + strings.ReplaceAll(word, `"`, `""`) + `"`
}

// ftsGroup remembers the output state before a "(" so an empty group can
// be taken back.
type ftsGroup struct {
	mark       int
	hadOperand bool
}

type ftsBuilder struct {
	out []string
	// hadOperand is true after a term or ")", when a binary operator may
	// follow.
	hadOperand bool
	pendingOp  string
	scope      string
	groups     []ftsGroup
}

func (b *ftsBuilder) add(tok ftsToken) {
	switch tok.kind {
	case ftsTerm:
		b.term(tok.text)
	case ftsOperator:
		b.scope = ""
		if !b.hadOperand {
			b.term(`"` + tok.text + `"`)
			return
		}
		b.pendingOp = tok.text
	case ftsScope:
		b.scope = tok.text
	case ftsOpen:
		group := ftsGroup{mark: len(b.out), hadOperand: b.hadOperand}
		b.flushOperator()
		b.out = append(b.out, b.scope+"(")
		b.scope = ""
		b.hadOperand = false
		b.groups = append(b.groups, group)
	case ftsClose:
		if len(b.groups) > 0 {
			b.closeGroup()
		}
	}
}

// term emits text, preceded by a pending operator and the pending scope.
func (b *ftsBuilder) term(text string) {
	b.flushOperator()
	b.out = append(b.out, b.scope+text)
	b.scope = ""
	b.hadOperand = true
}

func (b *ftsBuilder) flushOperator() {
	if b.pendingOp != "" && b.hadOperand {
		b.out = append(b.out, b.pendingOp)
	}
	b.pendingOp = ""
}

// danglingOperator searches a trailing operator as a word.
func (b *ftsBuilder) danglingOperator() {
	if op := b.pendingOp; op != "" {
		b.pendingOp = ""
		b.term(`"` + op + `"`)
	}
	b.scope = ""
}

func (b *ftsBuilder) closeGroup() {
	b.danglingOperator()
	group := b.groups[len(b.groups)-1]
	b.groups = b.groups[:len(b.groups)-1]
	if !b.hadOperand {
		b.out = b.out[:group.mark]
		b.hadOperand = group.hadOperand
		return
	}
	b.out = append(b.out, ")")
}

func (b *ftsBuilder) finish() string {
	b.danglingOperator()
	for len(b.groups) > 0 {
		b.closeGroup()
	}

	var s strings.Builder
	for i, tok := range b.out {
		if i > 0 && tok != ")" && !strings.HasSuffix(b.out[i-1], "(") {
			s.WriteByte(' ')
		}
		s.WriteString(tok)
	}
	return s.String()
}

// isBareword reports whether FTS5 accepts tok unquoted: letters, digits and
// underscores with an optional trailing '*' for prefix queries.
func isBareword(tok string) bool {
	tok = strings.TrimSuffix(tok, "*")
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) && r < unicode.MaxASCII {
			return false
		}
	}
	return true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
