// Package markdown converts snippets to and from Markdown documents.
//
// Export writes one file per snippet: YAML front matter followed by a
// heading and a fenced code block. Parse reads any Markdown document and
// turns each fenced code block into a Draft, so exported files round-trip
// and hand-written notes can be imported too.
package markdown

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// DefaultLanguage is used when neither the fence nor the front matter names one.
const DefaultLanguage = "text"

// Draft is a snippet recovered from Markdown. It has no id; the store assigns
// one when the draft is added.
type Draft struct {
	Title       string
	Language    string
	Tags        string
	Code        string
	IsFavourite bool
	// Line is the 1-indexed line of the opening fence.
	Line int
}

// TitleFromPath returns the title used for blocks with no better source:
// the file name without directory or extension.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Parse extracts every fenced code block in content. A block's title is the
// front matter title, else the nearest preceding heading, else
// fallbackTitle. Its language is the fence info string, else the front
// matter language, else DefaultLanguage. Blocks holding only whitespace are
// skipped.
func Parse(content []byte, fallbackTitle string) ([]Draft, error) {
	fm, body, bodyLine, err := splitFrontMatter(string(content))
	if err != nil {
		return nil, err
	}

	source := []byte(body)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var (
		drafts  []Draft
		heading string
	)
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if h := headingText(node, source); h != "" {
				heading = h
			}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			code := blockCode(node, source)
			if strings.TrimSpace(code) == "" {
				return ast.WalkSkipChildren, nil
			}
			drafts = append(drafts, Draft{
				Title:       pickTitle(fm.Title, heading, fallbackTitle),
				Language:    pickLanguage(string(node.Language(source)), fm.Language),
				Tags:        string(fm.Tags),
				Code:        code,
				IsFavourite: fm.Favourite,
				Line:        bodyLine + fenceLine(node, source),
			})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return drafts, nil
}

func headingText(heading *ast.Heading, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func blockCode(block *ast.FencedCodeBlock, source []byte) string {
	var b strings.Builder
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}

// fenceLine returns the 0-indexed line of the opening fence within source.
func fenceLine(block *ast.FencedCodeBlock, source []byte) int {
	var offset int
	switch {
	case block.Info != nil:
		offset = block.Info.Segment.Start
	case block.Lines().Len() > 0:
		// The first content line sits one line below the fence.
		return bytes.Count(source[:block.Lines().At(0).Start], []byte("\n")) - 1
	default:
		return 0
	}
	return bytes.Count(source[:offset], []byte("\n"))
}

func pickTitle(frontMatter, heading, fallback string) string {
	for _, candidate := range []string{frontMatter, heading, fallback} {
		if c := strings.TrimSpace(candidate); c != "" {
			return c
		}
	}
	return ""
}

func pickLanguage(fence, frontMatter string) string {
	fence = strings.TrimSpace(fence)
	frontMatter = strings.TrimSpace(frontMatter)
	switch {
	case fence == "" && frontMatter == "":
		return DefaultLanguage
	case fence == "":
		return frontMatter
	case strings.EqualFold(fenceInfo(frontMatter), fence):
		// Export lowercases the fence; keep the original spelling.
		return frontMatter
	default:
		return fence
	}
}
