package markdown

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/snip/internal/atomicfile"
	"github.com/aidanlsb/snip/internal/slugs"
	"github.com/aidanlsb/snip/internal/snippet"
)

// Render returns the Markdown document for one snippet.
func Render(s snippet.Snippet) ([]byte, error) {
	fm := FrontMatter{
		ID:        s.ID,
		Title:     s.Title,
		Language:  s.Language,
		Tags:      Tags(s.Tags),
		Favourite: s.IsFavourite,
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal front matter: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString("# ")
	b.WriteString(singleLine(s.Title))
	b.WriteString("\n\n")
	b.WriteString(FencedCode(s.Code, s.Language))
	return b.Bytes(), nil
}

// Export writes each snippet to dir as <id>-<slug>.md, creating dir if
// needed. It returns the written paths in snippet order.
func Export(dir string, snippets []snippet.Snippet) ([]string, error) {
	paths := make([]string, 0, len(snippets))
	for _, s := range snippets {
		data, err := Render(s)
		if err != nil {
			return paths, fmt.Errorf("snippet %d: %w", s.ID, err)
		}
		path := filepath.Join(dir, slugs.SnippetFileName(s.ID, s.Title))
		if err := atomicfile.WriteFile(path, data, 0o644, atomicfile.WithParents()); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// FencedCode wraps code in a backtick fence long enough that no backtick run
// inside the code can close it. The info string is the lower-cased first
// word of language.
func FencedCode(code, language string) string {
	fence := strings.Repeat("`", longestRun(code, '`')+1)
	if len(fence) < 3 {
		fence = "```"
	}

	var b strings.Builder
	b.WriteString(fence)
	b.WriteString(fenceInfo(language))
	b.WriteString("\n")
	b.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(fence)
	b.WriteString("\n")
	return b.String()
}

func fenceInfo(language string) string {
	fields := strings.Fields(language)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

func longestRun(s string, ch byte) int {
	longest, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == ch {
			cur++
			if cur > longest {
				longest = cur
			}
			continue
		}
		cur = 0
	}
	return longest
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
