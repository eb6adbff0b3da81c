package markdown

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/aidanlsb/snip/internal/snippet"
)

func TestFencedCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		language string
		want     string
	}{
		{
			name:     "plain",
			code:     "x := 1",
			language: "Go",
			want:     "```go\nx := 1\n```\n",
		},
		{
			name:     "blank language",
			code:     "x\n",
			language: "  ",
			want:     "```\nx\n```\n",
		},
		{
			name:     "language with spaces keeps first word",
			code:     "x",
			language: "shell script",
			want:     "```shell\nx\n```\n",
		},
		{
			name:     "code containing fence",
			code:     "```\ninner\n```",
			language: "md",
			want:     "````md\n```\ninner\n```\n````\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FencedCode(tt.code, tt.language); got != tt.want {
				t.Fatalf("FencedCode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("headings title blocks", func(t *testing.T) {
		doc := "# Sorting\n\n```python\ndef qs(xs): pass\n```\n\n## Merge *sort*\n\n```go\nfunc m() {}\n```\n"
		drafts, err := Parse([]byte(doc), "notes")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(drafts) != 2 {
			t.Fatalf("len(drafts) = %d, want 2", len(drafts))
		}
		if drafts[0].Title != "Sorting" || drafts[0].Language != "python" || drafts[0].Code != "def qs(xs): pass\n" {
			t.Fatalf("drafts[0] = %+v", drafts[0])
		}
		if drafts[1].Title != "Merge sort" || drafts[1].Language != "go" {
			t.Fatalf("drafts[1] = %+v", drafts[1])
		}
		if drafts[0].Line != 3 || drafts[1].Line != 9 {
			t.Fatalf("lines = %d, %d; want 3, 9", drafts[0].Line, drafts[1].Line)
		}
	})

	t.Run("fallbacks", func(t *testing.T) {
		doc := "```\necho hi\n```\n"
		drafts, err := Parse([]byte(doc), "shell-notes")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(drafts) != 1 {
			t.Fatalf("len(drafts) = %d, want 1", len(drafts))
		}
		if drafts[0].Title != "shell-notes" || drafts[0].Language != DefaultLanguage {
			t.Fatalf("draft = %+v", drafts[0])
		}
	})

	t.Run("front matter applies to every block", func(t *testing.T) {
		doc := "---\ntitle: Helpers\nlanguage: Go\ntags: util, cli\nfavourite: true\n---\n\n# Ignored heading\n\n```\nfunc a() {}\n```\n\n```go\nfunc b() {}\n```\n"
		drafts, err := Parse([]byte(doc), "x")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(drafts) != 2 {
			t.Fatalf("len(drafts) = %d, want 2", len(drafts))
		}
		for _, d := range drafts {
			if d.Title != "Helpers" || d.Language != "Go" || d.Tags != "util, cli" || !d.IsFavourite {
				t.Fatalf("draft = %+v", d)
			}
		}
		if drafts[0].Line != 10 {
			t.Fatalf("Line = %d, want 10", drafts[0].Line)
		}
	})

	t.Run("tag sequence joined", func(t *testing.T) {
		doc := "---\ntags:\n  - Web\n  - ''\n  - http client\n---\n\n```go\nx\n```\n"
		drafts, err := Parse([]byte(doc), "x")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(drafts) != 1 || drafts[0].Tags != "Web,http client" {
			t.Fatalf("drafts = %+v, want tags %q", drafts, "Web,http client")
		}
	})

	t.Run("blank blocks and indented code skipped", func(t *testing.T) {
		doc := "```go\n\n```\n\n    indented code\n"
		drafts, err := Parse([]byte(doc), "x")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(drafts) != 0 {
			t.Fatalf("drafts = %+v, want none", drafts)
		}
	})

	t.Run("unclosed front matter", func(t *testing.T) {
		if _, err := Parse([]byte("---\ntitle: x\n"), "x"); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("bad tags type", func(t *testing.T) {
		if _, err := Parse([]byte("---\ntags: {a: b}\n---\n"), "x"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestRenderRoundTrip(t *testing.T) {
	s := snippet.Snippet{
		ID:          4,
		Title:       "Retry loop",
		Language:    "Python 3",
		Tags:        "Net, retry",
		Code:        "for i in range(3):\n    pass",
		IsFavourite: true,
	}

	data, err := Render(s)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "---\nid: 4\n") {
		t.Fatalf("unexpected header:\n%s", data)
	}
	if !strings.Contains(string(data), "```python\n") {
		t.Fatalf("expected python fence:\n%s", data)
	}

	drafts, err := Parse(data, "ignored")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []Draft{{
		Title:       "Retry loop",
		Language:    "Python 3",
		Tags:        "Net, retry",
		Code:        "for i in range(3):\n    pass\n",
		IsFavourite: true,
		Line:        11,
	}}
	if !reflect.DeepEqual(drafts, want) {
		t.Fatalf("drafts = %+v\nwant %+v", drafts, want)
	}
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	snippets := []snippet.Snippet{
		{ID: 1, Title: "Hello World", Language: "go", Code: "x"},
		{ID: 2, Title: "Hello World", Language: "go", Code: "y"},
	}

	paths, err := Export(dir, snippets)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	want := []string{
		filepath.Join(dir, "1-hello-world.md"),
		filepath.Join(dir, "2-hello-world.md"),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s: %v", p, err)
		}
	}
}

func TestTitleFromPath(t *testing.T) {
	if got := TitleFromPath("/tmp/notes/sorting.md"); got != "sorting" {
		t.Fatalf("TitleFromPath = %q", got)
	}
}
