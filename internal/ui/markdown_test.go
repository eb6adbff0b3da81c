package ui

import (
	"strings"
	"testing"
)

func TestRenderCodeNormalizesTrailingNewline(t *testing.T) {
	t.Parallel()

	out, err := RenderCode("fmt.Println(\"hi\")", "go", 80)
	if err != nil {
		t.Fatalf("RenderCode() error = %v", err)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("expected rendered code to end with newline, got %q", out)
	}
	if strings.HasSuffix(out, "\n\n") {
		t.Fatalf("expected single trailing newline, got %q", out)
	}
	if !strings.Contains(out, "Println") {
		t.Fatalf("expected code text in output, got %q", out)
	}
}

func TestRenderCodeDefaultsWidthWhenNonPositive(t *testing.T) {
	t.Parallel()

	out, err := RenderCode("hello", "", 0)
	if err != nil {
		t.Fatalf("RenderCode() error = %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatalf("expected non-empty rendered output")
	}
}

func TestConfigureCodeTheme(t *testing.T) {
	orig := codeTheme
	t.Cleanup(func() {
		codeTheme = orig
	})

	ConfigureCodeTheme("dracula")
	if got := snipMarkdownStyle().CodeBlock.Theme; got != "dracula" {
		t.Fatalf("Theme = %q, want dracula", got)
	}

	ConfigureCodeTheme("   ")
	if codeTheme != "dracula" {
		t.Fatalf("blank theme should be ignored, got %q", codeTheme)
	}
}

func TestRenderMarkdownKeepsHeadingsAndCode(t *testing.T) {
	t.Parallel()

	out, err := RenderMarkdown("# Search\n\nUse `tags:algo` to scope.\n\n```sh\nsnip search sort\n```\n", 80)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	for _, want := range []string{"Search", "tags:algo", "snip"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %q", want, out)
		}
	}
}
