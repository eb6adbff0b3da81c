package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"

	"github.com/aidanlsb/snip/internal/markdown"
)

// MarkdownRenderMargin is the left margin used for rendered code.
const MarkdownRenderMargin = 2

// codeTheme is the chroma theme used for fenced code blocks.
var codeTheme = "monokai"

// ConfigureCodeTheme sets the chroma theme used by RenderCode. Empty keeps
// the current theme.
func ConfigureCodeTheme(theme string) {
	if t := strings.TrimSpace(theme); t != "" {
		codeTheme = t
	}
}

// RenderCode renders a snippet's code as a syntax-highlighted block for the
// terminal. language is used as the fence info string; chroma falls back to
// plain text for languages it does not know.
func RenderCode(code, language string, width int) (string, error) {
	return render(markdown.FencedCode(code, language), snipMarkdownStyle(), width)
}

// RenderMarkdown renders a Markdown document such as a bundled guide.
func RenderMarkdown(content string, width int) (string, error) {
	return render(content, snipDocStyle(), width)
}

func render(content string, style ansi.StyleConfig, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}

	// glamour adds surrounding newlines; normalize to a single trailing newline.
	rendered = strings.Trim(rendered, "\n") + "\n"
	return rendered, nil
}

func snipMarkdownStyle() ansi.StyleConfig {
	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			Margin: mdUintPtr(MarkdownRenderMargin),
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{
					Color: mdStringPtr("252"),
				},
			},
			Theme: codeTheme,
		},
	}
}

// snipDocStyle extends the code style with headings, lists and emphasis.
func snipDocStyle() ansi.StyleConfig {
	muted := mdStringPtr("8")
	var accent *string
	if color, ok := AccentColor(); ok {
		accent = mdStringPtr(color)
	}

	style := snipMarkdownStyle()
	style.Heading = ansi.StyleBlock{
		StylePrimitive: ansi.StylePrimitive{
			BlockSuffix: "\n",
			Color:       accent,
			Bold:        mdBoolPtr(true),
		},
	}
	style.H1 = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "# "}}
	style.H2 = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "## "}}
	style.H3 = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "### "}}
	style.List = ansi.StyleList{LevelIndent: 2}
	style.Item = ansi.StylePrimitive{BlockPrefix: "• "}
	style.Enumeration = ansi.StylePrimitive{BlockPrefix: ". "}
	style.Emph = ansi.StylePrimitive{Italic: mdBoolPtr(true)}
	style.Strong = ansi.StylePrimitive{Bold: mdBoolPtr(true)}
	style.Code = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Color: accent}}
	style.BlockQuote = ansi.StyleBlock{
		StylePrimitive: ansi.StylePrimitive{Color: muted},
		Indent:         mdUintPtr(1),
		IndentToken:    mdStringPtr("│ "),
	}
	return style
}

func mdStringPtr(v string) *string { return &v }

func mdBoolPtr(v bool) *bool { return &v }

func mdUintPtr(v uint) *uint { return &v }
