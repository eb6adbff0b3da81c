package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the YAML header of an exported snippet file.
type FrontMatter struct {
	ID        int    `yaml:"id,omitempty"`
	Title     string `yaml:"title,omitempty"`
	Language  string `yaml:"language,omitempty"`
	Tags      Tags   `yaml:"tags,omitempty"`
	Favourite bool   `yaml:"favourite,omitempty"`
}

// Tags holds front matter tags in the store's comma-separated form. A string
// is kept exactly as written, so case and spacing survive an export and
// re-import. A YAML sequence is joined with commas, skipping blank items.
type Tags string

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Tags) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var raw string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*t = Tags(raw)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		kept := items[:0]
		for _, item := range items {
			if strings.TrimSpace(item) != "" {
				kept = append(kept, item)
			}
		}
		*t = Tags(strings.Join(kept, ","))
		return nil
	default:
		return fmt.Errorf("line %d: tags must be a list or a comma-separated string", value.Line)
	}
}

// frontMatterBounds returns the index of the closing '---' line. It only
// detects front matter when the first line is '---'. Unclosed front matter
// reports ok with end -1.
func frontMatterBounds(lines []string) (end int, ok bool) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return -1, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return i, true
		}
	}
	return -1, true
}

// splitFrontMatter separates front matter from the body. bodyLine is the
// 1-indexed line the body starts on.
func splitFrontMatter(content string) (fm FrontMatter, body string, bodyLine int, err error) {
	content = strings.TrimPrefix(content, "\ufeff")
	lines := strings.Split(content, "\n")

	end, ok := frontMatterBounds(lines)
	if !ok {
		return FrontMatter{}, content, 1, nil
	}
	if end == -1 {
		return FrontMatter{}, "", 0, fmt.Errorf("front matter is not closed")
	}

	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "\n")), &fm); err != nil {
		return FrontMatter{}, "", 0, fmt.Errorf("failed to parse front matter as YAML: %w", err)
	}
	return fm, strings.Join(lines[end+1:], "\n"), end + 2, nil
}
