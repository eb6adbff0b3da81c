package cli

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	builtindocs "github.com/aidanlsb/snip/docs"
	"github.com/aidanlsb/snip/internal/ui"
)

const (
	docsRoot      = "guide"
	docsIndexPath = "guide/index.yaml"
)

var (
	docsDisplayContext = ui.NewDisplayContext
	docsMarkdownRender = ui.RenderMarkdown
)

type docsTopic struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"-"`
	Path  string `json:"path" yaml:"path"`
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Read the bundled guides",
	Long: `Read long-form guides bundled into the snip binary.

Without a topic, the available topics are listed.

Examples:
  snip docs
  snip docs search
  snip docs markdown --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := loadDocsTopics(builtindocs.FS)
		if err != nil {
			return handleError(ErrInternal, err, "Rebuild snip so bundled docs are available")
		}

		if len(args) == 0 {
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{
					"topics": topics,
				}, &Meta{Count: len(topics)})
				return nil
			}
			fmt.Println(ui.Header("Guides"))
			t := ui.NewTable(2)
			for _, topic := range topics {
				t.AddRow("snip docs "+topic.ID, topic.Title)
			}
			fmt.Print(t.String())
			return nil
		}

		id := strings.ToLower(strings.TrimSpace(args[0]))
		for _, topic := range topics {
			if topic.ID == id {
				return outputDocsTopic(topic)
			}
		}

		ids := make([]string, len(topics))
		for i, topic := range topics {
			ids[i] = topic.ID
		}
		return handleErrorMsg(ErrInvalidInput,
			fmt.Sprintf("unknown docs topic %q", args[0]),
			"Available topics: "+strings.Join(ids, ", "))
	},
}

func outputDocsTopic(topic docsTopic) error {
	content, err := fs.ReadFile(builtindocs.FS, topic.Path)
	if err != nil {
		return handleError(ErrFileReadError, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"topic":   topic.ID,
			"title":   topic.Title,
			"content": string(content),
		}, nil)
		return nil
	}

	rendered := string(content)
	display := docsDisplayContext()
	if display.IsTTY {
		if out, renderErr := docsMarkdownRender(rendered, display.TermWidth); renderErr == nil {
			rendered = out
		}
	}
	fmt.Print(rendered)
	if !strings.HasSuffix(rendered, "\n") {
		fmt.Println()
	}
	return nil
}

// loadDocsTopics reads the topic list in index order and takes each title
// from the first heading of its file.
func loadDocsTopics(docsFS fs.FS) ([]docsTopic, error) {
	data, err := fs.ReadFile(docsFS, docsIndexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read docs index: %w", err)
	}

	var index struct {
		Topics []docsTopic `yaml:"topics"`
	}
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse docs index: %w", err)
	}

	topics := make([]docsTopic, 0, len(index.Topics))
	for _, topic := range index.Topics {
		if topic.ID == "" || topic.Path == "" {
			return nil, fmt.Errorf("docs index entry %+v needs an id and a path", topic)
		}
		topic.Path = path.Join(docsRoot, topic.Path)
		content, err := fs.ReadFile(docsFS, topic.Path)
		if err != nil {
			return nil, fmt.Errorf("docs topic %q: %w", topic.ID, err)
		}
		topic.Title = docsTitle(string(content), topic.ID)
		topics = append(topics, topic)
	}
	return topics, nil
}

func docsTitle(content, fallback string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return fallback
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
