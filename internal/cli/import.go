package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/snip/internal/markdown"
	"github.com/aidanlsb/snip/internal/snippet"
	"github.com/aidanlsb/snip/internal/ui"
)

var importMarkdown bool

var importCmd = &cobra.Command{
	Use:   "import <path>...",
	Short: "Import snippets from JSON or Markdown files",
	Long: `Import snippets into the collection.

A JSON file must hold an array of complete snippet records. They are appended
as-is, ids included, so importing a file exported from another store can
produce duplicate ids; 'snip check' reports them and 'snip reset-ids'
renumbers.

With --markdown, every fenced code block in each file becomes a new snippet
with a fresh id. The title comes from front matter, the nearest heading or
the file name; the language from the fence, front matter or "text".

Examples:
  snip import backup.json
  snip import --markdown notes/*.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(true)
		if err != nil {
			return handleStoreError(err)
		}

		if importMarkdown {
			return importMarkdownFiles(st, args)
		}

		// All files are decoded before the collection changes.
		total, err := st.ImportFrom(args...)
		if err != nil {
			return handleStoreError(err)
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"imported": total,
			}, &Meta{Count: total})
			return nil
		}
		fmt.Println(ui.Successf("Imported %s", ui.Plural(total, "snippet", "snippets")))
		return nil
	},
}

type markdownFile struct {
	path   string
	drafts []markdown.Draft
}

// importMarkdownFiles reads and parses every file before adding anything,
// so an unreadable or malformed file leaves the collection untouched.
func importMarkdownFiles(st *snippet.Store, paths []string) error {
	var (
		files    []markdownFile
		added    []snippet.Snippet
		warnings []Warning
	)

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			code := ErrFileReadError
			if errors.Is(err, os.ErrNotExist) {
				code = ErrFileNotFound
			}
			return handleErrorWithDetails(code, err.Error(), "", map[string]interface{}{"path": path})
		}

		drafts, err := markdown.Parse(content, markdown.TitleFromPath(path))
		if err != nil {
			return handleError(ErrInvalidInput, fmt.Errorf("%s: %w", path, err), "")
		}
		if len(drafts) == 0 {
			warnings = append(warnings, Warning{
				Code:    WarnSkippedBlock,
				Message: "no fenced code blocks found",
				Path:    path,
			})
			continue
		}
		files = append(files, markdownFile{path: path, drafts: drafts})
	}

	for _, f := range files {
		for _, d := range f.drafts {
			s, err := st.Add(d.Title, d.Language, d.Tags, d.Code, d.IsFavourite)
			if errors.Is(err, snippet.ErrValidation) {
				warnings = append(warnings, Warning{
					Code:    WarnSkippedBlock,
					Message: fmt.Sprintf("line %d: %v", d.Line, err),
					Path:    f.path,
				})
				continue
			}
			if err != nil {
				// Snippets added before a failed write stay in the store.
				code, _ := classifyStoreError(err)
				return handleErrorWithDetails(code, err.Error(),
					fmt.Sprintf("%s added before the failure; check the data directory and rerun for the rest",
						ui.Plural(len(added), "snippet was", "snippets were")),
					map[string]interface{}{"path": f.path, "imported": len(added)})
			}
			added = append(added, s)
		}
	}

	if isJSONOutput() {
		if added == nil {
			added = []snippet.Snippet{}
		}
		outputSuccessWithWarnings(map[string]interface{}{
			"imported": len(added),
			"snippets": added,
		}, warnings, &Meta{Count: len(added)})
		return nil
	}

	for _, w := range warnings {
		fmt.Fprintln(stderr, ui.Warningf("%s: %s", w.Path, w.Message))
	}
	for _, s := range added {
		fmt.Println(ui.Successf("Added %s %s", ui.SnippetID(s.ID), s.Title))
	}
	fmt.Println(ui.Successf("Imported %s", ui.Plural(len(added), "snippet", "snippets")))
	return nil
}

func init() {
	importCmd.Flags().BoolVar(&importMarkdown, "markdown", false, "Import fenced code blocks from Markdown files")
	rootCmd.AddCommand(importCmd)
}
