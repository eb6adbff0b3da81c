package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/snip/internal/markdown"
	"github.com/aidanlsb/snip/internal/ui"
)

var exportMarkdown bool

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export snippets to a JSON file or a Markdown directory",
	Long: `Export the whole collection.

By default <path> is a JSON file in the same format as the snippet file. With
--markdown, <path> is a directory that receives one <id>-<slug>.md file per
snippet, with YAML front matter and a fenced code block.

Examples:
  snip export backup.json
  snip export --markdown ~/notes/snippets`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := strings.TrimSpace(args[0])
		if target == "" {
			return handleErrorMsg(ErrMissingArgument, "export path is empty", "")
		}

		st, warnings, err := openStore(false)
		if err != nil {
			return handleStoreError(err)
		}

		if exportMarkdown {
			paths, err := markdown.Export(target, st.ListAll())
			if err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
			if isJSONOutput() {
				if paths == nil {
					paths = []string{}
				}
				outputSuccessWithWarnings(map[string]interface{}{
					"dir":   target,
					"files": paths,
				}, warnings, &Meta{Count: len(paths)})
				return nil
			}
			printWarnings(warnings)
			fmt.Println(ui.Successf("Exported %s to %s", ui.Plural(len(paths), "snippet", "snippets"), ui.FilePath(target)))
			return nil
		}

		if err := st.ExportTo(target); err != nil {
			return handleStoreError(err)
		}
		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]interface{}{
				"path": target,
			}, warnings, &Meta{Count: st.Len()})
			return nil
		}
		printWarnings(warnings)
		fmt.Println(ui.Successf("Exported %s to %s", ui.Plural(st.Len(), "snippet", "snippets"), ui.FilePath(target)))
		return nil
	},
}

func init() {
	exportCmd.Flags().BoolVar(&exportMarkdown, "markdown", false, "Write one Markdown file per snippet into <path>")
	rootCmd.AddCommand(exportCmd)
}
