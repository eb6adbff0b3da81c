package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/snip/internal/ui"
)

var (
	addTitle     string
	addLanguage  string
	addTags      string
	addFavourite bool
	addCode      codeFlags
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a snippet",
	Long: `Add a snippet to the store.

Title, language and code are required. Tags are a comma-separated list.
Code comes from --code, from --code-file (use '-' for stdin), or, on a
terminal with an editor configured, from your editor.

Examples:
  snip add "Merge sort" --language go --tags algo,sort --code-file sort.go
  pbpaste | snip add "Retry loop" -l python --code-file -
  snip add --title "HTTP server" -l go --favourite   # opens $EDITOR`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := addTitle
		if len(args) == 1 {
			if cmd.Flags().Changed("title") {
				return handleErrorMsg(ErrInvalidInput, "title given both as argument and --title", "")
			}
			title = args[0]
		}

		code, ok, err := addCode.read(cmd)
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		if !ok && canUseEditor() {
			if code, err = editInEditor("", addLanguage); err != nil {
				return handleError(ErrInternal, err, "")
			}
		}

		st, _, err := openStore(true)
		if err != nil {
			return handleStoreError(err)
		}

		s, err := st.Add(title, addLanguage, addTags, code, addFavourite)
		if err != nil {
			return handleStoreError(err)
		}

		if isJSONOutput() {
			outputSuccess(s, nil)
			return nil
		}
		fmt.Println(ui.Successf("Added %s %s", ui.SnippetID(s.ID), s.Title))
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Snippet title")
	addCmd.Flags().StringVarP(&addLanguage, "language", "l", "", "Snippet language")
	addCmd.Flags().StringVar(&addTags, "tags", "", "Comma-separated tags")
	addCmd.Flags().BoolVarP(&addFavourite, "favourite", "f", false, "Mark as favourite")
	addCode.register(addCmd)
	rootCmd.AddCommand(addCmd)
}
