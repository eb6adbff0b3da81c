package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/snip/internal/snippet"
	"github.com/aidanlsb/snip/internal/ui"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a snippet",
	Long: `Delete a snippet by id. Its id is not reused.

On a terminal you are asked to confirm unless --force is given.

Examples:
  snip delete 3
  snip delete 3 --force --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		st, _, err := openStore(true)
		if err != nil {
			return handleStoreError(err)
		}

		target, ok := st.FindByID(id)
		if !ok {
			return handleStoreError(&snippet.NotFoundError{ID: id})
		}

		if !deleteForce && canPrompt() {
			if !confirm(fmt.Sprintf("Delete %s %s?", ui.SnippetID(target.ID), target.Title)) {
				fmt.Println(ui.Hint("Cancelled."))
				return nil
			}
		}

		deleted, err := st.Delete(id)
		if err != nil {
			return handleStoreError(err)
		}
		if !deleted {
			return handleStoreError(&snippet.NotFoundError{ID: id})
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"deleted": target,
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Deleted %s %s", ui.SnippetID(target.ID), target.Title))
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteForce, "force", false, "Skip confirmation")
	rootCmd.AddCommand(deleteCmd)
}
