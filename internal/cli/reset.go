package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/snip/internal/ui"
)

var resetYes bool

var resetIDsCmd = &cobra.Command{
	Use:   "reset-ids",
	Short: "Renumber all snippets 1..N",
	Long: `Renumber every snippet to 1..N in file order and set the counter to N+1.

Ids you have written down elsewhere will point at different snippets
afterwards. On a terminal you are asked to confirm; otherwise pass --yes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			if !canPrompt() {
				return handleErrorMsg(ErrConfirmationRequired,
					"reset-ids renumbers every snippet and needs confirmation",
					"Re-run with --yes")
			}
			if !confirm("Renumber all snippets?") {
				fmt.Println(ui.Hint("Cancelled."))
				return nil
			}
		}

		st, _, err := openStore(true)
		if err != nil {
			return handleStoreError(err)
		}

		if err := st.ResetIDs(); err != nil {
			return handleStoreError(err)
		}

		count := st.Len()
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"count":   count,
				"next_id": count + 1,
			}, &Meta{Count: count})
			return nil
		}
		fmt.Println(ui.Successf("Renumbered snippets 1..%d; next id is %d", count, count+1))
		return nil
	},
}

func init() {
	resetIDsCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip confirmation")
	rootCmd.AddCommand(resetIDsCmd)
}
