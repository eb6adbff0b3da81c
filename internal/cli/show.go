package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/snip/internal/snippet"
	"github.com/aidanlsb/snip/internal/ui"
)

var showRaw bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one snippet",
	Long: `Show a snippet by id, with its code syntax highlighted.

Use --raw to print only the code, for piping into other tools.

Examples:
  snip show 3
  snip show 3 --raw | pbcopy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		st, warnings, err := openStore(false)
		if err != nil {
			return handleStoreError(err)
		}

		s, ok := st.SearchByID(id)
		if !ok {
			return handleStoreError(&snippet.NotFoundError{ID: id})
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(s, warnings, nil)
			return nil
		}

		printWarnings(warnings)
		if showRaw {
			fmt.Print(renderCode(s, nil))
			return nil
		}
		fmt.Print(formatSnippet(s, ui.NewDisplayContext()))
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print only the code")
	rootCmd.AddCommand(showCmd)
}
