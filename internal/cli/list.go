package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/snip/internal/snippet"
	"github.com/aidanlsb/snip/internal/ui"
)

var (
	listFavourites bool
	listFull       bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List snippets",
	Long: `List snippets in file order.

By default a summary table is printed; --full prints every snippet with its
tags and code.

Examples:
  snip list
  snip list --favourites --full
  snip list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, warnings, err := openStore(false)
		if err != nil {
			return handleStoreError(err)
		}

		snippets := st.ListAll()
		if listFavourites {
			snippets = st.ListFavourites()
		}

		emptyHint := "No snippets yet. Add one with 'snip add'."
		if listFavourites {
			emptyHint = "No favourites yet. Mark one with 'snip edit <id> --favourite'."
		}
		return outputSnippetList(snippets, warnings, emptyHint)
	},
}

// outputSnippetList prints snippets in the current output mode.
func outputSnippetList(snippets []snippet.Snippet, warnings []Warning, emptyHint string) error {
	if isJSONOutput() {
		if snippets == nil {
			snippets = []snippet.Snippet{}
		}
		outputSuccessWithWarnings(map[string]interface{}{
			"snippets": snippets,
		}, warnings, &Meta{Count: len(snippets)})
		return nil
	}

	printWarnings(warnings)
	if len(snippets) == 0 {
		fmt.Println(ui.Hint(emptyHint))
		return nil
	}
	printSnippets(snippets, listFull)
	return nil
}

func init() {
	listCmd.Flags().BoolVar(&listFavourites, "favourites", false, "Only list favourite snippets")
	listCmd.Flags().BoolVar(&listFull, "full", false, "Print tags and code for every snippet")
	rootCmd.AddCommand(listCmd)
}
