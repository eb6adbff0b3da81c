package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/snip/internal/ui"
)

var tagCmd = &cobra.Command{
	Use:   "tag <query>",
	Short: "Find snippets whose tags contain a substring",
	Long: `Find snippets whose tags contain query, ignoring case.

The match is a plain substring of the whole tag string, so "algo" matches a
snippet tagged "algorithms,sort".

Examples:
  snip tag algo
  snip tag http --full`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(args[0])
		if query == "" {
			return handleErrorMsg(ErrMissingArgument, "tag query is empty", "Run 'snip tags' to see all tags")
		}

		st, warnings, err := openStore(false)
		if err != nil {
			return handleStoreError(err)
		}

		return outputSnippetList(st.SearchByTagSubstring(query), warnings,
			fmt.Sprintf("No snippets tagged like %q.", query))
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List distinct tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, warnings, err := openStore(false)
		if err != nil {
			return handleStoreError(err)
		}

		tags := st.ListDistinctTags()
		if isJSONOutput() {
			if tags == nil {
				tags = []string{}
			}
			outputSuccessWithWarnings(map[string]interface{}{
				"tags": tags,
			}, warnings, &Meta{Count: len(tags)})
			return nil
		}

		printWarnings(warnings)
		if len(tags) == 0 {
			fmt.Println(ui.Hint("No tags yet."))
			return nil
		}
		for _, tag := range tags {
			fmt.Println(tag)
		}
		return nil
	},
}

func init() {
	tagCmd.Flags().BoolVar(&listFull, "full", false, "Print tags and code for every snippet")
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(tagsCmd)
}
