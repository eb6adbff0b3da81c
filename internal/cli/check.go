package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/snip/internal/check"
	"github.com/aidanlsb/snip/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the snippet file for integrity problems",
	Long: `Check the snippet file without changing it.

Reports duplicate ids (for example after importing another store's export),
records with an empty title, language or code, and ids that are not below
the counter, which would make the next add reuse an id.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// An unreadable file is the one problem check cannot look past.
		st, _, err := openStore(true)
		if err != nil {
			return handleStoreError(err)
		}

		nextID, counterOK := st.CounterValue()
		issues := check.NewValidator(nextID, counterOK).Validate(st.ListAll())
		errCount, warnCount := check.Summary(issues)

		if isJSONOutput() {
			items := make([]map[string]interface{}, len(issues))
			for i, issue := range issues {
				items[i] = map[string]interface{}{
					"level":   issue.Level.String(),
					"type":    issue.Type,
					"id":      issue.ID,
					"index":   issue.Index,
					"message": issue.Message,
					"fix":     issue.Fix,
				}
			}
			outputSuccess(map[string]interface{}{
				"path":     st.Paths().SnippetsFile,
				"snippets": st.Len(),
				"errors":   errCount,
				"warnings": warnCount,
				"issues":   items,
			}, &Meta{Count: len(issues)})
			return nil
		}

		fmt.Printf("Checking %s %s\n", ui.FilePath(st.Paths().SnippetsFile), ui.Hint(ui.Count(st.Len(), "snippet", "snippets")))
		if len(issues) == 0 {
			fmt.Println(ui.Success("No issues found"))
			return nil
		}

		for _, issue := range issues {
			line := issue.Message
			if issue.Fix != "" {
				line += " " + ui.Hint("→ "+issue.Fix)
			}
			if issue.Level == check.LevelError {
				fmt.Println(ui.Error(line))
			} else {
				fmt.Println(ui.Warning(line))
			}
		}
		fmt.Printf("\n%d errors, %d warnings\n", errCount, warnCount)
		if errCount > 0 {
			return handleErrorMsg(ErrDataIntegrity, fmt.Sprintf("%d integrity errors", errCount), "")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
