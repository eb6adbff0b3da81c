package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/snip/internal/index"
	"github.com/aidanlsb/snip/internal/ui"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over titles, languages, tags and code",
	Long: `Search snippets with a ranked full-text index.

The index lives in <data_dir>/.snip/index.db and is rebuilt automatically
whenever the snippet file changes. The query supports:
  - Words:         merge sort
  - Phrases:       "merge sort"
  - Boolean:       sort NOT bubble
  - Prefix:        quick*
  - Column scope:  tags:algo language:go title:server code:ListenAndServe

Examples:
  snip search retry
  snip search "language:python tags:net"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return handleErrorMsg(ErrMissingArgument, "search query is empty", "")
		}

		st, warnings, err := openStore(false)
		if err != nil {
			return handleStoreError(err)
		}

		db, err := index.Open(getDataDir())
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer db.Close()

		// Never record an unreadable snippet file as indexed.
		if len(warnings) == 0 {
			stamp, err := index.SourceStamp(st.Paths().SnippetsFile)
			if err != nil {
				return handleError(ErrFileReadError, err, "")
			}

			spinner := ui.NewSpinner("Indexing snippets...")
			if stale, _ := db.IsStale(stamp); stale && !isJSONOutput() {
				spinner.Start()
			}
			rebuilt, err := db.Sync(st.ListAll(), stamp)
			spinner.Stop()

			switch {
			case errors.Is(err, index.ErrIndexLocked):
				warnings = append(warnings, Warning{
					Code:    WarnIndexUpdateFailed,
					Message: "index is being rebuilt by another process; results may be stale",
				})
			case err != nil:
				return handleError(ErrDatabaseError, err, "Delete the .snip directory in the data dir to rebuild the index")
			case rebuilt:
				logger.Debug("search index rebuilt", "count", st.Len())
			}
		}

		results, err := db.Search(query, searchLimit)
		if err != nil {
			return handleError(ErrInvalidInput, err, "Quote phrases and check AND/OR/NOT usage")
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]interface{}{
				"query":   query,
				"results": formatSearchResults(results),
			}, warnings, &Meta{Count: len(results), QueryTimeMs: time.Since(start).Milliseconds()})
			return nil
		}

		printWarnings(warnings)
		if len(results) == 0 {
			fmt.Println(ui.Infof("No results found for: %s", query))
			return nil
		}

		fmt.Printf("%s\n\n", ui.Header(fmt.Sprintf("Found %s for: %s", ui.Plural(len(results), "result", "results"), query)))
		for i, r := range results {
			fmt.Printf("%d. %s\n", i+1, ui.SnippetHeading(r.ID, r.Title, r.Language, false))
			if r.Tags != "" {
				fmt.Printf("   %s\n", ui.Hint("Tags: "+r.Tags))
			}
			if excerpt := cleanExcerpt(r.Excerpt); excerpt != "" {
				fmt.Printf("   %s\n", excerpt)
			}
			fmt.Println()
		}
		return nil
	},
}

// cleanExcerpt collapses an excerpt to one line and styles the » « hit
// markers.
func cleanExcerpt(excerpt string) string {
	excerpt = strings.Join(strings.Fields(excerpt), " ")
	if len([]rune(excerpt)) > 120 {
		excerpt = string([]rune(excerpt)[:120]) + "..."
	}
	var b strings.Builder
	for {
		open := strings.Index(excerpt, "»")
		if open < 0 {
			break
		}
		end := strings.Index(excerpt[open:], "«")
		if end < 0 {
			break
		}
		b.WriteString(excerpt[:open])
		b.WriteString(ui.AccentBold.Render(excerpt[open+len("»") : open+end]))
		excerpt = excerpt[open+end+len("«"):]
	}
	b.WriteString(excerpt)
	return b.String()
}

func formatSearchResults(results []index.SearchResult) []map[string]interface{} {
	formatted := make([]map[string]interface{}, len(results))
	for i, r := range results {
		formatted[i] = map[string]interface{}{
			"id":       r.ID,
			"title":    r.Title,
			"language": r.Language,
			"tags":     r.Tags,
			"excerpt":  r.Excerpt,
			"rank":     r.Rank,
		}
	}
	return formatted
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", index.DefaultSearchLimit, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
