package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/snip/internal/snippet"
	"github.com/aidanlsb/snip/internal/ui"
)

var (
	editTitle       string
	editLanguage    string
	editTags        string
	editFavourite   bool
	editUnfavourite bool
	editCode        codeFlags
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a snippet",
	Long: `Edit a snippet's fields in place.

Only the fields you pass change; an empty value keeps the stored one, so
title, language, tags and code can never be blanked through edit. The
favourite flag changes only with --favourite or --no-favourite.

With no field flags on a terminal, the snippet's code opens in your editor.

Examples:
  snip edit 3 --title "Merge sort (stable)"
  snip edit 3 --favourite
  snip edit 3 --code-file sort.go
  snip edit 3          # opens $EDITOR`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		if editFavourite && editUnfavourite {
			return handleErrorMsg(ErrInvalidInput, "--favourite and --no-favourite are mutually exclusive", "")
		}

		code, codeGiven, err := editCode.read(cmd)
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		st, _, err := openStore(true)
		if err != nil {
			return handleStoreError(err)
		}

		current, ok := st.FindByID(id)
		if !ok {
			return handleStoreError(&snippet.NotFoundError{ID: id})
		}

		fieldsGiven := codeGiven || editFavourite || editUnfavourite
		for _, name := range []string{"title", "language", "tags"} {
			fieldsGiven = fieldsGiven || cmd.Flags().Changed(name)
		}
		if !fieldsGiven {
			if !canUseEditor() {
				return handleErrorMsg(ErrMissingArgument, "nothing to change",
					"Pass --title, --language, --tags, --code, --code-file, --favourite or --no-favourite")
			}
			if code, err = editInEditor(current.Code, current.Language); err != nil {
				return handleError(ErrInternal, err, "")
			}
		}

		favourite := current.IsFavourite
		switch {
		case editFavourite:
			favourite = true
		case editUnfavourite:
			favourite = false
		}

		updated, err := st.Edit(id, snippet.EditFields{
			Title:       editTitle,
			Language:    editLanguage,
			Tags:        editTags,
			Code:        code,
			IsFavourite: favourite,
		})
		if err != nil {
			return handleStoreError(err)
		}

		if isJSONOutput() {
			outputSuccess(updated, nil)
			return nil
		}
		fmt.Println(ui.Successf("Updated %s %s", ui.SnippetID(updated.ID), updated.Title))
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editLanguage, "language", "l", "", "New language")
	editCmd.Flags().StringVar(&editTags, "tags", "", "New comma-separated tags")
	editCmd.Flags().BoolVarP(&editFavourite, "favourite", "f", false, "Mark as favourite")
	editCmd.Flags().BoolVar(&editUnfavourite, "no-favourite", false, "Unmark as favourite")
	editCode.register(editCmd)
	rootCmd.AddCommand(editCmd)
}
