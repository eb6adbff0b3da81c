package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/aidanlsb/snip/internal/shellquote"
	"github.com/aidanlsb/snip/internal/snippet"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	ErrConfigInvalid = "CONFIG_INVALID"

	ErrSnippetNotFound = "SNIPPET_NOT_FOUND"

	// File errors
	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Index errors
	ErrDatabaseError = "DATABASE_ERROR"

	// Validation errors
	ErrValidationFailed = "VALIDATION_FAILED"
	ErrInvalidInput     = "INVALID_INPUT"
	ErrMissingArgument  = "MISSING_ARGUMENT"

	ErrConfirmationRequired = "CONFIRMATION_REQUIRED"
	ErrDataIntegrity        = "DATA_INTEGRITY"
	ErrInternal             = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnLoadFailed        = "LOAD_FAILED"
	WarnIndexUpdateFailed = "INDEX_UPDATE_FAILED"
	WarnSkippedBlock      = "SKIPPED_BLOCK"
)

// handleStoreError maps a snippet store error to its stable code and a
// suggestion for the user.
func handleStoreError(err error) error {
	code, suggestion := classifyStoreError(err)
	return handleError(code, err, suggestion)
}

func classifyStoreError(err error) (code, suggestion string) {
	var (
		loadErr *snippet.LoadError
		saveErr *snippet.SaveError
		ioErr   *snippet.IOError
	)

	switch {
	case errors.Is(err, snippet.ErrValidation):
		return ErrValidationFailed, "Title, language and code are required"
	case errors.Is(err, snippet.ErrNotFound):
		return ErrSnippetNotFound, "Run 'snip list' to see snippet ids"
	case errors.As(err, &loadErr):
		if loadErr.Path != snippetPaths().SnippetsFile {
			return ErrFileReadError, "Import files must hold a JSON array of complete snippet records"
		}
		return ErrFileReadError, fmt.Sprintf("Repair it or move it aside (%s); snip will not overwrite it",
			shellquote.Join("mv", loadErr.Path, loadErr.Path+".bak"))
	case errors.As(err, &saveErr):
		return ErrFileWriteError, "Check that the data directory is writable"
	case errors.As(err, &ioErr):
		switch {
		case errors.Is(err, os.ErrNotExist):
			return ErrFileNotFound, ""
		case ioErr.Op == snippet.OpImport || ioErr.Op == snippet.OpStatCounter:
			return ErrFileReadError, ""
		default:
			return ErrFileWriteError, ""
		}
	default:
		return ErrInternal, ""
	}
}
