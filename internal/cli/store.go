package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aidanlsb/snip/internal/snippet"
)

// snippetPaths returns the snippet and counter files for the resolved data dir.
func snippetPaths() snippet.Paths {
	snippetsFile, counterFile := getConfig().SnippetPaths(getDataDir())
	return snippet.Paths{SnippetsFile: snippetsFile, CounterFile: counterFile}
}

// openStore loads the snippet store. With forWrite, a snippet file that
// failed to load is returned as an error so it is never overwritten.
// Otherwise the failure becomes a warning and the store is empty.
func openStore(forWrite bool) (*snippet.Store, []Warning, error) {
	paths := snippetPaths()
	st, err := snippet.Open(paths, snippet.WithLogger(logger))
	if err == nil {
		return st, nil, nil
	}
	if forWrite {
		return nil, nil, err
	}

	logger.Warn("continuing with an empty collection", "error", err)
	return st, []Warning{{
		Code:    WarnLoadFailed,
		Message: err.Error(),
		Path:    paths.SnippetsFile,
	}}, nil
}

// parseID parses a positional snippet id. Zero and negative ids are
// accepted: imports keep ids verbatim, so such records exist and must stay
// reachable by show, edit and delete (pass negatives after "--").
func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid snippet id %q: must be an integer", raw)
	}
	return id, nil
}

// printWarnings prints warnings in text mode.
func printWarnings(warnings []Warning) {
	for _, w := range warnings {
		fmt.Fprintln(stderr, warningLine(w))
	}
}
