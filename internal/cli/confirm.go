package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/aidanlsb/snip/internal/ui"
)

// Swapped out in tests.
var (
	stdin  io.Reader = os.Stdin
	stderr io.Writer = os.Stderr

	isInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
	}
)

// canPrompt reports whether a [y/N] question can be asked. JSON output is
// never interactive.
func canPrompt() bool {
	return !isJSONOutput() && isInteractive()
}

// confirm asks question and reports whether the answer was yes. Anything
// else, including EOF, is no.
func confirm(question string) bool {
	if !canPrompt() {
		return false
	}
	fmt.Printf("%s %s ", question, ui.Hint("[y/N]"))

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

func warningLine(w Warning) string {
	return ui.Warning(w.Message)
}
