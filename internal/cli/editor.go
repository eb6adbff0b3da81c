package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/snip/internal/shellquote"
)

// codeFlags are the ways add and edit accept snippet code.
type codeFlags struct {
	code     string
	codeFile string
}

func (f *codeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.code, "code", "", "Snippet code")
	cmd.Flags().StringVar(&f.codeFile, "code-file", "", "Read code from a file ('-' for stdin)")
}

// read returns the code given on the command line. ok is false when
// neither --code nor --code-file was used.
func (f *codeFlags) read(cmd *cobra.Command) (code string, ok bool, err error) {
	codeSet := cmd.Flags().Changed("code")
	fileSet := cmd.Flags().Changed("code-file")

	switch {
	case codeSet && fileSet:
		return "", false, fmt.Errorf("--code and --code-file are mutually exclusive")
	case codeSet:
		return f.code, true, nil
	case fileSet && f.codeFile == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read code from stdin: %w", err)
		}
		return string(data), true, nil
	case fileSet:
		data, err := os.ReadFile(f.codeFile)
		if err != nil {
			return "", false, fmt.Errorf("failed to read code file: %w", err)
		}
		return string(data), true, nil
	default:
		return "", false, nil
	}
}

// canUseEditor reports whether code can be collected interactively.
func canUseEditor() bool {
	return !isJSONOutput() && isInteractive() && getConfig().GetEditor() != ""
}

// editInEditor opens initial in the configured editor and returns the saved
// contents. It blocks until the editor exits.
func editInEditor(initial, language string) (string, error) {
	editor := strings.TrimSpace(getConfig().GetEditor())
	if editor == "" {
		return "", fmt.Errorf("no editor configured (set 'editor' in config or $EDITOR)")
	}

	f, err := os.CreateTemp("", "snip-*"+tempExtension(language))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(initial); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	var cmd *exec.Cmd
	// Editors such as "code --wait" need a shell to split their arguments.
	if strings.ContainsAny(editor, " \t") {
		cmd = exec.Command("sh", "-c", editor+" "+shellquote.Quote(path))
	} else {
		cmd = exec.Command(editor, path)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logger.Debug("launching editor", "editor", editor, "path", path)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %q failed: %w", editor, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(data), nil
}

// tempExtension picks a file extension so editors enable syntax highlighting.
func tempExtension(language string) string {
	fields := strings.Fields(strings.ToLower(language))
	if len(fields) == 0 {
		return ".txt"
	}
	switch fields[0] {
	case "python", "py":
		return ".py"
	case "go", "golang":
		return ".go"
	case "javascript", "js":
		return ".js"
	case "typescript", "ts":
		return ".ts"
	case "rust":
		return ".rs"
	case "ruby":
		return ".rb"
	case "shell", "bash", "sh", "zsh":
		return ".sh"
	case "c":
		return ".c"
	case "c++", "cpp":
		return ".cpp"
	case "java":
		return ".java"
	case "sql":
		return ".sql"
	case "yaml", "yml":
		return ".yaml"
	case "json":
		return ".json"
	case "html":
		return ".html"
	case "css":
		return ".css"
	case "markdown", "md":
		return ".md"
	default:
		return ".txt"
	}
}
