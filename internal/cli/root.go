// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/snip/internal/config"
	"github.com/aidanlsb/snip/internal/ui"
)

var (
	configPath  string
	dataDirFlag string
	logLevel    = levelValue{level: slog.LevelWarn}

	// Set by PersistentPreRunE.
	cfg             *config.Config
	resolvedDataDir string
	logger          = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   "snip",
	Short: "snip - a local code snippet store",
	Long: `snip keeps code snippets in a single JSON file on your machine.

Each snippet has a title, a language, comma-separated tags, the code itself
and a favourite flag. Ids come from a counter file next to the snippets and
are never reused unless you run 'snip reset-ids'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(os.Stderr, logLevel.level)
		if skipsConfig(cmd) {
			return nil
		}

		path := config.ResolveConfigPath(configPath)
		loaded, err := config.LoadFrom(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded

		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureCodeTheme(cfg.CodeTheme())

		resolvedDataDir = cfg.ResolveDataDir(dataDirFlag)
		logger.Debug("resolved paths", "config", path, "data_dir", resolvedDataDir)
		return nil
	},
}

// skipsConfig reports whether cmd runs without the global config. The
// config commands load the file themselves so a broken config can still be
// inspected and repaired.
func skipsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil && c.HasParent(); c = c.Parent() {
		switch c.Name() {
		case "version", "help", "completion", "config":
			return true
		}
	}
	return false
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to config file")
	flags.StringVarP(&dataDirFlag, "data-dir", "d", "", "Directory holding snippets.json and id.txt")
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format (for scripts)")
	flags.Var(&logLevel, "log-level", "Log level on stderr: debug, info, warn or error")
}

func getConfig() *config.Config {
	return cfg
}

func getDataDir() string {
	return resolvedDataDir
}
