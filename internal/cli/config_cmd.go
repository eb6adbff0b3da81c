package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/snip/internal/config"
	"github.com/aidanlsb/snip/internal/ui"
)

type globalConfigContext struct {
	cfg          *config.Config
	configPath   string
	configExists bool
}

func loadGlobalConfigContext() (*globalConfigContext, error) {
	path := config.ResolveConfigPath(configPath)
	_, statErr := os.Stat(path)
	if statErr != nil && !os.IsNotExist(statErr) {
		return nil, statErr
	}

	loaded, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}
	return &globalConfigContext{
		cfg:          loaded,
		configPath:   path,
		configExists: statErr == nil,
	}, nil
}

func configData(ctx *globalConfigContext) map[string]interface{} {
	dataDir := ctx.cfg.ResolveDataDir(dataDirFlag)
	snippetsFile, counterFile := ctx.cfg.SnippetPaths(dataDir)
	values := make(map[string]string)
	for _, key := range config.Keys() {
		values[key], _ = ctx.cfg.Get(key)
	}

	return map[string]interface{}{
		"config_path":   ctx.configPath,
		"exists":        ctx.configExists,
		"values":        values,
		"data_dir":      dataDir,
		"snippets_file": snippetsFile,
		"counter_file":  counterFile,
		"code_theme":    ctx.cfg.CodeTheme(),
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	ctx, err := loadGlobalConfigContext()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	if isJSONOutput() {
		outputSuccess(configData(ctx), nil)
		return nil
	}

	if !ctx.configExists {
		fmt.Printf("Config file does not exist: %s\n", ctx.configPath)
		fmt.Println(ui.Hint("Run 'snip config init' to create it."))
	} else {
		fmt.Printf("config: %s\n", ui.FilePath(ctx.configPath))
	}

	for _, key := range config.Keys() {
		if v, _ := ctx.cfg.Get(key); v != "" {
			fmt.Printf("%s: %s\n", key, v)
		}
	}
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage snip's config.toml",
	Long: `Manage snip's config.toml.

Keys: data_dir, snippets_file, counter_file, editor, ui.accent, ui.code_theme.
Relative snippets_file and counter_file paths resolve against data_dir.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config.toml if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		targetPath := config.ResolveConfigPath(configPath)
		created, err := config.CreateDefault(targetPath)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": targetPath,
				"created":     created,
			}, nil)
			return nil
		}

		if created {
			fmt.Println(ui.Successf("Created config: %s", ui.FilePath(targetPath)))
		} else {
			fmt.Printf("Config already exists: %s\n", ui.FilePath(targetPath))
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the resolved config, data and snippet paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadGlobalConfigContext()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		data := configData(ctx)

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path":   data["config_path"],
				"data_dir":      data["data_dir"],
				"snippets_file": data["snippets_file"],
				"counter_file":  data["counter_file"],
			}, nil)
			return nil
		}

		t := ui.NewTable(2)
		t.AddRow("config", ui.FilePath(ctx.configPath))
		t.AddRow("data_dir", ui.FilePath(data["data_dir"].(string)))
		t.AddRow("snippets", ui.FilePath(data["snippets_file"].(string)))
		t.AddRow("counter", ui.FilePath(data["counter_file"].(string)))
		fmt.Print(t.String())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config.toml key",
	Long: `Set a config.toml key and save the file.

Examples:
  snip config set data_dir ~/Dropbox/snip
  snip config set ui.code_theme dracula`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[1] == "" {
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("%s cannot be empty; use 'snip config unset %s' to clear it", args[0], args[0]), "")
		}
		return updateConfigKey(args[0], args[1])
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a config.toml key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateConfigKey(args[0], "")
	},
}

func updateConfigKey(key, value string) error {
	ctx, err := loadGlobalConfigContext()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	if err := ctx.cfg.Set(key, value); err != nil {
		return handleError(ErrInvalidInput, err, "")
	}
	if err := config.SaveTo(ctx.configPath, ctx.cfg); err != nil {
		return handleError(ErrFileWriteError, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"config_path": ctx.configPath,
			"key":         key,
			"value":       value,
		}, nil)
		return nil
	}
	if value == "" {
		fmt.Println(ui.Successf("Unset %s", key))
	} else {
		fmt.Println(ui.Successf("Set %s = %s", key, value))
	}
	return nil
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}
