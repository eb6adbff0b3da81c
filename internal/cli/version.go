package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/snip/internal/buildinfo"
	"github.com/aidanlsb/snip/internal/ui"
)

const defaultModulePath = "github.com/aidanlsb/snip"

type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show snip version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()
		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}
		fmt.Print(formatVersion(info))
		return nil
	},
}

func formatVersion(info versionInfo) string {
	t := ui.NewTable(2)
	t.AddRow("module", info.ModulePath)
	if info.Commit != "" {
		commit := info.Commit
		if info.Modified {
			commit += " (modified)"
		}
		t.AddRow("commit", commit)
	}
	if info.CommitTime != "" {
		t.AddRow("built", info.CommitTime)
	}
	t.AddRow("go", info.GoVersion)
	t.AddRow("platform", info.Platform)
	return "snip " + info.Version + "\n" + t.String()
}

// currentVersionInfo prefers module build info and falls back to values
// injected through ldflags.
func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    "devel",
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
	}
	goos, goarch := runtime.GOOS, runtime.GOARCH

	if bi, ok := readBuildInfo(); ok && bi != nil {
		settings := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}

		if bi.Main.Path != "" {
			info.ModulePath = bi.Main.Path
		}
		info.Version = normalizeVersion(bi.Main.Version)
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}
		if v := settings["GOOS"]; v != "" {
			goos = v
		}
		if v := settings["GOARCH"]; v != "" {
			goarch = v
		}
		info.Commit = settings["vcs.revision"]
		info.CommitTime = settings["vcs.time"]
		info.Modified, _ = strconv.ParseBool(strings.ToLower(settings["vcs.modified"]))
	}
	info.Platform = goos + "/" + goarch

	if info.Version == "devel" && buildinfo.Version != "" {
		info.Version = normalizeVersion(buildinfo.Version)
	}
	if info.Commit == "" {
		info.Commit = buildinfo.Commit
	}
	if info.CommitTime == "" {
		info.CommitTime = buildinfo.Date
	}
	return info
}

func normalizeVersion(version string) string {
	if version == "" || version == "(devel)" {
		return "devel"
	}
	return version
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
