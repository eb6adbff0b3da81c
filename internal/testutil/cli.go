package testutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

// CLIResult is the decoded --json envelope of one snip invocation.
type CLIResult struct {
	OK       bool                   `json:"ok"`
	Data     map[string]interface{} `json:"data,omitempty"`
	Error    *CLIError              `json:"error,omitempty"`
	Warnings []CLIWarning           `json:"warnings,omitempty"`
	Meta     *CLIMeta               `json:"meta,omitempty"`

	// RawJSON is stdout, followed by stderr when the process failed.
	RawJSON  string `json:"-"`
	ExitCode int    `json:"-"`
}

// CLIError represents a structured error from the CLI.
type CLIError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// CLIWarning represents a warning from the CLI.
type CLIWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// CLIMeta contains metadata from the response.
type CLIMeta struct {
	Count       int   `json:"count,omitempty"`
	QueryTimeMs int64 `json:"query_time_ms,omitempty"`
}

// snipBinary builds cmd/snip once per test process.
var snipBinary struct {
	once sync.Once
	path string
	err  error
}

// BuildCLI returns the path of a freshly built snip binary.
func BuildCLI(t *testing.T) string {
	t.Helper()
	snipBinary.once.Do(func() {
		snipBinary.path, snipBinary.err = buildSnip()
	})
	if snipBinary.err != nil {
		t.Fatalf("failed to build CLI: %v", snipBinary.err)
	}
	return snipBinary.path
}

func buildSnip() (string, error) {
	root, err := findModuleRoot()
	if err != nil {
		return "", err
	}
	dir, err := os.MkdirTemp("", "snip-cli-bin-*")
	if err != nil {
		return "", err
	}

	name := "snip"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	bin := filepath.Join(dir, name)

	cmd := exec.Command("go", "build", "-o", bin, "./cmd/snip")
	cmd.Dir = root
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("go build: %w\n%s", err, out)
	}
	return bin, nil
}

// findModuleRoot walks up from the working directory to the go.mod.
func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found above working directory")
		}
		dir = parent
	}
}

// RunCLI runs snip against the store with --json.
func (s *TestStore) RunCLI(args ...string) *CLIResult {
	s.t.Helper()
	return s.run(nil, args)
}

// RunCLIWithStdin runs snip with stdin connected to input.
func (s *TestStore) RunCLIWithStdin(input string, args ...string) *CLIResult {
	s.t.Helper()
	return s.run(strings.NewReader(input), args)
}

func (s *TestStore) run(stdin io.Reader, args []string) *CLIResult {
	s.t.Helper()

	base := []string{"--data-dir", s.Dir, "--config", s.ConfigPath, "--json"}
	cmd := exec.Command(BuildCLI(s.t), append(base, args...)...)
	cmd.Stdin = stdin

	// Logs go to stderr; only stdout carries the envelope.
	stdout, err := cmd.Output()
	result := decodeEnvelope(stdout)

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		result.RawJSON += string(exitErr.Stderr)
	case err != nil:
		s.t.Fatalf("failed to run snip %v: %v", args, err)
	}
	return result
}

// decodeEnvelope parses stdout, turning unparsable output into a
// PARSE_ERROR result so assertions report it.
func decodeEnvelope(stdout []byte) *CLIResult {
	result := &CLIResult{}
	if err := json.Unmarshal(stdout, result); err != nil {
		result = &CLIResult{Error: &CLIError{
			Code:    "PARSE_ERROR",
			Message: "Failed to parse JSON output: " + err.Error(),
		}}
	}
	result.RawJSON = string(stdout)
	return result
}

// MustSucceed fails the test if the CLI command did not succeed.
func (r *CLIResult) MustSucceed(t *testing.T) *CLIResult {
	t.Helper()
	if r.OK {
		return r
	}
	msg := "unknown error"
	if r.Error != nil {
		msg = r.Error.Code + ": " + r.Error.Message
	}
	t.Fatalf("expected command to succeed, got error: %s\nRaw output: %s", msg, r.RawJSON)
	return r
}

// MustFail fails the test unless the command failed with expectedCode.
func (r *CLIResult) MustFail(t *testing.T, expectedCode string) *CLIResult {
	t.Helper()
	switch {
	case r.OK:
		t.Fatalf("expected command to fail with code %s, but it succeeded\nRaw output: %s", expectedCode, r.RawJSON)
	case r.Error == nil:
		t.Fatalf("expected error with code %s, but error is nil\nRaw output: %s", expectedCode, r.RawJSON)
	case r.Error.Code != expectedCode:
		t.Fatalf("expected error code %s, got %s: %s\nRaw output: %s", expectedCode, r.Error.Code, r.Error.Message, r.RawJSON)
	}
	return r
}

// DataList extracts a list from the Data field.
func (r *CLIResult) DataList(key string) []interface{} {
	list, _ := r.Data[key].([]interface{})
	return list
}

// DataString extracts a string from the Data field.
func (r *CLIResult) DataString(key string) string {
	s, _ := r.Data[key].(string)
	return s
}

// DataInt extracts a JSON number from the Data field as an int.
func (r *CLIResult) DataInt(key string) int {
	n, _ := r.Data[key].(float64)
	return int(n)
}
