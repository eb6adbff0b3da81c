package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/snip/internal/config"
)

var captureStdoutMu sync.Mutex

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	captureStdoutMu.Lock()
	defer captureStdoutMu.Unlock()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	os.Stdout = w

	outputCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		var buf bytes.Buffer
		_, copyErr := io.Copy(&buf, r)
		_ = r.Close()
		if copyErr != nil {
			errCh <- copyErr
			return
		}
		outputCh <- buf.String()
	}()

	fn()

	os.Stdout = orig
	_ = w.Close()
	select {
	case err := <-errCh:
		t.Fatalf("io.Copy: %v", err)
		return ""
	case output := <-outputCh:
		return output
	}
}

type testResponse struct {
	OK       bool            `json:"ok"`
	Data     json.RawMessage `json:"data"`
	Error    *ErrorInfo      `json:"error"`
	Warnings []Warning       `json:"warnings"`
}

// setupDataDir points the CLI globals at a fresh data directory in JSON
// mode with no terminal attached.
func setupDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	prevCfg := cfg
	prevDataDir := resolvedDataDir
	prevJSON := jsonOutput
	prevInteractive := isInteractive
	prevConfigPath := configPath
	t.Cleanup(func() {
		cfg = prevCfg
		resolvedDataDir = prevDataDir
		jsonOutput = prevJSON
		isInteractive = prevInteractive
		configPath = prevConfigPath
	})

	cfg = &config.Config{}
	resolvedDataDir = dir
	jsonOutput = true
	isInteractive = func() bool { return false }
	configPath = filepath.Join(dir, "config.toml")
	return dir
}

// runCmd sets flags on cmd, runs it and decodes the JSON envelope. Flags are
// restored to their defaults when the test ends.
func runCmd(t *testing.T, cmd *cobra.Command, flags map[string]string, args ...string) testResponse {
	t.Helper()
	for name, value := range flags {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("set --%s: %v", name, err)
		}
	}
	defer cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})

	var runErr error
	out := captureStdout(t, func() {
		runErr = cmd.RunE(cmd, args)
	})
	if runErr != nil {
		t.Fatalf("%s RunE returned error: %v", cmd.Name(), runErr)
	}

	var resp testResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("failed to parse JSON output: %v\n%s", err, out)
	}
	return resp
}

func mustOK(t *testing.T, resp testResponse) {
	t.Helper()
	if !resp.OK {
		t.Fatalf("expected ok response, got error %+v", resp.Error)
	}
}

func mustFailWith(t *testing.T, resp testResponse, code string) {
	t.Helper()
	if resp.OK {
		t.Fatalf("expected error %s, got ok: %s", code, resp.Data)
	}
	if resp.Error == nil || resp.Error.Code != code {
		t.Fatalf("expected error code %s, got %+v", code, resp.Error)
	}
}

type snippetJSON struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Language    string `json:"language"`
	Tags        string `json:"tags"`
	Code        string `json:"code"`
	IsFavourite bool   `json:"is_favourite"`
}

func decodeData(t *testing.T, resp testResponse, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, v); err != nil {
		t.Fatalf("failed to decode data: %v\n%s", err, resp.Data)
	}
}

func addSnippet(t *testing.T, title, language, tags, code string, favourite bool) snippetJSON {
	t.Helper()
	flags := map[string]string{
		"title":    title,
		"language": language,
		"tags":     tags,
		"code":     code,
	}
	if favourite {
		flags["favourite"] = "true"
	}
	resp := runCmd(t, addCmd, flags)
	mustOK(t, resp)

	var s snippetJSON
	decodeData(t, resp, &s)
	return s
}

func listSnippets(t *testing.T, cmd *cobra.Command, flags map[string]string, args ...string) []snippetJSON {
	t.Helper()
	resp := runCmd(t, cmd, flags, args...)
	mustOK(t, resp)

	var data struct {
		Snippets []snippetJSON `json:"snippets"`
	}
	decodeData(t, resp, &data)
	return data.Snippets
}

func snippetIDs(snippets []snippetJSON) []int {
	ids := make([]int, len(snippets))
	for i, s := range snippets {
		ids[i] = s.ID
	}
	return ids
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	dir := setupDataDir(t)

	first := addSnippet(t, "Merge sort", "go", "algo,sort", "func mergeSort() {}", false)
	second := addSnippet(t, "HTTP server", "go", "net,http", "http.ListenAndServe(\":8080\", nil)", true)

	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("ids = %d, %d, want 1, 2", first.ID, second.ID)
	}
	if !second.IsFavourite {
		t.Fatalf("expected second snippet to be a favourite")
	}

	counter, err := os.ReadFile(filepath.Join(dir, "id.txt"))
	if err != nil {
		t.Fatalf("read counter: %v", err)
	}
	if strings.TrimSpace(string(counter)) != "3" {
		t.Fatalf("counter = %q, want 3", counter)
	}

	all := listSnippets(t, listCmd, nil)
	if got := snippetIDs(all); !equalIDs(got, []int{1, 2}) {
		t.Fatalf("list ids = %v, want [1 2]", got)
	}

	favs := listSnippets(t, listCmd, map[string]string{"favourites": "true"})
	if got := snippetIDs(favs); !equalIDs(got, []int{2}) {
		t.Fatalf("favourite ids = %v, want [2]", got)
	}
}

func TestAddRejectsMissingFields(t *testing.T) {
	setupDataDir(t)

	tests := []struct {
		name  string
		flags map[string]string
		args  []string
		code  string
	}{
		{
			name:  "missing code",
			flags: map[string]string{"title": "T", "language": "go"},
			code:  ErrValidationFailed,
		},
		{
			name:  "blank title",
			flags: map[string]string{"title": "   ", "language": "go", "code": "x"},
			code:  ErrValidationFailed,
		},
		{
			name:  "missing language",
			flags: map[string]string{"code": "x"},
			args:  []string{"Title"},
			code:  ErrValidationFailed,
		},
		{
			name:  "title twice",
			flags: map[string]string{"title": "A", "language": "go", "code": "x"},
			args:  []string{"B"},
			code:  ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustFailWith(t, runCmd(t, addCmd, tt.flags, tt.args...), tt.code)
		})
	}

	if snippets := listSnippets(t, listCmd, nil); len(snippets) != 0 {
		t.Fatalf("expected no snippets after rejected adds, got %d", len(snippets))
	}
}

func TestAddReadsCodeFromFile(t *testing.T) {
	dir := setupDataDir(t)
	codePath := filepath.Join(dir, "hello.py")
	if err := os.WriteFile(codePath, []byte("print('hi')\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	resp := runCmd(t, addCmd, map[string]string{"language": "python", "code-file": codePath}, "Hello")
	mustOK(t, resp)

	var s snippetJSON
	decodeData(t, resp, &s)
	if s.Title != "Hello" || !strings.Contains(s.Code, "print('hi')") {
		t.Fatalf("unexpected snippet %+v", s)
	}

	mustFailWith(t, runCmd(t, addCmd, map[string]string{
		"language":  "python",
		"code":      "x",
		"code-file": codePath,
	}, "Both"), ErrInvalidInput)
}

func TestShowReturnsSnippet(t *testing.T) {
	setupDataDir(t)
	addSnippet(t, "Merge sort", "go", "algo", "func mergeSort() {}", false)

	resp := runCmd(t, showCmd, nil, "1")
	mustOK(t, resp)
	var s snippetJSON
	decodeData(t, resp, &s)
	if s.Title != "Merge sort" {
		t.Fatalf("title = %q, want Merge sort", s.Title)
	}

	mustFailWith(t, runCmd(t, showCmd, nil, "9"), ErrSnippetNotFound)
	mustFailWith(t, runCmd(t, showCmd, nil, "abc"), ErrInvalidInput)
	mustFailWith(t, runCmd(t, showCmd, nil, "0"), ErrSnippetNotFound)
}

func TestImportedNonPositiveIDsStayReachable(t *testing.T) {
	dir := setupDataDir(t)
	backup := filepath.Join(dir, "backup.json")
	records := `[
    {"id": 0, "title": "Zero", "language": "go", "tags": "", "code": "a", "is_favourite": false},
    {"id": -4, "title": "Negative", "language": "go", "tags": "", "code": "b", "is_favourite": false}
]`
	if err := os.WriteFile(backup, []byte(records), 0o644); err != nil {
		t.Fatal(err)
	}
	mustOK(t, runCmd(t, importCmd, nil, backup))

	resp := runCmd(t, showCmd, nil, "0")
	mustOK(t, resp)
	var s snippetJSON
	decodeData(t, resp, &s)
	if s.Title != "Zero" {
		t.Fatalf("show 0 title = %q, want Zero", s.Title)
	}

	mustOK(t, runCmd(t, editCmd, map[string]string{"title": "Minus four"}, "-4"))
	mustOK(t, runCmd(t, deleteCmd, map[string]string{"force": "true"}, "0"))

	all := listSnippets(t, listCmd, nil)
	if got := snippetIDs(all); !equalIDs(got, []int{-4}) || all[0].Title != "Minus four" {
		t.Fatalf("snippets after edit and delete = %+v", all)
	}
}

func TestEditUpdatesOnlyGivenFields(t *testing.T) {
	setupDataDir(t)
	addSnippet(t, "Merge sort", "go", "algo", "func mergeSort() {}", true)

	resp := runCmd(t, editCmd, map[string]string{"title": "Merge sort (stable)", "language": ""}, "1")
	mustOK(t, resp)

	var s snippetJSON
	decodeData(t, resp, &s)
	if s.Title != "Merge sort (stable)" {
		t.Fatalf("title = %q", s.Title)
	}
	if s.Language != "go" || s.Tags != "algo" || s.Code != "func mergeSort() {}" {
		t.Fatalf("untouched fields changed: %+v", s)
	}
	if !s.IsFavourite {
		t.Fatalf("favourite should be kept without --no-favourite")
	}

	resp = runCmd(t, editCmd, map[string]string{"no-favourite": "true"}, "1")
	mustOK(t, resp)
	decodeData(t, resp, &s)
	if s.IsFavourite {
		t.Fatalf("expected favourite to be cleared")
	}
}

func TestEditErrors(t *testing.T) {
	setupDataDir(t)
	addSnippet(t, "Merge sort", "go", "algo", "func mergeSort() {}", false)

	mustFailWith(t, runCmd(t, editCmd, nil, "1"), ErrMissingArgument)
	mustFailWith(t, runCmd(t, editCmd, map[string]string{"title": "x"}, "7"), ErrSnippetNotFound)
	mustFailWith(t, runCmd(t, editCmd, map[string]string{
		"favourite":    "true",
		"no-favourite": "true",
	}, "1"), ErrInvalidInput)
}

func TestDeleteDoesNotReuseIDs(t *testing.T) {
	setupDataDir(t)
	addSnippet(t, "One", "go", "", "1", false)
	addSnippet(t, "Two", "go", "", "2", false)

	resp := runCmd(t, deleteCmd, nil, "2")
	mustOK(t, resp)
	var data struct {
		Deleted snippetJSON `json:"deleted"`
	}
	decodeData(t, resp, &data)
	if data.Deleted.Title != "Two" {
		t.Fatalf("deleted = %+v, want Two", data.Deleted)
	}

	mustFailWith(t, runCmd(t, deleteCmd, nil, "2"), ErrSnippetNotFound)

	third := addSnippet(t, "Three", "go", "", "3", false)
	if third.ID != 3 {
		t.Fatalf("new id = %d, want 3", third.ID)
	}
}

func TestResetIDsRequiresConfirmation(t *testing.T) {
	setupDataDir(t)
	addSnippet(t, "One", "go", "", "1", false)
	addSnippet(t, "Two", "go", "", "2", false)
	addSnippet(t, "Three", "go", "", "3", false)
	mustOK(t, runCmd(t, deleteCmd, nil, "1"))

	mustFailWith(t, runCmd(t, resetIDsCmd, nil), ErrConfirmationRequired)

	resp := runCmd(t, resetIDsCmd, map[string]string{"yes": "true"})
	mustOK(t, resp)
	var data struct {
		Count  int `json:"count"`
		NextID int `json:"next_id"`
	}
	decodeData(t, resp, &data)
	if data.Count != 2 || data.NextID != 3 {
		t.Fatalf("reset = %+v, want count 2 next_id 3", data)
	}

	all := listSnippets(t, listCmd, nil)
	if got := snippetIDs(all); !equalIDs(got, []int{1, 2}) {
		t.Fatalf("ids after reset = %v, want [1 2]", got)
	}
	if all[0].Title != "Two" {
		t.Fatalf("file order changed: %+v", all)
	}
}

func TestTagSearchAndDistinctTags(t *testing.T) {
	setupDataDir(t)
	addSnippet(t, "Merge sort", "go", "algorithms,sort", "a", false)
	addSnippet(t, "Server", "go", "net, HTTP", "b", false)
	addSnippet(t, "Quick sort", "go", "Sort", "c", false)

	matches := listSnippets(t, tagCmd, nil, "ALGO")
	if got := snippetIDs(matches); !equalIDs(got, []int{1}) {
		t.Fatalf("tag ALGO ids = %v, want [1]", got)
	}

	matches = listSnippets(t, tagCmd, nil, "sort")
	if got := snippetIDs(matches); !equalIDs(got, []int{1, 3}) {
		t.Fatalf("tag sort ids = %v, want [1 3]", got)
	}

	mustFailWith(t, runCmd(t, tagCmd, nil, "  "), ErrMissingArgument)

	resp := runCmd(t, tagsCmd, nil)
	mustOK(t, resp)
	var data struct {
		Tags []string `json:"tags"`
	}
	decodeData(t, resp, &data)
	if len(data.Tags) == 0 {
		t.Fatalf("expected distinct tags")
	}
	for i := 1; i < len(data.Tags); i++ {
		if data.Tags[i-1] >= data.Tags[i] {
			t.Fatalf("tags not sorted and distinct: %v", data.Tags)
		}
	}
}

func TestExportImportJSON(t *testing.T) {
	dir := setupDataDir(t)
	addSnippet(t, "One", "go", "a", "1", false)
	addSnippet(t, "Two", "python", "b", "2", true)

	exportPath := filepath.Join(t.TempDir(), "backup.json")
	mustOK(t, runCmd(t, exportCmd, nil, exportPath))

	// Importing into the same store appends the records with their ids.
	resp := runCmd(t, importCmd, nil, exportPath)
	mustOK(t, resp)
	var data struct {
		Imported int `json:"imported"`
	}
	decodeData(t, resp, &data)
	if data.Imported != 2 {
		t.Fatalf("imported = %d, want 2", data.Imported)
	}

	all := listSnippets(t, listCmd, nil)
	if got := snippetIDs(all); !equalIDs(got, []int{1, 2, 1, 2}) {
		t.Fatalf("ids after import = %v, want [1 2 1 2]", got)
	}

	resp = runCmd(t, checkCmd, nil)
	mustOK(t, resp)
	var report struct {
		Errors int `json:"errors"`
	}
	decodeData(t, resp, &report)
	if report.Errors == 0 {
		t.Fatalf("expected check to report duplicate ids")
	}

	mustFailWith(t, runCmd(t, importCmd, nil, filepath.Join(dir, "missing.json")), ErrFileNotFound)
}

func TestImportLeavesStoreUntouchedOnBadFile(t *testing.T) {
	dir := setupDataDir(t)
	addSnippet(t, "One", "go", "a", "1", false)

	good := filepath.Join(dir, "good.json")
	mustOK(t, runCmd(t, exportCmd, nil, good))
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	mustFailWith(t, runCmd(t, importCmd, nil, good, bad), ErrFileReadError)
	if got := snippetIDs(listSnippets(t, listCmd, nil)); !equalIDs(got, []int{1}) {
		t.Fatalf("ids after failed JSON import = %v, want [1]", got)
	}

	notes := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(notes, []byte("```go\nx := 1\n```\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.md")
	mustFailWith(t, runCmd(t, importCmd, map[string]string{"markdown": "true"}, notes, missing), ErrFileNotFound)
	if got := snippetIDs(listSnippets(t, listCmd, nil)); !equalIDs(got, []int{1}) {
		t.Fatalf("ids after failed Markdown import = %v, want [1]", got)
	}
}

func TestMarkdownExportImport(t *testing.T) {
	setupDataDir(t)
	addSnippet(t, "Merge sort", "go", "Algo, sort", "func mergeSort() {}", true)

	outDir := filepath.Join(t.TempDir(), "md")
	resp := runCmd(t, exportCmd, map[string]string{"markdown": "true"}, outDir)
	mustOK(t, resp)
	var exported struct {
		Files []string `json:"files"`
	}
	decodeData(t, resp, &exported)
	if len(exported.Files) != 1 || filepath.Base(exported.Files[0]) != "1-merge-sort.md" {
		t.Fatalf("files = %v, want [.../1-merge-sort.md]", exported.Files)
	}

	notes := filepath.Join(t.TempDir(), "notes.md")
	content := "# Retry loop\n\n```python\nfor i in range(3):\n    pass\n```\n\n## Shell\n\n```sh\necho hi\n```\n"
	if err := os.WriteFile(notes, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(t.TempDir(), "empty.md")
	if err := os.WriteFile(empty, []byte("# Nothing here\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	resp = runCmd(t, importCmd, map[string]string{"markdown": "true"}, exported.Files[0], notes, empty)
	mustOK(t, resp)
	var imported struct {
		Imported int           `json:"imported"`
		Snippets []snippetJSON `json:"snippets"`
	}
	decodeData(t, resp, &imported)
	if imported.Imported != 3 {
		t.Fatalf("imported = %d, want 3", imported.Imported)
	}

	roundTrip := imported.Snippets[0]
	if roundTrip.ID != 2 || roundTrip.Title != "Merge sort" || roundTrip.Tags != "Algo, sort" || !roundTrip.IsFavourite {
		t.Fatalf("round-tripped snippet = %+v", roundTrip)
	}
	if imported.Snippets[1].Title != "Retry loop" || imported.Snippets[1].Language != "python" {
		t.Fatalf("second snippet = %+v", imported.Snippets[1])
	}
	if imported.Snippets[2].Title != "Shell" || imported.Snippets[2].Language != "sh" {
		t.Fatalf("third snippet = %+v", imported.Snippets[2])
	}

	found := false
	for _, w := range resp.Warnings {
		if w.Code == WarnSkippedBlock && w.Path == empty {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %s warning for %s, got %+v", WarnSkippedBlock, empty, resp.Warnings)
	}
}

func TestCorruptSnippetFile(t *testing.T) {
	dir := setupDataDir(t)
	if err := os.WriteFile(filepath.Join(dir, "snippets.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	resp := runCmd(t, listCmd, nil)
	mustOK(t, resp)
	if len(resp.Warnings) != 1 || resp.Warnings[0].Code != WarnLoadFailed {
		t.Fatalf("expected %s warning, got %+v", WarnLoadFailed, resp.Warnings)
	}

	mustFailWith(t, runCmd(t, addCmd, map[string]string{
		"title":    "T",
		"language": "go",
		"code":     "x",
	}), ErrFileReadError)
	mustFailWith(t, runCmd(t, checkCmd, nil), ErrFileReadError)

	content, err := os.ReadFile(filepath.Join(dir, "snippets.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "{not json" {
		t.Fatalf("corrupt file was overwritten: %q", content)
	}
}

func TestCheckCleanStore(t *testing.T) {
	setupDataDir(t)
	addSnippet(t, "One", "go", "", "1", false)

	resp := runCmd(t, checkCmd, nil)
	mustOK(t, resp)
	var report struct {
		Snippets int `json:"snippets"`
		Errors   int `json:"errors"`
		Warnings int `json:"warnings"`
	}
	decodeData(t, resp, &report)
	if report.Snippets != 1 || report.Errors != 0 || report.Warnings != 0 {
		t.Fatalf("report = %+v, want 1 snippet and no issues", report)
	}
}

func TestSearchRanksMatches(t *testing.T) {
	dir := setupDataDir(t)
	addSnippet(t, "Merge sort", "go", "algo,sort", "func mergeSort(xs []int) []int { return xs }", false)
	addSnippet(t, "HTTP server", "go", "net", "http.ListenAndServe(\":8080\", nil)", false)

	resp := runCmd(t, searchCmd, nil, "merge")
	mustOK(t, resp)
	var data struct {
		Results []struct {
			ID    int    `json:"id"`
			Title string `json:"title"`
		} `json:"results"`
	}
	decodeData(t, resp, &data)
	if len(data.Results) != 1 || data.Results[0].ID != 1 {
		t.Fatalf("results = %+v, want snippet 1", data.Results)
	}

	if _, err := os.Stat(filepath.Join(dir, ".snip", "index.db")); err != nil {
		t.Fatalf("expected index database: %v", err)
	}

	// Edits change the file stamp, so the next search sees them.
	mustOK(t, runCmd(t, editCmd, map[string]string{"tags": "net,web"}, "2"))
	resp = runCmd(t, searchCmd, nil, "tags:web")
	mustOK(t, resp)
	decodeData(t, resp, &data)
	if len(data.Results) != 1 || data.Results[0].ID != 2 {
		t.Fatalf("results after edit = %+v, want snippet 2", data.Results)
	}

	mustFailWith(t, runCmd(t, searchCmd, nil, "  "), ErrMissingArgument)
}

func TestConfigSetAndUnset(t *testing.T) {
	dir := setupDataDir(t)

	mustOK(t, runCmd(t, configSetCmd, nil, "ui.code_theme", "dracula"))
	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(content), `code_theme = "dracula"`) {
		t.Fatalf("expected code_theme in config, got:\n%s", content)
	}

	resp := runCmd(t, configPathCmd, nil)
	mustOK(t, resp)
	var paths struct {
		SnippetsFile string `json:"snippets_file"`
	}
	decodeData(t, resp, &paths)
	if paths.SnippetsFile == "" {
		t.Fatalf("expected snippets_file in config path output")
	}

	mustOK(t, runCmd(t, configUnsetCmd, nil, "ui.code_theme"))
	loaded, err := config.LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.UI.CodeTheme != "" {
		t.Fatalf("code_theme = %q after unset", loaded.UI.CodeTheme)
	}

	mustFailWith(t, runCmd(t, configSetCmd, nil, "theme", dir), ErrInvalidInput)
	mustFailWith(t, runCmd(t, configSetCmd, nil, "editor", ""), ErrInvalidInput)
}

func TestConfigInitCreatesConfigFile(t *testing.T) {
	dir := setupDataDir(t)
	configPath = filepath.Join(dir, "nested", "config.toml")

	resp := runCmd(t, configInitCmd, nil)
	mustOK(t, resp)

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read created config: %v", err)
	}
	if !strings.Contains(string(content), "# snip configuration") {
		t.Fatalf("expected default config header in file, got:\n%s", content)
	}

	resp = runCmd(t, configInitCmd, nil)
	mustOK(t, resp)
	var data struct {
		Created bool `json:"created"`
	}
	decodeData(t, resp, &data)
	if data.Created {
		t.Fatalf("second init should not recreate the config")
	}
}

func TestTextModeReturnsErrors(t *testing.T) {
	setupDataDir(t)
	jsonOutput = false

	var runErr error
	captureStdout(t, func() {
		runErr = showCmd.RunE(showCmd, []string{"5"})
	})
	if runErr == nil || !strings.Contains(runErr.Error(), "snippet 5 not found") {
		t.Fatalf("expected not found error, got %v", runErr)
	}
	if !strings.Contains(runErr.Error(), "snip list") {
		t.Fatalf("expected suggestion in text error, got %v", runErr)
	}
}

func TestCleanExcerpt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "collapses whitespace", in: "a\n\n  b\tc", want: "a b c"},
		{name: "unmatched marker kept", in: "x »y", want: "x »y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanExcerpt(tt.in); got != tt.want {
				t.Fatalf("cleanExcerpt(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	if got := cleanExcerpt("a »hit« b"); !strings.Contains(got, "hit") || strings.Contains(got, "»") {
		t.Fatalf("expected markers to be replaced, got %q", got)
	}
}
