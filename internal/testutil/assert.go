package testutil

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"testing"
)

// AssertFileExists fails the test if the file does not exist.
func (s *TestStore) AssertFileExists(relPath string) {
	s.t.Helper()
	if _, err := os.Stat(s.Path(relPath)); os.IsNotExist(err) {
		s.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (s *TestStore) AssertFileNotExists(relPath string) {
	s.t.Helper()
	if _, err := os.Stat(s.Path(relPath)); err == nil {
		s.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (s *TestStore) AssertFileContains(relPath, substr string) {
	s.t.Helper()
	content := s.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		s.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertCounter fails the test if id.txt does not hold want.
func (s *TestStore) AssertCounter(want int) {
	s.t.Helper()
	got := strings.TrimSpace(s.ReadFile("id.txt"))
	if got != strconv.Itoa(want) {
		s.t.Errorf("expected counter %d, got %q", want, got)
	}
}

// AssertStoredIDs fails the test if snippets.json does not hold exactly the
// given ids in order.
func (s *TestStore) AssertStoredIDs(want ...int) {
	s.t.Helper()
	var stored []struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal([]byte(s.ReadFile("snippets.json")), &stored); err != nil {
		s.t.Fatalf("failed to parse snippets.json: %v", err)
	}
	got := make([]int, len(stored))
	for i, sn := range stored {
		got[i] = sn.ID
	}
	if len(got) != len(want) {
		s.t.Errorf("expected stored ids %v, got %v", want, got)
		return
	}
	for i := range want {
		if got[i] != want[i] {
			s.t.Errorf("expected stored ids %v, got %v", want, got)
			return
		}
	}
}

// AssertHasWarning checks that the result contains a warning with the given code.
func (r *CLIResult) AssertHasWarning(t *testing.T, code string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Code == code {
			return
		}
	}
	t.Errorf("expected warning with code %s, got warnings: %+v", code, r.Warnings)
}

// AssertNoWarnings checks that the result has no warnings.
func (r *CLIResult) AssertNoWarnings(t *testing.T) {
	t.Helper()
	if len(r.Warnings) > 0 {
		t.Errorf("expected no warnings, got: %+v", r.Warnings)
	}
}

// AssertResultCount checks that a list result has the expected length.
func (r *CLIResult) AssertResultCount(t *testing.T, key string, expected int) {
	t.Helper()
	results := r.DataList(key)
	if len(results) != expected {
		t.Errorf("expected %d %s, got %d\nRaw: %s", expected, key, len(results), r.RawJSON)
	}
}
