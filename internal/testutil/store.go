// Package testutil provides reusable test utilities for snip integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// TestStore is a temporary data directory for running snip against.
type TestStore struct {
	// Dir is the data directory passed as --data-dir.
	Dir string
	// ConfigPath is passed as --config so the user's config is never read.
	ConfigPath string

	t     *testing.T
	files map[string]string
}

// NewTestStore creates a new test store builder.
// Call Build() to create the actual directory.
func NewTestStore(t *testing.T) *TestStore {
	t.Helper()
	return &TestStore{
		t:     t,
		files: make(map[string]string),
	}
}

// WithSnippets sets the raw contents of snippets.json.
func (s *TestStore) WithSnippets(json string) *TestStore {
	s.files["snippets.json"] = json
	return s
}

// WithCounter sets the contents of id.txt.
func (s *TestStore) WithCounter(next int) *TestStore {
	s.files["id.txt"] = strconv.Itoa(next)
	return s
}

// WithFile adds a file relative to the data directory.
func (s *TestStore) WithFile(path, content string) *TestStore {
	s.files[path] = content
	return s
}

// Build creates the data directory and all configured files.
func (s *TestStore) Build() *TestStore {
	s.t.Helper()

	root := s.t.TempDir()
	s.Dir = filepath.Join(root, "data")
	s.ConfigPath = filepath.Join(root, "config.toml")
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		s.t.Fatalf("failed to create data dir: %v", err)
	}

	for path, content := range s.files {
		s.writeFile(path, content)
	}
	return s
}

func (s *TestStore) writeFile(relPath, content string) {
	s.t.Helper()
	fullPath := filepath.Join(s.Dir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		s.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		s.t.Fatalf("failed to write %s: %v", relPath, err)
	}
}

// Path returns the absolute path of a file in the data directory.
func (s *TestStore) Path(relPath string) string {
	return filepath.Join(s.Dir, relPath)
}

// ReadFile reads a file relative to the data directory.
func (s *TestStore) ReadFile(relPath string) string {
	s.t.Helper()
	content, err := os.ReadFile(s.Path(relPath))
	if err != nil {
		s.t.Fatalf("failed to read %s: %v", relPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the data directory.
func (s *TestStore) FileExists(relPath string) bool {
	_, err := os.Stat(s.Path(relPath))
	return err == nil
}
