// Package atomicfile replaces files by writing a sibling temp file and
// renaming it into place, so readers never observe a half-written file.
package atomicfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type options struct {
	parents bool
}

// Option adjusts a write.
type Option func(*options)

// WithParents creates missing parent directories (mode 0755) before writing.
func WithParents() Option {
	return func(o *options) { o.parents = true }
}

// WriteFile writes data to path atomically (best-effort cross-platform).
//
// perm is applied to the temp file. If perm is 0 the existing file's mode is
// kept, falling back to 0644 for new files.
func WriteFile(path string, data []byte, perm os.FileMode, opts ...Option) error {
	return Write(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}, opts...)
}

// Write streams fill's output into path atomically. If fill returns an error
// the destination is left untouched.
func Write(path string, perm os.FileMode, fill func(w io.Writer) error, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if perm == 0 {
		if st, err := os.Stat(path); err == nil {
			perm = st.Mode().Perm()
		} else {
			perm = 0o644
		}
	}

	dir := filepath.Dir(path)
	if o.parents {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create parent directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	// Some filesystems reject chmod; the default umask mode is acceptable then.
	_ = tmp.Chmod(perm)

	if err := fill(tmp); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Windows refuses to rename over an existing file; remove and retry.
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
	}

	committed = true
	return nil
}
