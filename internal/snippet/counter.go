package snippet

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// NextID returns the id the next created snippet will receive. It does not
// advance the counter.
//
// A missing, unreadable or non-positive counter file is reset to 1.
func (s *Store) NextID() (int, error) {
	path := s.paths.CounterFile

	data, err := os.ReadFile(path)
	if err == nil {
		if n, convErr := strconv.Atoi(strings.TrimSpace(string(data))); convErr == nil && n >= 1 {
			return n, nil
		}
		s.logger.Warn("counter file is not a positive integer, resetting to 1", "path", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("counter file unreadable, resetting to 1", "path", path, "error", err)
	}

	if err := s.CommitID(1); err != nil {
		return 0, err
	}
	return 1, nil
}

// CounterValue reads the counter file without repairing it. ok is false
// when the file is missing or does not hold a positive integer.
func (s *Store) CounterValue() (n int, ok bool) {
	data, err := os.ReadFile(s.paths.CounterFile)
	if err != nil {
		return 0, false
	}
	n, err = strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// CommitID persists id as the counter value. Callers that just created a
// snippet with id n pass n+1.
func (s *Store) CommitID(id int) error {
	path := s.paths.CounterFile
	if err := writeFile(path, []byte(strconv.Itoa(id))); err != nil {
		return &IOError{Op: OpWriteCounter, Path: path, Err: err}
	}
	s.logger.Debug("counter committed", "path", path, "next_id", id)
	return nil
}

func (s *Store) ensureCounter() error {
	if _, err := os.Stat(s.paths.CounterFile); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return &IOError{Op: OpStatCounter, Path: s.paths.CounterFile, Err: err}
	}
	return s.CommitID(1)
}
