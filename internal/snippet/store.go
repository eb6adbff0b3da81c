package snippet

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aidanlsb/snip/internal/atomicfile"
)

// Paths locates the two files a Store persists to.
type Paths struct {
	// SnippetsFile holds the JSON array of snippets.
	SnippetsFile string
	// CounterFile holds the next id as a plain decimal integer.
	CounterFile string
}

// Store holds the snippet collection in insertion order and keeps it in sync
// with disk after every mutation.
//
// A Store is not safe for concurrent use; it assumes a single writer.
type Store struct {
	paths    Paths
	snippets []Snippet
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns an empty Store bound to paths. Nothing is read until Load.
func New(paths Paths, opts ...Option) *Store {
	s := &Store{
		paths:  paths,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a Store and loads it. The Store is returned even when Load
// fails so the caller can continue with an empty collection.
func Open(paths Paths, opts ...Option) (*Store, error) {
	s := New(paths, opts...)
	return s, s.Load()
}

// Paths returns the files this Store persists to.
func (s *Store) Paths() Paths {
	return s.paths
}

// Load replaces the in-memory collection with the snippet file's contents.
//
// A missing snippet file yields an empty collection. A file that cannot be
// read or decoded yields a *LoadError and an empty collection. The counter
// file is created with value 1 if it does not exist.
func (s *Store) Load() error {
	s.snippets = nil

	if err := s.ensureCounter(); err != nil {
		return err
	}

	path := s.paths.SnippetsFile
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("snippet file does not exist yet", "path", path)
			return nil
		}
		return &LoadError{Path: path, Err: err}
	}

	snippets, err := DecodeRecords(data)
	if err != nil {
		s.logger.Warn("snippet file could not be decoded", "path", path, "error", err)
		return &LoadError{Path: path, Err: err}
	}

	s.snippets = snippets
	s.logger.Debug("snippets loaded", "path", path, "count", len(snippets))
	return nil
}

// Save overwrites the snippet file with the full collection. On failure the
// in-memory collection is unchanged and a *SaveError is returned.
func (s *Store) Save() error {
	path := s.paths.SnippetsFile
	data, err := EncodeRecords(s.snippets)
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}
	if err := writeFile(path, data); err != nil {
		return &SaveError{Path: path, Err: err}
	}
	s.logger.Debug("snippets saved", "path", path, "count", len(s.snippets))
	return nil
}

// Len returns the number of snippets in the collection.
func (s *Store) Len() int {
	return len(s.snippets)
}

// Add validates and appends a new snippet, persists it, and advances the
// counter. Title, language and code must be non-empty after trimming.
//
// The counter is advanced before the collection is written so a failed save
// leaves a gap in the id sequence rather than a reused id.
func (s *Store) Add(title, language, tags, code string, isFavourite bool) (Snippet, error) {
	title = strings.TrimSpace(title)
	language = strings.TrimSpace(language)
	tags = strings.TrimSpace(tags)
	code = normalizeCode(code)

	switch {
	case title == "":
		return Snippet{}, &ValidationError{Field: "title"}
	case language == "":
		return Snippet{}, &ValidationError{Field: "language"}
	case code == "":
		return Snippet{}, &ValidationError{Field: "code"}
	}

	id, err := s.NextID()
	if err != nil {
		return Snippet{}, err
	}

	created := Snippet{
		ID:          id,
		Title:       title,
		Language:    language,
		Tags:        tags,
		Code:        code,
		IsFavourite: isFavourite,
	}

	if err := s.CommitID(id + 1); err != nil {
		return Snippet{}, err
	}

	prev := s.snippets
	s.snippets = append(cloneSnippets(prev), created)
	if err := s.Save(); err != nil {
		s.snippets = prev
		return Snippet{}, err
	}

	s.logger.Debug("snippet added", "id", id, "title", title)
	return created, nil
}

// FindByID returns the first snippet with id. ok is false when none matches.
func (s *Store) FindByID(id int) (Snippet, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.snippets[i], true
	}
	return Snippet{}, false
}

// SearchByID is FindByID for the read path.
func (s *Store) SearchByID(id int) (Snippet, bool) {
	return s.FindByID(id)
}

// EditFields is the input to Edit.
//
// A text field that is blank after trimming means "keep the stored value",
// so an edit can never clear title, language, tags or code. IsFavourite has
// no blank state and is always applied; callers that want to keep it pass the
// current value.
type EditFields struct {
	Title       string
	Language    string
	Tags        string
	Code        string
	IsFavourite bool
}

// Edit updates the first snippet with id in place and persists the result.
func (s *Store) Edit(id int, fields EditFields) (Snippet, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Snippet{}, &NotFoundError{ID: id}
	}

	old := s.snippets[i]
	updated := old
	if v := strings.TrimSpace(fields.Title); v != "" {
		updated.Title = v
	}
	if v := strings.TrimSpace(fields.Language); v != "" {
		updated.Language = v
	}
	if v := strings.TrimSpace(fields.Tags); v != "" {
		updated.Tags = v
	}
	if v := normalizeCode(fields.Code); v != "" {
		updated.Code = v
	}
	updated.IsFavourite = fields.IsFavourite

	s.snippets[i] = updated
	if err := s.Save(); err != nil {
		s.snippets[i] = old
		return Snippet{}, err
	}

	s.logger.Debug("snippet edited", "id", id)
	return updated, nil
}

// Delete removes the first snippet with id. It reports whether a snippet was
// removed; an unknown id is not an error.
func (s *Store) Delete(id int) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	prev := s.snippets
	next := make([]Snippet, 0, len(prev)-1)
	next = append(next, prev[:i]...)
	next = append(next, prev[i+1:]...)

	s.snippets = next
	if err := s.Save(); err != nil {
		s.snippets = prev
		return false, err
	}

	s.logger.Debug("snippet deleted", "id", id)
	return true, nil
}

// ListAll returns a copy of the collection in insertion order.
func (s *Store) ListAll() []Snippet {
	return cloneSnippets(s.snippets)
}

// ListFavourites returns the favourite snippets in collection order.
func (s *Store) ListFavourites() []Snippet {
	var out []Snippet
	for _, sn := range s.snippets {
		if sn.IsFavourite {
			out = append(out, sn)
		}
	}
	return out
}

// SearchByTagSubstring returns snippets whose raw tags text contains query,
// ignoring case, in collection order. Rejecting an empty query is the
// caller's job; an empty query matches everything.
func (s *Store) SearchByTagSubstring(query string) []Snippet {
	var out []Snippet
	for _, sn := range s.snippets {
		if sn.HasTagSubstring(query) {
			out = append(out, sn)
		}
	}
	return out
}

// ListDistinctTags returns every tag in the collection, lower-cased and
// sorted. It is meant for suggestion lists.
func (s *Store) ListDistinctTags() []string {
	return DistinctTags(s.snippets)
}

// ResetIDs renumbers the collection 1..N in its current order, persists it,
// and sets the counter to N+1. This cannot be undone.
//
// The collection is written first. If the counter then cannot be written,
// the previous collection is restored in memory and on disk, so a failed
// reset leaves no renumbered ids behind.
func (s *Store) ResetIDs() error {
	prev := s.snippets
	next := cloneSnippets(prev)
	for i := range next {
		next[i].ID = i + 1
	}

	s.snippets = next
	if err := s.Save(); err != nil {
		s.snippets = prev
		return err
	}
	if err := s.CommitID(len(next) + 1); err != nil {
		s.snippets = prev
		if restoreErr := s.Save(); restoreErr != nil {
			return errors.Join(err, restoreErr)
		}
		return err
	}

	s.logger.Debug("snippet ids reset", "count", len(next))
	return nil
}

// ExportTo writes the full collection to path in the snippet file format.
// The main snippet file is not touched.
func (s *Store) ExportTo(path string) error {
	data, err := EncodeRecords(s.snippets)
	if err != nil {
		return &IOError{Op: OpExport, Path: path, Err: err}
	}
	if err := writeFile(path, data); err != nil {
		return &IOError{Op: OpExport, Path: path, Err: err}
	}
	s.logger.Debug("snippets exported", "path", path, "count", len(s.snippets))
	return nil
}

// ImportFrom appends the snippets stored at each path to the collection as
// they are, then persists once. Ids are not checked against existing
// snippets, so an import can introduce duplicates; ResetIDs repairs them.
//
// Every file is decoded before anything is appended: if one path cannot be
// read or decoded, nothing is imported. It returns the number of snippets
// imported.
func (s *Store) ImportFrom(paths ...string) (int, error) {
	var incoming []Snippet
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, &IOError{Op: OpImport, Path: path, Err: err}
		}
		records, err := DecodeRecords(data)
		if err != nil {
			return 0, &LoadError{Path: path, Err: err}
		}
		incoming = append(incoming, records...)
	}

	prev := s.snippets
	s.snippets = append(cloneSnippets(prev), incoming...)
	if err := s.Save(); err != nil {
		s.snippets = prev
		return 0, err
	}

	s.logger.Debug("snippets imported", "files", len(paths), "count", len(incoming))
	return len(incoming), nil
}

func (s *Store) indexOf(id int) int {
	for i, sn := range s.snippets {
		if sn.ID == id {
			return i
		}
	}
	return -1
}

func cloneSnippets(in []Snippet) []Snippet {
	out := make([]Snippet, len(in))
	copy(out, in)
	return out
}

func writeFile(path string, data []byte) error {
	return atomicfile.WriteFile(path, data, 0, atomicfile.WithParents())
}
