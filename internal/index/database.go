// Package index maintains a derived SQLite full-text index over the snippet
// file. The snippet file stays the source of truth; the index can be deleted
// at any time and is rebuilt on the next search.
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/aidanlsb/snip/internal/snippet"
)

// DirName is the directory under the data dir that holds the index.
const DirName = ".snip"

// CurrentDBVersion is the current index schema version.
// v1: snippets_fts over title, language, tags and code
// v2: position column so ties keep file order
const CurrentDBVersion = 2

const missingStamp = "missing"

// ErrIndexLocked indicates another process is rebuilding the index.
var ErrIndexLocked = errors.New("index is locked for rebuild")

// Database is the SQLite index handle.
type Database struct {
	db *sql.DB
	// dir holds index.lock; empty for in-memory databases.
	dir string
}

// Open opens or creates the index under dataDir/.snip.
func Open(dataDir string) (*Database, error) {
	dir := filepath.Join(dataDir, DirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", DirName, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "index.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}

	d := &Database{db: db, dir: dir}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// OpenInMemory opens an in-memory index (for testing).
func OpenInMemory() (*Database, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) initialize() error {
	if _, err := d.db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`); err != nil {
		return fmt.Errorf("failed to initialize index: %w", err)
	}

	version, err := d.meta("version")
	if err != nil {
		return err
	}
	if version != strconv.Itoa(CurrentDBVersion) {
		// Older layouts are dropped wholesale; the next Sync repopulates.
		if _, err := d.db.Exec(`
			DROP TABLE IF EXISTS snippets_fts;
			DELETE FROM meta;
		`); err != nil {
			return fmt.Errorf("failed to reset index: %w", err)
		}
	}

	if _, err := d.db.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS snippets_fts USING fts5(
			snippet_id UNINDEXED,
			position UNINDEXED,
			title,
			language,
			tags,
			code,
			tokenize='porter unicode61'
		);
	`); err != nil {
		return fmt.Errorf("failed to create search table: %w", err)
	}

	return d.setMeta(d.db, "version", strconv.Itoa(CurrentDBVersion))
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (d *Database) meta(key string) (string, error) {
	var value string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read index meta %q: %w", key, err)
	}
	return value, nil
}

func (d *Database) setMeta(ex execer, key, value string) error {
	if _, err := ex.Exec(
		"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	); err != nil {
		return fmt.Errorf("failed to write index meta %q: %w", key, err)
	}
	return nil
}

// SourceStamp identifies one version of the snippet file by its modification
// time and size. A missing file has a fixed stamp.
func SourceStamp(path string) (string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return missingStamp, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return strconv.FormatInt(info.ModTime().UnixNano(), 10) + ":" + strconv.FormatInt(info.Size(), 10), nil
}

// IsStale reports whether the index was built from a different version of
// the snippet file than stamp.
func (d *Database) IsStale(stamp string) (bool, error) {
	indexed, err := d.meta("source_stamp")
	if err != nil {
		return false, err
	}
	return indexed != stamp, nil
}

// Rebuild replaces the index contents with snippets and records stamp.
func (d *Database) Rebuild(snippets []snippet.Snippet, stamp string) error {
	lock, err := acquireLock(d.dir)
	if err != nil {
		return err
	}
	defer lock.Release()

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin index rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM snippets_fts"); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO snippets_fts (snippet_id, position, title, language, tags, code)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare index insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range snippets {
		if _, err := stmt.Exec(s.ID, i, s.Title, s.Language, s.Tags, s.Code); err != nil {
			return fmt.Errorf("failed to index snippet %d: %w", s.ID, err)
		}
	}

	if err := d.setMeta(tx, "source_stamp", stamp); err != nil {
		return err
	}
	return tx.Commit()
}

// Sync rebuilds the index when stamp differs from the indexed one.
// It reports whether a rebuild happened.
func (d *Database) Sync(snippets []snippet.Snippet, stamp string) (bool, error) {
	stale, err := d.IsStale(stamp)
	if err != nil {
		return false, err
	}
	if !stale {
		return false, nil
	}
	if err := d.Rebuild(snippets, stamp); err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of indexed snippets.
func (d *Database) Count() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM snippets_fts").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count index rows: %w", err)
	}
	return n, nil
}

type indexLock struct {
	file *os.File
}

// acquireLock takes the rebuild lock in dir. An empty dir needs no lock.
func acquireLock(dir string) (*indexLock, error) {
	if dir == "" {
		return &indexLock{}, nil
	}

	f, err := os.OpenFile(filepath.Join(dir, "index.lock"), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open index lock: %w", err)
	}

	if err := tryLock(f); err != nil {
		f.Close()
		if lockBusy(err) {
			return nil, ErrIndexLocked
		}
		return nil, fmt.Errorf("failed to acquire index lock: %w", err)
	}

	return &indexLock{file: f}, nil
}

func (l *indexLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := unlock(l.file)
	closeErr := l.file.Close()
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}
