// Package index maintains a SQLite cache of the library's object catalog
// (id, type, title, path) so listing and lookups don't re-read every object
// file. The cache is derived state: it can be rebuilt from the library at any
// time and is refreshed after every decompile.
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kibrary/kibrary/internal/model"
)

// DotDir is the metadata directory kept inside the first library root.
const DotDir = ".kibrary"

// ErrObjectNotFound indicates the requested id is not in the index.
var ErrObjectNotFound = errors.New("object not found in index")

// Database is the SQLite index handle.
type Database struct {
	db *sql.DB
}

// Entry is one indexed object.
type Entry struct {
	ID        string
	Type      string
	Title     string
	Path      string
	Mtime     int64
	IndexedAt int64
}

// Open opens or creates the index database under root's dot directory.
func Open(root string) (*Database, error) {
	dir := filepath.Join(root, DotDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s directory: %w", DotDir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "index.db"))
	if err != nil {
		return nil, fmt.Errorf("open index database: %w", err)
	}

	d := &Database{db: db}
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
	schema := `
CREATE TABLE IF NOT EXISTS objects (
	id         TEXT PRIMARY KEY,
	type       TEXT NOT NULL,
	title      TEXT NOT NULL,
	path       TEXT NOT NULL,
	mtime      INTEGER NOT NULL DEFAULT 0,
	indexed_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_objects_type ON objects(type);
`
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("initialize index schema: %w", err)
	}
	return nil
}

// Rebuild replaces the whole catalog with the given objects.
func (d *Database) Rebuild(objects []*model.Object) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM objects"); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}

	stmt, err := tx.Prepare(`
INSERT INTO objects (id, type, title, path, mtime, indexed_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	type = excluded.type,
	title = excluded.title,
	path = excluded.path,
	mtime = excluded.mtime,
	indexed_at = excluded.indexed_at
`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, obj := range objects {
		var mtime int64
		if obj.Path != "" {
			if st, err := os.Stat(obj.Path); err == nil {
				mtime = st.ModTime().Unix()
			}
		}
		if _, err := stmt.Exec(obj.ID, string(obj.Type), obj.Title(), obj.Path, mtime, now); err != nil {
			return fmt.Errorf("index object %s: %w", obj.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rebuild: %w", err)
	}
	return nil
}

// Get returns one entry by id.
func (d *Database) Get(id string) (Entry, error) {
	var e Entry
	err := d.db.QueryRow(
		"SELECT id, type, title, path, mtime, indexed_at FROM objects WHERE id = ?", id,
	).Scan(&e.ID, &e.Type, &e.Title, &e.Path, &e.Mtime, &e.IndexedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrObjectNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("query object: %w", err)
	}
	return e, nil
}

// List returns entries ordered by (type, title), optionally filtered by type.
func (d *Database) List(typeFilter string) ([]Entry, error) {
	query := "SELECT id, type, title, path, mtime, indexed_at FROM objects"
	var args []any
	if typeFilter != "" {
		query += " WHERE type = ?"
		args = append(args, typeFilter)
	}
	query += " ORDER BY type, title"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query objects: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Type, &e.Title, &e.Path, &e.Mtime, &e.IndexedAt); err != nil {
			return nil, fmt.Errorf("scan object row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of indexed objects.
func (d *Database) Count() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM objects").Scan(&n); err != nil {
		return 0, fmt.Errorf("count objects: %w", err)
	}
	return n, nil
}
