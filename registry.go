package mapcast

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotAllocated is returned when a name has no identifiers allocated.
var ErrNotAllocated = errors.New("mapcast: no identifiers allocated")

// Registry hands out ranges of identifiers to named displays so that two
// displays never share a tile. Allocations are persisted in an SQLite
// database.
type Registry struct {
	db *sql.DB
}

// NewRegistry opens, creating if necessary, the registry database in file.
func NewRegistry(file string) (*Registry, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_txlock=immediate", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS allocation (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, start INTEGER NOT NULL, count INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Registry{
		db: db,
	}, nil
}

// Close closes the database.
func (r *Registry) Close() error {
	return r.db.Close()
}

// Allocate returns the first identifier of a range of count identifiers
// reserved for name. Asking again for the same name and count returns the
// same range; a different count releases the old range first. New ranges use
// the lowest gap big enough to hold them.
func (r *Registry) Allocate(name string, count int) (Identifier, error) {
	if count < 1 {
		return 0, fmt.Errorf("%w: count %d", ErrInvalidDimension, count)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var start, n int64
	switch err := tx.QueryRow("SELECT start, count FROM allocation WHERE name = ?", name).Scan(&start, &n); err {
	case sql.ErrNoRows:
	case nil:
		if n == int64(count) {
			return Identifier(start), tx.Commit()
		}
		if _, err := tx.Exec("DELETE FROM allocation WHERE name = ?", name); err != nil {
			return 0, err
		}
	default:
		return 0, err
	}

	rows, err := tx.Query("SELECT start, count FROM allocation ORDER BY start")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	// First fit
	start = 0
	for rows.Next() {
		var s, c int64
		if err := rows.Scan(&s, &c); err != nil {
			return 0, err
		}
		if s-start >= int64(count) {
			break
		}
		if s+c > start {
			start = s + c
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	rows.Close()

	if err := Identifier(start).validate(count); err != nil {
		return 0, err
	}

	if _, err := tx.Exec("INSERT INTO allocation (name, start, count) VALUES (?, ?, ?)", name, start, count); err != nil {
		return 0, err
	}

	return Identifier(start), tx.Commit()
}

// Lookup returns the range allocated to name.
func (r *Registry) Lookup(name string) (Identifier, int, error) {
	var start, count int64
	switch err := r.db.QueryRow("SELECT start, count FROM allocation WHERE name = ?", name).Scan(&start, &count); err {
	case sql.ErrNoRows:
		return 0, 0, fmt.Errorf("%w: %q", ErrNotAllocated, name)
	case nil:
		return Identifier(start), int(count), nil
	default:
		return 0, 0, err
	}
}

// Release frees the range allocated to name.
func (r *Registry) Release(name string) error {
	result, err := r.db.Exec("DELETE FROM allocation WHERE name = ?", name)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotAllocated, name)
	}
	return nil
}
