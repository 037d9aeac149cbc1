package db

import (
	"database/sql"
	"time"

	"relish/internal/errors"
)

// Documents is the SQLite-backed document store. Each document is one JSON
// body keyed by name, written whole on every mutation.
type Documents struct {
	db *sql.DB
}

// NewDocuments wraps an initialized database handle.
func NewDocuments(db *sql.DB) *Documents {
	return &Documents{db: db}
}

// Get returns the body of the named document, with ok=false if it has never
// been written.
func (d *Documents) Get(key string) ([]byte, bool, error) {
	var body string
	err := d.db.QueryRow(`SELECT body FROM documents WHERE key = ?`, key).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.NewInternal(err)
	}
	return []byte(body), true, nil
}

// Put overwrites the named document wholesale.
func (d *Documents) Put(key string, body []byte) error {
	now := time.Now().Unix()
	_, err := d.db.Exec(`
		INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, key, string(body), now)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// Delete removes the named document. Deleting an absent document is a no-op.
func (d *Documents) Delete(key string) error {
	if _, err := d.db.Exec(`DELETE FROM documents WHERE key = ?`, key); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}
