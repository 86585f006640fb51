// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package prefstore

import (
	"database/sql"

	"github.com/juju/errors"
	_ "github.com/mattn/go-sqlite3"
)

const settingsSchema = `
CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value BLOB NOT NULL
)`

// SQLiteBackend keeps documents as rows of a settings table in a
// SQLite database.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLiteBackend opens, creating if necessary, the SQLite database
// at path.
func OpenSQLiteBackend(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Annotatef(err, "cannot open settings database %q", path)
	}
	// Single owner; one connection keeps in-memory databases coherent.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(settingsSchema); err != nil {
		_ = db.Close()
		return nil, errors.Annotate(err, "cannot create settings table")
	}
	return &SQLiteBackend{db: db}, nil
}

// Close closes the underlying database.
func (b *SQLiteBackend) Close() error {
	return errors.Trace(b.db.Close())
}

// Read implements Backend.
func (b *SQLiteBackend) Read(key string) ([]byte, error) {
	var data []byte
	err := b.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf("document %q", key)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "cannot read document %q", key)
	}
	return data, nil
}

// Write implements Backend.
func (b *SQLiteBackend) Write(key string, data []byte) error {
	_, err := b.db.Exec(`
INSERT INTO settings (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, data)
	return errors.Annotatef(err, "cannot write document %q", key)
}

// Remove implements Backend.
func (b *SQLiteBackend) Remove(key string) error {
	_, err := b.db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	return errors.Annotatef(err, "cannot remove document %q", key)
}
