// ABOUTME: Database connection management and initialization
// ABOUTME: Opens the SQLite store, in memory by default or WAL-mode on disk
package db

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryPath keeps the whole database in the process; it is discarded at exit.
const MemoryPath = ":memory:"

func OpenDatabase(path string) (*sql.DB, error) {
	dsn := path
	if path != MemoryPath {
		// Ensure directory exists
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		dsn = path + "?_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// A single connection keeps an in-memory database alive and avoids
	// "database is locked" on disk.
	db.SetMaxOpenConns(1)

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
