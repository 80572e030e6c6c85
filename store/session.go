package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const createExamTable = `create table if not exists exam(id integer, name text, price real, is_edited integer, is_deleted integer);`

// Session wraps the single SQLite connection held for the process lifetime.
type Session struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the SQLite database file at path, verifies the
// connection, and bootstraps the exam table.
func Open(path string) (*Session, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// Exactly one connection for the process lifetime.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not connect to database %s: %w", path, err)
	}

	if _, err := db.Exec(createExamTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create exam table: %w", err)
	}

	return &Session{db: db, path: path}, nil
}

// Path returns the database file path the session was opened with.
func (session *Session) Path() string {
	return session.path
}

// Close releases the database connection.
func (session *Session) Close() error {
	return session.db.Close()
}
