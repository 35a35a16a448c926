// Package sqlite implements the repository interfaces on an embedded
// SQLite database via the pure-Go modernc.org/sqlite driver (no CGo, so
// cross-compilation stays painless).
//
// The schema carries the two invariants the application must not be
// trusted to enforce on its own:
//
//   - companies.email UNIQUE — one account per recruiter email
//   - applications (user_id, job_id) UNIQUE — at most one application per
//     user per job, even across concurrent stateless instances
//
// Constraint violations are translated into apperror.ErrConflict so the
// service layer never sees driver internals.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps the connection pool and implements every repository interface.
// One DB is created in the composition root before the server accepts
// traffic and is shared by all requests.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath (":memory:" in tests) and runs
// migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — required for a
	// web server where requests run concurrently.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Called during graceful shutdown to
// flush the WAL and release the file lock.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL,
			avatar_url TEXT NOT NULL DEFAULT '',
			resume_url TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS companies (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			logo_url      TEXT NOT NULL DEFAULT '',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating companies table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS jobs (
			id          TEXT PRIMARY KEY,
			company_id  TEXT NOT NULL REFERENCES companies(id),
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			location    TEXT NOT NULL,
			category    TEXT NOT NULL,
			level       TEXT NOT NULL,
			salary      INTEGER NOT NULL,
			visible     INTEGER NOT NULL DEFAULT 1,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_jobs_company_id ON jobs(company_id);
		CREATE INDEX IF NOT EXISTS idx_jobs_visible_created ON jobs(visible, created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating jobs table: %w", err)
	}

	// No foreign keys on user_id/company_id here: users can be deleted by
	// provider webhooks without cascading, and orphaned applications are
	// tolerated (filtered on read).
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS applications (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			job_id     TEXT NOT NULL,
			company_id TEXT NOT NULL,
			status     TEXT NOT NULL DEFAULT 'Pending',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, job_id)
		);
		CREATE INDEX IF NOT EXISTS idx_applications_user_id ON applications(user_id);
		CREATE INDEX IF NOT EXISTS idx_applications_company_id ON applications(company_id);
	`)
	if err != nil {
		return fmt.Errorf("creating applications table: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure on
// the given column spec (e.g. "companies.email"). The modernc driver
// formats these as "constraint failed: UNIQUE constraint failed:
// <table>.<column>[, ...] (2067)".
func isUniqueViolation(err error, columns string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, columns)
}
