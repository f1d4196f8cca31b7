// Package sqlite implements the store driver for SQLite. SQLite is the
// default for demo and development setups; PostgreSQL is preferred in
// production.
package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"
	// Import the pure-Go SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/adotepet/adotepet/internal/profile"
	"github.com/adotepet/adotepet/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens the SQLite database named by the profile DSN.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	// busy_timeout keeps concurrent writers from failing immediately with
	// SQLITE_BUSY.
	db, err := sql.Open("sqlite", profile.DSN+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", profile.DSN)
	}

	return &DB{db: db, profile: profile}, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS interviewee (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL UNIQUE,
	username TEXT,
	first_name TEXT,
	last_name TEXT,
	created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now')),
	updated_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
);

CREATE TABLE IF NOT EXISTS interview (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	interviewee_id INTEGER NOT NULL REFERENCES interviewee (id),
	animal_type TEXT NOT NULL,
	animal_id INTEGER,
	animal_name TEXT NOT NULL DEFAULT '',
	document_path TEXT NOT NULL DEFAULT '',
	created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
);

CREATE TABLE IF NOT EXISTS interview_answer (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	interview_id INTEGER NOT NULL REFERENCES interview (id) ON DELETE CASCADE,
	question_index INTEGER NOT NULL,
	question TEXT NOT NULL,
	answer TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS interview_file (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	interview_id INTEGER NOT NULL REFERENCES interview (id) ON DELETE CASCADE,
	path TEXT NOT NULL,
	kind TEXT NOT NULL DEFAULT 'photo'
);

CREATE INDEX IF NOT EXISTS idx_interview_interviewee_id ON interview (interviewee_id);
CREATE INDEX IF NOT EXISTS idx_interview_answer_interview_id ON interview_answer (interview_id);
CREATE INDEX IF NOT EXISTS idx_interview_file_interview_id ON interview_file (interview_id);
`

func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}
	return nil
}

// placeholder returns a placeholder for SQLite (uses ?).
func placeholder(n int) string {
	return "?"
}

// placeholders returns n placeholders for SQLite.
func placeholders(n int) string {
	list := []string{}
	for i := 0; i < n; i++ {
		list = append(list, placeholder(i+1))
	}
	return strings.Join(list, ", ")
}
