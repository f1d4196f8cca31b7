// Package postgres implements the store driver for PostgreSQL, the primary
// database for production deployments.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// Import the PostgreSQL driver.
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/adotepet/adotepet/internal/profile"
	"github.com/adotepet/adotepet/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens the PostgreSQL database named by the profile DSN.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	db, err := sql.Open("postgres", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", profile.DSN)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(2 * time.Hour)
	db.SetConnMaxIdleTime(15 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
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
	id BIGSERIAL PRIMARY KEY,
	user_id TEXT NOT NULL UNIQUE,
	username TEXT,
	first_name TEXT,
	last_name TEXT,
	created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
	updated_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
);

CREATE TABLE IF NOT EXISTS interview (
	id BIGSERIAL PRIMARY KEY,
	interviewee_id BIGINT NOT NULL REFERENCES interviewee (id),
	animal_type TEXT NOT NULL,
	animal_id INTEGER,
	animal_name TEXT NOT NULL DEFAULT '',
	document_path TEXT NOT NULL DEFAULT '',
	created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
);

CREATE TABLE IF NOT EXISTS interview_answer (
	id BIGSERIAL PRIMARY KEY,
	interview_id BIGINT NOT NULL REFERENCES interview (id) ON DELETE CASCADE,
	question_index INTEGER NOT NULL,
	question TEXT NOT NULL,
	answer TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS interview_file (
	id BIGSERIAL PRIMARY KEY,
	interview_id BIGINT NOT NULL REFERENCES interview (id) ON DELETE CASCADE,
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

// placeholder returns a placeholder for PostgreSQL (uses $1, $2, ...).
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// placeholders returns n placeholders for PostgreSQL.
func placeholders(n int) string {
	list := []string{}
	for i := 0; i < n; i++ {
		list = append(list, placeholder(i+1))
	}
	return strings.Join(list, ", ")
}
