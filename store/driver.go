package store

import (
	"context"
	"database/sql"
)

// Driver is the database driver interface. Each supported database implements
// it once.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// Migrate creates the schema if it does not exist yet.
	Migrate(ctx context.Context) error

	// Interviewee model related methods.
	UpsertInterviewee(ctx context.Context, upsert *Interviewee) (*Interviewee, error)
	ListInterviewees(ctx context.Context, find *FindInterviewee) ([]*Interviewee, error)

	// Interview model related methods. CreateInterview writes the interview
	// together with its answers and files in one transaction.
	CreateInterview(ctx context.Context, create *Interview) (*Interview, error)
	ListInterviews(ctx context.Context, find *FindInterview) ([]*Interview, error)
}
