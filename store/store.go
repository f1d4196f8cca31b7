// Package store provides database access to interview records.
package store

import (
	"context"

	"github.com/adotepet/adotepet/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) UpsertInterviewee(ctx context.Context, upsert *Interviewee) (*Interviewee, error) {
	return s.driver.UpsertInterviewee(ctx, upsert)
}

func (s *Store) ListInterviewees(ctx context.Context, find *FindInterviewee) ([]*Interviewee, error) {
	return s.driver.ListInterviewees(ctx, find)
}

func (s *Store) GetInterviewee(ctx context.Context, find *FindInterviewee) (*Interviewee, error) {
	list, err := s.driver.ListInterviewees(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) CreateInterview(ctx context.Context, create *Interview) (*Interview, error) {
	return s.driver.CreateInterview(ctx, create)
}

func (s *Store) ListInterviews(ctx context.Context, find *FindInterview) ([]*Interview, error) {
	return s.driver.ListInterviews(ctx, find)
}

func (s *Store) GetInterview(ctx context.Context, find *FindInterview) (*Interview, error) {
	list, err := s.driver.ListInterviews(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
