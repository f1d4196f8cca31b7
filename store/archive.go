package store

import (
	"context"

	"github.com/pkg/errors"

	"github.com/adotepet/adotepet/interview"
)

// InterviewArchive persists completed interviews. It satisfies the interview
// core's archive contract.
type InterviewArchive struct {
	store *Store
}

// NewInterviewArchive creates an archive backed by the store.
func NewInterviewArchive(store *Store) *InterviewArchive {
	return &InterviewArchive{store: store}
}

// SaveInterview upserts the interviewee and writes the interview with its
// answers and files. Returns the new interview ID.
func (a *InterviewArchive) SaveInterview(ctx context.Context, record *interview.Record, documentPath string) (int64, error) {
	interviewee, err := a.store.UpsertInterviewee(ctx, &Interviewee{
		UserID:    record.User.ID,
		Username:  record.User.Username,
		FirstName: record.User.FirstName,
		LastName:  record.User.LastName,
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to upsert interviewee")
	}

	create := &Interview{
		IntervieweeID: interviewee.ID,
		AnimalType:    string(record.AnimalType),
		AnimalID:      record.AnimalID,
		AnimalName:    record.AnimalName,
		DocumentPath:  documentPath,
	}
	for i, qa := range record.Answers {
		create.Answers = append(create.Answers, &InterviewAnswer{
			QuestionIndex: i,
			Question:      qa.Question,
			Answer:        qa.Answer,
		})
	}
	for _, path := range record.PhotoPaths {
		create.Files = append(create.Files, &InterviewFile{Path: path, Kind: "photo"})
	}

	saved, err := a.store.CreateInterview(ctx, create)
	if err != nil {
		return 0, errors.Wrap(err, "failed to create interview")
	}
	return saved.ID, nil
}
