package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adotepet/adotepet/catalog"
	"github.com/adotepet/adotepet/internal/profile"
	"github.com/adotepet/adotepet/interview"
	"github.com/adotepet/adotepet/store"
	"github.com/adotepet/adotepet/store/db"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	p := &profile.Profile{
		Mode:   "demo",
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "adotepet_test.db"),
	}
	driver, err := db.NewDBDriver(p)
	require.NoError(t, err)

	s := store.New(driver, p)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func stringPtr(v string) *string { return &v }

func TestUpsertIntervieweeCreatesThenUpdates(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.UpsertInterviewee(ctx, &store.Interviewee{
		UserID:    "42",
		FirstName: stringPtr("Maria"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := s.UpsertInterviewee(ctx, &store.Interviewee{
		UserID:    "42",
		FirstName: stringPtr("Maria"),
		Username:  stringPtr("maria_s"),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	list, err := s.ListInterviewees(ctx, &store.FindInterviewee{UserID: stringPtr("42")})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Username)
	assert.Equal(t, "maria_s", *list[0].Username)
	assert.Nil(t, list[0].LastName)
}

func TestCreateInterviewRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	interviewee, err := s.UpsertInterviewee(ctx, &store.Interviewee{UserID: "7"})
	require.NoError(t, err)

	animalID := 3
	created, err := s.CreateInterview(ctx, &store.Interview{
		IntervieweeID: interviewee.ID,
		AnimalType:    "cat",
		AnimalID:      &animalID,
		AnimalName:    "Mia",
		DocumentPath:  "/data/documents/interview.pdf",
		Answers: []*store.InterviewAnswer{
			{QuestionIndex: 0, Question: "Qual é o seu nome completo?", Answer: "João"},
			{QuestionIndex: 1, Question: "Qual é a sua idade?", Answer: "31"},
		},
		Files: []*store.InterviewFile{
			{Path: "/data/photos/a.jpg", Kind: "photo"},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotZero(t, created.CreatedTs)

	list, err := s.ListInterviews(ctx, &store.FindInterview{IntervieweeID: &interviewee.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, "cat", got.AnimalType)
	require.NotNil(t, got.AnimalID)
	assert.Equal(t, 3, *got.AnimalID)
	assert.Equal(t, "Mia", got.AnimalName)
	require.Len(t, got.Answers, 2)
	assert.Equal(t, "Qual é o seu nome completo?", got.Answers[0].Question)
	assert.Equal(t, 1, got.Answers[1].QuestionIndex)
	require.Len(t, got.Files, 1)
	assert.Equal(t, "/data/photos/a.jpg", got.Files[0].Path)
}

func TestInterviewArchiveSavesRecord(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	archive := store.NewInterviewArchive(s)

	animalID := 1
	record := &interview.Record{
		User:       interview.UserSnapshot{ID: "99", FirstName: stringPtr("Ana")},
		AnimalType: catalog.TypeDog,
		AnimalID:   &animalID,
		AnimalName: "Rex",
		Answers: []interview.QA{
			{Question: "Qual é o seu nome completo?", Answer: "Ana Souza"},
		},
		PhotoPaths:  []string{"/data/photos/home.jpg"},
		CompletedAt: time.Now(),
	}

	id, err := archive.SaveInterview(ctx, record, "/data/documents/doc.pdf")
	require.NoError(t, err)
	assert.NotZero(t, id)

	interviewee, err := s.GetInterviewee(ctx, &store.FindInterviewee{UserID: stringPtr("99")})
	require.NoError(t, err)
	require.NotNil(t, interviewee)

	list, err := s.ListInterviews(ctx, &store.FindInterview{ID: &id})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "dog", list[0].AnimalType)
	assert.Equal(t, "/data/documents/doc.pdf", list[0].DocumentPath)
	require.Len(t, list[0].Answers, 1)
	require.Len(t, list[0].Files, 1)
	assert.Equal(t, "photo", list[0].Files[0].Kind)
}

func TestNewDBDriverRejectsUnknownDriver(t *testing.T) {
	_, err := db.NewDBDriver(&profile.Profile{Driver: "mysql"})
	assert.Error(t, err)
}
