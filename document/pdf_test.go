package document

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adotepet/adotepet/catalog"
	"github.com/adotepet/adotepet/interview"
)

func sampleRecord() *interview.Record {
	first := "Maria"
	return &interview.Record{
		User:       interview.UserSnapshot{ID: "42", FirstName: &first},
		AnimalType: catalog.TypeCat,
		AnimalName: "Mia",
		Answers: []interview.QA{
			{Question: "Qual é o seu nome completo?", Answer: "Maria da Silva"},
			{Question: "Qual é a sua idade?", Answer: "31"},
		},
		PhotoPaths:  []string{"photos/p1.jpg"},
		CompletedAt: time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC),
	}
}

func TestRenderWritesPDF(t *testing.T) {
	dir := t.TempDir()
	renderer, err := NewPDFRenderer(dir)
	require.NoError(t, err)

	path, err := renderer.Render(context.Background(), sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "adoption_interview_42_20250601_143000.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))

	// No temporary file left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

// A hostile user ID must not steer the output file outside the documents
// directory.
func TestRenderKeepsHostileUserIDInsideDirectory(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "inner", "documents")
	renderer, err := NewPDFRenderer(dir)
	require.NoError(t, err)

	record := sampleRecord()
	record.User.ID = "../../../escaped"

	path, err := renderer.Render(context.Background(), record)
	require.NoError(t, err)

	rel, err := filepath.Rel(dir, path)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(rel, ".."), "document escaped its directory: %s", path)
	assert.Equal(t, "adoption_interview_escaped_20250601_143000.pdf", filepath.Base(path))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestRenderCanceledContext(t *testing.T) {
	renderer, err := NewPDFRenderer(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = renderer.Render(ctx, sampleRecord())
	assert.Error(t, err)
}

func TestRenderManyAnswersPaginates(t *testing.T) {
	renderer, err := NewPDFRenderer(t.TempDir())
	require.NoError(t, err)

	record := sampleRecord()
	record.Answers = nil
	for i := 0; i < 60; i++ {
		record.Answers = append(record.Answers, interview.QA{
			Question: "Pergunta de exemplo para paginação?",
			Answer:   "Uma resposta razoavelmente longa que ocupa espaço na página.",
		})
	}

	path, err := renderer.Render(context.Background(), record)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
