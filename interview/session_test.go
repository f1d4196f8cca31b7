package interview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adotepet/adotepet/catalog"
)

func testUser(id string) UserSnapshot {
	username := "user_" + id
	first := "Maria"
	return UserSnapshot{ID: id, Username: &username, FirstName: &first}
}

func activeSession(t *testing.T) *Session {
	t.Helper()
	return newSession(testUser("42"), catalog.TypeCat, nil)
}

func TestSubmitAnswerWalksAllQuestions(t *testing.T) {
	questions := DefaultQuestions()
	session := activeSession(t)

	for i := range questions {
		require.Equal(t, StatusActive, session.Status, "question %d", i)
		require.Equal(t, i, session.Cursor)

		answer := fmt.Sprintf("resposta número %d", i)
		if questions[i].Tag == TagAge {
			answer = "30"
		}
		result, err := session.SubmitAnswer(questions, answer)
		require.NoError(t, err)

		if i == len(questions)-1 {
			assert.True(t, result.Done)
			assert.Nil(t, result.Next)
		} else {
			assert.False(t, result.Done)
			require.NotNil(t, result.Next)
			assert.Equal(t, questions[i+1].Text, result.Next.Text)
		}
	}

	assert.Equal(t, StatusCompleted, session.Status)
	require.Len(t, session.Answers, len(questions))
	for i, answer := range session.Answers {
		assert.Equal(t, i, answer.QuestionIndex)
	}
}

func TestSubmitAnswerRejectsInvalidText(t *testing.T) {
	questions := DefaultQuestions()

	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{"empty", "", "empty"},
		{"whitespace only", "   \t  ", "empty"},
		{"single rune", "a", "too_short"},
		{"single rune padded", "  a  ", "too_short"},
		{"no letters", "123 456", "no_letters"},
		{"punctuation only", "?!", "no_letters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := activeSession(t)
			result, err := session.SubmitAnswer(questions, tt.input)
			require.Error(t, err)
			assert.Nil(t, result)

			ve, ok := AsValidation(err)
			require.True(t, ok)
			assert.Equal(t, tt.reason, ve.Reason)
			assert.NotEmpty(t, ve.Prompt)

			// Rejected answers never advance the cursor nor get recorded.
			assert.Equal(t, 0, session.Cursor)
			assert.Empty(t, session.Answers)
			assert.Equal(t, StatusActive, session.Status)
		})
	}
}

func TestSubmitAnswerAgeNormalization(t *testing.T) {
	questions := DefaultQuestions()

	tests := []struct {
		name       string
		input      string
		normalized string
		rejected   bool
	}{
		{"digits with noise", "  25 years ", "25", false},
		{"plain digits", "30", "30", false},
		{"zero", "0", "0", false},
		{"max", "120", "120", false},
		{"no digits", "abc", "", true},
		{"out of range", "150", "", true},
		{"leading zeros normalize", "007", "7", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := activeSession(t)
			// Advance past the name question to the age question.
			_, err := session.SubmitAnswer(questions, "Maria da Silva")
			require.NoError(t, err)
			require.Equal(t, TagAge, questions[session.Cursor].Tag)

			result, err := session.SubmitAnswer(questions, tt.input)
			if tt.rejected {
				require.Error(t, err)
				_, ok := AsValidation(err)
				assert.True(t, ok)
				assert.Equal(t, 1, session.Cursor)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.normalized, session.Answers[1].Text)
		})
	}
}

func TestSubmitPhotoNeverAdvancesCursor(t *testing.T) {
	questions := DefaultQuestions()
	session := activeSession(t)

	_, err := session.SubmitAnswer(questions, "Maria da Silva")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		session.SubmitPhoto(fmt.Sprintf("photos/p%d.jpg", i))
	}

	assert.Equal(t, 1, session.Cursor)
	assert.Equal(t, StatusActive, session.Status)
	assert.Len(t, session.PhotoPaths, 5)
	assert.Equal(t, "photos/p0.jpg", session.PhotoPaths[0])
}

func TestDisplayName(t *testing.T) {
	username := "mari"
	first := "Maria"
	last := "Silva"

	tests := []struct {
		name     string
		user     UserSnapshot
		expected string
	}{
		{"full name", UserSnapshot{ID: "1", FirstName: &first, LastName: &last}, "Maria Silva"},
		{"first only", UserSnapshot{ID: "1", FirstName: &first}, "Maria"},
		{"username fallback", UserSnapshot{ID: "1", Username: &username}, "mari"},
		{"id fallback", UserSnapshot{ID: "1"}, "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.DisplayName())
		})
	}
}
