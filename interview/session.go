package interview

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/adotepet/adotepet/catalog"
)

// Status is the lifecycle state of an interview session.
type Status string

const (
	StatusInactive  Status = "inactive"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Age answers must fall inside this range.
const (
	minAge = 0
	maxAge = 120
)

// UserSnapshot captures the applicant identity at interview time.
// Username and names may be absent on some chat platforms.
type UserSnapshot struct {
	ID        string
	Username  *string
	FirstName *string
	LastName  *string
}

// DisplayName returns the best human-readable name available.
func (u UserSnapshot) DisplayName() string {
	parts := []string{}
	if u.FirstName != nil && *u.FirstName != "" {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil && *u.LastName != "" {
		parts = append(parts, *u.LastName)
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.ID
}

// Answer is one accepted answer, keyed by its question index.
type Answer struct {
	QuestionIndex int
	Text          string
}

// Session is the per-user interview state. All mutation happens under the
// session store's per-user lock; Session itself is not safe for concurrent
// use.
type Session struct {
	UserID     string
	User       UserSnapshot
	AnimalType catalog.Type
	AnimalID   *int
	Answers    []Answer
	Cursor     int
	PhotoPaths []string
	Status     Status
	StartedAt  time.Time
}

// ValidationError reports a rejected answer. The session state is left
// unchanged and the user is re-prompted with the same question.
type ValidationError struct {
	Reason string // machine readable reason
	Prompt string // localized message shown to the user
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid answer: %s", e.Reason)
}

// AsValidation returns the ValidationError if err is one.
func AsValidation(err error) (*ValidationError, bool) {
	ve, ok := err.(*ValidationError)
	return ve, ok
}

// AnswerResult is the outcome of an accepted answer.
type AnswerResult struct {
	// Done reports that the questionnaire is finished.
	Done bool
	// Next is the next question to ask. Nil when Done.
	Next *Question
}

// newSession initializes an Active session with the cursor at zero.
func newSession(user UserSnapshot, animalType catalog.Type, animalID *int) *Session {
	return &Session{
		UserID:     user.ID,
		User:       user,
		AnimalType: animalType,
		AnimalID:   animalID,
		Answers:    []Answer{},
		Cursor:     0,
		PhotoPaths: []string{},
		Status:     StatusActive,
		StartedAt:  time.Now(),
	}
}

// SubmitAnswer validates and records an answer for the current question.
// Must only be called while the session is Active; callers guard the
// status, the state machine does not handle it defensively.
//
// A *ValidationError leaves the cursor untouched. On acceptance the cursor
// advances; when it reaches the question count the session transitions to
// Completed and Done is reported.
func (s *Session) SubmitAnswer(questions []Question, raw string) (*AnswerResult, error) {
	question := questions[s.Cursor]

	normalized, err := normalizeAnswer(question, raw)
	if err != nil {
		return nil, err
	}

	s.Answers = append(s.Answers, Answer{QuestionIndex: s.Cursor, Text: normalized})
	s.Cursor++

	if s.Cursor == len(questions) {
		s.Status = StatusCompleted
		return &AnswerResult{Done: true}, nil
	}
	next := questions[s.Cursor]
	return &AnswerResult{Next: &next}, nil
}

// SubmitPhoto appends a stored photo reference. Photos never advance the
// cursor and their count is unlimited.
func (s *Session) SubmitPhoto(fileRef string) {
	s.PhotoPaths = append(s.PhotoPaths, fileRef)
}

// normalizeAnswer applies the validation rules for a question and returns
// the text to store.
func normalizeAnswer(question Question, raw string) (string, error) {
	if question.Tag == TagAge {
		return normalizeAge(raw)
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", &ValidationError{
			Reason: "empty",
			Prompt: "Por favor, envie uma resposta em texto.",
		}
	}
	if utf8.RuneCountInString(trimmed) < 2 {
		return "", &ValidationError{
			Reason: "too_short",
			Prompt: "Resposta muito curta. Por favor, responda com mais detalhes.",
		}
	}
	if !strings.ContainsFunc(trimmed, unicode.IsLetter) {
		return "", &ValidationError{
			Reason: "no_letters",
			Prompt: "Não entendi sua resposta. Por favor, responda com palavras.",
		}
	}
	return trimmed, nil
}

// normalizeAge reduces the input to its digits and range-checks the result.
// The stored answer is the normalized integer, not the raw input.
func normalizeAge(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return "", &ValidationError{
			Reason: "age_not_numeric",
			Prompt: "Por favor, informe sua idade em números.",
		}
	}
	age, err := strconv.Atoi(digits.String())
	if err != nil || age < minAge || age > maxAge {
		return "", &ValidationError{
			Reason: "age_out_of_range",
			Prompt: fmt.Sprintf("Por favor, informe uma idade válida (%d-%d).", minAge, maxAge),
		}
	}
	return strconv.Itoa(age), nil
}
