package store

// Interviewee is a person who went through at least one adoption interview.
// Chat platforms don't always expose profile fields, so the optional ones are
// pointers.
type Interviewee struct {
	ID        int64
	UserID    string
	Username  *string
	FirstName *string
	LastName  *string
	CreatedTs int64
	UpdatedTs int64
}

// Interview is one completed interview with its answers and files.
type Interview struct {
	ID            int64
	IntervieweeID int64
	AnimalType    string
	AnimalID      *int
	AnimalName    string
	DocumentPath  string
	CreatedTs     int64

	Answers []*InterviewAnswer
	Files   []*InterviewFile
}

// InterviewAnswer is a single question/answer pair of an interview.
type InterviewAnswer struct {
	ID            int64
	InterviewID   int64
	QuestionIndex int
	Question      string
	Answer        string
}

// InterviewFile is a file attached to an interview, typically a home photo
// or the rendered document.
type InterviewFile struct {
	ID          int64
	InterviewID int64
	Path        string
	Kind        string
}

// FindInterview filters interview lookups. Nil fields are ignored.
type FindInterview struct {
	ID            *int64
	IntervieweeID *int64
	Limit         *int
}

// FindInterviewee filters interviewee lookups. Nil fields are ignored.
type FindInterviewee struct {
	ID     *int64
	UserID *string
}
