package interview

// QuestionTag marks questions that need special answer handling.
type QuestionTag string

const (
	// TagNone is a plain free-text question.
	TagNone QuestionTag = ""
	// TagAge marks the age question: answers are reduced to digits and
	// range-checked instead of the free-text rules.
	TagAge QuestionTag = "age"
)

// Question is a single prompt of the fixed interview questionnaire.
type Question struct {
	Index int
	Text  string
	Tag   QuestionTag
}

// DefaultQuestions is the fixed, ordered questionnaire presented to every
// applicant. The index is the sole addressing key; the set is not
// user-editable at runtime.
func DefaultQuestions() []Question {
	return []Question{
		{Index: 0, Text: "Qual é o seu nome completo?"},
		{Index: 1, Text: "Qual é a sua idade?", Tag: TagAge},
		{Index: 2, Text: "Qual é o seu endereço?"},
		{Index: 3, Text: "Você mora em casa ou apartamento?"},
		{Index: 4, Text: "Você tem outros animais em casa? Se sim, quais?"},
		{Index: 5, Text: "Todos os moradores da casa concordam com a adoção?"},
		{Index: 6, Text: "Você já teve animais antes? Se sim, o que aconteceu com eles?"},
		{Index: 7, Text: "Quanto tempo o animal ficará sozinho em casa?"},
		{Index: 8, Text: "Você tem condições financeiras para arcar com os custos do animal?"},
		{Index: 9, Text: "Qual é o seu principal motivo para adotar um animal?"},
	}
}
