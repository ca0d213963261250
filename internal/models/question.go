package models

// QuizQuestion is a single multiple-choice question of the selection quiz.
// Questions are immutable once evaluation begins; a changed question set is a
// new evaluation run, never a patch of an old one.
type QuizQuestion struct {
	Question string   `json:"question" validate:"required"`
	Options  []string `json:"options" validate:"required,min=2"`
	// CorrectAnswer is the zero-based index into Options. Letter inputs are
	// converted at the parse boundary; see ParseAnswerIndex.
	CorrectAnswer int    `json:"correct_answer" validate:"gte=0"`
	Points        int    `json:"points" validate:"gt=0"`
	Category      string `json:"category"`
}

// HasValidAnswerKey reports whether the correct-answer index addresses one of
// the question's options.
func (q QuizQuestion) HasValidAnswerKey() bool {
	return q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options)
}
