package models

// StudentSubmission is one student's full set of quiz answers. Answers are
// canonical zero-based option indices, ordered the same way as the question
// set; AnswerUnmarked marks a skipped question.
type StudentSubmission struct {
	StudentID string `json:"student_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Answers   []int  `json:"answers" validate:"required"`
}
