package models

import "time"

// AnswerDetail is the per-question breakdown of one evaluated answer.
type AnswerDetail struct {
	QuestionIndex int  `json:"question_index"`
	StudentAnswer int  `json:"student_answer"`
	CorrectAnswer int  `json:"correct_answer"`
	IsCorrect     bool `json:"is_correct"`
	PointsEarned  int  `json:"points_earned"`
	MaxPoints     int  `json:"max_points"`
}

// EvaluationResult is the scored outcome of one submission. It is derived
// entirely from the question set and the submission; a later evaluation of
// the same student supersedes the prior result rather than patching it.
type EvaluationResult struct {
	StudentID      string         `json:"student_id"`
	StudentName    string         `json:"student_name"`
	Email          string         `json:"email"`
	TotalScore     int            `json:"total_score"`
	MaxPossible    int            `json:"max_possible"`
	Percentage     float64        `json:"percentage"`
	CorrectAnswers int            `json:"correct_answers"`
	TotalQuestions int            `json:"total_questions"`
	Details        []AnswerDetail `json:"evaluation_details,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}
