package scoring

import (
	"fmt"
	"math"
	"time"

	apperrors "github.com/selection-crew/selection-service/internal/errors"
	"github.com/selection-crew/selection-service/internal/models"
)

// EvaluationBatch is the outcome of evaluating a batch of submissions.
// Skipped collects one MalformedRecordError per rejected input record;
// a malformed record never aborts the batch.
type EvaluationBatch struct {
	Results []models.EvaluationResult
	Skipped []*apperrors.MalformedRecordError
}

// EvaluateSubmissions scores every submission against the question set.
//
// Answers are compared pairwise with questions up to
// min(len(answers), len(questions)); extra answers are ignored. MaxPossible
// sums only the points of the questions actually compared, so a student who
// answered fewer questions than exist is not penalized in the denominator.
//
// A question with a broken answer key keeps its position (so answer indexing
// stays aligned) but is excluded from scoring for every submission; the
// defect is reported once in Skipped.
func EvaluateSubmissions(submissions []models.StudentSubmission, questions []models.QuizQuestion, now time.Time) EvaluationBatch {
	var batch EvaluationBatch

	usable := make([]bool, len(questions))
	for i, q := range questions {
		if err := checkQuestion(q); err != nil {
			batch.Skipped = append(batch.Skipped,
				apperrors.NewMalformedRecordError("question", fmt.Sprintf("#%d", i), err.Error()))
			continue
		}
		usable[i] = true
	}

	for _, sub := range submissions {
		if err := checkSubmission(sub); err != nil {
			batch.Skipped = append(batch.Skipped,
				apperrors.NewMalformedRecordError("submission", sub.StudentID, err.Error()))
			continue
		}
		batch.Results = append(batch.Results, evaluateOne(sub, questions, usable, now))
	}

	return batch
}

func evaluateOne(sub models.StudentSubmission, questions []models.QuizQuestion, usable []bool, now time.Time) models.EvaluationResult {
	totalScore := 0
	maxPossible := 0
	correct := 0

	compared := len(sub.Answers)
	if len(questions) < compared {
		compared = len(questions)
	}

	details := make([]models.AnswerDetail, 0, compared)
	for i := 0; i < compared; i++ {
		if !usable[i] {
			continue
		}
		q := questions[i]
		answer := sub.Answers[i]
		isCorrect := answer == q.CorrectAnswer

		maxPossible += q.Points
		earned := 0
		if isCorrect {
			earned = q.Points
			totalScore += q.Points
			correct++
		}

		details = append(details, models.AnswerDetail{
			QuestionIndex: i,
			StudentAnswer: answer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
			PointsEarned:  earned,
			MaxPoints:     q.Points,
		})
	}

	percentage := 0.0
	if maxPossible > 0 {
		percentage = round2(float64(totalScore) / float64(maxPossible) * 100)
	}

	return models.EvaluationResult{
		StudentID:      sub.StudentID,
		StudentName:    sub.Name,
		Email:          sub.Email,
		TotalScore:     totalScore,
		MaxPossible:    maxPossible,
		Percentage:     percentage,
		CorrectAnswers: correct,
		TotalQuestions: len(questions),
		Details:        details,
		CreatedAt:      now,
	}
}

func checkQuestion(q models.QuizQuestion) error {
	if q.Question == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question has %d options, need at least 2", len(q.Options))
	}
	if !q.HasValidAnswerKey() {
		return fmt.Errorf("correct answer index %d is outside options [0,%d)", q.CorrectAnswer, len(q.Options))
	}
	if q.Points <= 0 {
		return fmt.Errorf("points must be positive, got %d", q.Points)
	}
	return nil
}

func checkSubmission(sub models.StudentSubmission) error {
	if sub.StudentID == "" {
		return fmt.Errorf("student id is empty")
	}
	if sub.Name == "" {
		return fmt.Errorf("student name is empty")
	}
	if sub.Answers == nil {
		return fmt.Errorf("answers are missing")
	}
	return nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
