package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/selection-crew/selection-service/internal/errors"
	"github.com/selection-crew/selection-service/internal/models"
	"github.com/selection-crew/selection-service/internal/scoring"
	"github.com/selection-crew/selection-service/internal/store"
)

// EvaluationReport is the outcome of one evaluation run.
type EvaluationReport struct {
	Results []models.EvaluationResult       `json:"results"`
	Skipped []*apperrors.MalformedRecordError `json:"skipped,omitempty"`
}

// EvaluationService scores student submissions against the stored question
// set and persists the outcome.
type EvaluationService interface {
	// Evaluate scores the submissions, replaces the Quiz_Results table and
	// rebuilds the Students table from the scored results. Malformed
	// submissions are skipped and reported in the returned report.
	Evaluate(ctx context.Context, submissions []models.StudentSubmission) (*EvaluationReport, error)
}

type evaluationService struct {
	store     store.RecordStore
	logger    *slog.Logger
	validator *validator.Validate
	now       func() time.Time
}

func NewEvaluationService(recordStore store.RecordStore, logger *slog.Logger, validate *validator.Validate) EvaluationService {
	return &evaluationService{
		store:     recordStore,
		logger:    logger,
		validator: validate,
		now:       time.Now,
	}
}

func (s *evaluationService) Evaluate(ctx context.Context, submissions []models.StudentSubmission) (*EvaluationReport, error) {
	questionRows, err := s.store.Read(ctx, store.TableQuizQuestions, "A2:H")
	if err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}

	questions, skippedQuestions := store.ParseQuestionRows(questionRows)
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	// Field-level validation before structural scoring; a failing submission
	// is skipped like any other malformed record.
	valid := make([]models.StudentSubmission, 0, len(submissions))
	var skipped []*apperrors.MalformedRecordError
	skipped = append(skipped, skippedQuestions...)
	for _, sub := range submissions {
		if err := s.validator.Struct(sub); err != nil {
			skipped = append(skipped,
				apperrors.NewMalformedRecordError("submission", sub.StudentID, err.Error()))
			continue
		}
		valid = append(valid, sub)
	}

	batch := scoring.EvaluateSubmissions(valid, questions, s.now())
	skipped = append(skipped, batch.Skipped...)
	for _, rec := range skipped {
		s.logger.WarnContext(ctx, "Skipping malformed record", "kind", rec.Kind, "ref", rec.Ref, "reason", rec.Reason)
	}

	if err := s.store.Write(ctx, store.TableQuizResults, store.FormatEvaluationRows(batch.Results), "A1"); err != nil {
		return nil, fmt.Errorf("failed to store evaluation results: %w", err)
	}

	studentRows := [][]string{store.StudentsHeader}
	for _, r := range batch.Results {
		studentRows = append(studentRows, store.FormatStudentRow(r))
	}
	if err := s.store.Write(ctx, store.TableStudents, studentRows, "A1"); err != nil {
		return nil, fmt.Errorf("failed to store student records: %w", err)
	}

	s.logger.InfoContext(ctx, "Evaluation run completed",
		"submissions", len(submissions),
		"scored", len(batch.Results),
		"skipped", len(skipped))

	return &EvaluationReport{Results: batch.Results, Skipped: skipped}, nil
}
