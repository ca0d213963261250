package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/selection-crew/selection-service/internal/errors"
	"github.com/selection-crew/selection-service/internal/models"
	"github.com/selection-crew/selection-service/internal/store"
)

// QuestionService manages the quiz question set.
type QuestionService interface {
	// EnsureTables writes header rows for any pipeline table that is still
	// empty. Safe to call repeatedly.
	EnsureTables(ctx context.Context) error

	// StoreQuestions validates and stores the full question set, replacing
	// whatever was there. Returns the number of questions stored.
	StoreQuestions(ctx context.Context, questions []models.QuizQuestion) (int, error)

	// GetQuestions returns the current question set. Malformed stored rows
	// are skipped and reported, never fatal.
	GetQuestions(ctx context.Context) ([]models.QuizQuestion, []*MalformedRecordError, error)
}

type questionService struct {
	store     store.RecordStore
	logger    *slog.Logger
	validator *validator.Validate
}

func NewQuestionService(recordStore store.RecordStore, logger *slog.Logger, validate *validator.Validate) QuestionService {
	return &questionService{
		store:     recordStore,
		logger:    logger,
		validator: validate,
	}
}

func (s *questionService) EnsureTables(ctx context.Context) error {
	headers := map[string][]string{
		store.TableStudents:       store.StudentsHeader,
		store.TableQuizQuestions:  store.QuestionsHeader,
		store.TableQuizResults:    store.ResultsHeader,
		store.TableShortlist:      store.ShortlistHeader,
		store.TableFinalSelection: store.FinalSelectionHeader,
	}

	for table, header := range headers {
		rows, err := s.store.Read(ctx, table, "A1:A1")
		if err != nil {
			return fmt.Errorf("failed to inspect table %s: %w", table, err)
		}
		if len(rows) > 0 && len(rows[0]) > 0 && rows[0][0] != "" {
			continue
		}
		if err := s.store.Write(ctx, table, [][]string{header}, "A1"); err != nil {
			return fmt.Errorf("failed to write header for table %s: %w", table, err)
		}
		s.logger.Info("Initialized table", "table", table)
	}
	return nil
}

func (s *questionService) StoreQuestions(ctx context.Context, questions []models.QuizQuestion) (int, error) {
	if len(questions) == 0 {
		return 0, apperrors.NewValidationError("questions", "question set must not be empty", nil)
	}

	for i, q := range questions {
		if err := s.validator.Struct(q); err != nil {
			if ve, ok := err.(validator.ValidationErrors); ok {
				return 0, apperrors.ToValidationErrors(ve)
			}
			return 0, err
		}
		if !q.HasValidAnswerKey() {
			return 0, apperrors.NewValidationError("correct_answer",
				fmt.Sprintf("question %d: answer key %d does not address an option", i+1, q.CorrectAnswer), q.CorrectAnswer)
		}
	}

	rows := store.FormatQuestionRows(questions)
	if err := s.store.Write(ctx, store.TableQuizQuestions, rows, "A1"); err != nil {
		return 0, fmt.Errorf("failed to store questions: %w", err)
	}

	s.logger.InfoContext(ctx, "Stored question set", "count", len(questions))
	return len(questions), nil
}

func (s *questionService) GetQuestions(ctx context.Context) ([]models.QuizQuestion, []*MalformedRecordError, error) {
	rows, err := s.store.Read(ctx, store.TableQuizQuestions, "A2:H")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read questions: %w", err)
	}

	questions, skipped := store.ParseQuestionRows(rows)
	for _, rec := range skipped {
		s.logger.WarnContext(ctx, "Skipping malformed question row", "ref", rec.Ref, "reason", rec.Reason)
	}
	return questions, skipped, nil
}
