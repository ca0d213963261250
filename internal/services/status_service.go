package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/selection-crew/selection-service/internal/cache"
	"github.com/selection-crew/selection-service/internal/models"
	"github.com/selection-crew/selection-service/internal/scoring"
	"github.com/selection-crew/selection-service/internal/store"
)

const (
	statusCacheKey = "pipeline:status"
	statusCacheTTL = 30 * time.Second
)

// StatusService reports pipeline progress.
type StatusService interface {
	// GetStatus counts how many students reached each stage. Results are
	// cached briefly; the counts are advisory, not transactional.
	GetStatus(ctx context.Context) (*models.ProcessStatus, error)

	// InvalidateStatus drops the cached counts after a pipeline stage runs.
	InvalidateStatus(ctx context.Context) error
}

type statusService struct {
	store  store.RecordStore
	cache  cache.CacheService
	logger *slog.Logger
}

func NewStatusService(recordStore store.RecordStore, cacheService cache.CacheService, logger *slog.Logger) StatusService {
	return &statusService{
		store:  recordStore,
		cache:  cacheService,
		logger: logger,
	}
}

func (s *statusService) GetStatus(ctx context.Context) (*models.ProcessStatus, error) {
	var cached models.ProcessStatus
	err := s.cache.Get(ctx, statusCacheKey, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.WarnContext(ctx, "Status cache read failed, recomputing", "error", err)
	}

	questionRows, err := s.store.Read(ctx, store.TableQuizQuestions, "A2:H")
	if err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}
	questions, _ := store.ParseQuestionRows(questionRows)

	studentRows, err := s.store.Read(ctx, store.TableStudents, "A2:K")
	if err != nil {
		return nil, fmt.Errorf("failed to read students: %w", err)
	}
	records := store.ParseStudentRows(studentRows)

	status := scoring.CountProgress(records, len(questions))

	if err := s.cache.Set(ctx, statusCacheKey, status, statusCacheTTL); err != nil {
		s.logger.WarnContext(ctx, "Status cache write failed", "error", err)
	}
	return &status, nil
}

func (s *statusService) InvalidateStatus(ctx context.Context) error {
	return s.cache.Delete(ctx, statusCacheKey)
}
