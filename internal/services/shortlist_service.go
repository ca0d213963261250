package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	apperrors "github.com/selection-crew/selection-service/internal/errors"
	"github.com/selection-crew/selection-service/internal/config"
	"github.com/selection-crew/selection-service/internal/models"
	"github.com/selection-crew/selection-service/internal/notify"
	"github.com/selection-crew/selection-service/internal/scoring"
	"github.com/selection-crew/selection-service/internal/store"
)

const deadlineFormat = "2006-01-02"

// ShortlistRequest carries the optional knobs of a shortlist run. Zero
// values fall back to configuration.
type ShortlistRequest struct {
	Limit     int    `json:"limit"`
	DriveLink string `json:"drive_link"`
	Deadline  string `json:"deadline"`
}

// ShortlistReport is the outcome of one shortlist run. EmailOutcomes maps
// each recipient address to delivery success; a failed delivery never
// removes a student from the shortlist.
type ShortlistReport struct {
	Entries       []models.ShortlistEntry `json:"shortlisted"`
	EmailOutcomes map[string]bool         `json:"email_outcomes"`
	Deadline      string                  `json:"deadline"`
}

// ShortlistService ranks quiz results and advances the top students to the
// video round.
type ShortlistService interface {
	// Shortlist ranks the stored quiz results, replaces the shortlist table,
	// marks the chosen students and notifies each of them individually.
	Shortlist(ctx context.Context, req ShortlistRequest) (*ShortlistReport, error)

	// UpdateVideoStatus records that a shortlisted student uploaded their
	// interview video.
	UpdateVideoStatus(ctx context.Context, studentID, videoLink string) error
}

type shortlistService struct {
	store    store.RecordStore
	notifier notify.Notifier
	cfg      *config.Config
	logger   *slog.Logger
	now      func() time.Time
}

func NewShortlistService(recordStore store.RecordStore, notifier notify.Notifier, cfg *config.Config, logger *slog.Logger) ShortlistService {
	return &shortlistService{
		store:    recordStore,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *shortlistService) Shortlist(ctx context.Context, req ShortlistRequest) (*ShortlistReport, error) {
	driveLink := req.DriveLink
	if driveLink == "" {
		driveLink = s.cfg.DriveLink
	}
	if driveLink == "" {
		return nil, apperrors.NewConfigurationError("drive_link",
			"a video upload link is required before shortlist notifications can be sent")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.MaxShortlist
	}
	deadline := req.Deadline
	if deadline == "" {
		deadline = s.now().AddDate(0, 0, s.cfg.DeadlineDays).Format(deadlineFormat)
	}

	resultRows, err := s.store.Read(ctx, store.TableQuizResults, "A2:I")
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz results: %w", err)
	}
	results, skipped := store.ParseEvaluationRows(resultRows)
	for _, rec := range skipped {
		s.logger.WarnContext(ctx, "Skipping malformed result row", "ref", rec.Ref, "reason", rec.Reason)
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	entries := scoring.BuildShortlist(results, limit, s.now())

	// Notify each student on their own; one refused delivery must not block
	// the rest, it only shows up in the outcome map.
	outcomes := make(map[string]bool, len(entries))
	for i := range entries {
		entry := &entries[i]
		if entry.Email == "" {
			s.logger.WarnContext(ctx, "Shortlisted student has no email", "student_id", entry.StudentID)
			continue
		}
		err := s.notifier.Send(ctx, notify.Message{
			StudentID: entry.StudentID,
			To:        entry.Email,
			Subject:   notify.ShortlistSubject,
			Body:      notify.ShortlistBody(driveLink, deadline),
		})
		outcomes[entry.Email] = err == nil
		if err != nil {
			s.logger.ErrorContext(ctx, "Shortlist notification failed", "email", entry.Email, "error", err)
			continue
		}
		sentAt := s.now()
		entry.EmailSent = true
		entry.EmailSentAt = &sentAt
	}

	if err := s.store.Write(ctx, store.TableShortlist, store.FormatShortlistRows(entries), "A1"); err != nil {
		return nil, fmt.Errorf("failed to store shortlist: %w", err)
	}

	if err := s.markStudentsShortlisted(ctx, entries); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Shortlist run completed",
		"candidates", len(results),
		"shortlisted", len(entries),
		"deadline", deadline)

	return &ShortlistReport{Entries: entries, EmailOutcomes: outcomes, Deadline: deadline}, nil
}

func (s *shortlistService) UpdateVideoStatus(ctx context.Context, studentID, videoLink string) error {
	shortlistRows, err := s.store.Read(ctx, store.TableShortlist, "A2:J")
	if err != nil {
		return fmt.Errorf("failed to read shortlist: %w", err)
	}

	rowIdx, email := 0, ""
	for i, row := range shortlistRows {
		if len(row) > 2 && row[0] == studentID {
			rowIdx = i + 2 // 1-based plus header row
			email = row[2]
			break
		}
	}
	if rowIdx == 0 {
		return fmt.Errorf("%w: %s is not shortlisted", ErrStudentNotFound, studentID)
	}

	// Video_Uploaded is column I of the shortlist table.
	if err := s.store.UpdateCell(ctx, store.TableShortlist, fmt.Sprintf("I%d", rowIdx), "true"); err != nil {
		return fmt.Errorf("failed to update shortlist video flag: %w", err)
	}

	studentRow, err := s.findStudentRow(ctx, email)
	if err != nil {
		return err
	}
	if err := s.store.UpdateCell(ctx, store.TableStudents, cellRef(store.StudentColVideoLink, studentRow), videoLink); err != nil {
		return fmt.Errorf("failed to record video link: %w", err)
	}
	if err := s.store.UpdateCell(ctx, store.TableStudents, cellRef(store.StudentColStatus, studentRow), models.StageVideoUploaded); err != nil {
		return fmt.Errorf("failed to update student status: %w", err)
	}

	s.logger.InfoContext(ctx, "Video upload recorded", "student_id", studentID)
	return nil
}

func (s *shortlistService) markStudentsShortlisted(ctx context.Context, entries []models.ShortlistEntry) error {
	studentRows, err := s.store.Read(ctx, store.TableStudents, "A2:K")
	if err != nil {
		return fmt.Errorf("failed to read students: %w", err)
	}

	// Index raw rows by email; row numbers must track the sheet, including
	// any blank rows the record parser would drop.
	byEmail := make(map[string]int, len(studentRows))
	for i, row := range studentRows {
		if len(row) > store.StudentColEmail && row[store.StudentColEmail] != "" {
			byEmail[row[store.StudentColEmail]] = i + 2
		}
	}

	for _, entry := range entries {
		row, ok := byEmail[entry.Email]
		if !ok {
			s.logger.WarnContext(ctx, "Shortlisted student missing from student table", "email", entry.Email)
			continue
		}
		if err := s.store.UpdateCell(ctx, store.TableStudents, cellRef(store.StudentColStatus, row), models.StageShortlisted); err != nil {
			return fmt.Errorf("failed to mark student shortlisted: %w", err)
		}
	}
	return nil
}

func (s *shortlistService) findStudentRow(ctx context.Context, email string) (int, error) {
	studentRows, err := s.store.Read(ctx, store.TableStudents, "A2:K")
	if err != nil {
		return 0, fmt.Errorf("failed to read students: %w", err)
	}
	for i, row := range studentRows {
		if len(row) > store.StudentColEmail && row[store.StudentColEmail] == email {
			return i + 2, nil
		}
	}
	return 0, fmt.Errorf("%w: no student record for %s", ErrStudentNotFound, email)
}

// cellRef renders an A1-notation reference for a zero-based column index.
func cellRef(col, row int) string {
	return string(rune('A'+col)) + strconv.Itoa(row)
}
