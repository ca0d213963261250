package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/selection-crew/selection-service/internal/errors"
	"github.com/selection-crew/selection-service/internal/config"
	"github.com/selection-crew/selection-service/internal/models"
	"github.com/selection-crew/selection-service/internal/notify"
	"github.com/selection-crew/selection-service/internal/oracle"
	"github.com/selection-crew/selection-service/internal/scoring"
	"github.com/selection-crew/selection-service/internal/store"
)

// AnalysisReport is the outcome of one video-analysis run.
type AnalysisReport struct {
	Analyzed int                               `json:"analyzed"`
	Skipped  []*apperrors.MalformedRecordError `json:"skipped,omitempty"`
}

// FinalSelectionReport is the outcome of one final-selection run.
type FinalSelectionReport struct {
	Candidates    []models.FinalCandidate `json:"selected"`
	EmailOutcomes map[string]bool         `json:"email_outcomes"`
}

// SelectionService owns the video round: transcript scoring, the final
// ranking and the selection report.
type SelectionService interface {
	// AnalyzeVideos scores every student record that has a transcript and
	// writes the sub-scores back. A failed analysis skips that student only.
	AnalyzeVideos(ctx context.Context) (*AnalysisReport, error)

	// SelectFinal ranks analyzed students, replaces the final-selection
	// table, marks the winners and notifies them individually.
	SelectFinal(ctx context.Context, limit int) (*FinalSelectionReport, error)

	// GenerateSelectionReport renders a human-readable summary of the
	// current final selection.
	GenerateSelectionReport(ctx context.Context) (string, error)
}

type selectionService struct {
	store    store.RecordStore
	oracle   oracle.VideoScoringOracle
	notifier notify.Notifier
	cfg      *config.Config
	logger   *slog.Logger
	now      func() time.Time
}

func NewSelectionService(
	recordStore store.RecordStore,
	scoringOracle oracle.VideoScoringOracle,
	notifier notify.Notifier,
	cfg *config.Config,
	logger *slog.Logger,
) SelectionService {
	return &selectionService{
		store:    recordStore,
		oracle:   scoringOracle,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *selectionService) AnalyzeVideos(ctx context.Context) (*AnalysisReport, error) {
	if s.oracle == nil {
		return nil, ErrOracleDisabled
	}

	studentRows, err := s.store.Read(ctx, store.TableStudents, "A2:K")
	if err != nil {
		return nil, fmt.Errorf("failed to read students: %w", err)
	}

	report := &AnalysisReport{}
	for i, row := range studentRows {
		rowNum := i + 2
		rec := store.ParseStudentRows([][]string{row})
		if len(rec) == 0 {
			continue
		}
		record := rec[0]
		if strings.TrimSpace(record.Transcript) == "" {
			continue
		}

		analysis, err := s.oracle.Analyze(ctx, record.Email, record.Transcript)
		if err != nil {
			s.logger.ErrorContext(ctx, "Transcript analysis failed", "email", record.Email, "error", err)
			report.Skipped = append(report.Skipped,
				apperrors.NewMalformedRecordError("analysis", record.Email, err.Error()))
			continue
		}

		updates := map[int]string{
			store.StudentColConfidence:      formatScore(analysis.ConfidenceScore),
			store.StudentColAIExperience:    formatScore(analysis.AIExperienceScore),
			store.StudentColCommunication:   formatScore(analysis.CommunicationScore),
			store.StudentColEducationStatus: string(analysis.EducationStatus),
		}
		for col, value := range updates {
			if err := s.store.UpdateCell(ctx, store.TableStudents, cellRef(col, rowNum), value); err != nil {
				return nil, fmt.Errorf("failed to write analysis for %s: %w", record.Email, err)
			}
		}
		report.Analyzed++
	}

	s.logger.InfoContext(ctx, "Video analysis run completed",
		"analyzed", report.Analyzed,
		"skipped", len(report.Skipped))
	return report, nil
}

func (s *selectionService) SelectFinal(ctx context.Context, limit int) (*FinalSelectionReport, error) {
	if limit <= 0 {
		limit = s.cfg.MaxFinalSelection
	}

	studentRows, err := s.store.Read(ctx, store.TableStudents, "A2:K")
	if err != nil {
		return nil, fmt.Errorf("failed to read students: %w", err)
	}
	idByEmail, err := s.shortlistIDsByEmail(ctx)
	if err != nil {
		return nil, err
	}

	var analyses []models.VideoAnalysis
	rowByEmail := make(map[string]int)
	for i, row := range studentRows {
		rec := store.ParseStudentRows([][]string{row})
		if len(rec) == 0 {
			continue
		}
		record := rec[0]
		if record.Confidence == nil || record.AIExperience == nil || record.Communication == nil {
			continue
		}
		studentID := idByEmail[record.Email]
		if studentID == "" {
			studentID = record.Email
		}
		rowByEmail[record.Email] = i + 2
		analyses = append(analyses, models.VideoAnalysis{
			StudentID:          studentID,
			StudentName:        record.Name,
			Email:              record.Email,
			ConfidenceScore:    *record.Confidence,
			AIExperienceScore:  *record.AIExperience,
			CommunicationScore: *record.Communication,
			EducationStatus:    models.EducationStatus(record.EducationStatus),
			Success:            true,
		})
	}

	candidates := scoring.BuildFinalSelection(analyses, limit, s.now())

	outcomes := make(map[string]bool, len(candidates))
	for i := range candidates {
		candidate := &candidates[i]
		if candidate.Email == "" {
			continue
		}
		err := s.notifier.Send(ctx, notify.Message{
			StudentID: candidate.StudentID,
			To:        candidate.Email,
			Subject:   notify.FinalSelectionSubject,
			Body:      notify.FinalSelectionBody(),
		})
		outcomes[candidate.Email] = err == nil
		if err != nil {
			s.logger.ErrorContext(ctx, "Final selection notification failed", "email", candidate.Email, "error", err)
			continue
		}
		sentAt := s.now()
		candidate.EmailSent = true
		candidate.EmailSentAt = &sentAt
	}

	if err := s.store.Write(ctx, store.TableFinalSelection, store.FormatFinalSelectionRows(candidates), "A1"); err != nil {
		return nil, fmt.Errorf("failed to store final selection: %w", err)
	}

	for _, candidate := range candidates {
		row, ok := rowByEmail[candidate.Email]
		if !ok {
			continue
		}
		if err := s.store.UpdateCell(ctx, store.TableStudents, cellRef(store.StudentColFinalResult, row), models.StageSelected); err != nil {
			return nil, fmt.Errorf("failed to mark final result: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "Final selection run completed",
		"eligible", len(analyses),
		"selected", len(candidates))

	return &FinalSelectionReport{Candidates: candidates, EmailOutcomes: outcomes}, nil
}

func (s *selectionService) GenerateSelectionReport(ctx context.Context) (string, error) {
	rows, err := s.store.Read(ctx, store.TableFinalSelection, "A2:M")
	if err != nil {
		return "", fmt.Errorf("failed to read final selection: %w", err)
	}
	candidates, skipped := store.ParseFinalSelectionRows(rows)
	for _, rec := range skipped {
		s.logger.WarnContext(ctx, "Skipping malformed candidate row", "ref", rec.Ref, "reason", rec.Reason)
	}
	if len(candidates) == 0 {
		return "", ErrNoShortlist
	}

	var sb strings.Builder
	sb.WriteString("FINAL SELECTION REPORT\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n", s.now().Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Selected candidates: %d\n", len(candidates)))

	var sumConfidence, sumAIExperience, sumCommunication float64
	educationCounts := make(map[models.EducationStatus]int)
	for i, c := range candidates {
		sb.WriteString(fmt.Sprintf("\n%d. Student ID: %s\n", i+1, c.StudentID))
		sb.WriteString(fmt.Sprintf("   Email: %s\n", c.Email))
		sb.WriteString(fmt.Sprintf("   Confidence Score: %.1f/10\n", c.ConfidenceScore))
		sb.WriteString(fmt.Sprintf("   AI Experience Score: %.1f/10\n", c.AIExperienceScore))
		sb.WriteString(fmt.Sprintf("   Communication Score: %.1f/10\n", c.CommunicationScore))
		sb.WriteString(fmt.Sprintf("   Education Status: %s\n", c.EducationStatus))
		sb.WriteString(fmt.Sprintf("   Comprehensive Score: %.2f\n", c.ComprehensiveScore))
		sb.WriteString(fmt.Sprintf("   Education Bonus: %.1f\n", c.EducationBonus))
		sb.WriteString(fmt.Sprintf("   Final Email Sent: %t\n", c.EmailSent))

		sumConfidence += c.ConfidenceScore
		sumAIExperience += c.AIExperienceScore
		sumCommunication += c.CommunicationScore
		educationCounts[c.EducationStatus]++
	}

	n := float64(len(candidates))
	sb.WriteString("\nSTATISTICS:\n")
	sb.WriteString(fmt.Sprintf("- Average Confidence Score: %.2f/10\n", sumConfidence/n))
	sb.WriteString(fmt.Sprintf("- Average AI Experience Score: %.2f/10\n", sumAIExperience/n))
	sb.WriteString(fmt.Sprintf("- Average Communication Score: %.2f/10\n", sumCommunication/n))

	sb.WriteString("\nEducation Distribution:\n")
	for _, status := range []models.EducationStatus{models.EducationGraduated, models.EducationFinalYear, models.EducationOther} {
		if count := educationCounts[status]; count > 0 {
			sb.WriteString(fmt.Sprintf("- %s: %d\n", status, count))
		}
	}

	return sb.String(), nil
}

func (s *selectionService) shortlistIDsByEmail(ctx context.Context) (map[string]string, error) {
	rows, err := s.store.Read(ctx, store.TableShortlist, "A2:J")
	if err != nil {
		return nil, fmt.Errorf("failed to read shortlist: %w", err)
	}
	ids := make(map[string]string, len(rows))
	for _, row := range rows {
		if len(row) > 2 && row[0] != "" && row[2] != "" {
			ids[row[2]] = row[0]
		}
	}
	return ids, nil
}

func formatScore(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}
