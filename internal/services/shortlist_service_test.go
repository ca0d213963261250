package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/selection-crew/selection-service/internal/errors"
	"github.com/selection-crew/selection-service/internal/config"
	"github.com/selection-crew/selection-service/internal/models"
	"github.com/selection-crew/selection-service/internal/notify"
	"github.com/selection-crew/selection-service/internal/store"
)

func testConfig() *config.Config {
	return &config.Config{
		MaxShortlist:      10,
		MaxFinalSelection: 5,
		DriveLink:         "https://drive.example.com/folder",
		DeadlineDays:      7,
	}
}

func seedResults(t *testing.T, s store.RecordStore, results []models.EvaluationResult) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Write(ctx, store.TableQuizResults, store.FormatEvaluationRows(results), "A1"))

	studentRows := [][]string{store.StudentsHeader}
	for _, r := range results {
		studentRows = append(studentRows, store.FormatStudentRow(r))
	}
	require.NoError(t, s.Write(ctx, store.TableStudents, studentRows, "A1"))
}

func sampleResults() []models.EvaluationResult {
	return []models.EvaluationResult{
		{StudentID: "STU001", StudentName: "Asha", Email: "asha@example.com", TotalScore: 7, MaxPossible: 7, Percentage: 100},
		{StudentID: "STU002", StudentName: "Ben", Email: "ben@example.com", TotalScore: 5, MaxPossible: 7, Percentage: 71.43},
		{StudentID: "STU003", StudentName: "Cara", Email: "cara@example.com", TotalScore: 3, MaxPossible: 7, Percentage: 42.86},
	}
}

func TestShortlistService_Shortlist(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	seedResults(t, memStore, sampleResults())
	notifier := notify.NewMockNotifier()

	svc := NewShortlistService(memStore, notifier, testConfig(), testLogger())

	report, err := svc.Shortlist(ctx, ShortlistRequest{Limit: 2})
	require.NoError(t, err)

	require.Len(t, report.Entries, 2)
	assert.Equal(t, "STU001", report.Entries[0].StudentID)
	assert.Equal(t, "STU002", report.Entries[1].StudentID)
	assert.True(t, report.Entries[0].EmailSent)
	assert.Equal(t, map[string]bool{"asha@example.com": true, "ben@example.com": true}, report.EmailOutcomes)

	// Notification carries the upload link and the deadline.
	sent := notifier.Sent()
	require.Len(t, sent, 2)
	assert.Contains(t, sent[0].Body, "https://drive.example.com/folder")
	assert.Contains(t, sent[0].Body, report.Deadline)

	// Shortlist table replaced; chosen students marked in the student table.
	shortlistRows, err := memStore.Read(ctx, store.TableShortlist, "A2:J")
	require.NoError(t, err)
	entries, skipped := store.ParseShortlistRows(shortlistRows)
	require.Empty(t, skipped)
	require.Len(t, entries, 2)
	assert.Equal(t, models.StatusSelected, entries[0].Status)

	studentRows, err := memStore.Read(ctx, store.TableStudents, "A2:K")
	require.NoError(t, err)
	records := store.ParseStudentRows(studentRows)
	assert.Equal(t, models.StageShortlisted, records[0].Status)
	assert.Equal(t, models.StageShortlisted, records[1].Status)
	assert.Equal(t, models.StageQuizCompleted, records[2].Status)
}

func TestShortlistService_PartialEmailFailure(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	seedResults(t, memStore, sampleResults())

	notifier := notify.NewMockNotifier()
	notifier.FailFor["ben@example.com"] = true

	svc := NewShortlistService(memStore, notifier, testConfig(), testLogger())

	report, err := svc.Shortlist(ctx, ShortlistRequest{Limit: 2})
	require.NoError(t, err)

	// The failed recipient stays shortlisted; only the flag differs.
	require.Len(t, report.Entries, 2)
	assert.False(t, report.EmailOutcomes["ben@example.com"])
	assert.True(t, report.EmailOutcomes["asha@example.com"])
	assert.False(t, report.Entries[1].EmailSent)
	assert.Nil(t, report.Entries[1].EmailSentAt)
}

func TestShortlistService_MissingDriveLink(t *testing.T) {
	memStore := store.NewMemoryStore()
	seedResults(t, memStore, sampleResults())

	cfg := testConfig()
	cfg.DriveLink = ""
	svc := NewShortlistService(memStore, notify.NewMockNotifier(), cfg, testLogger())

	_, err := svc.Shortlist(context.Background(), ShortlistRequest{})
	require.Error(t, err)
	assert.True(t, apperrors.IsConfiguration(err))
}

func TestShortlistService_DefaultDeadline(t *testing.T) {
	memStore := store.NewMemoryStore()
	seedResults(t, memStore, sampleResults())

	svc := NewShortlistService(memStore, notify.NewMockNotifier(), testConfig(), testLogger()).(*shortlistService)
	svc.now = func() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) }

	report, err := svc.Shortlist(context.Background(), ShortlistRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-04", report.Deadline)
}

func TestShortlistService_NoResults(t *testing.T) {
	memStore := store.NewMemoryStore()
	svc := NewShortlistService(memStore, notify.NewMockNotifier(), testConfig(), testLogger())

	_, err := svc.Shortlist(context.Background(), ShortlistRequest{})
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestShortlistService_UpdateVideoStatus(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	seedResults(t, memStore, sampleResults())

	svc := NewShortlistService(memStore, notify.NewMockNotifier(), testConfig(), testLogger())
	_, err := svc.Shortlist(ctx, ShortlistRequest{Limit: 2})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateVideoStatus(ctx, "STU001", "https://videos.example.com/asha.mp4"))

	shortlistRows, err := memStore.Read(ctx, store.TableShortlist, "A2:J")
	require.NoError(t, err)
	entries, _ := store.ParseShortlistRows(shortlistRows)
	assert.True(t, entries[0].VideoUploaded)

	studentRows, err := memStore.Read(ctx, store.TableStudents, "A2:K")
	require.NoError(t, err)
	records := store.ParseStudentRows(studentRows)
	assert.Equal(t, models.StageVideoUploaded, records[0].Status)
	assert.Equal(t, "https://videos.example.com/asha.mp4", records[0].VideoLink)

	err = svc.UpdateVideoStatus(ctx, "STU404", "link")
	assert.ErrorIs(t, err, ErrStudentNotFound)
}
