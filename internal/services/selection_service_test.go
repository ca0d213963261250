package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selection-crew/selection-service/internal/models"
	"github.com/selection-crew/selection-service/internal/notify"
	"github.com/selection-crew/selection-service/internal/oracle"
	"github.com/selection-crew/selection-service/internal/store"
)

// seedVideoRound puts three students one step past the shortlist stage, with
// transcripts waiting for analysis.
func seedVideoRound(t *testing.T, s store.RecordStore) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, store.TableStudents, [][]string{
		store.StudentsHeader,
		{"Asha", "asha@example.com", "100", models.StageVideoUploaded, "link-a", "I recently graduated and built ML systems", "", "", "", "", ""},
		{"Ben", "ben@example.com", "71.43", models.StageVideoUploaded, "link-b", "I am in my final year", "", "", "", "", ""},
		{"Cara", "cara@example.com", "42.86", models.StageShortlisted, "", "", "", "", "", "", ""},
	}, "A1"))

	require.NoError(t, s.Write(ctx, store.TableShortlist, store.FormatShortlistRows([]models.ShortlistEntry{
		{StudentID: "STU001", StudentName: "Asha", Email: "asha@example.com", QuizScore: 7, Percentage: 100, Status: models.StatusSelected},
		{StudentID: "STU002", StudentName: "Ben", Email: "ben@example.com", QuizScore: 5, Percentage: 71.43, Status: models.StatusSelected},
		{StudentID: "STU003", StudentName: "Cara", Email: "cara@example.com", QuizScore: 3, Percentage: 42.86, Status: models.StatusSelected},
	}), "A1"))
}

func TestSelectionService_AnalyzeVideos(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	seedVideoRound(t, memStore)

	mockOracle := oracle.NewMockOracle()
	mockOracle.Results["asha@example.com"] = &models.VideoAnalysis{
		StudentID: "asha@example.com", ConfidenceScore: 8, AIExperienceScore: 9,
		CommunicationScore: 7, EducationStatus: models.EducationGraduated, Success: true,
	}
	mockOracle.Results["ben@example.com"] = &models.VideoAnalysis{
		StudentID: "ben@example.com", ConfidenceScore: 6, AIExperienceScore: 5,
		CommunicationScore: 8, EducationStatus: models.EducationFinalYear, Success: true,
	}

	svc := NewSelectionService(memStore, mockOracle, notify.NewMockNotifier(), testConfig(), testLogger())

	report, err := svc.AnalyzeVideos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Analyzed)
	assert.Empty(t, report.Skipped)

	// Cara has no transcript and is never sent to the oracle.
	assert.Equal(t, []string{"asha@example.com", "ben@example.com"}, mockOracle.Calls())

	studentRows, err := memStore.Read(ctx, store.TableStudents, "A2:K")
	require.NoError(t, err)
	records := store.ParseStudentRows(studentRows)
	require.NotNil(t, records[0].Confidence)
	assert.Equal(t, 8.0, *records[0].Confidence)
	assert.Equal(t, string(models.EducationGraduated), records[0].EducationStatus)
	assert.Nil(t, records[2].Confidence)
}

func TestSelectionService_AnalyzeVideos_FailureSkipsStudent(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	seedVideoRound(t, memStore)

	mockOracle := oracle.NewMockOracle()
	mockOracle.Results["asha@example.com"] = &models.VideoAnalysis{
		StudentID: "asha@example.com", ConfidenceScore: 8, AIExperienceScore: 9,
		CommunicationScore: 7, EducationStatus: models.EducationGraduated, Success: true,
	}
	// Ben has no configured result: his analysis fails.

	svc := NewSelectionService(memStore, mockOracle, notify.NewMockNotifier(), testConfig(), testLogger())

	report, err := svc.AnalyzeVideos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Analyzed)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "ben@example.com", report.Skipped[0].Ref)
}

func TestSelectionService_SelectFinal(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	seedVideoRound(t, memStore)

	// Sub-scores already on file: Asha graduated, Ben final year, Cara
	// unanalyzed.
	require.NoError(t, memStore.Write(ctx, store.TableStudents, [][]string{
		{"8", "9", "7", string(models.EducationGraduated)},
	}, "G2"))
	require.NoError(t, memStore.Write(ctx, store.TableStudents, [][]string{
		{"6", "5", "8", string(models.EducationFinalYear)},
	}, "G3"))

	notifier := notify.NewMockNotifier()
	svc := NewSelectionService(memStore, oracle.NewMockOracle(), notifier, testConfig(), testLogger())

	report, err := svc.SelectFinal(ctx, 1)
	require.NoError(t, err)

	// Asha: 8*0.25 + 9*0.35 + 7*0.25 + 1.5 = 8.4; Ben: 6*0.25+5*0.35+8*0.25+1.0 = 6.25.
	require.Len(t, report.Candidates, 1)
	winner := report.Candidates[0]
	assert.Equal(t, "STU001", winner.StudentID)
	assert.InDelta(t, 8.4, winner.ComprehensiveScore, 1e-9)
	assert.True(t, winner.EmailSent)
	assert.Equal(t, map[string]bool{"asha@example.com": true}, report.EmailOutcomes)

	sent := notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, notify.FinalSelectionSubject, sent[0].Subject)

	// Winner is marked in the student table; the runner-up is not.
	studentRows, err := memStore.Read(ctx, store.TableStudents, "A2:K")
	require.NoError(t, err)
	records := store.ParseStudentRows(studentRows)
	assert.Equal(t, models.StageSelected, records[0].FinalResult)
	assert.Empty(t, records[1].FinalResult)

	// Final selection table is written with the candidate row.
	finalRows, err := memStore.Read(ctx, store.TableFinalSelection, "A2:M")
	require.NoError(t, err)
	candidates, skipped := store.ParseFinalSelectionRows(finalRows)
	require.Empty(t, skipped)
	require.Len(t, candidates, 1)
	assert.Equal(t, "STU001", candidates[0].StudentID)
}

func TestSelectionService_SelectFinal_EmptyEligible(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	seedVideoRound(t, memStore)

	svc := NewSelectionService(memStore, oracle.NewMockOracle(), notify.NewMockNotifier(), testConfig(), testLogger())

	// Nobody has sub-scores yet; an empty selection is a valid outcome.
	report, err := svc.SelectFinal(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, report.Candidates)
}

func TestSelectionService_GenerateSelectionReport(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	seedVideoRound(t, memStore)

	require.NoError(t, memStore.Write(ctx, store.TableStudents, [][]string{
		{"8", "9", "7", string(models.EducationGraduated)},
	}, "G2"))

	svc := NewSelectionService(memStore, oracle.NewMockOracle(), notify.NewMockNotifier(), testConfig(), testLogger())
	_, err := svc.SelectFinal(ctx, 5)
	require.NoError(t, err)

	text, err := svc.GenerateSelectionReport(ctx)
	require.NoError(t, err)
	assert.Contains(t, text, "FINAL SELECTION REPORT")
	assert.Contains(t, text, "STU001")
	assert.Contains(t, text, "Average Confidence Score: 8.00/10")
	assert.Contains(t, text, "graduated: 1")
}

func TestSelectionService_AnalyzeVideos_NoOracle(t *testing.T) {
	svc := NewSelectionService(store.NewMemoryStore(), nil, notify.NewMockNotifier(), testConfig(), testLogger())

	_, err := svc.AnalyzeVideos(context.Background())
	assert.ErrorIs(t, err, ErrOracleDisabled)
}
