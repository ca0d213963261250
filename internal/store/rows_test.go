package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selection-crew/selection-service/internal/models"
)

func TestParseQuestionRows(t *testing.T) {
	rows := [][]string{
		{"What is supervised learning?", "opt a", "opt b", "opt c", "opt d", "1", "2", "ml"},
		{"Letter answer key", "yes", "no", "", "", "B", "3", "basics"},
		{"Two options only", "true", "false", "", "", "0", "1", "basics"},
	}

	questions, skipped := ParseQuestionRows(rows)
	require.Empty(t, skipped)
	require.Len(t, questions, 3)

	assert.Equal(t, 1, questions[0].CorrectAnswer)
	assert.Equal(t, 2, questions[0].Points)
	assert.Equal(t, []string{"opt a", "opt b", "opt c", "opt d"}, questions[0].Options)

	// Letters normalize to indices at the boundary.
	assert.Equal(t, 1, questions[1].CorrectAnswer)
	assert.Len(t, questions[1].Options, 2)
}

func TestParseQuestionRows_SkipsMalformed(t *testing.T) {
	rows := [][]string{
		{"", "a", "b", "c", "d", "0", "2", "x"},                     // empty text
		{"One option", "only", "", "", "", "0", "2", "x"},           // too few options
		{"Bad key", "a", "b", "", "", "7", "2", "x"},                // key out of range
		{"Bad points", "a", "b", "", "", "0", "zero", "x"},          // points not numeric
		{"short row"},                                               // missing columns
		{"Good", "a", "b", "c", "", "2", "5", "ml"},                 // valid
		{"Strange key", "a", "b", "", "", "maybe", "2", "x"},        // unparseable key
	}

	questions, skipped := ParseQuestionRows(rows)
	require.Len(t, questions, 1)
	assert.Equal(t, "Good", questions[0].Question)
	assert.Len(t, skipped, 6)
	for _, e := range skipped {
		assert.Equal(t, "question", e.Kind)
	}
}

func TestQuestionRows_RoundTrip(t *testing.T) {
	questions := []models.QuizQuestion{
		{Question: "Q", Options: []string{"a", "b", "c"}, CorrectAnswer: 2, Points: 3, Category: "ml"},
	}

	rows := FormatQuestionRows(questions)
	require.Len(t, rows, 2)
	assert.Equal(t, QuestionsHeader, rows[0])

	parsed, skipped := ParseQuestionRows(rows[1:])
	require.Empty(t, skipped)
	assert.Equal(t, questions, parsed)
}

func TestEvaluationRows_RoundTrip(t *testing.T) {
	created := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	results := []models.EvaluationResult{
		{
			StudentID: "STU001", StudentName: "Asha", Email: "asha@example.com",
			TotalScore: 5, MaxPossible: 7, Percentage: 71.43,
			CorrectAnswers: 2, TotalQuestions: 3, CreatedAt: created,
		},
	}

	rows := FormatEvaluationRows(results)
	parsed, skipped := ParseEvaluationRows(rows[1:])
	require.Empty(t, skipped)
	require.Len(t, parsed, 1)
	assert.Equal(t, results[0], parsed[0])
}

func TestParseEvaluationRows_SkipsMalformed(t *testing.T) {
	rows := [][]string{
		{"", "Nameless", "", "5", "7", "71.43", "2", "3", ""},
		{"STU002", "Ben", "", "five", "7", "71.43", "2", "3", ""},
		{"STU003", "Cara", "", "5", "7", "71.43", "2", "3", ""},
	}

	parsed, skipped := ParseEvaluationRows(rows)
	require.Len(t, parsed, 1)
	assert.Equal(t, "STU003", parsed[0].StudentID)
	assert.Len(t, skipped, 2)
}

func TestShortlistRows_RoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 28, 11, 0, 0, 0, time.UTC)
	sent := now.Add(time.Minute)
	entries := []models.ShortlistEntry{
		{
			StudentID: "STU001", StudentName: "Asha", Email: "asha@example.com",
			QuizScore: 5, Percentage: 71.43, Status: models.StatusSelected,
			EmailSent: true, EmailSentAt: &sent, VideoUploaded: false, ShortlistedAt: now,
		},
	}

	rows := FormatShortlistRows(entries)
	parsed, skipped := ParseShortlistRows(rows[1:])
	require.Empty(t, skipped)
	require.Len(t, parsed, 1)
	assert.Equal(t, entries[0], parsed[0])
}

func TestParseStudentRows_Tolerant(t *testing.T) {
	rows := [][]string{
		{"Asha", "asha@example.com", "80.5", "Shortlisted", "", "", "8", "6", "7", "graduated", ""},
		{"Ben", "ben@example.com", "not-a-number", "Quiz Completed"},
		{"", "ghost@example.com"}, // nameless rows are not records
		{"Cara"},
	}

	records := ParseStudentRows(rows)
	require.Len(t, records, 3)

	require.NotNil(t, records[0].QuizMarks)
	assert.Equal(t, 80.5, *records[0].QuizMarks)
	assert.Equal(t, "graduated", records[0].EducationStatus)

	// Unparseable numbers read as "stage not reached", never as zero.
	assert.Nil(t, records[1].QuizMarks)
	assert.Nil(t, records[2].Confidence)
}

func TestFormatStudentRow(t *testing.T) {
	row := FormatStudentRow(models.EvaluationResult{
		StudentName: "Asha", Email: "asha@example.com", Percentage: 71.43,
	})

	require.Len(t, row, len(StudentsHeader))
	assert.Equal(t, "Asha", row[StudentColName])
	assert.Equal(t, "71.43", row[StudentColQuizMarks])
	assert.Equal(t, models.StageQuizCompleted, row[StudentColStatus])
	assert.Empty(t, row[StudentColFinalResult])
}
