package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selection-crew/selection-service/internal/models"
)

func resultWithPercentage(id string, pct float64) models.EvaluationResult {
	return models.EvaluationResult{
		StudentID:   id,
		StudentName: "Student " + id,
		Email:       id + "@example.com",
		TotalScore:  int(pct),
		MaxPossible: 100,
		Percentage:  pct,
	}
}

func TestBuildShortlist_TopTwoWithTiesInInputOrder(t *testing.T) {
	// Unsorted source: the two 90% students win, in input order.
	results := []models.EvaluationResult{
		resultWithPercentage("S70", 70),
		resultWithPercentage("S90a", 90),
		resultWithPercentage("S80", 80),
		resultWithPercentage("S90b", 90),
		resultWithPercentage("S60", 60),
	}

	entries := BuildShortlist(results, 2, time.Now())
	require.Len(t, entries, 2)
	assert.Equal(t, "S90a", entries[0].StudentID)
	assert.Equal(t, "S90b", entries[1].StudentID)
}

func TestBuildShortlist_EntryMetadata(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	results := []models.EvaluationResult{resultWithPercentage("S1", 85)}

	entries := BuildShortlist(results, 10, now)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, models.StatusSelected, e.Status)
	assert.False(t, e.EmailSent)
	assert.Nil(t, e.EmailSentAt)
	assert.False(t, e.VideoUploaded)
	assert.Equal(t, now, e.ShortlistedAt)
	assert.Equal(t, 85.0, e.Percentage)
	assert.Equal(t, 85, e.QuizScore)
}

func TestBuildShortlist_Idempotent(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	results := []models.EvaluationResult{
		resultWithPercentage("S1", 95),
		resultWithPercentage("S2", 95),
		resultWithPercentage("S3", 40),
	}

	first := BuildShortlist(results, 2, now)
	second := BuildShortlist(results, 2, now)
	assert.Equal(t, first, second)
}

func TestBuildShortlist_FewerResultsThanLimit(t *testing.T) {
	results := []models.EvaluationResult{resultWithPercentage("S1", 50)}

	entries := BuildShortlist(results, 10, time.Now())
	assert.Len(t, entries, 1)
}

func TestBuildShortlist_EmptyInput(t *testing.T) {
	assert.Empty(t, BuildShortlist(nil, 10, time.Now()))
}
