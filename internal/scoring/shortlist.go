package scoring

import (
	"time"

	"github.com/selection-crew/selection-service/internal/models"
)

// BuildShortlist ranks evaluation results by percentage and returns the top
// `limit` students as shortlist entries. Percentage is the canonical ranking
// key: raw scores are not comparable across runs whose questions carry
// different point totals. Ties keep input order.
//
// The returned entries carry Status "selected" with email and video flags
// cleared; notification dispatch is the caller's concern.
func BuildShortlist(results []models.EvaluationResult, limit int, now time.Time) []models.ShortlistEntry {
	top := SelectTopK(results, func(r models.EvaluationResult) float64 { return r.Percentage }, limit)

	entries := make([]models.ShortlistEntry, 0, len(top))
	for _, r := range top {
		entries = append(entries, models.ShortlistEntry{
			StudentID:     r.StudentID,
			StudentName:   r.StudentName,
			Email:         r.Email,
			QuizScore:     r.TotalScore,
			Percentage:    r.Percentage,
			Status:        models.StatusSelected,
			EmailSent:     false,
			VideoUploaded: false,
			ShortlistedAt: now,
		})
	}
	return entries
}
