package scoring

import (
	"time"

	"github.com/selection-crew/selection-service/internal/models"
)

// BuildFinalSelection filters analyses to successful ones, aggregates their
// video scores, and returns the top `limit` candidates ranked by
// comprehensive score. An empty eligible set returns an empty list; that is
// a valid terminal outcome, not an error.
func BuildFinalSelection(analyses []models.VideoAnalysis, limit int, now time.Time) []models.FinalCandidate {
	eligible := make([]models.FinalCandidate, 0, len(analyses))
	for _, a := range analyses {
		if !a.Success {
			continue
		}
		breakdown := AggregateVideoScores(a)
		eligible = append(eligible, models.FinalCandidate{
			StudentID:          a.StudentID,
			StudentName:        a.StudentName,
			Email:              a.Email,
			ConfidenceScore:    a.ConfidenceScore,
			AIExperienceScore:  a.AIExperienceScore,
			CommunicationScore: a.CommunicationScore,
			EducationStatus:    a.EducationStatus,
			ComprehensiveScore: breakdown.ComprehensiveScore,
			EducationBonus:     breakdown.EducationBonus,
			SelectionStatus:    models.StatusSelected,
			EmailSent:          false,
			SelectedAt:         now,
		})
	}

	return SelectTopK(eligible, func(c models.FinalCandidate) float64 { return c.ComprehensiveScore }, limit)
}
