package scoring

import "github.com/selection-crew/selection-service/internal/models"

// Sub-score weights for the comprehensive score. They sum to 0.85, not 1.0;
// every historical comprehensive score depends on this exact weighting, so
// do not normalize them.
const (
	weightConfidence    = 0.25
	weightAIExperience  = 0.35
	weightCommunication = 0.25

	bonusGraduated = 1.5
	bonusFinalYear = 1.0
)

// ScoreBreakdown is the aggregated video score for one candidate.
type ScoreBreakdown struct {
	BaseScore          float64 `json:"base_score"`
	EducationBonus     float64 `json:"education_bonus"`
	ComprehensiveScore float64 `json:"comprehensive_score"`
}

// AggregateVideoScores combines the oracle's sub-scores and the education
// bonus into the comprehensive score used for final ranking. Callers must
// filter out unsuccessful analyses before aggregating; a failed analysis is
// excluded from ranking entirely, never scored as zero.
func AggregateVideoScores(a models.VideoAnalysis) ScoreBreakdown {
	base := a.ConfidenceScore*weightConfidence +
		a.AIExperienceScore*weightAIExperience +
		a.CommunicationScore*weightCommunication

	bonus := EducationBonus(a.EducationStatus)

	return ScoreBreakdown{
		BaseScore:          base,
		EducationBonus:     bonus,
		ComprehensiveScore: base + bonus,
	}
}

// EducationBonus returns the fixed additive increment for a declared
// education status. Unknown statuses earn nothing.
func EducationBonus(status models.EducationStatus) float64 {
	switch status {
	case models.EducationGraduated:
		return bonusGraduated
	case models.EducationFinalYear:
		return bonusFinalYear
	default:
		return 0
	}
}
