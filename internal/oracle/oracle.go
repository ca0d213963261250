package oracle

import (
	"context"

	"github.com/selection-crew/selection-service/internal/models"
)

// VideoScoringOracle scores an interview transcript on the three sub-score
// dimensions and classifies the candidate's education status.
type VideoScoringOracle interface {
	Analyze(ctx context.Context, studentID, transcript string) (*models.VideoAnalysis, error)
}
