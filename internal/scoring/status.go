package scoring

import "github.com/selection-crew/selection-service/internal/models"

// CountProgress derives pipeline progress counts from the current student
// records. Partially populated rows are fine: a missing field simply does
// not count toward its stage. This function never fails.
func CountProgress(records []models.StudentRecord, questionCount int) models.ProcessStatus {
	status := models.ProcessStatus{QuizQuestions: questionCount}

	for _, rec := range records {
		if rec.QuizMarks != nil {
			status.QuizResults++
		}
		if rec.Status == models.StageShortlisted {
			status.Shortlisted++
		}
		if rec.Confidence != nil {
			status.VideoAnalysis++
		}
		if rec.FinalResult == models.StageSelected {
			status.FinalSelection++
		}
	}

	return status
}
