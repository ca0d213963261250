package models

import "time"

// EducationStatus is the candidate's declared education stage, as extracted
// from the interview transcript by the scoring oracle.
type EducationStatus string

const (
	EducationGraduated EducationStatus = "graduated"
	EducationFinalYear EducationStatus = "final year"
	EducationOther     EducationStatus = "other"
)

// VideoAnalysis is the scoring oracle's verdict on one interview video.
// The pipeline only acts on the numeric sub-scores, the education status and
// the success flag; Transcript and DetailedAnalysis pass through opaquely.
type VideoAnalysis struct {
	StudentID          string          `json:"student_id" validate:"required"`
	StudentName        string          `json:"student_name"`
	Email              string          `json:"email"`
	ConfidenceScore    float64         `json:"confidence_score" validate:"gte=0,lte=10"`
	AIExperienceScore  float64         `json:"ai_experience_score" validate:"gte=0,lte=10"`
	CommunicationScore float64         `json:"communication_score" validate:"gte=0,lte=10"`
	EducationStatus    EducationStatus `json:"education_status" validate:"omitempty,education_status"`
	Transcript         string          `json:"transcript,omitempty"`
	DetailedAnalysis   string          `json:"detailed_analysis,omitempty"`
	Success            bool            `json:"success"`
	AnalyzedAt         time.Time       `json:"timestamp"`
}
