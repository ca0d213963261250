package models

import "time"

// FinalCandidate is a student chosen by the final selection stage. All
// computed fields are recomputed from scratch on every ranking run; nothing
// is updated incrementally.
type FinalCandidate struct {
	StudentID          string          `json:"student_id"`
	StudentName        string          `json:"student_name"`
	Email              string          `json:"email"`
	ConfidenceScore    float64         `json:"confidence_score"`
	AIExperienceScore  float64         `json:"ai_experience_score"`
	CommunicationScore float64         `json:"communication_score"`
	EducationStatus    EducationStatus `json:"education_status"`
	ComprehensiveScore float64         `json:"comprehensive_score"`
	EducationBonus     float64         `json:"education_bonus"`
	SelectionStatus    SelectionStatus `json:"final_selection_status"`
	EmailSent          bool            `json:"final_email_sent"`
	EmailSentAt        *time.Time      `json:"final_email_timestamp,omitempty"`
	SelectedAt         time.Time       `json:"final_selection_timestamp"`
}
