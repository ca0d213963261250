package models

import "time"

// SelectionStatus marks an entry chosen by a ranking stage.
type SelectionStatus string

const (
	StatusSelected    SelectionStatus = "selected"
	StatusNotSelected SelectionStatus = "not selected"
)

// ShortlistEntry is a student advanced to the video-interview round.
// EmailSent and VideoUploaded are mutated by later pipeline activity; the
// ranked fields are fixed at shortlist time.
type ShortlistEntry struct {
	StudentID     string          `json:"student_id"`
	StudentName   string          `json:"student_name"`
	Email         string          `json:"email"`
	QuizScore     int             `json:"quiz_score"`
	Percentage    float64         `json:"percentage"`
	Status        SelectionStatus `json:"shortlist_status"`
	EmailSent     bool            `json:"email_sent"`
	EmailSentAt   *time.Time      `json:"email_timestamp,omitempty"`
	VideoUploaded bool            `json:"video_uploaded"`
	ShortlistedAt time.Time       `json:"shortlist_timestamp"`
}
