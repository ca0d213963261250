package models

// Pipeline stage markers stored in the Students table status columns.
const (
	StageQuizCompleted = "Quiz Completed"
	StageShortlisted   = "Shortlisted"
	StageVideoUploaded = "Video Uploaded"
	StageSelected      = "Selected"
)

// StudentRecord is the tolerant projection of one Students-table row. Numeric
// fields are pointers because a row may not have reached the stage that fills
// them in; readers count a nil field as absent rather than failing.
type StudentRecord struct {
	Name            string
	Email           string
	QuizMarks       *float64
	Status          string
	VideoLink       string
	Transcript      string
	Confidence      *float64
	AIExperience    *float64
	Communication   *float64
	EducationStatus string
	FinalResult     string
}
