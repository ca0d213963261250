package models

// ProcessStatus summarizes pipeline progress as record counts. It is a pure
// read-side aggregation over the current store contents.
type ProcessStatus struct {
	QuizQuestions  int `json:"quiz_questions"`
	QuizResults    int `json:"quiz_results"`
	Shortlisted    int `json:"shortlisted"`
	VideoAnalysis  int `json:"video_analysis"`
	FinalSelection int `json:"final_selection"`
}
