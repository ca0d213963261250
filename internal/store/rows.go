package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/selection-crew/selection-service/internal/errors"
	"github.com/selection-crew/selection-service/internal/models"
)

// Row codecs: the explicit parsing boundary between raw string rows and the
// typed pipeline entities. Business logic never sees a raw row; structural
// failures become MalformedRecordError here and the offending row is
// skipped, never defaulted.

// Table header rows, fixed-position. The Students layout extends the legacy
// nine-column sheet with Communication and Education Status.
var (
	StudentsHeader = []string{
		"Student Name", "Email", "Quiz Marks", "Status", "Video Link", "Transcript",
		"Confidence", "AI Experience", "Communication", "Education Status", "Final Result",
	}
	QuestionsHeader = []string{
		"Question", "Option_A", "Option_B", "Option_C", "Option_D",
		"Correct_Answer", "Points", "Category",
	}
	ResultsHeader = []string{
		"Student_ID", "Student_Name", "Email", "Total_Score", "Max_Possible",
		"Percentage", "Correct_Answers", "Total_Questions", "Timestamp",
	}
	ShortlistHeader = []string{
		"Student_ID", "Student_Name", "Email", "Quiz_Score", "Percentage",
		"Shortlist_Status", "Email_Sent", "Email_Timestamp", "Video_Uploaded", "Shortlist_Timestamp",
	}
	FinalSelectionHeader = []string{
		"Student_ID", "Student_Name", "Email", "Confidence_Score", "AI_Experience_Score",
		"Communication_Score", "Education_Status", "Comprehensive_Score", "Education_Bonus",
		"Final_Selection_Status", "Final_Email_Sent", "Final_Email_Timestamp", "Final_Selection_Timestamp",
	}
)

// Students table column positions (0-based), used for per-cell updates.
const (
	StudentColName = iota
	StudentColEmail
	StudentColQuizMarks
	StudentColStatus
	StudentColVideoLink
	StudentColTranscript
	StudentColConfidence
	StudentColAIExperience
	StudentColCommunication
	StudentColEducationStatus
	StudentColFinalResult
)

const rowTimeFormat = time.RFC3339

// ===== QUESTIONS =====

// ParseQuestionRows converts raw Quiz_Questions rows (without the header)
// into typed questions. Malformed rows are reported and skipped.
func ParseQuestionRows(rows [][]string) ([]models.QuizQuestion, []*apperrors.MalformedRecordError) {
	var questions []models.QuizQuestion
	var skipped []*apperrors.MalformedRecordError

	for i, row := range rows {
		ref := fmt.Sprintf("row %d", i+2) // +2: 1-based plus header row
		q, err := parseQuestionRow(row)
		if err != nil {
			skipped = append(skipped, apperrors.NewMalformedRecordError("question", ref, err.Error()))
			continue
		}
		questions = append(questions, q)
	}
	return questions, skipped
}

func parseQuestionRow(row []string) (models.QuizQuestion, error) {
	if len(row) < 7 {
		return models.QuizQuestion{}, fmt.Errorf("expected at least 7 columns, got %d", len(row))
	}

	text := strings.TrimSpace(cell(row, 0))
	if text == "" {
		return models.QuizQuestion{}, fmt.Errorf("question text is empty")
	}

	// Option columns are fixed at four; trailing blanks mean the question
	// has fewer options.
	var options []string
	for _, opt := range []string{cell(row, 1), cell(row, 2), cell(row, 3), cell(row, 4)} {
		if strings.TrimSpace(opt) != "" {
			options = append(options, strings.TrimSpace(opt))
		}
	}
	if len(options) < 2 {
		return models.QuizQuestion{}, fmt.Errorf("question has %d options, need at least 2", len(options))
	}

	correct, err := models.ParseAnswerIndex(cell(row, 5))
	if err != nil {
		return models.QuizQuestion{}, fmt.Errorf("correct answer: %v", err)
	}
	if correct == models.AnswerUnmarked || correct >= len(options) {
		return models.QuizQuestion{}, fmt.Errorf("correct answer %q does not address an option", cell(row, 5))
	}

	points, err := strconv.Atoi(strings.TrimSpace(cell(row, 6)))
	if err != nil || points <= 0 {
		return models.QuizQuestion{}, fmt.Errorf("points %q is not a positive integer", cell(row, 6))
	}

	return models.QuizQuestion{
		Question:      text,
		Options:       options,
		CorrectAnswer: correct,
		Points:        points,
		Category:      strings.TrimSpace(cell(row, 7)),
	}, nil
}

// FormatQuestionRows renders questions for storage, header included.
// Options are padded to the four fixed columns.
func FormatQuestionRows(questions []models.QuizQuestion) [][]string {
	rows := [][]string{QuestionsHeader}
	for _, q := range questions {
		row := []string{q.Question, "", "", "", "",
			models.FormatAnswerIndex(q.CorrectAnswer), strconv.Itoa(q.Points), q.Category}
		for i := 0; i < 4 && i < len(q.Options); i++ {
			row[1+i] = q.Options[i]
		}
		rows = append(rows, row)
	}
	return rows
}

// ===== EVALUATION RESULTS =====

func FormatEvaluationRows(results []models.EvaluationResult) [][]string {
	rows := [][]string{ResultsHeader}
	for _, r := range results {
		rows = append(rows, []string{
			r.StudentID,
			r.StudentName,
			r.Email,
			strconv.Itoa(r.TotalScore),
			strconv.Itoa(r.MaxPossible),
			formatFloat(r.Percentage),
			strconv.Itoa(r.CorrectAnswers),
			strconv.Itoa(r.TotalQuestions),
			r.CreatedAt.Format(rowTimeFormat),
		})
	}
	return rows
}

// ParseEvaluationRows converts raw Quiz_Results rows (without the header)
// back into results. The per-question breakdown is not stored and comes back
// empty.
func ParseEvaluationRows(rows [][]string) ([]models.EvaluationResult, []*apperrors.MalformedRecordError) {
	var results []models.EvaluationResult
	var skipped []*apperrors.MalformedRecordError

	for i, row := range rows {
		ref := fmt.Sprintf("row %d", i+2)
		if len(row) < 8 || strings.TrimSpace(cell(row, 0)) == "" {
			skipped = append(skipped, apperrors.NewMalformedRecordError("result", ref, "missing student id or columns"))
			continue
		}

		totalScore, err1 := strconv.Atoi(strings.TrimSpace(cell(row, 3)))
		maxPossible, err2 := strconv.Atoi(strings.TrimSpace(cell(row, 4)))
		percentage, err3 := strconv.ParseFloat(strings.TrimSpace(cell(row, 5)), 64)
		if err1 != nil || err2 != nil || err3 != nil {
			skipped = append(skipped, apperrors.NewMalformedRecordError("result", ref, "score columns are not numeric"))
			continue
		}

		correct, _ := strconv.Atoi(strings.TrimSpace(cell(row, 6)))
		total, _ := strconv.Atoi(strings.TrimSpace(cell(row, 7)))
		createdAt, _ := time.Parse(rowTimeFormat, strings.TrimSpace(cell(row, 8)))

		results = append(results, models.EvaluationResult{
			StudentID:      strings.TrimSpace(cell(row, 0)),
			StudentName:    strings.TrimSpace(cell(row, 1)),
			Email:          strings.TrimSpace(cell(row, 2)),
			TotalScore:     totalScore,
			MaxPossible:    maxPossible,
			Percentage:     percentage,
			CorrectAnswers: correct,
			TotalQuestions: total,
			CreatedAt:      createdAt,
		})
	}
	return results, skipped
}

// ===== SHORTLIST =====

func FormatShortlistRows(entries []models.ShortlistEntry) [][]string {
	rows := [][]string{ShortlistHeader}
	for _, e := range entries {
		rows = append(rows, []string{
			e.StudentID,
			e.StudentName,
			e.Email,
			strconv.Itoa(e.QuizScore),
			formatFloat(e.Percentage),
			string(e.Status),
			strconv.FormatBool(e.EmailSent),
			formatTimePtr(e.EmailSentAt),
			strconv.FormatBool(e.VideoUploaded),
			e.ShortlistedAt.Format(rowTimeFormat),
		})
	}
	return rows
}

func ParseShortlistRows(rows [][]string) ([]models.ShortlistEntry, []*apperrors.MalformedRecordError) {
	var entries []models.ShortlistEntry
	var skipped []*apperrors.MalformedRecordError

	for i, row := range rows {
		ref := fmt.Sprintf("row %d", i+2)
		if len(row) < 10 || strings.TrimSpace(cell(row, 0)) == "" {
			skipped = append(skipped, apperrors.NewMalformedRecordError("shortlist", ref, "missing student id or columns"))
			continue
		}

		quizScore, err1 := strconv.Atoi(strings.TrimSpace(cell(row, 3)))
		percentage, err2 := strconv.ParseFloat(strings.TrimSpace(cell(row, 4)), 64)
		if err1 != nil || err2 != nil {
			skipped = append(skipped, apperrors.NewMalformedRecordError("shortlist", ref, "score columns are not numeric"))
			continue
		}

		entry := models.ShortlistEntry{
			StudentID:     strings.TrimSpace(cell(row, 0)),
			StudentName:   strings.TrimSpace(cell(row, 1)),
			Email:         strings.TrimSpace(cell(row, 2)),
			QuizScore:     quizScore,
			Percentage:    percentage,
			Status:        models.SelectionStatus(strings.TrimSpace(cell(row, 5))),
			EmailSent:     strings.EqualFold(strings.TrimSpace(cell(row, 6)), "true"),
			VideoUploaded: strings.EqualFold(strings.TrimSpace(cell(row, 8)), "true"),
		}
		if ts, err := time.Parse(rowTimeFormat, strings.TrimSpace(cell(row, 7))); err == nil {
			entry.EmailSentAt = &ts
		}
		if ts, err := time.Parse(rowTimeFormat, strings.TrimSpace(cell(row, 9))); err == nil {
			entry.ShortlistedAt = ts
		}
		entries = append(entries, entry)
	}
	return entries, skipped
}

// ===== FINAL SELECTION =====

func FormatFinalSelectionRows(candidates []models.FinalCandidate) [][]string {
	rows := [][]string{FinalSelectionHeader}
	for _, c := range candidates {
		rows = append(rows, []string{
			c.StudentID,
			c.StudentName,
			c.Email,
			formatFloat(c.ConfidenceScore),
			formatFloat(c.AIExperienceScore),
			formatFloat(c.CommunicationScore),
			string(c.EducationStatus),
			formatFloat(c.ComprehensiveScore),
			formatFloat(c.EducationBonus),
			string(c.SelectionStatus),
			strconv.FormatBool(c.EmailSent),
			formatTimePtr(c.EmailSentAt),
			c.SelectedAt.Format(rowTimeFormat),
		})
	}
	return rows
}

func ParseFinalSelectionRows(rows [][]string) ([]models.FinalCandidate, []*apperrors.MalformedRecordError) {
	var candidates []models.FinalCandidate
	var skipped []*apperrors.MalformedRecordError

	for i, row := range rows {
		ref := fmt.Sprintf("row %d", i+2)
		if len(row) < 13 || strings.TrimSpace(cell(row, 0)) == "" {
			skipped = append(skipped, apperrors.NewMalformedRecordError("candidate", ref, "missing student id or columns"))
			continue
		}

		confidence, err1 := strconv.ParseFloat(strings.TrimSpace(cell(row, 3)), 64)
		aiExperience, err2 := strconv.ParseFloat(strings.TrimSpace(cell(row, 4)), 64)
		communication, err3 := strconv.ParseFloat(strings.TrimSpace(cell(row, 5)), 64)
		comprehensive, err4 := strconv.ParseFloat(strings.TrimSpace(cell(row, 7)), 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			skipped = append(skipped, apperrors.NewMalformedRecordError("candidate", ref, "score columns are not numeric"))
			continue
		}
		bonus, _ := strconv.ParseFloat(strings.TrimSpace(cell(row, 8)), 64)

		candidate := models.FinalCandidate{
			StudentID:          strings.TrimSpace(cell(row, 0)),
			StudentName:        strings.TrimSpace(cell(row, 1)),
			Email:              strings.TrimSpace(cell(row, 2)),
			ConfidenceScore:    confidence,
			AIExperienceScore:  aiExperience,
			CommunicationScore: communication,
			EducationStatus:    models.EducationStatus(strings.TrimSpace(cell(row, 6))),
			ComprehensiveScore: comprehensive,
			EducationBonus:     bonus,
			SelectionStatus:    models.SelectionStatus(strings.TrimSpace(cell(row, 9))),
			EmailSent:          strings.EqualFold(strings.TrimSpace(cell(row, 10)), "true"),
		}
		if ts, err := time.Parse(rowTimeFormat, strings.TrimSpace(cell(row, 11))); err == nil {
			candidate.EmailSentAt = &ts
		}
		if ts, err := time.Parse(rowTimeFormat, strings.TrimSpace(cell(row, 12))); err == nil {
			candidate.SelectedAt = ts
		}
		candidates = append(candidates, candidate)
	}
	return candidates, skipped
}

// ===== STUDENTS =====

// ParseStudentRows converts raw Students rows (without the header) into the
// tolerant StudentRecord projection. Rows are never rejected here; fields
// that do not parse stay nil/empty and read as "stage not reached".
func ParseStudentRows(rows [][]string) []models.StudentRecord {
	var records []models.StudentRecord
	for _, row := range rows {
		if strings.TrimSpace(cell(row, StudentColName)) == "" {
			continue
		}
		records = append(records, models.StudentRecord{
			Name:            strings.TrimSpace(cell(row, StudentColName)),
			Email:           strings.TrimSpace(cell(row, StudentColEmail)),
			QuizMarks:       parseFloatPtr(cell(row, StudentColQuizMarks)),
			Status:          strings.TrimSpace(cell(row, StudentColStatus)),
			VideoLink:       strings.TrimSpace(cell(row, StudentColVideoLink)),
			Transcript:      cell(row, StudentColTranscript),
			Confidence:      parseFloatPtr(cell(row, StudentColConfidence)),
			AIExperience:    parseFloatPtr(cell(row, StudentColAIExperience)),
			Communication:   parseFloatPtr(cell(row, StudentColCommunication)),
			EducationStatus: strings.TrimSpace(cell(row, StudentColEducationStatus)),
			FinalResult:     strings.TrimSpace(cell(row, StudentColFinalResult)),
		})
	}
	return records
}

// FormatStudentRow renders the Students-table row for a freshly evaluated
// student; downstream stages fill the remaining columns cell by cell.
func FormatStudentRow(r models.EvaluationResult) []string {
	row := make([]string, len(StudentsHeader))
	row[StudentColName] = r.StudentName
	row[StudentColEmail] = r.Email
	row[StudentColQuizMarks] = formatFloat(r.Percentage)
	row[StudentColStatus] = models.StageQuizCompleted
	return row
}

// ===== HELPERS =====

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func parseFloatPtr(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(rowTimeFormat)
}
