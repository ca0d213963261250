package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/selection-crew/selection-service/internal/models"
)

// analysisResponse is the JSON shape the model is instructed to return.
type analysisResponse struct {
	ConfidenceScore    float64 `json:"confidence_score"`
	AIExperienceScore  float64 `json:"ai_experience_score"`
	CommunicationScore float64 `json:"communication_score"`
	EducationStatus    string  `json:"education_status"`
	DetailedAnalysis   string  `json:"detailed_analysis"`
}

// OpenAIOracle implements VideoScoringOracle with an OpenAI-compatible API.
type OpenAIOracle struct {
	api    *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAIOracle creates an oracle client. baseURL may be empty to use the
// default OpenAI endpoint.
func NewOpenAIOracle(baseURL, apiKey, modelName string, logger *slog.Logger) *OpenAIOracle {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIOracle{
		api:    openai.NewClientWithConfig(config),
		model:  modelName,
		logger: logger,
	}
}

func (o *OpenAIOracle) Analyze(ctx context.Context, studentID, transcript string) (*models.VideoAnalysis, error) {
	resp, err := o.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: analysisSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: transcript},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("transcript analysis API call: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("transcript analysis returned no choices")
	}

	raw := resp.Choices[0].Message.Content
	o.logger.Debug("Transcript analysis response", "student_id", studentID, "raw", raw)

	analysis, err := ParseAnalysis(studentID, raw)
	if err != nil {
		return nil, err
	}
	return analysis, nil
}

// ParseAnalysis decodes a model response into a VideoAnalysis, clamping
// scores to the 0-10 scale and normalizing the education label.
func ParseAnalysis(studentID, raw string) (*models.VideoAnalysis, error) {
	var parsed analysisResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse transcript analysis: %w (raw: %s)", err, raw)
	}

	return &models.VideoAnalysis{
		StudentID:          studentID,
		ConfidenceScore:    clampScore(parsed.ConfidenceScore),
		AIExperienceScore:  clampScore(parsed.AIExperienceScore),
		CommunicationScore: clampScore(parsed.CommunicationScore),
		EducationStatus:    NormalizeEducationStatus(parsed.EducationStatus),
		DetailedAnalysis:   parsed.DetailedAnalysis,
		AnalyzedAt:         time.Now(),
		Success:            true,
	}, nil
}

// NormalizeEducationStatus maps free-form model output onto the three labels
// the bonus rules understand. Anything unrecognized counts as "other".
func NormalizeEducationStatus(status string) models.EducationStatus {
	s := strings.ToLower(strings.TrimSpace(status))
	switch {
	case strings.Contains(s, "graduat"):
		return models.EducationGraduated
	case strings.Contains(s, "final year"), strings.Contains(s, "last year"):
		return models.EducationFinalYear
	default:
		return models.EducationOther
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

func analysisSystemPrompt() string {
	var sb strings.Builder
	sb.WriteString("You are reviewing the transcript of a 1-minute candidate interview video ")
	sb.WriteString("for an AI/ML training program.\n\n")
	sb.WriteString("Assess the candidate on three dimensions, each on a 0-10 scale:\n")
	sb.WriteString("- confidence_score: how confident and self-assured the candidate sounds\n")
	sb.WriteString("- ai_experience_score: depth of hands-on AI/ML experience described\n")
	sb.WriteString("- communication_score: clarity and structure of the delivery\n\n")
	sb.WriteString("Also classify education_status as exactly one of: ")
	sb.WriteString(`"graduated", "final year", "other".` + "\n\n")
	sb.WriteString("Respond ONLY with a JSON object:\n")
	sb.WriteString(`{"confidence_score": <0-10>, "ai_experience_score": <0-10>, "communication_score": <0-10>, "education_status": "<label>", "detailed_analysis": "<brief assessment>"}`)
	sb.WriteString("\n")
	return sb.String()
}
