package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selection-crew/selection-service/internal/models"
)

func TestParseAnalysis(t *testing.T) {
	raw := `{"confidence_score": 8, "ai_experience_score": 6.5, "communication_score": 7,
		"education_status": "Final Year", "detailed_analysis": "solid candidate"}`

	analysis, err := ParseAnalysis("STU001", raw)
	require.NoError(t, err)

	assert.Equal(t, "STU001", analysis.StudentID)
	assert.Equal(t, 8.0, analysis.ConfidenceScore)
	assert.Equal(t, 6.5, analysis.AIExperienceScore)
	assert.Equal(t, 7.0, analysis.CommunicationScore)
	assert.Equal(t, models.EducationFinalYear, analysis.EducationStatus)
	assert.True(t, analysis.Success)
}

func TestParseAnalysis_ClampsScores(t *testing.T) {
	raw := `{"confidence_score": 14, "ai_experience_score": -2, "communication_score": 10,
		"education_status": "graduated", "detailed_analysis": ""}`

	analysis, err := ParseAnalysis("STU002", raw)
	require.NoError(t, err)

	assert.Equal(t, 10.0, analysis.ConfidenceScore)
	assert.Equal(t, 0.0, analysis.AIExperienceScore)
	assert.Equal(t, 10.0, analysis.CommunicationScore)
}

func TestParseAnalysis_RejectsNonJSON(t *testing.T) {
	_, err := ParseAnalysis("STU003", "I think the candidate is great!")
	assert.Error(t, err)
}

func TestNormalizeEducationStatus(t *testing.T) {
	tests := []struct {
		in   string
		want models.EducationStatus
	}{
		{"graduated", models.EducationGraduated},
		{"Recently graduated", models.EducationGraduated},
		{"Graduating", models.EducationGraduated},
		{"final year", models.EducationFinalYear},
		{"in my last year", models.EducationFinalYear},
		{"second year", models.EducationOther},
		{"unknown", models.EducationOther},
		{"", models.EducationOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeEducationStatus(tt.in), "input %q", tt.in)
	}
}

// MockOracle is defined in mock.go; the compile-time checks live here with
// the rest of the package's tests.
var (
	_ VideoScoringOracle = (*OpenAIOracle)(nil)
	_ VideoScoringOracle = (*MockOracle)(nil)
)

func TestMockOracle(t *testing.T) {
	m := NewMockOracle()
	m.Results["STU001"] = &models.VideoAnalysis{StudentID: "STU001", ConfidenceScore: 9, Success: true}

	got, err := m.Analyze(context.Background(), "STU001", "transcript text")
	require.NoError(t, err)
	assert.Equal(t, 9.0, got.ConfidenceScore)

	_, err = m.Analyze(context.Background(), "STU404", "transcript text")
	assert.Error(t, err)
}
