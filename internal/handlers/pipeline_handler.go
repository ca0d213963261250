package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/selection-crew/selection-service/internal/models"
	"github.com/selection-crew/selection-service/internal/services"
	"github.com/selection-crew/selection-service/internal/utils"
)

// PipelineHandler exposes the selection pipeline stages.
type PipelineHandler struct {
	BaseHandler
	evaluation services.EvaluationService
	shortlist  services.ShortlistService
	selection  services.SelectionService
	status     services.StatusService
}

func NewPipelineHandler(
	evaluation services.EvaluationService,
	shortlist services.ShortlistService,
	selection services.SelectionService,
	status services.StatusService,
	logger utils.Logger,
) *PipelineHandler {
	return &PipelineHandler{
		BaseHandler: NewBaseHandler(logger),
		evaluation:  evaluation,
		shortlist:   shortlist,
		selection:   selection,
		status:      status,
	}
}

type evaluateRequest struct {
	Submissions []models.StudentSubmission `json:"submissions" validate:"required,min=1"`
}

// Evaluate scores a batch of quiz submissions
// @Summary Evaluate quiz submissions
// @Tags pipeline
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse{data=services.EvaluationReport}
// @Failure 400 {object} ErrorResponse
// @Router /pipeline/evaluate [post]
func (h *PipelineHandler) Evaluate(c *gin.Context) {
	h.LogRequest(c, "Evaluating quiz submissions")

	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}
	if len(req.Submissions) == 0 {
		h.RespondWithError(c, http.StatusBadRequest, "At least one submission is required", nil)
		return
	}

	report, err := h.evaluation.Evaluate(c.Request.Context(), req.Submissions)
	if err != nil {
		h.HandleServiceError(c, err, "Evaluation failed")
		return
	}

	h.invalidateStatus(c)
	h.RespondWithSuccess(c, http.StatusOK, "Evaluation completed", report)
}

// Shortlist ranks quiz results and notifies the top students
// @Summary Shortlist top students
// @Tags pipeline
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse{data=services.ShortlistReport}
// @Router /pipeline/shortlist [post]
func (h *PipelineHandler) Shortlist(c *gin.Context) {
	h.LogRequest(c, "Running shortlist")

	// An empty body runs with the configured defaults.
	var req services.ShortlistRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	report, err := h.shortlist.Shortlist(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err, "Shortlist failed")
		return
	}

	h.invalidateStatus(c)
	h.RespondWithSuccess(c, http.StatusOK, "Shortlist completed", report)
}

type videoStatusRequest struct {
	VideoLink string `json:"video_link"`
}

// UpdateVideoStatus records a student's video upload
func (h *PipelineHandler) UpdateVideoStatus(c *gin.Context) {
	studentID := c.Param("student_id")
	h.LogRequest(c, "Updating video status", "student_id", studentID)

	var req videoStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	if err := h.shortlist.UpdateVideoStatus(c.Request.Context(), studentID, req.VideoLink); err != nil {
		h.HandleServiceError(c, err, "Video status update failed")
		return
	}

	h.invalidateStatus(c)
	h.RespondWithSuccess(c, http.StatusOK, "Video status updated", gin.H{"student_id": studentID})
}

// AnalyzeVideos scores every pending interview transcript
func (h *PipelineHandler) AnalyzeVideos(c *gin.Context) {
	h.LogRequest(c, "Analyzing interview videos")

	report, err := h.selection.AnalyzeVideos(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err, "Video analysis failed")
		return
	}

	h.invalidateStatus(c)
	h.RespondWithSuccess(c, http.StatusOK, "Video analysis completed", report)
}

type finalSelectionRequest struct {
	Limit int `json:"limit"`
}

// SelectFinal runs the final ranking and notifies the winners
// @Summary Run final selection
// @Tags pipeline
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse{data=services.FinalSelectionReport}
// @Router /pipeline/final-selection [post]
func (h *PipelineHandler) SelectFinal(c *gin.Context) {
	h.LogRequest(c, "Running final selection")

	var req finalSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	report, err := h.selection.SelectFinal(c.Request.Context(), req.Limit)
	if err != nil {
		h.HandleServiceError(c, err, "Final selection failed")
		return
	}

	h.invalidateStatus(c)
	h.RespondWithSuccess(c, http.StatusOK, "Final selection completed", report)
}

// SelectionReport renders the current final-selection summary as plain text
func (h *PipelineHandler) SelectionReport(c *gin.Context) {
	h.LogRequest(c, "Generating selection report")

	text, err := h.selection.GenerateSelectionReport(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err, "Report generation failed")
		return
	}

	c.String(http.StatusOK, text)
}

func (h *PipelineHandler) invalidateStatus(c *gin.Context) {
	if err := h.status.InvalidateStatus(c.Request.Context()); err != nil {
		h.logger.Warn("Failed to invalidate status cache", "error", err)
	}
}
