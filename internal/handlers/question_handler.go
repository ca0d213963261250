package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/selection-crew/selection-service/internal/models"
	"github.com/selection-crew/selection-service/internal/services"
	"github.com/selection-crew/selection-service/internal/utils"
)

// QuestionHandler manages the quiz question set and related file transfer.
type QuestionHandler struct {
	BaseHandler
	questionService services.QuestionService
	importExport    services.ImportExportService
}

func NewQuestionHandler(
	questionService services.QuestionService,
	importExport services.ImportExportService,
	logger utils.Logger,
) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler:     NewBaseHandler(logger),
		questionService: questionService,
		importExport:    importExport,
	}
}

type storeQuestionsRequest struct {
	Questions []models.QuizQuestion `json:"questions"`
}

// StoreQuestions replaces the quiz question set
// @Summary Store quiz questions
// @Tags questions
// @Accept json
// @Produce json
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) StoreQuestions(c *gin.Context) {
	h.LogRequest(c, "Storing question set")

	var req storeQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	count, err := h.questionService.StoreQuestions(c.Request.Context(), req.Questions)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to store questions")
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Questions stored", gin.H{"count": count})
}

// GetQuestions returns the current question set
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	questions, skipped, err := h.questionService.GetQuestions(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err, "Failed to read questions")
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Questions retrieved", gin.H{
		"questions": questions,
		"skipped":   skipped,
	})
}

// ImportQuestions imports a question set from an uploaded CSV or Excel file
func (h *QuestionHandler) ImportQuestions(c *gin.Context) {
	h.LogRequest(c, "Importing questions from file")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "A file upload is required", err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	result, err := h.importExport.ImportQuestionsFromFile(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		h.HandleServiceError(c, err, "Question import failed")
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Questions imported", result)
}

// ExportResults streams the quiz results as an Excel workbook
func (h *QuestionHandler) ExportResults(c *gin.Context) {
	h.serveExcel(c, "quiz_results.xlsx", h.importExport.ExportResultsToExcel)
}

// ExportFinalSelection streams the final selection as an Excel workbook
func (h *QuestionHandler) ExportFinalSelection(c *gin.Context) {
	h.serveExcel(c, "final_selection.xlsx", h.importExport.ExportFinalSelectionToExcel)
}

func (h *QuestionHandler) serveExcel(c *gin.Context, filename string, export func(ctx context.Context) ([]byte, error)) {
	data, err := export(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err, "Export failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
