package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/selection-crew/selection-service/internal/services"
	"github.com/selection-crew/selection-service/internal/utils"
)

// StatusHandler reports pipeline progress.
type StatusHandler struct {
	BaseHandler
	statusService services.StatusService
}

func NewStatusHandler(statusService services.StatusService, logger utils.Logger) *StatusHandler {
	return &StatusHandler{
		BaseHandler:   NewBaseHandler(logger),
		statusService: statusService,
	}
}

// GetStatus returns per-stage record counts
// @Summary Get pipeline status
// @Tags status
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.ProcessStatus}
// @Router /status [get]
func (h *StatusHandler) GetStatus(c *gin.Context) {
	status, err := h.statusService.GetStatus(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err, "Failed to compute pipeline status")
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Pipeline status", status)
}
