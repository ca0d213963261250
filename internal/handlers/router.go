package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/selection-crew/selection-service/internal/services"
	"github.com/selection-crew/selection-service/internal/utils"
)

type HandlerManager struct {
	pipelineHandler *PipelineHandler
	questionHandler *QuestionHandler
	statusHandler   *StatusHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		pipelineHandler: NewPipelineHandler(
			serviceManager.Evaluation(),
			serviceManager.Shortlist(),
			serviceManager.Selection(),
			serviceManager.Status(),
			logger,
		),
		questionHandler: NewQuestionHandler(serviceManager.Question(), serviceManager.ImportExport(), logger),
		statusHandler:   NewStatusHandler(serviceManager.Status(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Question routes
		questions := v1.Group("/questions")
		{
			questions.POST("", hm.questionHandler.StoreQuestions)
			questions.GET("", hm.questionHandler.GetQuestions)
			questions.POST("/import", hm.questionHandler.ImportQuestions)
		}

		// Pipeline routes
		pipeline := v1.Group("/pipeline")
		{
			pipeline.POST("/evaluate", hm.pipelineHandler.Evaluate)
			pipeline.POST("/shortlist", hm.pipelineHandler.Shortlist)
			pipeline.PUT("/videos/:student_id", hm.pipelineHandler.UpdateVideoStatus)
			pipeline.POST("/videos/analyze", hm.pipelineHandler.AnalyzeVideos)
			pipeline.POST("/final-selection", hm.pipelineHandler.SelectFinal)
			pipeline.GET("/report", hm.pipelineHandler.SelectionReport)
		}

		// Export routes
		export := v1.Group("/export")
		{
			export.GET("/results", hm.questionHandler.ExportResults)
			export.GET("/final-selection", hm.questionHandler.ExportFinalSelection)
		}

		// Status route
		v1.GET("/status", hm.statusHandler.GetStatus)
	}
}
