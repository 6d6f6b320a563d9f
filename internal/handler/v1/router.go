package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/arogyalabs/cardioscope/internal/handler/middleware"
	"github.com/arogyalabs/cardioscope/pkg/metrics"
)

// Register wires all v1 routes onto the engine.
func Register(r *gin.Engine, assessH *AssessmentHandler, reportH *ReportHandler, sysH *SystemHandler) {
	r.GET("/healthz", sysH.Health)
	r.GET("/readyz", sysH.Ready)
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api/v1")
	{
		api.POST("/reports/parse", reportH.ParseReport)

		api.POST("/predictions", assessH.Assess)
		api.POST("/predictions/batch", assessH.AssessBatch)
		api.GET("/predictions", middleware.RequireAuth(), assessH.History)
		api.GET("/predictions/:id", middleware.RequireAuth(), assessH.GetPrediction)

		api.GET("/model-info", sysH.ModelInfo)
	}
}
