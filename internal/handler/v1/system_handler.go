package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arogyalabs/cardioscope/internal/mlclient"
)

// SystemHandler serves liveness, readiness and ML model metadata.
type SystemHandler struct {
	db      *gorm.DB
	ml      *mlclient.Client
	version string
}

func NewSystemHandler(db *gorm.DB, ml *mlclient.Client, version string) *SystemHandler {
	return &SystemHandler{db: db, ml: ml, version: version}
}

// Health handles GET /healthz. Always 200 while the process is up.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}

// Ready handles GET /readyz. The database is a hard dependency; the ML
// backend is reported but never fails readiness, because the local engine
// covers for it.
func (h *SystemHandler) Ready(c *gin.Context) {
	status := http.StatusOK
	dbStatus := "ok"

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		dbStatus = "unreachable"
		status = http.StatusServiceUnavailable
	}

	mlStatus := "ok"
	if h.ml != nil {
		if health, err := h.ml.Health(c.Request.Context()); err != nil {
			mlStatus = "unreachable"
		} else if health.Status != "healthy" {
			mlStatus = health.Status
		}
	} else {
		mlStatus = "disabled"
	}

	c.JSON(status, gin.H{
		"database":   dbStatus,
		"ml_backend": mlStatus,
	})
}

// ModelInfo handles GET /api/v1/model-info, proxying the remote ensemble's
// metadata.
func (h *SystemHandler) ModelInfo(c *gin.Context) {
	if h.ml == nil {
		respondError(c, http.StatusServiceUnavailable, "ml backend disabled")
		return
	}

	info, err := h.ml.ModelInfo(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, info)
}
