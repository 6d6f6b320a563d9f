package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arogyalabs/cardioscope/internal/handler/middleware"
	"github.com/arogyalabs/cardioscope/internal/service"
)

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

type parseReportRequest struct {
	Text string `json:"text"`
}

// ParseReport handles POST /api/v1/reports/parse.
func (h *ReportHandler) ParseReport(c *gin.Context) {
	var req parseReportRequest
	if !bindJSON(c, &req) {
		return
	}

	var userID *uuid.UUID
	var role string
	if claims := middleware.ClaimsFrom(c); claims != nil {
		userID = &claims.UserID
		role = string(claims.Role)
	}

	result, err := h.svc.ParseReport(c.Request.Context(), req.Text, userID, role, c.ClientIP(), c.GetString("request_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, result)
}
