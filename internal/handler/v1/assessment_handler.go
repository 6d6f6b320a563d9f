package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/arogyalabs/cardioscope/internal/domain/assessment"
	"github.com/arogyalabs/cardioscope/internal/handler/middleware"
	"github.com/arogyalabs/cardioscope/internal/service"
)

type AssessmentHandler struct {
	svc *service.AssessmentService
}

func NewAssessmentHandler(svc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{svc: svc}
}

// Assess handles POST /api/v1/predictions. The body is a PatientData
// record; all fields are optional and the engine applies its documented
// defaults. Authenticated callers get the result persisted to history.
func (h *AssessmentHandler) Assess(c *gin.Context) {
	var patient assessment.PatientData
	if !bindJSON(c, &patient) {
		return
	}

	result, err := h.svc.Assess(c.Request.Context(), h.command(c, patient))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, result)
}

type batchAssessRequest struct {
	Patients []assessment.PatientData `json:"patients"`
}

type batchAssessResponse struct {
	Results []*service.AssessResult `json:"results"`
	Count   int                     `json:"count"`
}

// AssessBatch handles POST /api/v1/predictions/batch.
func (h *AssessmentHandler) AssessBatch(c *gin.Context) {
	var req batchAssessRequest
	if !bindJSON(c, &req) {
		return
	}

	cmds := make([]*service.AssessCommand, 0, len(req.Patients))
	for _, p := range req.Patients {
		cmds = append(cmds, h.command(c, p))
	}

	results, err := h.svc.AssessBatch(c.Request.Context(), cmds)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, batchAssessResponse{Results: results, Count: len(results)})
}

type historyResponse struct {
	Predictions any   `json:"predictions"`
	Count       int   `json:"count"`
	HighRisk    int   `json:"highRisk"`
	Total       int64 `json:"total"`
}

// History handles GET /api/v1/predictions. Requires authentication.
func (h *AssessmentHandler) History(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	limit := parseQueryInt(c, "limit", 100)

	rows, total, err := h.svc.History(c.Request.Context(), claims.UserID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	highRisk := 0
	for _, p := range rows {
		if p.IsHighRisk() {
			highRisk++
		}
	}

	respondOK(c, historyResponse{Predictions: rows, Count: len(rows), HighRisk: highRisk, Total: total})
}

// GetPrediction handles GET /api/v1/predictions/:id.
func (h *AssessmentHandler) GetPrediction(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.GetPrediction(c.Request.Context(), id, middleware.ClaimsFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, p)
}

func (h *AssessmentHandler) command(c *gin.Context, patient assessment.PatientData) *service.AssessCommand {
	cmd := &service.AssessCommand{
		Patient:   patient,
		IPAddress: c.ClientIP(),
		RequestID: c.GetString("request_id"),
	}
	if claims := middleware.ClaimsFrom(c); claims != nil {
		cmd.UserID = &claims.UserID
		cmd.UserRole = string(claims.Role)
	}
	return cmd
}
