package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arogyalabs/cardioscope/internal/domain"
	"github.com/arogyalabs/cardioscope/internal/domain/report"
	"github.com/arogyalabs/cardioscope/pkg/metrics"
)

// maxReportBytes bounds pasted report text. Extracted PDF text for a lab
// report is a few KB; anything beyond this is not a report.
const maxReportBytes = 1 << 20

// ParseReportResult pairs the extraction output with its form projection.
type ParseReportResult struct {
	Result   report.ParseResult `json:"result"`
	FormData map[string]any     `json:"formData"`
}

type ReportService struct {
	auditSvc *AuditService
	mts      *metrics.Collector
	log      *zap.Logger
}

func NewReportService(auditSvc *AuditService, mts *metrics.Collector, log *zap.Logger) *ReportService {
	return &ReportService{auditSvc: auditSvc, mts: mts, log: log}
}

// ParseReport runs the field extraction engine over pasted report text and
// projects the recognized fields into a flat form record.
func (s *ReportService) ParseReport(ctx context.Context, text string, userID *uuid.UUID, userRole, ip, requestID string) (*ParseReportResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Fields: []string{"text is required"}}
	}
	if len(text) > maxReportBytes {
		return nil, &ValidationError{Fields: []string{"text exceeds the maximum report size"}}
	}

	res, err := report.Parse(text)
	if err != nil {
		return nil, err
	}

	s.mts.ReportsParsedTotal.Inc()
	s.mts.ParsedFieldsPerText.Observe(float64(len(res.ParsedFields)))
	s.mts.UnknownFieldsPerText.Observe(float64(len(res.UnknownFields)))

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       userID,
		UserRole:     userRole,
		Action:       domain.ActionParse,
		ResourceType: "report",
		IPAddress:    ip,
		RequestID:    requestID,
	})

	s.log.Debug("report parsed",
		zap.Int("parsed_fields", len(res.ParsedFields)),
		zap.Int("unknown_fields", len(res.UnknownFields)),
	)

	return &ParseReportResult{
		Result:   res,
		FormData: report.ConvertToFormData(res.ParsedFields),
	}, nil
}
