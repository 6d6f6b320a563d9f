package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arogyalabs/cardioscope/internal/domain"
	"github.com/arogyalabs/cardioscope/internal/domain/assessment"
	"github.com/arogyalabs/cardioscope/internal/domain/prediction"
	"github.com/arogyalabs/cardioscope/internal/mlclient"
	"github.com/arogyalabs/cardioscope/pkg/metrics"
)

// Predictor is the remote scoring boundary. Satisfied by *mlclient.Client;
// narrowed to an interface so tests can stub the backend.
type Predictor interface {
	Predict(ctx context.Context, req *mlclient.PredictRequest) (*mlclient.PredictResponse, error)
}

// AssessCommand carries one scoring request through the service.
type AssessCommand struct {
	Patient   assessment.PatientData
	UserID    *uuid.UUID
	UserRole  string
	IPAddress string
	RequestID string
}

// AssessResult is the complete outcome of one assessment run: the local
// PURE-India assessment is always present; Score/Category/Confidence come
// from the ML backend when it answered, from the local engine otherwise.
type AssessResult struct {
	Assessment  assessment.RiskAssessment `json:"assessment"`
	Source      prediction.Source         `json:"source"`
	RiskScore   float64                   `json:"riskScore"`
	RiskLevel   string                    `json:"riskLevel"`
	Confidence  *float64                  `json:"confidence,omitempty"`
	ModelScores *prediction.ModelScores   `json:"modelScores,omitempty"`
	Warnings    []assessment.VitalCheck   `json:"warnings,omitempty"`
	Explanation string                    `json:"explanation"`
	StoredID    *uuid.UUID                `json:"storedId,omitempty"`
}

type AssessmentService struct {
	repo      prediction.Repository
	predictor Predictor
	auditSvc  *AuditService
	mts       *metrics.Collector
	log       *zap.Logger
}

func NewAssessmentService(repo prediction.Repository, predictor Predictor, auditSvc *AuditService, mts *metrics.Collector, log *zap.Logger) *AssessmentService {
	return &AssessmentService{
		repo:      repo,
		predictor: predictor,
		auditSvc:  auditSvc,
		mts:       mts,
		log:       log,
	}
}

// Assess runs the local PURE-India engine, consults the remote ensemble
// when available, and persists the outcome for authenticated callers.
// The remote backend failing is not an error: the local result is served
// tagged with source "simulation".
func (s *AssessmentService) Assess(ctx context.Context, cmd *AssessCommand) (*AssessResult, error) {
	local := assessment.CalculateRisk(cmd.Patient)

	result := &AssessResult{
		Assessment:  local,
		Source:      prediction.SourceSimulation,
		RiskScore:   local.RiskScore,
		RiskLevel:   string(local.RiskCategory),
		Warnings:    warningsOnly(assessment.ValidateVitals(cmd.Patient)),
		Explanation: assessment.Explain(local),
	}

	if s.predictor != nil {
		remote, err := s.predictor.Predict(ctx, mlclient.FromPatientData(cmd.Patient))
		if err != nil {
			s.mts.MLFallbacksTotal.Inc()
			s.log.Warn("ml backend unavailable, serving local assessment",
				zap.Error(err),
				zap.String("request_id", cmd.RequestID),
			)
		} else {
			result.Source = prediction.SourceMLBackend
			result.RiskScore = remote.RiskScore
			result.RiskLevel = remote.RiskLevel
			result.Confidence = &remote.Confidence
			result.ModelScores = modelScores(remote.ModelPredictions)
		}
	}

	s.mts.PredictionsTotal.WithLabelValues(string(local.RiskCategory), string(result.Source)).Inc()

	if cmd.UserID != nil {
		stored, err := s.store(ctx, cmd, result)
		if err != nil {
			// The assessment itself succeeded; persistence failure is
			// logged but not surfaced as a scoring failure.
			s.log.Error("failed to persist prediction", zap.Error(err))
		} else {
			result.StoredID = &stored.ID
		}
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       cmd.UserID,
		UserRole:     cmd.UserRole,
		Action:       domain.ActionAssess,
		ResourceType: "prediction",
		ResourceID:   storedIDString(result.StoredID),
		IPAddress:    cmd.IPAddress,
		RequestID:    cmd.RequestID,
		Detail:       fmt.Sprintf(`{"source":%q,"category":%q}`, result.Source, local.RiskCategory),
	})

	return result, nil
}

// AssessBatch scores a slice of patients sequentially, preserving order.
// Individual persistence failures do not abort the batch.
func (s *AssessmentService) AssessBatch(ctx context.Context, cmds []*AssessCommand) ([]*AssessResult, error) {
	if len(cmds) == 0 {
		return nil, &ValidationError{Fields: []string{"patients must not be empty"}}
	}

	results := make([]*AssessResult, 0, len(cmds))
	for _, cmd := range cmds {
		res, err := s.Assess(ctx, cmd)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 500
)

// History returns the caller's stored predictions, most recent first.
func (s *AssessmentService) History(ctx context.Context, callerID uuid.UUID, limit int) ([]*prediction.Prediction, int64, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}

	rows, err := s.repo.ListByUser(ctx, &prediction.ListQuery{UserID: callerID, Limit: limit})
	if err != nil {
		return nil, 0, fmt.Errorf("listing history: %w", err)
	}

	total, err := s.repo.CountByUser(ctx, callerID)
	if err != nil {
		return nil, 0, fmt.Errorf("counting history: %w", err)
	}

	return rows, total, nil
}

// GetPrediction fetches one stored prediction. Callers may only read their
// own rows unless they hold the admin or clinician role.
func (s *AssessmentService) GetPrediction(ctx context.Context, id uuid.UUID, caller *domain.Claims) (*prediction.Prediction, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if caller.Role == domain.RolePatient && p.UserID != caller.UserID {
		return nil, ErrForbidden
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: &caller.UserID, UserRole: string(caller.Role),
		Action: domain.ActionRead, ResourceType: "prediction", ResourceID: id.String(),
	})

	return p, nil
}

func (s *AssessmentService) store(ctx context.Context, cmd *AssessCommand, res *AssessResult) (*prediction.Prediction, error) {
	p := &prediction.Prediction{
		UserID:            *cmd.UserID,
		Source:            res.Source,
		RiskScore:         res.RiskScore,
		RiskCategory:      assessment.Categorize(res.RiskScore),
		Confidence:        res.Confidence,
		ModelScores:       res.ModelScores,
		Assessment:        &res.Assessment,
		PatientAge:        cmd.Patient.Age,
		PatientGender:     string(cmd.Patient.Gender),
		RestingBP:         cmd.Patient.SystolicBP,
		Cholesterol:       cmd.Patient.Cholesterol,
		MaxHeartRate:      cmd.Patient.MaxHeartRate,
		ExerciseAngina:    cmd.Patient.ExerciseAngina,
		OldPeak:           cmd.Patient.OldPeak,
		STSlope:           string(cmd.Patient.STSlope),
		FastingBloodSugar: fastingSugarFlag(cmd.Patient.BloodSugar),
		Recommendations:   res.Assessment.Recommendations,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func modelScores(preds map[string]float64) *prediction.ModelScores {
	if len(preds) == 0 {
		return nil
	}
	ms := &prediction.ModelScores{}
	if v, ok := preds["xgboost"]; ok {
		ms.XGBoost = &v
	}
	if v, ok := preds["random_forest"]; ok {
		ms.RandomForest = &v
	}
	if v, ok := preds["neural_network"]; ok {
		ms.NeuralNetwork = &v
	}
	return ms
}

// warningsOnly strips valid findings so responses carry only actionable
// checks.
func warningsOnly(checks []assessment.VitalCheck) []assessment.VitalCheck {
	var out []assessment.VitalCheck
	for _, c := range checks {
		if c.Severity != assessment.SeverityValid {
			out = append(out, c)
		}
	}
	return out
}

func fastingSugarFlag(bloodSugar *float64) *bool {
	if bloodSugar == nil {
		return nil
	}
	high := *bloodSugar > 120
	return &high
}

func storedIDString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
