package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arogyalabs/cardioscope/internal/domain"
	"github.com/arogyalabs/cardioscope/internal/domain/prediction"
	"github.com/arogyalabs/cardioscope/internal/mlclient"
	"github.com/arogyalabs/cardioscope/pkg/metrics"
)

// One collector for the whole test binary; prometheus panics on duplicate
// registration.
var testMetrics = metrics.NewCollector("service_test")

// memPredictionRepo is an in-memory prediction.Repository.
type memPredictionRepo struct {
	mu   sync.Mutex
	rows []*prediction.Prediction

	createErr error
}

func (r *memPredictionRepo) Create(_ context.Context, p *prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.rows = append(r.rows, p)
	return nil
}

func (r *memPredictionRepo) GetByID(_ context.Context, id uuid.UUID) (*prediction.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.rows {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, prediction.ErrPredictionNotFound
}

func (r *memPredictionRepo) ListByUser(_ context.Context, q *prediction.ListQuery) ([]*prediction.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*prediction.Prediction
	for i := len(r.rows) - 1; i >= 0 && len(out) < q.Limit; i-- {
		if r.rows[i].UserID == q.UserID {
			out = append(out, r.rows[i])
		}
	}
	return out, nil
}

func (r *memPredictionRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.rows {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

// memAuditRepo is an in-memory AuditRepository.
type memAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (r *memAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// stubPredictor scripts the remote backend.
type stubPredictor struct {
	resp  *mlclient.PredictResponse
	err   error
	calls int
}

func (s *stubPredictor) Predict(context.Context, *mlclient.PredictRequest) (*mlclient.PredictResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func newTestAuditService() (*AuditService, *memAuditRepo) {
	repo := &memAuditRepo{}
	return NewAuditService(repo, testMetrics, zap.NewNop()), repo
}

func newTestAssessmentService(predictor Predictor) (*AssessmentService, *memPredictionRepo, *AuditService) {
	repo := &memPredictionRepo{}
	auditSvc, _ := newTestAuditService()
	svc := NewAssessmentService(repo, predictor, auditSvc, testMetrics, zap.NewNop())
	return svc, repo, auditSvc
}
