// Package mlclient talks to the remote cardiac-prediction ensemble. The
// backend is an optional scoring oracle: every call site must be prepared
// for it to be down and fall back to the local PURE-India engine.
package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/arogyalabs/cardioscope/internal/config"
)

var (
	// ErrBackendUnavailable wraps any transport failure, timeout, open
	// circuit breaker or non-2xx response. Callers treat it as the signal
	// to fall back to the local engine.
	ErrBackendUnavailable = errors.New("ml backend unavailable")
)

// PredictRequest is the fixed 13-feature record the ensemble was trained
// on. Field names and encodings match the backend contract exactly.
type PredictRequest struct {
	Age      float64 `json:"age"`      // years
	Sex      int     `json:"sex"`      // 0=female, 1=male
	CP       int     `json:"cp"`       // chest pain type 0-3
	Trestbps float64 `json:"trestbps"` // resting blood pressure (mm Hg)
	Chol     float64 `json:"chol"`     // serum cholesterol (mg/dl)
	FBS      int     `json:"fbs"`      // fasting blood sugar > 120 mg/dl
	Restecg  int     `json:"restecg"`  // resting ECG 0-2
	Thalach  float64 `json:"thalach"`  // max heart rate achieved
	Exang    int     `json:"exang"`    // exercise induced angina
	Oldpeak  float64 `json:"oldpeak"`  // ST depression
	Slope    int     `json:"slope"`    // peak exercise ST slope 0-2
	CA       int     `json:"ca"`       // major vessels 0-4
	Thal     int     `json:"thal"`     // thalassemia 0-3
}

// PredictResponse mirrors the backend's prediction payload.
type PredictResponse struct {
	RiskScore          float64            `json:"risk_score"` // 0-100
	RiskLevel          string             `json:"risk_level"`
	Confidence         float64            `json:"confidence"` // 0-100
	ModelPredictions   map[string]float64 `json:"model_predictions"`
	EnsemblePrediction float64            `json:"ensemble_prediction"`
	PredictionTimeMs   float64            `json:"prediction_time_ms"`
	Timestamp          string             `json:"timestamp"`
}

// HealthResponse mirrors the backend's /health payload.
type HealthResponse struct {
	Status       string          `json:"status"`
	ModelsLoaded map[string]bool `json:"models_loaded"`
}

// ModelInfoResponse mirrors the backend's /model-info payload.
type ModelInfoResponse struct {
	Models          map[string]map[string]any `json:"models"`
	EnsembleWeights map[string]float64        `json:"ensemble_weights"`
	TrainingDate    string                    `json:"training_date"`
	Version         string                    `json:"version"`
}

type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*PredictResponse]
	retry   bool
	log     *zap.Logger
}

func New(cfg config.MLConfig, log *zap.Logger) *Client {
	c := &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		retry:   cfg.RetryOnFailure,
		log:     log,
	}

	c.breaker = gobreaker.NewCircuitBreaker[*PredictResponse](gobreaker.Settings{
		Name:    "ml-backend",
		Timeout: cfg.BreakerCooloff,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(cfg.BreakerMaxFail)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("ml backend circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return c
}

// Predict requests a score from the remote ensemble. Transient network
// failures get exactly one retry; persistent failures and non-2xx responses
// surface as ErrBackendUnavailable so callers can fall back locally.
func (c *Client) Predict(ctx context.Context, req *PredictRequest) (*PredictResponse, error) {
	resp, err := c.breaker.Execute(func() (*PredictResponse, error) {
		out, err := c.predictOnce(ctx, req)
		if err != nil && c.retry && isTransient(err) {
			c.log.Debug("retrying ml backend call after transient failure", zap.Error(err))
			out, err = c.predictOnce(ctx, req)
		}
		return out, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	return resp, nil
}

func (c *Client) predictOnce(ctx context.Context, req *PredictRequest) (*PredictResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding predict request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		io.Copy(io.Discard, httpResp.Body)
		return nil, fmt.Errorf("unexpected status %d", httpResp.StatusCode)
	}

	var out PredictResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding predict response: %w", err)
	}
	return &out, nil
}

// Health probes the backend's /health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.getJSON(ctx, "/health", &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	return &out, nil
}

// ModelInfo fetches model metadata from the backend's /model-info endpoint.
func (c *Client) ModelInfo(ctx context.Context) (*ModelInfoResponse, error) {
	var out ModelInfoResponse
	if err := c.getJSON(ctx, "/model-info", &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// isTransient reports whether an error is worth a single retry: timeouts
// and connection-level failures, not protocol-level rejections.
func isTransient(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, context.DeadlineExceeded)
}
