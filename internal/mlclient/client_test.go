package mlclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/arogyalabs/cardioscope/internal/config"
)

func testClient(t *testing.T, url string, retry bool) *Client {
	t.Helper()
	return New(config.MLConfig{
		BaseURL:        url,
		Timeout:        2 * time.Second,
		RetryOnFailure: retry,
		BreakerMaxFail: 3,
		BreakerCooloff: 100 * time.Millisecond,
	}, zap.NewNop())
}

func TestPredict_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/predict" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"risk_score": 62.5,
			"risk_level": "high",
			"confidence": 88.2,
			"model_predictions": {"xgboost": 0.64, "random_forest": 0.61, "neural_network": 0.63},
			"ensemble_prediction": 0.63
		}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, false)
	resp, err := c.Predict(context.Background(), &PredictRequest{Age: 45, Sex: 1})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if resp.RiskScore != 62.5 || resp.RiskLevel != "high" {
		t.Errorf("resp = %+v", resp)
	}
	if len(resp.ModelPredictions) != 3 {
		t.Errorf("model predictions = %v", resp.ModelPredictions)
	}
}

func TestPredict_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, false)
	_, err := c.Predict(context.Background(), &PredictRequest{})
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestPredict_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := testClient(t, srv.URL, false)
	_, err := c.Predict(context.Background(), &PredictRequest{})
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestPredict_RetryOnTransientFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			// Kill the connection mid-response to force a transport error.
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Fatal("response writer does not support hijacking")
			}
			conn, _, err := hj.Hijack()
			if err != nil {
				t.Fatalf("hijack: %v", err)
			}
			conn.Close()
			return
		}
		w.Write([]byte(`{"risk_score": 10, "risk_level": "low"}`))
	}))
	srv.Start()
	defer srv.Close()

	c := testClient(t, srv.URL, true)
	resp, err := c.Predict(context.Background(), &PredictRequest{})
	if err != nil {
		t.Fatalf("Predict after retry: %v", err)
	}
	if resp.RiskScore != 10 {
		t.Errorf("resp = %+v", resp)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("backend saw %d calls, want 2", got)
	}
}

func TestPredict_NoRetryWhenDisabled(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		hj := w.(http.Hijacker)
		conn, _, _ := hj.Hijack()
		conn.Close()
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, false)
	if _, err := c.Predict(context.Background(), &PredictRequest{}); err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("backend saw %d calls, want 1", got)
	}
}

func TestPredict_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, false)
	for i := 0; i < 5; i++ {
		if _, err := c.Predict(context.Background(), &PredictRequest{}); !errors.Is(err, ErrBackendUnavailable) {
			t.Fatalf("call %d: err = %v", i, err)
		}
	}
	// After the trip threshold the breaker fails fast without reaching the
	// backend.
	if got := calls.Load(); got != 3 {
		t.Errorf("backend saw %d calls, want 3 before the circuit opened", got)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"status": "healthy", "models_loaded": {"xgboost": true}}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, false)
	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if h.Status != "healthy" || !h.ModelsLoaded["xgboost"] {
		t.Errorf("health = %+v", h)
	}
}

func TestModelInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/model-info" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"version": "2.1.0", "ensemble_weights": {"xgboost": 0.4}}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, false)
	info, err := c.ModelInfo(context.Background())
	if err != nil {
		t.Fatalf("ModelInfo: %v", err)
	}
	if info.Version != "2.1.0" || info.EnsembleWeights["xgboost"] != 0.4 {
		t.Errorf("info = %+v", info)
	}
}
