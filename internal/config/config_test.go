package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.Environment != "development" {
		t.Errorf("environment = %s", cfg.App.Environment)
	}
	if cfg.Server.Address() != "0.0.0.0:8080" {
		t.Errorf("address = %s", cfg.Server.Address())
	}
	if cfg.ML.BaseURL != "http://localhost:8000" {
		t.Errorf("ml base url = %s", cfg.ML.BaseURL)
	}
	if !cfg.ML.RetryOnFailure || cfg.ML.BreakerMaxFail != 5 {
		t.Errorf("ml config = %+v", cfg.ML)
	}
	if cfg.JWT.Issuer != "cardioscope-api" {
		t.Errorf("jwt issuer = %s", cfg.JWT.Issuer)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ML_TIMEOUT", "250ms")
	t.Setenv("TRACING_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.ML.Timeout != 250*time.Millisecond {
		t.Errorf("ml timeout = %v", cfg.ML.Timeout)
	}
	if cfg.Tracing.Enabled {
		t.Error("tracing should be disabled")
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("origins = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_MalformedEnvFallsBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("ML_RETRY_ON_FAILURE", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if !cfg.ML.RetryOnFailure {
		t.Error("retry must keep its default on unparseable input")
	}
}

func TestValidate_ProductionRequirements(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("DB_SSLMODE", "disable")

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation failure")
	}
	msg := err.Error()
	for _, want := range []string{"JWT_SECRET", "DB_PASSWORD", "DB_SSLMODE"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error missing %s: %s", want, msg)
		}
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db.internal", Port: 5432, Name: "cardioscope",
		User: "svc", Password: "pw", SSLMode: "require",
	}
	dsn := d.DSN()
	for _, want := range []string{"host=db.internal", "dbname=cardioscope", "sslmode=require"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("dsn missing %q: %s", want, dsn)
		}
	}
}
