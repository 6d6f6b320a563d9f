package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arogyalabs/cardioscope/internal/config"
	"github.com/arogyalabs/cardioscope/internal/handler/middleware"
	v1 "github.com/arogyalabs/cardioscope/internal/handler/v1"
	"github.com/arogyalabs/cardioscope/internal/mlclient"
	"github.com/arogyalabs/cardioscope/internal/repository"
	"github.com/arogyalabs/cardioscope/internal/service"
	"github.com/arogyalabs/cardioscope/pkg/auth"
	"github.com/arogyalabs/cardioscope/pkg/database"
	"github.com/arogyalabs/cardioscope/pkg/logger"
	"github.com/arogyalabs/cardioscope/pkg/metrics"
	"github.com/arogyalabs/cardioscope/pkg/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	mts := metrics.NewCollector("cardioscope")
	mlClient := mlclient.New(cfg.ML, log.Named("mlclient"))

	auditSvc := service.NewAuditService(repository.NewAuditRepository(db), mts, log.Named("audit"))
	defer auditSvc.Shutdown()

	assessSvc := service.NewAssessmentService(
		repository.NewPredictionRepository(db),
		mlClient,
		auditSvc,
		mts,
		log.Named("assessment"),
	)
	reportSvc := service.NewReportService(auditSvc, mts, log.Named("report"))

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log.Named("http")),
		middleware.Metrics(mts),
		middleware.CORS(cfg.CORS),
		middleware.Identity(auth.NewVerifier(cfg.JWT)),
	)

	v1.Register(r,
		v1.NewAssessmentHandler(assessSvc),
		v1.NewReportHandler(reportSvc),
		v1.NewSystemHandler(db, mlClient, cfg.App.Version),
	)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
