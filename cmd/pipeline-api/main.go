package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-analytics-pipeline/internal/ai"
	"go-analytics-pipeline/internal/api"
	"go-analytics-pipeline/internal/api/handler"
	"go-analytics-pipeline/internal/config"
	"go-analytics-pipeline/internal/logger"
	"go-analytics-pipeline/internal/pipeline"
	"go-analytics-pipeline/internal/route"
	"go-analytics-pipeline/internal/staging"
)

// @title Analytics Pipeline API
// @version 1.0
// @description Deterministic analytics pipeline with routing and optional AI enrichment
// @BasePath /api/v1
func main() {
	log := logger.New("pipeline-api")

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	store, err := staging.Open(cfg.StagingBackend, cfg.StagingDir)
	if err != nil {
		log.Error("open staging store", slog.Any("err", err))
		os.Exit(1)
	}

	runner := pipeline.NewRunner(cfg, store, log)

	var aiClient *ai.Client
	var classifier route.Classifier
	if cfg.GeminiAPIKey != "" {
		aiClient, err = ai.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AIRateLimitRPM)
		if err != nil {
			// The router must keep working without the classifier.
			log.Warn("AI client unavailable, routing stays rule-based", slog.Any("err", err))
		} else {
			classifier = route.NewGeminiClassifier(aiClient)
		}
	}

	h := &handler.Handler{
		Runner: runner,
		Router: route.New(classifier, log),
		Store:  store,
		AI:     aiClient,
		Log:    log,
	}

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           api.NewRouter(h),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		log.Info("api server starting", slog.String("addr", cfg.BindAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}
