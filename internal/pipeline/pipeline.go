package pipeline

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"go-analytics-pipeline/internal/config"
	"go-analytics-pipeline/internal/staging"
)

// Runner executes the pipeline stages against a staging store. Each run is
// strictly sequential: a stage only starts after the previous stage's output
// document is fully written. Concurrent runs against the same store are not
// supported.
type Runner struct {
	cfg    *config.Config
	store  staging.Store
	log    *slog.Logger
	client *http.Client

	// now is swapped out in tests for deterministic timestamps.
	now func() time.Time
}

// NewRunner wires a Runner. The shared http client carries no global
// timeout; every network call bounds itself with a per-request context.
func NewRunner(cfg *config.Config, store staging.Store, log *slog.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		store:  store,
		log:    log,
		client: &http.Client{},
		now:    time.Now,
	}
}

// timestamp renders the runner clock the way every staged document expects.
func (r *Runner) timestamp() string {
	return r.now().UTC().Format(time.RFC3339)
}

// Ingest runs the ingest stage and returns its exit status.
func (r *Runner) Ingest(ctx context.Context) int {
	return r.status("ingest", r.runIngest(ctx))
}

// Clean runs the clean stage and returns its exit status.
func (r *Runner) Clean(ctx context.Context) int {
	return r.status("clean", r.runClean(ctx))
}

// Analyze runs the analyze stage and returns its exit status.
func (r *Runner) Analyze(ctx context.Context) int {
	return r.status("analyze", r.runAnalyze(ctx))
}

// Report runs the report stage with optional title/period overrides.
func (r *Runner) Report(ctx context.Context, title, period string) int {
	return r.status("report", r.runReport(ctx, title, period))
}

// Deliver runs the delivery stage and returns its exit status.
func (r *Runner) Deliver(ctx context.Context) int {
	return r.status("deliver", r.runDeliver(ctx))
}

// Health runs the health check and returns its exit status.
func (r *Runner) Health(ctx context.Context) int {
	ok, problems := r.Check(ctx)
	if ok {
		return StatusOK
	}
	for _, p := range problems {
		r.log.Error("health check", "problem", p)
	}
	return StatusError
}

// RunAll executes the full pipeline in order and stops at the first failing
// stage, leaving downstream documents untouched.
func (r *Runner) RunAll(ctx context.Context) int {
	runID := uuid.New().String()
	log := r.log.With("run_id", runID)
	start := r.now()

	stages := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"ingest", r.runIngest},
		{"clean", r.runClean},
		{"analyze", r.runAnalyze},
		{"report", func(ctx context.Context) error { return r.runReport(ctx, "", "") }},
		{"deliver", r.runDeliver},
	}

	for _, stage := range stages {
		if err := stage.fn(ctx); err != nil {
			log.Error("pipeline stopped", "stage", stage.name, "err", err)
			return StatusError
		}
		log.Info("stage complete", "stage", stage.name)
	}

	log.Info("pipeline complete", "elapsed", time.Since(start).String())
	return StatusOK
}

// status collapses a stage error into the stage's exit code.
func (r *Runner) status(stage string, err error) int {
	if err != nil {
		r.log.Error("stage failed", "stage", stage, "err", err)
		return StatusError
	}
	return StatusOK
}
