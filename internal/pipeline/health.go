package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"
)

// healthProbeTimeout is deliberately shorter than the ingest fetch timeout:
// this is a liveness probe, not a data pull.
const healthProbeTimeout = 5 * time.Second

// requiredEnv lists environment variables that must be present for any run.
// Currently empty: the pipeline supports a no-source demo mode.
var requiredEnv = []string{}

// Check validates configuration reachability without doing any pipeline
// work: required env present, source path a real file, source URL
// responding within the probe timeout. It never mutates the staging store.
func (r *Runner) Check(ctx context.Context) (bool, []string) {
	var problems []string

	for _, key := range requiredEnv {
		if os.Getenv(key) == "" {
			problems = append(problems, fmt.Sprintf("missing required env: %s", key))
		}
	}

	if r.cfg.SourcePath != "" {
		info, err := os.Stat(r.cfg.SourcePath)
		if err != nil || info.IsDir() {
			problems = append(problems, fmt.Sprintf("DATA_SOURCE_PATH file not found: %s", r.cfg.SourcePath))
		}
	}

	if r.cfg.SourceURL != "" {
		if err := r.probe(ctx, r.cfg.SourceURL); err != nil {
			problems = append(problems, fmt.Sprintf("DATA_SOURCE_URL unreachable: %v", err))
		}
	}

	return len(problems) == 0, problems
}

func (r *Runner) probe(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}
