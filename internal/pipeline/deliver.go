package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-analytics-pipeline/internal/model"
	"go-analytics-pipeline/internal/staging"
)

// runDeliver pushes the report payload to the configured webhook and writes
// the plain-text summary. The summary is written unconditionally once the
// payload has loaded; a failed webhook still fails the stage afterwards.
func (r *Runner) runDeliver(ctx context.Context) error {
	var payload model.ReportPayload
	if err := staging.GetJSON(ctx, r.store, staging.DocReport, &payload); err != nil {
		if errors.Is(err, staging.ErrNotFound) {
			return fmt.Errorf("%w: %s (run report first)", ErrInputMissing, staging.DocReport)
		}
		return err
	}

	if err := r.writeSummary(ctx, &payload); err != nil {
		return err
	}

	if r.cfg.WebhookURL != "" {
		if err := r.postWebhook(ctx, &payload); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) writeSummary(ctx context.Context, payload *model.ReportPayload) error {
	metricsJSON, err := json.Marshal(payload.Metrics)
	if err != nil {
		return fmt.Errorf("encode metrics: %w", err)
	}
	lines := []string{
		payload.Title,
		"Period: " + payload.Period,
		"Metrics: " + string(metricsJSON),
		"Narrative: " + payload.Narrative,
	}
	return r.store.Put(ctx, staging.DocReportSummary, []byte(strings.Join(lines, "\n")))
}

func (r *Runner) postWebhook(ctx context.Context, payload *model.ReportPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode report payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.DeliveryTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWebhookFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWebhookFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: webhook returned %d", ErrWebhookFailed, resp.StatusCode)
	}
	return nil
}
