package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go-analytics-pipeline/internal/model"
	"go-analytics-pipeline/internal/staging"
)

const defaultReportTitle = "Analytics Report"

// runReport renders the analytics result into the human-facing report
// payload. Metrics is a straight copy of the computed totals; the narrative
// is the analyze summary, or a local template fill when that is empty. No
// model-generated text ever enters the canonical report path.
func (r *Runner) runReport(ctx context.Context, title, period string) error {
	var analytics model.AnalyticsResult
	if err := staging.GetJSON(ctx, r.store, staging.DocAnalytics, &analytics); err != nil {
		if errors.Is(err, staging.ErrNotFound) {
			return fmt.Errorf("%w: %s (run analyze first)", ErrInputMissing, staging.DocAnalytics)
		}
		return err
	}

	if title == "" {
		title = defaultReportTitle
	}
	if period == "" {
		if analytics.PeriodStart != "" && analytics.PeriodEnd != "" {
			period = fmt.Sprintf("%s to %s", analytics.PeriodStart, analytics.PeriodEnd)
		} else {
			period = r.now().UTC().Format("2006-01-02")
		}
	}

	narrative := analytics.Summary
	if narrative == "" {
		narrative = fmt.Sprintf("Visits: %.0f, Conversions: %.0f, Revenue: $%.2f.",
			analytics.Totals.Visits, analytics.Totals.Conversions, analytics.Totals.Revenue)
	}

	bySource := analytics.BySource
	if bySource == nil {
		bySource = []model.SourceTotals{}
	}

	doc := model.ReportPayload{
		SchemaVersion: model.SchemaVersion,
		GeneratedAt:   r.timestamp(),
		Title:         title,
		Period:        period,
		Metrics:       analytics.Totals,
		BySource:      bySource,
		Narrative:     narrative,
		Format:        "json",
	}
	return staging.PutJSON(ctx, r.store, staging.DocReport, &doc)
}
