package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go-analytics-pipeline/internal/model"
	"go-analytics-pipeline/internal/staging"
)

// runAnalyze aggregates cleaned records into totals and per-source
// sub-totals. Plain floating-point addition; rounding happens only at
// presentation time in the summary string.
//
// Period bounds are the lexical min/max of the record timestamps, which is
// correct for ISO-8601 strings sharing one timezone offset. Mixed-offset
// input is a known limitation.
func (r *Runner) runAnalyze(ctx context.Context) error {
	var cleaned model.CleanedData
	if err := staging.GetJSON(ctx, r.store, staging.DocCleanedData, &cleaned); err != nil {
		if errors.Is(err, staging.ErrNotFound) {
			return fmt.Errorf("%w: %s (run clean first)", ErrInputMissing, staging.DocCleanedData)
		}
		return err
	}

	var totals model.MetricTotals
	perSource := make(map[string]*model.SourceTotals)
	var timestamps []string

	for _, rec := range cleaned.Records {
		src := strings.TrimSpace(rec.Source)
		if src == "" {
			src = "unknown"
		}

		totals.Visits += rec.Visits
		totals.Conversions += rec.Conversions
		totals.Revenue += rec.Revenue

		bucket, ok := perSource[src]
		if !ok {
			bucket = &model.SourceTotals{Source: src}
			perSource[src] = bucket
		}
		bucket.Visits += rec.Visits
		bucket.Conversions += rec.Conversions
		bucket.Revenue += rec.Revenue

		if rec.Timestamp != "" {
			timestamps = append(timestamps, rec.Timestamp)
		}
	}

	periodStart, periodEnd := r.timestamp(), r.timestamp()
	if len(timestamps) > 0 {
		periodStart, periodEnd = timestamps[0], timestamps[0]
		for _, ts := range timestamps[1:] {
			if ts < periodStart {
				periodStart = ts
			}
			if ts > periodEnd {
				periodEnd = ts
			}
		}
	}

	bySource := make([]model.SourceTotals, 0, len(perSource))
	for _, bucket := range perSource {
		bySource = append(bySource, *bucket)
	}
	sort.Slice(bySource, func(i, j int) bool { return bySource[i].Source < bySource[j].Source })

	doc := model.AnalyticsResult{
		SchemaVersion: model.SchemaVersion,
		ComputedAt:    r.timestamp(),
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		Totals:        totals,
		BySource:      bySource,
		Summary: fmt.Sprintf("Total visits: %.0f, conversions: %.0f, revenue: $%.2f",
			totals.Visits, totals.Conversions, totals.Revenue),
	}
	return staging.PutJSON(ctx, r.store, staging.DocAnalytics, &doc)
}
