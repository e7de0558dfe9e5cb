package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-analytics-pipeline/internal/config"
	"go-analytics-pipeline/internal/logger"
	"go-analytics-pipeline/internal/model"
	"go-analytics-pipeline/internal/staging"
)

var testClock = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestRunner(t *testing.T, cfg *config.Config) (*Runner, *staging.MemStore) {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{SourceFormat: "json", DeliveryTimeout: 2 * time.Second}
	}
	store := staging.NewMemStore()
	r := NewRunner(cfg, store, logger.New("test"))
	r.now = func() time.Time { return testClock }
	return r, store
}

func stageRaw(t *testing.T, store staging.Store, records []any) {
	t.Helper()
	doc := model.RawInput{
		SchemaVersion: model.SchemaVersion,
		Records:       records,
		Metadata:      map[string]any{"source_label": "test"},
	}
	require.NoError(t, staging.PutJSON(context.Background(), store, staging.DocRawInput, &doc))
}

func record(id, ts, source string, visits, conversions, revenue float64) map[string]any {
	return map[string]any{
		"id":        id,
		"timestamp": ts,
		"source":    source,
		"metrics": map[string]any{
			"visits":      visits,
			"conversions": conversions,
			"revenue":     revenue,
		},
	}
}

func TestFullPipelineOverMemoryStore(t *testing.T) {
	r, store := newTestRunner(t, nil)
	ctx := context.Background()

	// No source configured: ingest stages the demo document and the rest
	// of the pipeline runs over zero records.
	require.Equal(t, StatusOK, r.RunAll(ctx))

	for _, name := range []string{
		staging.DocRawInput,
		staging.DocCleanedData,
		staging.DocAnalytics,
		staging.DocReport,
		staging.DocReportSummary,
	} {
		_, err := store.Get(ctx, name)
		require.NoError(t, err, "document %s should exist after a full run", name)
	}

	var report model.ReportPayload
	require.NoError(t, staging.GetJSON(ctx, store, staging.DocReport, &report))
	require.Equal(t, "Analytics Report", report.Title)
	require.Equal(t, model.MetricTotals{}, report.Metrics)
}

func TestStagesRequireUpstreamDocuments(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		run  func(r *Runner) int
	}{
		{"clean", func(r *Runner) int { return r.Clean(ctx) }},
		{"analyze", func(r *Runner) int { return r.Analyze(ctx) }},
		{"report", func(r *Runner) int { return r.Report(ctx, "", "") }},
		{"deliver", func(r *Runner) int { return r.Deliver(ctx) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRunner(t, nil)
			require.Equal(t, StatusError, tt.run(r))
		})
	}
}

func TestScenarioSingleRecordFlowsThrough(t *testing.T) {
	r, store := newTestRunner(t, nil)
	ctx := context.Background()

	stageRaw(t, store, []any{
		record("1", "2024-01-01T00:00:00Z", "ads", 10, 2, 50.5),
	})

	require.Equal(t, StatusOK, r.Clean(ctx))
	require.Equal(t, StatusOK, r.Analyze(ctx))

	var cleaned model.CleanedData
	require.NoError(t, staging.GetJSON(ctx, store, staging.DocCleanedData, &cleaned))
	require.Equal(t, 1, cleaned.RecordCount)
	require.Equal(t, 10.0, cleaned.Records[0].Visits)
	require.Equal(t, 2.0, cleaned.Records[0].Conversions)
	require.Equal(t, 50.5, cleaned.Records[0].Revenue)

	var analytics model.AnalyticsResult
	require.NoError(t, staging.GetJSON(ctx, store, staging.DocAnalytics, &analytics))
	require.Equal(t, model.MetricTotals{Visits: 10, Conversions: 2, Revenue: 50.5}, analytics.Totals)
	require.Len(t, analytics.BySource, 1)
	require.Equal(t, "ads", analytics.BySource[0].Source)
	require.Equal(t, "2024-01-01T00:00:00Z", analytics.PeriodStart)
	require.Equal(t, "2024-01-01T00:00:00Z", analytics.PeriodEnd)
}
