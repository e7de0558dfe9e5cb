package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-analytics-pipeline/internal/model"
	"go-analytics-pipeline/internal/staging"
)

func stageCleaned(t *testing.T, store staging.Store, records []model.CleanedRecord) {
	t.Helper()
	doc := model.CleanedData{
		SchemaVersion: model.SchemaVersion,
		CleanedAt:     testClock.Format(time.RFC3339),
		RecordCount:   len(records),
		Records:       records,
	}
	require.NoError(t, staging.PutJSON(context.Background(), store, staging.DocCleanedData, &doc))
}

func TestAnalyzeTotalsEqualSumOfBySource(t *testing.T) {
	r, store := newTestRunner(t, nil)
	ctx := context.Background()

	stageCleaned(t, store, []model.CleanedRecord{
		{ID: "1", Timestamp: "2024-01-03T00:00:00Z", Source: "ads", Visits: 10.1, Conversions: 2, Revenue: 50.55},
		{ID: "2", Timestamp: "2024-01-01T00:00:00Z", Source: "email", Visits: 3.3, Conversions: 1, Revenue: 9.99},
		{ID: "3", Timestamp: "2024-01-02T00:00:00Z", Source: "ads", Visits: 7.7, Conversions: 0.5, Revenue: 0.01},
		{ID: "4", Timestamp: "2024-01-04T00:00:00Z", Source: "search", Visits: 100, Conversions: 12, Revenue: 1234.56},
	})

	require.Equal(t, StatusOK, r.Analyze(ctx))

	var result model.AnalyticsResult
	require.NoError(t, staging.GetJSON(ctx, store, staging.DocAnalytics, &result))

	var visits, conversions, revenue float64
	for _, s := range result.BySource {
		visits += s.Visits
		conversions += s.Conversions
		revenue += s.Revenue
	}
	require.InDelta(t, result.Totals.Visits, visits, 1e-9)
	require.InDelta(t, result.Totals.Conversions, conversions, 1e-9)
	require.InDelta(t, result.Totals.Revenue, revenue, 1e-9)

	// Sorted ascending by source name.
	require.Equal(t, []string{"ads", "email", "search"}, []string{
		result.BySource[0].Source, result.BySource[1].Source, result.BySource[2].Source,
	})

	// Lexical min/max of the timestamps.
	require.Equal(t, "2024-01-01T00:00:00Z", result.PeriodStart)
	require.Equal(t, "2024-01-04T00:00:00Z", result.PeriodEnd)
}

func TestAnalyzeBucketsBlankSourceUnderUnknown(t *testing.T) {
	r, store := newTestRunner(t, nil)
	ctx := context.Background()

	stageCleaned(t, store, []model.CleanedRecord{
		{ID: "1", Timestamp: "2024-01-01T00:00:00Z", Source: "", Visits: 4},
		{ID: "2", Timestamp: "2024-01-01T00:00:00Z", Source: "   ", Visits: 6},
	})

	require.Equal(t, StatusOK, r.Analyze(ctx))

	var result model.AnalyticsResult
	require.NoError(t, staging.GetJSON(ctx, store, staging.DocAnalytics, &result))
	require.Len(t, result.BySource, 1)
	require.Equal(t, "unknown", result.BySource[0].Source)
	require.Equal(t, 10.0, result.BySource[0].Visits)
}

func TestAnalyzeEmptyInputDefaultsPeriodToNow(t *testing.T) {
	r, store := newTestRunner(t, nil)
	ctx := context.Background()

	stageCleaned(t, store, nil)
	require.Equal(t, StatusOK, r.Analyze(ctx))

	var result model.AnalyticsResult
	require.NoError(t, staging.GetJSON(ctx, store, staging.DocAnalytics, &result))

	want := testClock.Format(time.RFC3339)
	require.Equal(t, want, result.PeriodStart)
	require.Equal(t, want, result.PeriodEnd)
	require.Empty(t, result.BySource)
	require.Equal(t, "Total visits: 0, conversions: 0, revenue: $0.00", result.Summary)
}

func TestAnalyzeSummaryFormat(t *testing.T) {
	r, store := newTestRunner(t, nil)
	ctx := context.Background()

	stageCleaned(t, store, []model.CleanedRecord{
		{ID: "1", Timestamp: "2024-01-01T00:00:00Z", Source: "ads", Visits: 1234, Conversions: 56, Revenue: 789.123},
	})
	require.Equal(t, StatusOK, r.Analyze(ctx))

	var result model.AnalyticsResult
	require.NoError(t, staging.GetJSON(ctx, store, staging.DocAnalytics, &result))
	require.Equal(t, "Total visits: 1234, conversions: 56, revenue: $789.12", result.Summary)
}
