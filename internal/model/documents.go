package model

// SchemaVersion tags every staging document with its field-layout contract.
const SchemaVersion = "1.0"

// RawInput is the document written by the ingest stage.
// Records is kept as []any on purpose: the clean stage is responsible for
// rejecting entries that are not objects, so ingest must not lose them.
type RawInput struct {
	SchemaVersion string         `json:"schema_version"`
	Records       []any          `json:"records"`
	Metadata      map[string]any `json:"metadata"`
}

// CleanedRecord is a validated, flattened input record.
type CleanedRecord struct {
	ID          string  `json:"id"`
	Timestamp   string  `json:"timestamp"`
	Source      string  `json:"source"`
	Visits      float64 `json:"visits"`
	Conversions float64 `json:"conversions"`
	Revenue     float64 `json:"revenue"`
}

// CleanedData is the document written by the clean stage.
type CleanedData struct {
	SchemaVersion         string          `json:"schema_version"`
	CleanedAt             string          `json:"cleaned_at"`
	RecordCount           int             `json:"record_count"`
	Records               []CleanedRecord `json:"records"`
	ValidationErrorsCount int             `json:"validation_errors_count"`
}

// MetricTotals holds the three aggregated figures.
type MetricTotals struct {
	Visits      float64 `json:"visits"`
	Conversions float64 `json:"conversions"`
	Revenue     float64 `json:"revenue"`
}

// SourceTotals holds per-source sub-totals.
type SourceTotals struct {
	Source      string  `json:"source"`
	Visits      float64 `json:"visits"`
	Conversions float64 `json:"conversions"`
	Revenue     float64 `json:"revenue"`
}

// AnalyticsResult is the document written by the analyze stage.
// Totals always equals the sum over BySource; BySource is sorted by source
// name ascending.
type AnalyticsResult struct {
	SchemaVersion string         `json:"schema_version"`
	ComputedAt    string         `json:"computed_at"`
	PeriodStart   string         `json:"period_start"`
	PeriodEnd     string         `json:"period_end"`
	Totals        MetricTotals   `json:"totals"`
	BySource      []SourceTotals `json:"by_source"`
	Summary       string         `json:"summary"`
}

// ReportPayload is the document written by the report stage and consumed by
// delivery. Metrics is a copy of AnalyticsResult.Totals, never recomputed.
type ReportPayload struct {
	SchemaVersion string         `json:"schema_version"`
	GeneratedAt   string         `json:"generated_at"`
	Title         string         `json:"title"`
	Period        string         `json:"period"`
	Metrics       MetricTotals   `json:"metrics"`
	BySource      []SourceTotals `json:"by_source"`
	Narrative     string         `json:"narrative"`
	Format        string         `json:"format"`
}
