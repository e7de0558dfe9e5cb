package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go-analytics-pipeline/internal/model"
	"go-analytics-pipeline/internal/staging"
	"go-analytics-pipeline/pkg/utils"
)

// runClean validates and flattens the raw input into cleaned data. Raw
// entries that are not objects are dropped and counted; a bad field inside
// an otherwise valid record coerces to its default instead of failing the
// record. The output fully replaces any previous cleaned document.
func (r *Runner) runClean(ctx context.Context) error {
	var raw model.RawInput
	if err := staging.GetJSON(ctx, r.store, staging.DocRawInput, &raw); err != nil {
		if errors.Is(err, staging.ErrNotFound) {
			return fmt.Errorf("%w: %s (run ingest first)", ErrInputMissing, staging.DocRawInput)
		}
		return err
	}

	records := make([]model.CleanedRecord, 0, len(raw.Records))
	validationErrors := 0
	for _, entry := range raw.Records {
		obj, ok := entry.(map[string]any)
		if !ok {
			validationErrors++
			continue
		}
		metrics, _ := obj["metrics"].(map[string]any)
		records = append(records, model.CleanedRecord{
			ID:          utils.String(obj["id"], ""),
			Timestamp:   utils.String(obj["timestamp"], r.timestamp()),
			Source:      utils.String(obj["source"], ""),
			Visits:      utils.Float(metrics["visits"], 0),
			Conversions: utils.Float(metrics["conversions"], 0),
			Revenue:     utils.Float(metrics["revenue"], 0),
		})
	}

	doc := model.CleanedData{
		SchemaVersion:         model.SchemaVersion,
		CleanedAt:             r.timestamp(),
		RecordCount:           len(records),
		Records:               records,
		ValidationErrorsCount: validationErrors,
	}
	return staging.PutJSON(ctx, r.store, staging.DocCleanedData, &doc)
}
