package pipeline

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"go-analytics-pipeline/internal/model"
	"go-analytics-pipeline/internal/staging"
	"go-analytics-pipeline/pkg/utils"
)

const (
	ingestFetchTimeout = 30 * time.Second
	userAgent          = "go-analytics-pipeline/1.0"
)

// runIngest pulls raw records from the configured source and overwrites the
// raw-input document. With neither a path nor a URL configured it stages an
// empty document (demo mode), which is a success, not an error.
func (r *Runner) runIngest(ctx context.Context) error {
	var doc model.RawInput

	switch {
	case r.cfg.SourcePath != "":
		info, err := os.Stat(r.cfg.SourcePath)
		if err != nil || info.IsDir() {
			return fmt.Errorf("%w: %s", ErrSourceNotFound, r.cfg.SourcePath)
		}
		if r.cfg.SourceFormat == "csv" {
			doc, err = r.ingestCSV(r.cfg.SourcePath)
		} else {
			doc, err = r.ingestJSONFile(r.cfg.SourcePath)
		}
		if err != nil {
			return err
		}

	case r.cfg.SourceURL != "":
		var err error
		doc, err = r.ingestURL(ctx, r.cfg.SourceURL)
		if err != nil {
			return err
		}

	default:
		doc = model.RawInput{
			SchemaVersion: model.SchemaVersion,
			Records:       []any{},
			Metadata: map[string]any{
				"generated_at": r.timestamp(),
				"source_label": "none",
			},
		}
	}

	if doc.Metadata == nil {
		doc.Metadata = map[string]any{
			"generated_at": r.timestamp(),
			"source_label": "unknown",
		}
	}
	if doc.Records == nil {
		doc.Records = []any{}
	}
	return staging.PutJSON(ctx, r.store, staging.DocRawInput, &doc)
}

// ingestCSV normalizes CSV rows into raw-input records: headers are
// lower-cased and underscored, metric columns coerced to floats (default 0).
func (r *Runner) ingestCSV(path string) (model.RawInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.RawInput{}, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true
	// Ragged rows are tolerated: missing columns coerce to their defaults.
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return model.RawInput{}, fmt.Errorf("read CSV header: %w", err)
	}
	for i, h := range header {
		header[i] = utils.NormalizeHeader(h)
	}

	records := []any{}
	rowIndex := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.RawInput{}, fmt.Errorf("read CSV row: %w", err)
		}

		fields := make(map[string]any, len(header))
		for i, h := range header {
			if i < len(row) {
				fields[h] = row[i]
			}
		}
		records = append(records, csvRowToRecord(fields, rowIndex, r.timestamp()))
		rowIndex++
	}

	return model.RawInput{
		SchemaVersion: model.SchemaVersion,
		Records:       records,
		Metadata: map[string]any{
			"generated_at": r.timestamp(),
			"source_label": "csv",
		},
	}, nil
}

// csvRowToRecord shapes one normalized CSV row into the raw-input record
// layout, with the three metric columns nested under "metrics".
func csvRowToRecord(fields map[string]any, index int, fallbackTS string) map[string]any {
	return map[string]any{
		"id":        utils.String(fields["id"], strconv.Itoa(index)),
		"timestamp": utils.String(fields["timestamp"], fallbackTS),
		"source":    utils.String(fields["source"], ""),
		"metrics": map[string]any{
			"visits":      utils.Float(fields["visits"], 0),
			"conversions": utils.Float(fields["conversions"], 0),
			"revenue":     utils.Float(fields["revenue"], 0),
		},
		"meta": map[string]any{},
	}
}

func (r *Runner) ingestJSONFile(path string) (model.RawInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.RawInput{}, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	doc, err := shapeJSON(raw)
	if err != nil {
		return model.RawInput{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

func (r *Runner) ingestURL(ctx context.Context, url string) (model.RawInput, error) {
	ctx, cancel := context.WithTimeout(ctx, ingestFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.RawInput{}, fmt.Errorf("%w: %v", ErrSourceUnreachable, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return model.RawInput{}, fmt.Errorf("%w: %v", ErrSourceUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return model.RawInput{}, fmt.Errorf("%w: %s returned %d", ErrSourceUnreachable, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.RawInput{}, fmt.Errorf("%w: %v", ErrSourceUnreachable, err)
	}
	doc, err := shapeJSON(body)
	if err != nil {
		return model.RawInput{}, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}

// shapeJSON normalizes an arbitrary JSON source into the Raw Input schema:
// a top-level list is wrapped as records; an object without "records" keeps
// its metadata but contributes zero records. A wrapped list carries no
// metadata of its own, so Metadata stays nil and the caller fills the
// default.
func shapeJSON(raw []byte) (model.RawInput, error) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return model.RawInput{}, err
	}

	switch data := decoded.(type) {
	case []any:
		return model.RawInput{
			SchemaVersion: model.SchemaVersion,
			Records:       data,
		}, nil
	case map[string]any:
		doc := model.RawInput{SchemaVersion: model.SchemaVersion}
		if records, ok := data["records"].([]any); ok {
			doc.Records = records
		} else {
			doc.Records = []any{}
		}
		if meta, ok := data["metadata"].(map[string]any); ok {
			doc.Metadata = meta
		}
		if version, ok := data["schema_version"].(string); ok && version != "" {
			doc.SchemaVersion = version
		}
		return doc, nil
	default:
		return model.RawInput{}, fmt.Errorf("unexpected JSON structure")
	}
}
