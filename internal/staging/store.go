// Package staging holds the pipeline's interprocess contract: one named
// document per stage boundary, fully replaced on each write. It is not a
// database; stages own their input document for the duration of a run.
package staging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Stage-boundary document names. The final summary is plain text, the rest
// are versioned JSON documents.
const (
	DocRawInput      = "raw_input.json"
	DocCleanedData   = "cleaned_data.json"
	DocAnalytics     = "analytics_result.json"
	DocReport        = "report_output.json"
	DocReportSummary = "report_summary.txt"
)

// ErrNotFound is returned when a requested document has not been written.
var ErrNotFound = errors.New("staging: document not found")

// Store is the staging area shared by the stages. Writes fully supersede the
// previous document.
type Store interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
}

// GetJSON reads a document and decodes it into v.
func GetJSON(ctx context.Context, s Store, name string, v any) error {
	raw, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// PutJSON encodes v and writes it as a document. Output is indented so that
// staged documents stay human-inspectable.
func PutJSON(ctx context.Context, s Store, name string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.Put(ctx, name, raw)
}

// IsKnownDocument reports whether name is one of the stage-boundary
// documents; the HTTP document endpoint refuses anything else.
func IsKnownDocument(name string) bool {
	switch name {
	case DocRawInput, DocCleanedData, DocAnalytics, DocReport, DocReportSummary:
		return true
	}
	return false
}
