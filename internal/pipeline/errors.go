package pipeline

import "errors"

// Stage exit statuses. Stages are total functions from filesystem/network
// state to a status code; no error escapes an exported entry point.
const (
	StatusOK    = 0
	StatusError = 1
)

// Error taxonomy for per-stage failures. Malformed records are not errors:
// the clean stage counts and drops them locally.
var (
	// ErrInputMissing means a stage's required input document is absent;
	// the earlier stage has to run first.
	ErrInputMissing = errors.New("upstream document missing")
	// ErrSourceNotFound means DATA_SOURCE_PATH does not point at a file.
	ErrSourceNotFound = errors.New("data source not found")
	// ErrSourceUnreachable means DATA_SOURCE_URL could not be fetched
	// within the bounded timeout.
	ErrSourceUnreachable = errors.New("data source unreachable")
	// ErrWebhookFailed means the delivery webhook returned >=400 or the
	// POST failed outright.
	ErrWebhookFailed = errors.New("webhook delivery failed")
)
