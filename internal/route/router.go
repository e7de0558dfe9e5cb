// Package route decides which pipeline stage a caller's request should
// trigger. Routing never computes figures: an optional classifier may choose
// the route and compose display text, but numeric fields pass through the
// formatted payload untouched.
package route

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go-analytics-pipeline/internal/model"
)

// The fixed, closed action set. Anything else maps to ActionFullPipeline.
const (
	ActionIngest       = "ingest"
	ActionClean        = "clean"
	ActionAnalyze      = "analyze"
	ActionReport       = "report"
	ActionDeliver      = "deliver"
	ActionHealth       = "health"
	ActionFullPipeline = "full_pipeline"
)

var actionToTool = map[string]string{
	ActionIngest:       "ingest_data",
	ActionClean:        "clean_data",
	ActionAnalyze:      "analyze",
	ActionReport:       "generate_report",
	ActionDeliver:      "send_payload",
	ActionHealth:       "health_check",
	ActionFullPipeline: "full_pipeline",
}

// Allowed reports whether action is a member of the fixed action set.
func Allowed(action string) bool {
	_, ok := actionToTool[action]
	return ok
}

// Actions returns the allowed action names, for prompts and documentation.
func Actions() []string {
	return []string{
		ActionAnalyze, ActionClean, ActionDeliver, ActionFullPipeline,
		ActionHealth, ActionIngest, ActionReport,
	}
}

// Classifier is the optional strategy consulted for route selection and
// display text. Implementations must never be the source of truth for any
// numeric field.
type Classifier interface {
	Classify(ctx context.Context, action string, payloadKeys []string) (*model.RouteDecision, error)
}

// Router maps actions to stage identifiers. With no classifier configured it
// is fully deterministic.
type Router struct {
	classifier Classifier
	log        *slog.Logger
}

// New builds a Router. classifier may be nil.
func New(classifier Classifier, log *slog.Logger) *Router {
	return &Router{classifier: classifier, log: log}
}

// Route normalizes the requested action, optionally consults the
// classifier, and always returns a decision inside the fixed action set.
// Classifier failures of any kind fall back to the static mapping; the
// caller never sees an error.
func (r *Router) Route(ctx context.Context, req model.RouteRequest) model.RouteDecision {
	action := strings.ToLower(strings.TrimSpace(req.Action))
	if !Allowed(action) {
		action = ActionFullPipeline
	}

	if r.classifier == nil {
		return staticDecision(action, req.Payload)
	}

	keys := make([]string, 0, len(req.Payload))
	for k := range req.Payload {
		keys = append(keys, k)
	}

	decision, err := r.classifier.Classify(ctx, action, keys)
	if err != nil {
		r.log.Debug("classifier unavailable, using static map", "err", err)
		return staticDecision(action, req.Payload)
	}

	route := strings.ToLower(strings.TrimSpace(decision.Route))
	if !Allowed(route) {
		route = action
	}
	out := staticDecision(route, req.Payload)
	if decision.Message != "" {
		out.Message = decision.Message
	}
	if decision.FormattedPayload != nil {
		out.FormattedPayload = decision.FormattedPayload
	}
	return out
}

// staticDecision is the deterministic rule-based mapping.
func staticDecision(action string, payload map[string]any) model.RouteDecision {
	formatted := map[string]any{"action": action}
	for k, v := range payload {
		formatted[k] = v
	}
	return model.RouteDecision{
		Route:            action,
		Tool:             actionToTool[action],
		FormattedPayload: formatted,
		Message:          fmt.Sprintf("Routed to %s.", action),
	}
}
