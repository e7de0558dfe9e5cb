package route_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"go-analytics-pipeline/internal/logger"
	"go-analytics-pipeline/internal/model"
	"go-analytics-pipeline/internal/route"
)

func TestRouteAlwaysReturnsAllowedAction(t *testing.T) {
	r := route.New(nil, logger.New("test"))

	tests := []struct {
		name   string
		action string
		want   string
	}{
		{"known action", "analyze", "analyze"},
		{"upper case", "INGEST", "ingest"},
		{"surrounding space", "  clean  ", "clean"},
		{"empty", "", "full_pipeline"},
		{"garbage", "drop all tables", "full_pipeline"},
		{"near miss", "analyse", "full_pipeline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := r.Route(context.Background(), model.RouteRequest{Action: tt.action})
			require.Equal(t, tt.want, decision.Route)
			require.True(t, route.Allowed(decision.Route))
			require.NotEmpty(t, decision.Tool)
		})
	}
}

func TestRouteWithoutClassifierIsDeterministic(t *testing.T) {
	r := route.New(nil, logger.New("test"))
	req := model.RouteRequest{Action: "report", Payload: map[string]any{"title": "Q1"}}

	first := r.Route(context.Background(), req)
	second := r.Route(context.Background(), req)
	require.Equal(t, first, second)
	require.Equal(t, "generate_report", first.Tool)
	require.Equal(t, "Q1", first.FormattedPayload["title"])
	require.Equal(t, "report", first.FormattedPayload["action"])
}

type stubClassifier struct {
	decision *model.RouteDecision
	err      error
}

func (s *stubClassifier) Classify(context.Context, string, []string) (*model.RouteDecision, error) {
	return s.decision, s.err
}

func TestClassifierFailureFallsBackSilently(t *testing.T) {
	r := route.New(&stubClassifier{err: errors.New("network down")}, logger.New("test"))

	decision := r.Route(context.Background(), model.RouteRequest{Action: "deliver"})
	require.Equal(t, "deliver", decision.Route)
	require.Equal(t, "send_payload", decision.Tool)
	require.Equal(t, "Routed to deliver.", decision.Message)
}

func TestClassifierOutOfSetRouteIsDiscarded(t *testing.T) {
	r := route.New(&stubClassifier{decision: &model.RouteDecision{
		Route:   "delete_everything",
		Message: "Doing something unexpected.",
	}}, logger.New("test"))

	decision := r.Route(context.Background(), model.RouteRequest{Action: "clean"})
	// The invalid route is replaced by the requested action; the display
	// text is still allowed through.
	require.Equal(t, "clean", decision.Route)
	require.Equal(t, "clean_data", decision.Tool)
	require.Equal(t, "Doing something unexpected.", decision.Message)
}

func TestClassifierMayRerouteWithinTheSet(t *testing.T) {
	r := route.New(&stubClassifier{decision: &model.RouteDecision{
		Route:            "health",
		Message:          "Checking environment.",
		FormattedPayload: map[string]any{"note": "probe"},
	}}, logger.New("test"))

	decision := r.Route(context.Background(), model.RouteRequest{Action: "garbage"})
	require.Equal(t, "health", decision.Route)
	require.Equal(t, "health_check", decision.Tool)
	require.Equal(t, map[string]any{"note": "probe"}, decision.FormattedPayload)
}
