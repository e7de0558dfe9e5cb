package route

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go-analytics-pipeline/internal/ai"
	"go-analytics-pipeline/internal/model"
)

// GeminiClassifier asks Gemini to classify a request into the fixed action
// set and compose display text. Its output is advisory: Route is
// re-validated by the Router and FormattedPayload is documentation-only.
type GeminiClassifier struct {
	client *ai.Client
}

// NewGeminiClassifier wraps an ai.Client.
func NewGeminiClassifier(client *ai.Client) *GeminiClassifier {
	return &GeminiClassifier{client: client}
}

func (g *GeminiClassifier) Classify(ctx context.Context, action string, payloadKeys []string) (*model.RouteDecision, error) {
	prompt := fmt.Sprintf(`You are a router. You must ONLY classify the user request and return a JSON object.
Allowed actions: %s.
User action: %q. User payload keys: %v.

Return ONLY valid JSON with exactly these keys (no calculations, no new metrics):
- "route": one of the allowed actions
- "message": one short sentence describing the route (e.g. "Running full pipeline.")
- "formatted_payload": copy the user payload for forwarding; do NOT add or change numeric fields.

Example: {"route": "full_pipeline", "message": "Running full pipeline.", "formatted_payload": {}}
`, strings.Join(Actions(), ", "), action, payloadKeys)

	text, err := g.client.Generate(ctx, "route", prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Route            string         `json:"route"`
		Message          string         `json:"message"`
		FormattedPayload map[string]any `json:"formatted_payload"`
	}
	if err := json.Unmarshal([]byte(ai.StripFences(text)), &parsed); err != nil {
		return nil, fmt.Errorf("route: parse classifier response: %w", err)
	}
	return &model.RouteDecision{
		Route:            parsed.Route,
		Message:          parsed.Message,
		FormattedPayload: parsed.FormattedPayload,
	}, nil
}
