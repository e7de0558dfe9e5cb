package model

// RouteRequest is the payload for POST /api/v1/route.
type RouteRequest struct {
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload"`
	Options map[string]any `json:"options"`
}

// RouteDecision is returned by the router. Route is always a member of the
// fixed action set; FormattedPayload is display-only metadata and is never
// fed back into stage computation.
type RouteDecision struct {
	Route            string         `json:"route"`
	Tool             string         `json:"tool"`
	FormattedPayload map[string]any `json:"formatted_payload"`
	Message          string         `json:"message"`
}
