package ai

import (
	"context"
	"encoding/json"
	"fmt"
)

const maxPayloadChars = 2500

// SummarizeCampaign writes a short factual summary of analytics data.
func (c *Client) SummarizeCampaign(ctx context.Context, data map[string]any) (string, error) {
	payload, err := truncateJSON(data)
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf(`Summarize this campaign/analytics data in 2-3 sentences. Neutral, factual. No marketing fluff.
Data:
%s
`, payload)
	return c.Generate(ctx, "summarize_campaign", prompt)
}

// ExplainMetric returns a plain-language explanation of one metric.
func (c *Client) ExplainMetric(ctx context.Context, name string, value any, detail string) (string, error) {
	if len(detail) > 300 {
		detail = detail[:300]
	}
	prompt := fmt.Sprintf(`Explain this metric in 1-2 sentences. Plain language, neutral.
Metric: %s
Value: %v
Context: %s
`, name, value, detail)
	return c.Generate(ctx, "explain_metric", prompt)
}

// SuggestOptimizations proposes 2-4 concrete follow-ups based on trends.
// Every item is a suggestion, never a computed figure.
func (c *Client) SuggestOptimizations(ctx context.Context, data map[string]any) ([]string, error) {
	payload, err := truncateJSON(data)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(`Based on this data, suggest 2-4 concrete optimizations. Return ONLY valid JSON array of strings.
Label each as suggestion. No markdown.
Data:
%s
`, payload)
	text, err := c.Generate(ctx, "suggest_optimizations", prompt)
	if err != nil {
		return nil, err
	}

	var out []string
	if err := json.Unmarshal([]byte(StripFences(text)), &out); err != nil {
		return nil, fmt.Errorf("ai: suggest_optimizations: could not parse response")
	}
	return out, nil
}

// DashboardInsights observes activity stats in a few neutral sentences.
func (c *Client) DashboardInsights(ctx context.Context, stats map[string]any) (string, error) {
	payload, err := truncateJSON(stats)
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf(`Analyze this activity data. Write 2-4 short sentences. Identify: high density, overload, gaps, trends.
Neutral, technical. No motivational copy. Just observations.
Data:
%s
`, payload)
	return c.Generate(ctx, "dashboard_insights", prompt)
}

func truncateJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("ai: encode payload: %w", err)
	}
	if len(raw) > maxPayloadChars {
		raw = raw[:maxPayloadChars]
	}
	return string(raw), nil
}
