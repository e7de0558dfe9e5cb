// Package ai holds the optional Gemini-backed helpers. They only ever see
// already-computed structured data and return advisory text or ordering
// suggestions; they are never the source of truth for a numeric field and
// every call can fail without affecting pipeline correctness.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// ErrRateLimited is returned when an action has exhausted its per-minute
// budget.
var ErrRateLimited = errors.New("ai: rate limit exceeded, try again in a minute")

const rateWindow = time.Minute

// Client wraps the Gemini API with a per-action rate limit.
type Client struct {
	genai   *genai.Client
	model   string
	limiter *Limiter
}

// NewClient builds a Client. An empty API key is an error here; callers that
// want graceful degradation check the key before constructing one.
func NewClient(ctx context.Context, apiKey, model string, rpm int) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ai: API key is required")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("ai: create client: %w", err)
	}
	return &Client{
		genai:   client,
		model:   model,
		limiter: NewLimiter(rpm, rateWindow),
	}, nil
}

// Generate runs one prompt under the named action's rate budget and returns
// the trimmed response text.
func (c *Client) Generate(ctx context.Context, action, prompt string) (string, error) {
	if !c.limiter.Allow(action) {
		return "", ErrRateLimited
	}
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("ai: %s: %w", action, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("ai: %s: empty response", action)
	}
	return text, nil
}

// StripFences removes a markdown code fence around a JSON response, which
// models emit even when told not to.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "```") {
		return s
	}
	parts := strings.Split(s, "```")
	if len(parts) < 2 {
		return s
	}
	body := parts[1]
	body = strings.TrimPrefix(body, "json")
	return strings.TrimSpace(body)
}
