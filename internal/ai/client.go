// Package ai wraps the Gemini API behind the four security tool adapters:
// password generation, strength analysis, phishing detection, and dark-web
// monitoring. Every adapter takes a structured request and returns either a
// structured payload matching a declared schema or an error the caller
// converts into a uniform failure result.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// Generator produces schema-constrained JSON from a prompt. Implemented by
// GeminiClient; tests substitute a fake.
type Generator interface {
	Generate(ctx context.Context, prompt string, schema *genai.Schema) ([]byte, error)
}

// ClientConfig bounds each generation call. The source this tool set comes
// from awaited responses without any timeout or retry; both are deliberate
// hardening here and are configurable.
type ClientConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	Retries int
}

// GeminiClient implements Generator on the Gemini API with a per-call
// timeout and bounded retry with exponential backoff.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	retries int
}

// NewGeminiClient constructs a GeminiClient.
func NewGeminiClient(ctx context.Context, cfg ClientConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		retries: cfg.Retries,
	}, nil
}

// Generate sends the prompt and returns the raw JSON response constrained
// by schema. Attempts are retried with exponential backoff until the
// retry budget or the caller's context runs out.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, schema *genai.Schema) ([]byte, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	backoff := time.Second
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.Models.GenerateContent(callCtx, c.model, contents, config)
		cancel()
		if err != nil {
			lastErr = err
			continue
		}

		text := resp.Text()
		if text == "" {
			lastErr = errors.New("empty model response")
			continue
		}
		return []byte(text), nil
	}
	return nil, fmt.Errorf("gemini call failed after %d attempts: %w", c.retries+1, lastErr)
}

// decodeInto parses a schema-constrained response into out.
func decodeInto(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("malformed model response: %w", err)
	}
	return nil
}
