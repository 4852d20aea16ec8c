// Package acl implements the Anti-Corruption Layer pattern for external
// services. ACL adapters translate between external API models and domain
// models, protecting the domain from external system changes.
package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jsamuelsen/quotewall/internal/adapters/clients"
	"github.com/jsamuelsen/quotewall/internal/domain"
	"github.com/jsamuelsen/quotewall/internal/platform/logging"
	"github.com/jsamuelsen/quotewall/internal/ports"
)

// serviceName identifies the provider in logs and domain errors.
const serviceName = "ai-provider"

// credentialMessage is the user-facing text for a missing or rejected key.
// It deliberately carries no provider detail.
const credentialMessage = "AI generation unavailable: missing or invalid credential"

// systemPrompt frames every completion request.
const systemPrompt = "You are a helpful assistant who explains quotes clearly and concisely."

// completionTemperature balances variety against coherence for short
// explanatory text.
const completionTemperature = 0.7

// ExplainClientConfig contains configuration for the explanation client.
type ExplainClientConfig struct {
	// Client is the HTTP client to use for requests.
	// The client's BaseURL should be set to the provider API root and its
	// AuthFunc should inject the bearer credential.
	Client *clients.Client

	// APIKey is the provider credential. When empty, Explain fails with a
	// configuration error without making any outbound call.
	APIKey string

	// Model is the completion model name.
	Model string

	// DefaultPrompt is the instruction used when the caller supplies none.
	DefaultPrompt string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// ExplainClient implements ports.ExplanationProvider against an
// OpenAI-compatible chat completions endpoint.
type ExplainClient struct {
	client        *clients.Client
	apiKey        string
	model         string
	defaultPrompt string
	logger        *slog.Logger
}

// NewExplainClient creates a new explanation client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewExplainClient(cfg ExplainClientConfig) *ExplainClient {
	if cfg.Client == nil {
		panic("ExplainClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ExplainClient{
		client:        cfg.Client,
		apiKey:        cfg.APIKey,
		model:         cfg.Model,
		defaultPrompt: cfg.DefaultPrompt,
		logger:        logger,
	}
}

// chatRequest is the external DTO sent to the chat completions endpoint.
// This is an internal type - never exposed outside the ACL.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the external DTO from the chat completions endpoint.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Explain requests a generated explanation for the quote content.
// Implements ports.ExplanationProvider.
func (c *ExplainClient) Explain(ctx context.Context, req ports.ExplanationRequest) (string, error) {
	if c.apiKey == "" {
		c.logger.WarnContext(ctx, "explanation requested without provider credential")
		return "", domain.NewConfigurationError(serviceName, credentialMessage)
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		prompt = c.defaultPrompt
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt + "\n\nQuote: " + req.Content},
		},
		Temperature: completionTemperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding completion request: %w", err)
	}

	const path = "/chat/completions"
	c.logger.Log(ctx, logging.LevelTrace, "starting request",
		slog.String("path", path),
		slog.String("model", c.model))

	resp, err := c.client.Post(ctx, path, bytes.NewReader(body))
	if err != nil {
		return "", mapClientError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return "", c.handleErrorResponse(resp)
	}

	return c.parseCompletion(resp.Body)
}

// parseCompletion extracts the explanation text from the provider response.
func (c *ExplainClient) parseCompletion(body io.Reader) (string, error) {
	var external chatResponse

	err := json.NewDecoder(body).Decode(&external)
	if err != nil {
		return "", domain.NewUnavailableError(serviceName, "malformed provider response")
	}

	if len(external.Choices) == 0 {
		return "", domain.NewUnavailableError(serviceName, "provider returned no completion")
	}

	return strings.TrimSpace(external.Choices[0].Message.Content), nil
}

// handleErrorResponse converts HTTP error responses to domain errors.
// Credential rejections are configuration errors the operator must fix;
// everything else is treated as a transient provider failure. Raw provider
// error text is logged, never surfaced.
func (c *ExplainClient) handleErrorResponse(resp *http.Response) error {
	if errResp := ParseErrorResponse(resp.Body); errResp != nil {
		c.logger.Warn("provider API error",
			slog.Int("status_code", resp.StatusCode),
			slog.String("provider_message", errResp.GetMessage()),
		)
	} else {
		c.logger.Warn("provider API error",
			slog.Int("status_code", resp.StatusCode),
		)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.NewConfigurationError(serviceName, credentialMessage)
	case http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")
	default:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("provider returned HTTP %d", resp.StatusCode))
	}
}
