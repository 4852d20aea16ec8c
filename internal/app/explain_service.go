package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/quotewall/internal/domain"
	"github.com/jsamuelsen/quotewall/internal/ports"
)

// ExplainService orchestrates AI-generated quote explanations.
// The result is returned to the caller and never persisted here;
// persistence only happens if the caller saves the text on a quote.
type ExplainService struct {
	provider ports.ExplanationProvider
	logger   *slog.Logger
}

// ExplainServiceConfig contains configuration for the explain service.
type ExplainServiceConfig struct {
	Provider ports.ExplanationProvider
	Logger   *slog.Logger
}

// NewExplainService creates a new explain service with the provided dependencies.
func NewExplainService(cfg ExplainServiceConfig) *ExplainService {
	return &ExplainService{
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Explain generates an explanation for the quote content. Empty content
// fails validation before any outbound call is made.
func (s *ExplainService) Explain(ctx context.Context, content, prompt string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", domain.NewValidationError("content", "cannot be empty")
	}

	explanation, err := s.provider.Explain(ctx, ports.ExplanationRequest{
		Content: content,
		Prompt:  strings.TrimSpace(prompt),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "explanation generation failed", slog.Any("error", err))
		return "", err
	}

	s.logger.InfoContext(ctx, "explanation generated",
		slog.Int("content_length", len(content)),
	)

	return explanation, nil
}
