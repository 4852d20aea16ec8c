package ports

import "context"

// ExplanationRequest carries the inputs for a generated quote explanation.
// Content is the quote text and is required. Prompt optionally overrides
// the default instruction given to the model.
type ExplanationRequest struct {
	Content string
	Prompt  string
}

// ExplanationProvider generates a short explanation for a quote by calling
// an external language model service.
//
// Error contract:
//   - domain.ErrConfiguration when the provider credential is missing or
//     rejected (operator-fixable, retrying will not help)
//   - domain.ErrUnavailable when the provider times out or fails
//     transiently (retrying may help)
type ExplanationProvider interface {
	// Explain returns the generated explanation text.
	// The implementation should respect context deadlines and cancellation.
	Explain(ctx context.Context, req ExplanationRequest) (string, error)
}
