package output

import (
	"context"

	"line-callback/internal/domain"
)

// EvaluatorClient interface - Output port
// Defines what the application needs from the remote evaluation webhook.
type EvaluatorClient interface {
	// Evaluate posts an empty JSON object to the evaluator and returns the
	// `message` field of its JSON response. It makes exactly one attempt.
	// Any failure is reported wrapped in domain.ErrEvaluatorUnavailable.
	Evaluate(ctx context.Context) (*domain.EvaluationResult, error)
}
