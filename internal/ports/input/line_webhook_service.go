package input

import (
	"context"

	"line-callback/internal/domain"
)

// LineWebhookService interface - Input port (use case)
// Defines what the application can do with LINE webhook events
type LineWebhookService interface {
	// HandleWebhook dispatches every event of a verified webhook request.
	// A failed reply surfaces as domain.ErrDownstream, and the remaining events are still handled.
	HandleWebhook(ctx context.Context, request domain.LineWebhookRequest) error
}
