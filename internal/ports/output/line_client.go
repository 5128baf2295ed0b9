package output

import "line-callback/internal/domain"

// LineClient interface - Output port
// Defines what the application needs from LINE messaging platform
type LineClient interface {
	// ReplyMessage sends reply messages to LINE user via reply token.
	// Reply tokens are single use, a second call with the same token fails.
	ReplyMessage(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error)
}
