package domain

// DTOs (Data Transfer Objects) - Domain layer request/response structures

type (
	// LineWebhookRequest struct - Domain LINE webhook request DTO
	LineWebhookRequest struct {
		// Destination is the bot user ID the events were sent to
		Destination string
		Events      []LineWebhookEvent
	}

	// LineReplyMessageRequest struct - Domain LINE reply message request DTO
	LineReplyMessageRequest struct {
		ReplyToken string
		Messages   []LineOutgoingMessage
	}

	// LineOutgoingMessage struct - Domain LINE outgoing message DTO
	LineOutgoingMessage struct {
		Type LineMessageType
		Text string
	}

	// LineMessageResponse struct - IDs the platform assigned to the sent messages
	LineMessageResponse struct {
		SentMessageIDs []string
	}

	// EvaluationResult struct - Message relayed from the remote evaluator
	EvaluationResult struct {
		Message string
	}
)

// NewTextReply builds a single text message reply for the given token
func NewTextReply(replyToken, text string) LineReplyMessageRequest {
	return LineReplyMessageRequest{
		ReplyToken: replyToken,
		Messages: []LineOutgoingMessage{
			{Type: LineMessageTypeText, Text: text},
		},
	}
}
