package domain

import "time"

// LineEventType is the "type" of a webhook event
type LineEventType string

// Event types the webhook service dispatches on. Anything else is skipped.
const (
	LineEventTypeMessage  LineEventType = "message"
	LineEventTypeFollow   LineEventType = "follow"
	LineEventTypeUnfollow LineEventType = "unfollow"
)

// LineMessageType is the "type" of a message, incoming or outgoing
type LineMessageType string

// Only text is answered; image and sticker are recognised so they can be logged and ignored.
const (
	LineMessageTypeText    LineMessageType = "text"
	LineMessageTypeImage   LineMessageType = "image"
	LineMessageTypeSticker LineMessageType = "sticker"
)

// LineSourceType is where an event came from
type LineSourceType string

const (
	LineSourceTypeUser  LineSourceType = "user"
	LineSourceTypeGroup LineSourceType = "group"
	LineSourceTypeRoom  LineSourceType = "room"
)

// LineWebhookEvent is one entry of the "events" array
type LineWebhookEvent struct {
	ID         string // webhookEventId
	Type       LineEventType
	Timestamp  time.Time
	Source     LineSource
	ReplyToken string // one-time use, empty for events that cannot be replied to
	Message    *LineMessage
}

// IsText reports whether the event carries a text message
func (e LineWebhookEvent) IsText() bool {
	return e.Type == LineEventTypeMessage && e.Message != nil && e.Message.Type == LineMessageTypeText
}

// Delay is how long the event took to reach us. Zero when the timestamp is unknown.
func (e LineWebhookEvent) Delay(now time.Time) time.Duration {
	if e.Timestamp.IsZero() {
		return 0
	}
	return now.Sub(e.Timestamp)
}

// LineSource identifies the user and, for group chats, the group or room
type LineSource struct {
	Type    LineSourceType
	UserID  string
	GroupID string
	RoomID  string
}

// LineMessage is the message payload of a message event
type LineMessage struct {
	ID   string
	Type LineMessageType
	Text string
}
