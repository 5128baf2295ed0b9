package domain

import (
	"testing"
	"time"
)

func TestLineWebhookEventIsText(t *testing.T) {
	tests := []struct {
		name  string
		event LineWebhookEvent
		want  bool
	}{
		{
			name:  "text message",
			event: LineWebhookEvent{Type: LineEventTypeMessage, Message: &LineMessage{Type: LineMessageTypeText, Text: "hi"}},
			want:  true,
		},
		{
			name:  "empty text is still text",
			event: LineWebhookEvent{Type: LineEventTypeMessage, Message: &LineMessage{Type: LineMessageTypeText}},
			want:  true,
		},
		{
			name:  "sticker",
			event: LineWebhookEvent{Type: LineEventTypeMessage, Message: &LineMessage{Type: LineMessageTypeSticker}},
		},
		{
			name:  "message without payload",
			event: LineWebhookEvent{Type: LineEventTypeMessage},
		},
		{
			name:  "follow",
			event: LineWebhookEvent{Type: LineEventTypeFollow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.IsText(); got != tt.want {
				t.Errorf("IsText() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewTextReply(t *testing.T) {
	req := NewTextReply("token-1", "hello")

	if req.ReplyToken != "token-1" {
		t.Errorf("expected reply token token-1, got: %s", req.ReplyToken)
	}
	if len(req.Messages) != 1 {
		t.Fatalf("expected 1 message, got: %d", len(req.Messages))
	}
	if req.Messages[0].Type != LineMessageTypeText || req.Messages[0].Text != "hello" {
		t.Errorf("unexpected message: %+v", req.Messages[0])
	}
}

func TestLineWebhookEventDelay(t *testing.T) {
	now := time.UnixMilli(1700000005000)

	event := LineWebhookEvent{Timestamp: time.UnixMilli(1700000000000)}
	if got := event.Delay(now); got != 5*time.Second {
		t.Errorf("expected 5s delay, got: %v", got)
	}

	if got := (LineWebhookEvent{}).Delay(now); got != 0 {
		t.Errorf("expected zero delay without timestamp, got: %v", got)
	}
}
