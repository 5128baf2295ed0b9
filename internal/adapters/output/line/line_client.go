package line

import (
	"fmt"
	"net/http"
	"time"

	"line-callback/internal/domain"
	"line-callback/internal/ports/output"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure LineClientAdapter implements LineClient interface
var _ output.LineClient = (*LineClientAdapter)(nil)

const defaultTimeout = 5 * time.Second

// LineClientAdapter struct - Output adapter for LINE messaging platform
type LineClientAdapter struct {
	client *messaging_api.MessagingApiAPI
}

// NewLineClientAdapter func - Creates new LINE client adapter.
// endpoint overrides the messaging API base URL when not empty.
// A non-positive timeout falls back to 5 seconds.
func NewLineClientAdapter(channelToken, endpoint string, timeout time.Duration) (*LineClientAdapter, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	options := []messaging_api.MessagingApiAPIOption{
		messaging_api.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if endpoint != "" {
		options = append(options, messaging_api.WithEndpoint(endpoint))
	}

	client, err := messaging_api.NewMessagingApiAPI(channelToken, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE messaging API client: %w", err)
	}

	return &LineClientAdapter{
		client: client,
	}, nil
}

// ReplyMessage - Sends reply messages to LINE user via reply token
func (a *LineClientAdapter) ReplyMessage(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error) {
	// Convert domain messages to LINE SDK messages
	messages := make([]messaging_api.MessageInterface, 0, len(request.Messages))

	for _, msg := range request.Messages {
		lineMsg, err := a.convertToLineMessage(msg)
		if err != nil {
			logrus.Errorf("Failed to convert message: %v", err)
			continue
		}
		messages = append(messages, lineMsg)
	}

	if len(messages) == 0 {
		return nil, fmt.Errorf("no valid messages to send")
	}

	req := &messaging_api.ReplyMessageRequest{
		ReplyToken: request.ReplyToken,
		Messages:   messages,
	}

	// single attempt, a reply token cannot be used twice
	resp, err := a.client.ReplyMessage(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send reply message: %w", err)
	}

	result := &domain.LineMessageResponse{}
	if resp != nil {
		for _, sent := range resp.SentMessages {
			result.SentMessageIDs = append(result.SentMessageIDs, sent.Id)
		}
	}

	logrus.Infof("Successfully sent reply message with token: %s", request.ReplyToken)
	return result, nil
}

// convertToLineMessage - Helper function to convert domain message to LINE SDK message
func (a *LineClientAdapter) convertToLineMessage(msg domain.LineOutgoingMessage) (messaging_api.MessageInterface, error) {
	if msg.Type != domain.LineMessageTypeText {
		return nil, fmt.Errorf("unsupported message type: %s", msg.Type)
	}
	return &messaging_api.TextMessage{
		Text: msg.Text,
	}, nil
}
