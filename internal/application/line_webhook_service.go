package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"line-callback/internal/domain"
	"line-callback/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// eventHandler handles a single webhook event
type eventHandler func(ctx context.Context, event domain.LineWebhookEvent) error

// MessageSettings struct - Reply behavior of the webhook service
type MessageSettings struct {
	// EchoTemplate formats the reply to non-trigger text, %s is replaced by the text
	EchoTemplate string
	// Triggers are matched exactly (case-sensitive) against incoming text
	Triggers []string
	// EvaluatorErrorMessage is replied when the evaluator cannot answer
	EvaluatorErrorMessage string
}

// LineWebhookService struct - Application service implementing LINE webhook use cases
type LineWebhookService struct {
	lineClient output.LineClient
	evaluator  output.EvaluatorClient

	echoTemplate          string
	triggers              map[string]struct{}
	evaluatorErrorMessage string

	handlers map[domain.LineEventType]eventHandler
}

// NewLineWebhookService func - Creates new LINE webhook service.
// evaluator may be nil, in which case trigger phrases are answered with the evaluator error message.
func NewLineWebhookService(lineClient output.LineClient, evaluator output.EvaluatorClient, settings MessageSettings) *LineWebhookService {
	triggers := make(map[string]struct{}, len(settings.Triggers))
	for _, t := range settings.Triggers {
		triggers[t] = struct{}{}
	}

	s := &LineWebhookService{
		lineClient:            lineClient,
		evaluator:             evaluator,
		echoTemplate:          settings.EchoTemplate,
		triggers:              triggers,
		evaluatorErrorMessage: settings.EvaluatorErrorMessage,
	}
	s.handlers = map[domain.LineEventType]eventHandler{
		domain.LineEventTypeMessage:  s.handleMessageEvent,
		domain.LineEventTypeFollow:   s.handleFollowEvent,
		domain.LineEventTypeUnfollow: s.handleUnfollowEvent,
	}
	return s
}

// HandleWebhook func - Use case: Handle incoming webhook events from LINE
func (s *LineWebhookService) HandleWebhook(ctx context.Context, request domain.LineWebhookRequest) error {
	var errs []error
	now := time.Now()

	for _, event := range request.Events {
		log := logrus.WithFields(logrus.Fields{
			"destination": request.Destination,
			"event_type":  event.Type,
			"event_id":    event.ID,
			"source":      event.Source.Type,
			"user_id":     event.Source.UserID,
			"delay":       event.Delay(now),
		})
		log.Info("Received LINE event")

		handler, ok := s.handlers[event.Type]
		if !ok {
			log.Infof("Unhandled event type: %s", event.Type)
			continue
		}

		// keep going, every event owns its reply token
		if err := handler(ctx, event); err != nil {
			log.Errorf("Failed to handle %s event: %v", event.Type, err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrDownstream, errors.Join(errs...))
	}
	return nil
}

// handleMessageEvent - Business logic for message events
func (s *LineWebhookService) handleMessageEvent(ctx context.Context, event domain.LineWebhookEvent) error {
	if !event.IsText() {
		if event.Message != nil {
			logrus.Infof("Ignoring non-text message: type=%s", event.Message.Type)
		}
		return nil
	}
	if event.ReplyToken == "" {
		logrus.Warnf("Text message %s has no reply token, skipping", event.Message.ID)
		return nil
	}

	text := event.Message.Text
	logrus.Infof("Received message from user: %s", text)

	replyReq := domain.NewTextReply(event.ReplyToken, s.replyText(ctx, text))
	resp, err := s.lineClient.ReplyMessage(replyReq)
	if err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	if resp != nil {
		logrus.Debugf("Reply sent, message ids: %v", resp.SentMessageIDs)
	}

	return nil
}

// replyText picks the evaluator answer for trigger phrases and the echo otherwise
func (s *LineWebhookService) replyText(ctx context.Context, text string) string {
	if _, ok := s.triggers[text]; ok {
		return s.evaluate(ctx)
	}
	return s.echo(text)
}

func (s *LineWebhookService) evaluate(ctx context.Context) string {
	if s.evaluator == nil {
		logrus.Warn("Trigger phrase received but no evaluator is configured")
		return s.evaluatorErrorMessage
	}

	result, err := s.evaluator.Evaluate(ctx)
	if err != nil {
		logrus.Warnf("Evaluator request failed: %v", err)
		return s.evaluatorErrorMessage
	}

	return result.Message
}

// echo fills the first %s of the template, other % sequences are kept as written
func (s *LineWebhookService) echo(text string) string {
	if !strings.Contains(s.echoTemplate, "%s") {
		return s.echoTemplate + text
	}
	return strings.Replace(s.echoTemplate, "%s", text, 1)
}

// handleFollowEvent - Business logic for follow events
func (s *LineWebhookService) handleFollowEvent(_ context.Context, event domain.LineWebhookEvent) error {
	logrus.Infof("User followed: userID=%s", event.Source.UserID)
	return nil
}

// handleUnfollowEvent - Business logic for unfollow events
func (s *LineWebhookService) handleUnfollowEvent(_ context.Context, event domain.LineWebhookEvent) error {
	logrus.Infof("User unfollowed: userID=%s", event.Source.UserID)
	return nil
}
