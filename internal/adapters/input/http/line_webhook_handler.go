package http

import (
	"encoding/json"
	"fmt"
	"time"

	"line-callback/internal/domain"
	"line-callback/internal/ports/input"
	"line-callback/pkg/linesig"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/sirupsen/logrus"
)

// LineWebhookHandler struct - Primary/Driving adapter for LINE webhook
type LineWebhookHandler struct {
	service       input.LineWebhookService
	channelSecret string
}

// NewLineWebhookHandler func - Creates new LINE webhook handler
func NewLineWebhookHandler(service input.LineWebhookService, channelSecret string) *LineWebhookHandler {
	return &LineWebhookHandler{
		service:       service,
		channelSecret: channelSecret,
	}
}

// HandleWebhook func - Handles incoming LINE webhook requests
// @Summary LINE Webhook
// @Description Verifies X-Line-Signature and replies to every text message event
// @Tags LINE
// @Accept application/json
// @Produce json
// @Param X-Line-Signature header string true "base64 HMAC-SHA256 of the body keyed by the channel secret"
// @Success 200 {object} CallbackResponse
// @Failure 400 {object} ResponseBody
// @Failure 500 {object} ResponseBody
// @Router /callback [post]
func (h *LineWebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	log := logrus.WithField("request_id", uuid.NewString())

	signature := c.Get(linesig.HeaderName)
	if signature == "" {
		log.Error("Signature not found in headers")
		return h.respondError(c, domain.ErrSignatureInvalid)
	}

	body := c.Body()
	log.Debugf("Request body: %s", body)

	webhookReq, err := h.parseRequest(body, signature)
	if err != nil {
		log.Errorf("Failed to parse webhook request: %v", err)
		return h.respondError(c, err)
	}

	if err := h.service.HandleWebhook(c.UserContext(), webhookReq); err != nil {
		log.Errorf("Failed to handle webhook: %v", err)
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(CallbackResponse{Status: "ok"})
}

func (h *LineWebhookHandler) respondError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	return c.Status(status.Code).JSON(ResponseBody{Status: status})
}

// parseRequest verifies the signature and converts the body to a domain request
func (h *LineWebhookHandler) parseRequest(body []byte, signature string) (domain.LineWebhookRequest, error) {
	if !linesig.Verify(h.channelSecret, body, signature) {
		return domain.LineWebhookRequest{}, domain.ErrSignatureInvalid
	}

	// the SDK leaves Events nil when the key is absent, "events":[] is the verification request
	var envelope struct {
		Events *json.RawMessage `json:"events"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.LineWebhookRequest{}, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	if envelope.Events == nil {
		return domain.LineWebhookRequest{}, fmt.Errorf("%w: events is missing", domain.ErrMalformedPayload)
	}

	var cb webhook.CallbackRequest
	if err := json.Unmarshal(body, &cb); err != nil {
		return domain.LineWebhookRequest{}, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}

	// Convert LINE SDK events to domain events
	domainEvents := make([]domain.LineWebhookEvent, 0, len(cb.Events))
	for i, event := range cb.Events {
		domainEvent := h.convertToDomainEvent(event)
		if domainEvent == nil {
			continue
		}
		if domainEvent.IsText() && domainEvent.ReplyToken == "" {
			return domain.LineWebhookRequest{}, fmt.Errorf("%w: event %d is a text message without reply token", domain.ErrMalformedPayload, i)
		}
		domainEvents = append(domainEvents, *domainEvent)
	}

	return domain.LineWebhookRequest{
		Destination: cb.Destination,
		Events:      domainEvents,
	}, nil
}

// convertToDomainEvent - Converts LINE SDK event to domain event
func (h *LineWebhookHandler) convertToDomainEvent(event webhook.EventInterface) *domain.LineWebhookEvent {
	switch e := event.(type) {
	case webhook.MessageEvent:
		return h.convertMessageEvent(e)
	case webhook.FollowEvent:
		return h.convertFollowEvent(e)
	case webhook.UnfollowEvent:
		return h.convertUnfollowEvent(e)
	default:
		logrus.Warnf("Unsupported event type: %T", event)
		return nil
	}
}

// convertMessageEvent - Converts message event
func (h *LineWebhookHandler) convertMessageEvent(event webhook.MessageEvent) *domain.LineWebhookEvent {
	domainEvent := &domain.LineWebhookEvent{
		ID:         event.WebhookEventId,
		Type:       domain.LineEventTypeMessage,
		Timestamp:  time.UnixMilli(event.Timestamp),
		ReplyToken: event.ReplyToken,
		Source:     h.convertSource(event.Source),
	}

	// Convert message based on type
	switch msg := event.Message.(type) {
	case webhook.TextMessageContent:
		domainEvent.Message = &domain.LineMessage{
			ID:   msg.Id,
			Type: domain.LineMessageTypeText,
			Text: msg.Text,
		}
	case webhook.StickerMessageContent:
		domainEvent.Message = &domain.LineMessage{
			ID:   msg.Id,
			Type: domain.LineMessageTypeSticker,
		}
	case webhook.ImageMessageContent:
		domainEvent.Message = &domain.LineMessage{
			ID:   msg.Id,
			Type: domain.LineMessageTypeImage,
		}
	default:
		logrus.Warnf("Unsupported message type: %T", msg)
		return nil
	}

	return domainEvent
}

// convertFollowEvent - Converts follow event
func (h *LineWebhookHandler) convertFollowEvent(event webhook.FollowEvent) *domain.LineWebhookEvent {
	return &domain.LineWebhookEvent{
		ID:         event.WebhookEventId,
		Type:       domain.LineEventTypeFollow,
		Timestamp:  time.UnixMilli(event.Timestamp),
		ReplyToken: event.ReplyToken,
		Source:     h.convertSource(event.Source),
	}
}

// convertUnfollowEvent - Converts unfollow event
func (h *LineWebhookHandler) convertUnfollowEvent(event webhook.UnfollowEvent) *domain.LineWebhookEvent {
	return &domain.LineWebhookEvent{
		ID:        event.WebhookEventId,
		Type:      domain.LineEventTypeUnfollow,
		Timestamp: time.UnixMilli(event.Timestamp),
		Source:    h.convertSource(event.Source),
	}
}

// convertSource - Converts event source
func (h *LineWebhookHandler) convertSource(source webhook.SourceInterface) domain.LineSource {
	switch s := source.(type) {
	case webhook.UserSource:
		return domain.LineSource{
			Type:   domain.LineSourceTypeUser,
			UserID: s.UserId,
		}
	case webhook.GroupSource:
		return domain.LineSource{
			Type:    domain.LineSourceTypeGroup,
			UserID:  s.UserId,
			GroupID: s.GroupId,
		}
	case webhook.RoomSource:
		return domain.LineSource{
			Type:   domain.LineSourceTypeRoom,
			UserID: s.UserId,
			RoomID: s.RoomId,
		}
	default:
		return domain.LineSource{}
	}
}
