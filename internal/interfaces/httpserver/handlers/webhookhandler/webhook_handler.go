package webhookhandler

import (
	"context"
	"time"

	"studio-server/internal/config"
	"studio-server/internal/domain/appointment"
	"studio-server/internal/domain/conversation"
	"studio-server/internal/domain/identity"
	"studio-server/internal/domain/webhook"
	"studio-server/internal/infrastructure/metrics"
	"studio-server/internal/infrastructure/notify"
	"studio-server/internal/infrastructure/realtime"
	"studio-server/internal/interfaces/httpserver/requests/webhookreq"
	"studio-server/internal/interfaces/httpserver/responses/conversationres"
	"studio-server/internal/interfaces/httpserver/responses/webhookres"
	"studio-server/internal/utils/platformerrors"
)

const (
	ProviderSquarespace = "squarespace"
	ProviderAcuity      = "acuity"
)

// WebhookHandler ingests provider deliveries. Every inbound lead gets a
// fresh conversation regardless of history, and deliveries are idempotent
// on the provider's event id.
type WebhookHandler struct {
	deduper  *webhook.Deduper
	router   *conversation.Router
	messages *conversation.MessageService
	guard    *appointment.Guard
	hub      *realtime.Hub
	notifier *notify.Notifier
	cfg      *config.Config
}

func NewWebhookHandler(
	deduper *webhook.Deduper,
	router *conversation.Router,
	messages *conversation.MessageService,
	guard *appointment.Guard,
	hub *realtime.Hub,
	notifier *notify.Notifier,
	cfg *config.Config,
) *WebhookHandler {
	return &WebhookHandler{
		deduper:  deduper,
		router:   router,
		messages: messages,
		guard:    guard,
		hub:      hub,
		notifier: notifier,
		cfg:      cfg,
	}
}

// Squarespace handles a form submission: new conversation, the form message
// appended as the first client message, broadcast to the admin room.
func (h *WebhookHandler) Squarespace(ctx context.Context, req webhookreq.SquarespaceSubmission) (*webhookres.WebhookResponse, error) {
	first, err := h.deduper.FirstDelivery(ctx, ProviderSquarespace, req.ID)
	if err != nil {
		return nil, err
	}
	metrics.RecordWebhook(ProviderSquarespace, first)
	if !first {
		return &webhookres.WebhookResponse{Status: "duplicate"}, nil
	}

	routed, err := h.router.StartNew(ctx, identity.ResolveInput{
		Email: req.Email,
		Name:  req.Name,
		Phone: req.Phone,
	}, identity.SourceWebhook, "Website Inquiry")
	if err != nil {
		return nil, err
	}
	metrics.RecordRouting(routed.IdentityCreated, true)
	metrics.TokensIssuedTotal.WithLabelValues("webhook").Inc()

	if req.Message != "" {
		msg, err := h.messages.Append(ctx, routed.Conversation, conversation.AppendInput{
			SenderType: conversation.SenderTypeClient,
			SenderName: routed.Identity.Name,
			Content:    req.Message,
		})
		if err != nil {
			return nil, err
		}
		h.hub.Broadcast(routed.Conversation.AccessToken, "newMessage", conversationres.NewMessageResponse(msg))
		metrics.MessagesTotal.WithLabelValues(string(conversation.SenderTypeClient)).Inc()
	}

	// Best effort; the conversation is already durable.
	h.notifier.ConversationStarted(ctx, routed.Conversation.Title, routed.Identity.Name)

	return &webhookres.WebhookResponse{
		Status:    "processed",
		ProjectID: routed.Conversation.PublicID,
	}, nil
}

// Acuity handles an appointment event: new conversation for the lead, then
// the slot goes through the collision check with the provider's event id as
// the dedupe key.
func (h *WebhookHandler) Acuity(ctx context.Context, req webhookreq.AcuityEvent) (*webhookres.WebhookResponse, *appointment.Decision, error) {
	first, err := h.deduper.FirstDelivery(ctx, ProviderAcuity, req.ID)
	if err != nil {
		return nil, nil, err
	}
	metrics.RecordWebhook(ProviderAcuity, first)
	if !first {
		return &webhookres.WebhookResponse{Status: "duplicate"}, nil, nil
	}

	scheduledAt, err := h.parseDatetime(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	routed, err := h.router.StartNew(ctx, identity.ResolveInput{
		Email: req.Email,
		Name:  req.Name(),
		Phone: req.Phone,
	}, identity.SourceWebhook, "Appointment")
	if err != nil {
		return nil, nil, err
	}
	metrics.RecordRouting(routed.IdentityCreated, true)
	metrics.TokensIssuedTotal.WithLabelValues("webhook").Inc()

	externalID := req.ID
	appt, decision, err := h.guard.Schedule(ctx, appointment.ScheduleInput{
		CompanyID:       &routed.Identity.ID,
		ConversationID:  &routed.Conversation.ID,
		ExternalID:      &externalID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: req.Duration,
	})
	if err != nil {
		return nil, nil, err
	}
	if !decision.Admitted {
		metrics.BookingConflictsTotal.Inc()
		return nil, decision, nil
	}

	metrics.AppointmentsScheduledTotal.WithLabelValues("webhook").Inc()
	h.notifier.AppointmentBooked(ctx, scheduledAt.In(h.cfg.Location()).Format("2006-01-02 3:04 PM"), routed.Identity.Name)

	return &webhookres.WebhookResponse{
		Status:        "processed",
		ProjectID:     routed.Conversation.PublicID,
		AppointmentID: appt.PublicID,
	}, decision, nil
}

// parseDatetime accepts the RFC 3339 datetime Acuity sends, or the split
// date/time pair interpreted in the studio timezone.
func (h *WebhookHandler) parseDatetime(ctx context.Context, req webhookreq.AcuityEvent) (time.Time, error) {
	if req.Datetime != "" {
		if t, err := time.Parse(time.RFC3339, req.Datetime); err == nil {
			return t, nil
		}
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", req.Datetime, h.cfg.Location()); err == nil {
			return t, nil
		}
	}
	if req.Date != "" && req.Time != "" {
		if t, err := time.ParseInLocation("2006-01-02 3:04 PM", req.Date+" "+req.Time, h.cfg.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
		"unparseable appointment datetime", nil, "9c1e3f5b-7d0a-4268-8f4c-0b2d4e6a8c51")
}
