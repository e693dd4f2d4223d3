package adminhandler

import (
	"context"

	"studio-server/internal/application/audit"
	"studio-server/internal/domain/conversation"
	"studio-server/internal/infrastructure/metrics"
	"studio-server/internal/infrastructure/realtime"
	"studio-server/internal/interfaces/httpserver/requests/messagereq"
	"studio-server/internal/interfaces/httpserver/responses/conversationres"
	"studio-server/internal/utils/platformerrors"
)

// AdminHandler serves the dashboard API behind the static bearer.
type AdminHandler struct {
	router   *conversation.Router
	messages *conversation.MessageService
	hub      *realtime.Hub
	audit    *audit.AdminAuditLogger
}

func NewAdminHandler(
	router *conversation.Router,
	messages *conversation.MessageService,
	hub *realtime.Hub,
	auditLogger *audit.AdminAuditLogger,
) *AdminHandler {
	return &AdminHandler{
		router:   router,
		messages: messages,
		hub:      hub,
		audit:    auditLogger,
	}
}

// ListConversations returns conversations, optionally filtered by status.
func (h *AdminHandler) ListConversations(ctx context.Context, status string) (*conversationres.ConversationListResponse, error) {
	filter := conversation.ConversationFilter{}
	if status != "" {
		s := conversation.ConversationStatus(status)
		switch s {
		case conversation.ConversationStatusActive, conversation.ConversationStatusArchived, conversation.ConversationStatusCancelled:
			filter.Status = &s
		default:
			return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
				"unknown conversation status", nil, "3a5c7e9b-1d2f-4604-8a6c-5e7f9b1d3c62")
		}
	}

	convs, err := h.router.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	return conversationres.NewConversationListResponse(convs), nil
}

// History returns a conversation transcript by public id.
func (h *AdminHandler) History(ctx context.Context, projectID string) (*conversationres.MessageListResponse, error) {
	conv, err := h.router.FindByPublicID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	msgs, err := h.messages.History(ctx, conv)
	if err != nil {
		return nil, err
	}
	return conversationres.NewMessageListResponse(msgs), nil
}

// SendMessage appends a staff reply and fans it out to the conversation
// room and the admin room.
func (h *AdminHandler) SendMessage(ctx context.Context, projectID string, req messagereq.SendMessageRequest) (*conversationres.MessageResponse, error) {
	conv, err := h.router.FindByPublicID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	senderName := req.SenderName
	if senderName == "" {
		senderName = "Studio"
	}

	msg, err := h.messages.Append(ctx, conv, conversation.AppendInput{
		SenderType:  conversation.SenderTypeAdmin,
		SenderName:  senderName,
		Content:     req.Content,
		Attachments: req.Attachments,
	})
	if err != nil {
		return nil, err
	}

	response := conversationres.NewMessageResponse(msg)
	h.hub.Broadcast(conv.AccessToken, "newMessage", response)
	metrics.MessagesTotal.WithLabelValues(string(conversation.SenderTypeAdmin)).Inc()
	h.audit.Log(ctx, audit.AdminAuditEntry{
		Action:     "send_message",
		Resource:   "conversation",
		ResourceID: conv.PublicID,
		Payload:    map[string]string{"message_id": msg.PublicID},
	})
	return response, nil
}

// Archive revokes a conversation's token by marking it archived.
func (h *AdminHandler) Archive(ctx context.Context, projectID string) (*conversationres.ConversationResponse, error) {
	conv, err := h.router.FindByPublicID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := h.router.Archive(ctx, conv); err != nil {
		h.audit.Log(ctx, audit.AdminAuditEntry{Action: "archive", Resource: "conversation", ResourceID: conv.PublicID, Error: err})
		return nil, err
	}
	h.audit.Log(ctx, audit.AdminAuditEntry{Action: "archive", Resource: "conversation", ResourceID: conv.PublicID})
	return conversationres.NewConversationResponse(conv), nil
}

// MarkRead stamps read receipts on the unread client messages of a
// conversation.
func (h *AdminHandler) MarkRead(ctx context.Context, projectID string) error {
	conv, err := h.router.FindByPublicID(ctx, projectID)
	if err != nil {
		return err
	}
	if err := h.messages.MarkRead(ctx, conv, conversation.SenderTypeClient); err != nil {
		return err
	}
	h.audit.Log(ctx, audit.AdminAuditEntry{Action: "mark_read", Resource: "conversation", ResourceID: conv.PublicID})
	return nil
}
