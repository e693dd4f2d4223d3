package messagehandler

import (
	"context"

	"studio-server/internal/domain/conversation"
	"studio-server/internal/infrastructure/metrics"
	"studio-server/internal/infrastructure/realtime"
	"studio-server/internal/interfaces/httpserver/requests/messagereq"
	"studio-server/internal/interfaces/httpserver/responses/conversationres"
)

// MessageHandler serves the token-scoped public messaging surface.
type MessageHandler struct {
	router   *conversation.Router
	messages *conversation.MessageService
	hub      *realtime.Hub
}

func NewMessageHandler(
	router *conversation.Router,
	messages *conversation.MessageService,
	hub *realtime.Hub,
) *MessageHandler {
	return &MessageHandler{
		router:   router,
		messages: messages,
		hub:      hub,
	}
}

// History returns the conversation transcript for the token.
func (h *MessageHandler) History(ctx context.Context, accessToken string) (*conversationres.MessageListResponse, error) {
	conv, err := h.router.ResolveByToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	msgs, err := h.messages.History(ctx, conv)
	if err != nil {
		return nil, err
	}
	return conversationres.NewMessageListResponse(msgs), nil
}

// Send appends a message on behalf of whoever holds the token, then fans it
// out to the conversation room and the admin room. The broadcast happens
// after the write so history never lags what sockets saw.
func (h *MessageHandler) Send(ctx context.Context, accessToken string, req messagereq.SendMessageRequest) (*conversationres.MessageResponse, error) {
	conv, err := h.router.ResolveByToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	msg, err := h.messages.Append(ctx, conv, conversation.AppendInput{
		SenderType:  conversation.SenderTypeClient,
		SenderName:  req.SenderName,
		Content:     req.Content,
		Attachments: req.Attachments,
	})
	if err != nil {
		return nil, err
	}

	response := conversationres.NewMessageResponse(msg)
	h.hub.Broadcast(conv.AccessToken, "newMessage", response)
	metrics.MessagesTotal.WithLabelValues(string(conversation.SenderTypeClient)).Inc()
	return response, nil
}
