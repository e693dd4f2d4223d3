package conversation

import (
	"context"
	"strings"
	"time"

	"studio-server/internal/utils/idgen"
	"studio-server/internal/utils/platformerrors"
)

// MessageService handles the message thread of a conversation.
type MessageService struct {
	messages MessageRepository
}

// NewMessageService creates a message service.
func NewMessageService(messages MessageRepository) *MessageService {
	return &MessageService{messages: messages}
}

// AppendInput carries one inbound message.
type AppendInput struct {
	SenderType  SenderType
	SenderName  string
	Content     string
	Attachments []string
}

// Append persists a message on the conversation. Messages are append-only;
// archived conversations no longer accept writes.
func (s *MessageService) Append(ctx context.Context, conv *Conversation, input AppendInput) (*Message, error) {
	if conv.Status != ConversationStatusActive {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
			"conversation is no longer active", nil, "3e8f1a6c-5b9d-4027-8c4e-7d0f2b5a9c18")
	}
	if strings.TrimSpace(input.Content) == "" && len(input.Attachments) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"message content is required", nil, "9a2c4e6f-1b3d-4850-9e7a-0c2d4f6b8a31")
	}
	if input.SenderType != SenderTypeClient && input.SenderType != SenderTypeAdmin {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"unknown sender type", nil, "5d7f9b1a-3c5e-4962-8b0d-2e4f6a8c0d42")
	}

	publicID, err := idgen.GenerateSecureID("msg", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate message id")
	}

	msg := &Message{
		PublicID:       publicID,
		ConversationID: conv.ID,
		SenderType:     input.SenderType,
		SenderName:     strings.TrimSpace(input.SenderName),
		Content:        input.Content,
		Attachments:    input.Attachments,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to persist message")
	}
	return msg, nil
}

// History returns the full message thread in persisted order. It is the
// authoritative source clients reconcile against after a reconnect.
func (s *MessageService) History(ctx context.Context, conv *Conversation) ([]*Message, error) {
	msgs, err := s.messages.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load message history")
	}
	return msgs, nil
}

// MarkRead stamps the read receipt on unread messages from the given sender.
func (s *MessageService) MarkRead(ctx context.Context, conv *Conversation, senderType SenderType) error {
	if err := s.messages.MarkRead(ctx, conv.ID, senderType, time.Now().UTC()); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to mark messages read")
	}
	return nil
}
