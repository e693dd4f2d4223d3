package conversationres

import (
	"time"

	"studio-server/internal/domain/conversation"
)

// MessageResponse is the wire shape of a single message.
type MessageResponse struct {
	ID          string     `json:"id"`
	SenderType  string     `json:"sender_type"`
	SenderName  string     `json:"sender_name"`
	Content     string     `json:"content"`
	Attachments []string   `json:"attachments,omitempty"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewMessageResponse(msg *conversation.Message) *MessageResponse {
	return &MessageResponse{
		ID:          msg.PublicID,
		SenderType:  string(msg.SenderType),
		SenderName:  msg.SenderName,
		Content:     msg.Content,
		Attachments: msg.Attachments,
		ReadAt:      msg.ReadAt,
		CreatedAt:   msg.CreatedAt,
	}
}

// MessageListResponse is a conversation transcript, oldest first.
type MessageListResponse struct {
	Messages []*MessageResponse `json:"messages"`
}

func NewMessageListResponse(msgs []*conversation.Message) *MessageListResponse {
	out := make([]*MessageResponse, len(msgs))
	for i, msg := range msgs {
		out[i] = NewMessageResponse(msg)
	}
	return &MessageListResponse{Messages: out}
}

// ConversationResponse is the admin-facing view of a conversation. The
// access token is included because the dashboard uses it to join the
// websocket room.
type ConversationResponse struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewConversationResponse(conv *conversation.Conversation) *ConversationResponse {
	return &ConversationResponse{
		ID:        conv.PublicID,
		Token:     conv.AccessToken,
		Title:     conv.Title,
		Status:    string(conv.Status),
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}
}

type ConversationListResponse struct {
	Conversations []*ConversationResponse `json:"conversations"`
}

func NewConversationListResponse(convs []*conversation.Conversation) *ConversationListResponse {
	out := make([]*ConversationResponse, len(convs))
	for i, conv := range convs {
		out[i] = NewConversationResponse(conv)
	}
	return &ConversationListResponse{Conversations: out}
}
