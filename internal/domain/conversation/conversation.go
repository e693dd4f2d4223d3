package conversation

import (
	"context"
	"time"
)

// ===============================================
// Conversation Types
// ===============================================

type ConversationStatus string

const (
	ConversationStatusActive    ConversationStatus = "active"
	ConversationStatusArchived  ConversationStatus = "archived"
	ConversationStatusCancelled ConversationStatus = "cancelled"
)

// Conversation is an addressable, token-scoped message thread owned by one
// identity. AccessToken is opaque, unique and immutable once issued; it is
// the sole credential for client-side access.
type Conversation struct {
	ID          uint               `json:"-"`
	PublicID    string             `json:"id"`
	CompanyID   uint               `json:"-"`
	AccessToken string             `json:"-"`
	Title       string             `json:"title"`
	Status      ConversationStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ===============================================
// Message Types
// ===============================================

type SenderType string

const (
	SenderTypeClient SenderType = "client"
	SenderTypeAdmin  SenderType = "admin"
)

// Message is append-only; the only mutation ever applied is the read-receipt
// timestamp.
type Message struct {
	ID             uint       `json:"-"`
	PublicID       string     `json:"id"`
	ConversationID uint       `json:"-"`
	SenderType     SenderType `json:"sender_type"`
	SenderName     string     `json:"sender_name"`
	Content        string     `json:"content"`
	Attachments    []string   `json:"attachments,omitempty"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ===============================================
// Repositories
// ===============================================

type ConversationFilter struct {
	ID        *uint
	PublicID  *string
	CompanyID *uint
	Status    *ConversationStatus
}

type ConversationRepository interface {
	Create(ctx context.Context, conv *Conversation) error
	FindByFilter(ctx context.Context, filter ConversationFilter) ([]*Conversation, error)
	FindByPublicID(ctx context.Context, publicID string) (*Conversation, error)
	FindByAccessToken(ctx context.Context, accessToken string) (*Conversation, error)
	// FindLatestActive returns the most recently created active conversation
	// for the company, or (nil, nil) when the company has none.
	FindLatestActive(ctx context.Context, companyID uint) (*Conversation, error)
	Update(ctx context.Context, conv *Conversation) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error
	ListByConversation(ctx context.Context, conversationID uint) ([]*Message, error)
	// MarkRead stamps the read receipt on every unread message of the given
	// sender type in the conversation.
	MarkRead(ctx context.Context, conversationID uint, senderType SenderType, at time.Time) error
}
