package dbschema

import (
	"time"

	"studio-server/internal/domain/conversation"
	"studio-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Message{})
}

// Message represents the database schema for conversation messages.
// Append-only; read_at is the single mutable column.
type Message struct {
	BaseModel
	PublicID       string                  `gorm:"type:varchar(64);uniqueIndex;not null"`
	ConversationID uint                    `gorm:"index;not null"`
	SenderType     conversation.SenderType `gorm:"type:varchar(10);not null"`
	SenderName     string                  `gorm:"type:varchar(255)"`
	Content        string                  `gorm:"type:text;not null"`
	Attachments    JSONStringSlice         `gorm:"type:jsonb"`
	ReadAt         *time.Time              `gorm:"type:timestamp"`
}

// TableName specifies the table name for Message
func (Message) TableName() string {
	return "studio.messages"
}

// EtoD converts database schema to domain message (Entity to Domain)
func (m *Message) EtoD() *conversation.Message {
	return &conversation.Message{
		ID:             m.ID,
		PublicID:       m.PublicID,
		ConversationID: m.ConversationID,
		SenderType:     m.SenderType,
		SenderName:     m.SenderName,
		Content:        m.Content,
		Attachments:    m.Attachments,
		ReadAt:         m.ReadAt,
		CreatedAt:      m.CreatedAt,
	}
}

// NewSchemaMessage creates a database schema from a domain message
func NewSchemaMessage(msg *conversation.Message) *Message {
	return &Message{
		BaseModel: BaseModel{
			ID:        msg.ID,
			CreatedAt: msg.CreatedAt,
		},
		PublicID:       msg.PublicID,
		ConversationID: msg.ConversationID,
		SenderType:     msg.SenderType,
		SenderName:     msg.SenderName,
		Content:        msg.Content,
		Attachments:    JSONStringSlice(msg.Attachments),
		ReadAt:         msg.ReadAt,
	}
}
