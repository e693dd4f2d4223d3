package messagerepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"studio-server/internal/domain/conversation"
	"studio-server/internal/infrastructure/database/dbschema"
	"studio-server/internal/utils/platformerrors"
)

type MessageGormRepository struct {
	db *gorm.DB
}

var _ conversation.MessageRepository = (*MessageGormRepository)(nil)

func NewMessageGormRepository(db *gorm.DB) conversation.MessageRepository {
	return &MessageGormRepository{db: db}
}

// Create implements conversation.MessageRepository.
func (repo *MessageGormRepository) Create(ctx context.Context, msg *conversation.Message) error {
	dbMessage := dbschema.NewSchemaMessage(msg)
	if err := repo.db.WithContext(ctx).Create(dbMessage).Error; err != nil {
		return platformerrors.AsStorageError(ctx, err, "failed to create message")
	}
	msg.ID = dbMessage.ID
	msg.CreatedAt = dbMessage.CreatedAt
	return nil
}

// ListByConversation implements conversation.MessageRepository. Messages come
// back oldest first so callers can render transcripts directly.
func (repo *MessageGormRepository) ListByConversation(ctx context.Context, conversationID uint) ([]*conversation.Message, error) {
	var rows []dbschema.Message
	err := repo.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.AsStorageError(ctx, err, "failed to list messages")
	}
	result := make([]*conversation.Message, len(rows))
	for i, row := range rows {
		result[i] = row.EtoD()
	}
	return result, nil
}

// MarkRead implements conversation.MessageRepository.
func (repo *MessageGormRepository) MarkRead(ctx context.Context, conversationID uint, senderType conversation.SenderType, at time.Time) error {
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Message{}).
		Where("conversation_id = ? AND sender_type = ? AND read_at IS NULL", conversationID, senderType).
		Update("read_at", at).Error
	if err != nil {
		return platformerrors.AsStorageError(ctx, err, "failed to mark messages read")
	}
	return nil
}
