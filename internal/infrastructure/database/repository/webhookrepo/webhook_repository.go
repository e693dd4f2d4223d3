package webhookrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"studio-server/internal/domain/webhook"
	"studio-server/internal/infrastructure/database/dbschema"
	"studio-server/internal/utils/platformerrors"
)

type WebhookEventGormRepository struct {
	db *gorm.DB
}

var _ webhook.EventRepository = (*WebhookEventGormRepository)(nil)

func NewWebhookEventGormRepository(db *gorm.DB) webhook.EventRepository {
	return &WebhookEventGormRepository{db: db}
}

// Record implements webhook.EventRepository. The unique index on
// (provider, event_id) is the source of truth; a duplicate insert means the
// delivery was already seen.
func (repo *WebhookEventGormRepository) Record(ctx context.Context, provider, eventID string) (bool, error) {
	row := dbschema.WebhookEvent{
		Provider:   provider,
		EventID:    eventID,
		ReceivedAt: time.Now().UTC(),
	}
	if err := repo.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, platformerrors.AsStorageError(ctx, err, "failed to record webhook event")
	}
	return true, nil
}
