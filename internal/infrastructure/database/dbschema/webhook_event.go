package dbschema

import (
	"time"

	"studio-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(WebhookEvent{})
}

// WebhookEvent is the dedupe ledger for webhook deliveries.
type WebhookEvent struct {
	BaseModel
	Provider   string    `gorm:"type:varchar(32);uniqueIndex:ux_webhook_events_provider_event;not null"`
	EventID    string    `gorm:"type:varchar(128);uniqueIndex:ux_webhook_events_provider_event;not null"`
	ReceivedAt time.Time `gorm:"type:timestamptz;not null"`
}

// TableName specifies the table name for WebhookEvent
func (WebhookEvent) TableName() string {
	return "studio.webhook_events"
}
