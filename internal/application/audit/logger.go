package audit

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// AdminAuditLogger records dashboard actions to the audit_logs table.
type AdminAuditLogger struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewAdminAuditLogger(db *gorm.DB, logger zerolog.Logger) *AdminAuditLogger {
	return &AdminAuditLogger{db: db, logger: logger}
}

type AdminAuditEntry struct {
	Action     string
	Resource   string
	ResourceID string
	Payload    any
	Error      error
}

// Log persists the admin action; best-effort (logs warning on failure).
func (l *AdminAuditLogger) Log(ctx context.Context, entry AdminAuditEntry) {
	if l == nil || l.db == nil {
		return
	}

	var payloadJSON []byte
	if entry.Payload != nil {
		if b, err := json.Marshal(entry.Payload); err == nil {
			payloadJSON = b
		}
	}

	sql := `
INSERT INTO studio.audit_logs
    (action, resource_type, resource_id, payload, request_id, error_message)
VALUES
    (?, ?, ?, ?, ?, ?)
`
	if err := l.db.WithContext(ctx).Exec(sql,
		entry.Action,
		entry.Resource,
		entry.ResourceID,
		payloadJSON,
		requestID(ctx),
		errorString(entry.Error),
	).Error; err != nil {
		l.logger.Warn().Err(err).Str("action", entry.Action).Msg("failed to write admin audit log")
	}
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value("requestID").(string); ok {
		return id
	}
	return ""
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
