package webhook

import (
	"context"
	"time"

	"studio-server/internal/utils/platformerrors"
)

// Event is one webhook delivery, keyed by the provider's own event id so
// retries of the same external event are recognized.
type Event struct {
	ID         uint
	Provider   string
	EventID    string
	ReceivedAt time.Time
}

type EventRepository interface {
	// Record stores the (provider, event id) pair; it returns false when the
	// pair was already recorded.
	Record(ctx context.Context, provider, eventID string) (bool, error)
}

// Deduper makes webhook handlers idempotent on the provider's event id.
type Deduper struct {
	repo EventRepository
}

// NewDeduper creates a webhook deduper.
func NewDeduper(repo EventRepository) *Deduper {
	return &Deduper{repo: repo}
}

// FirstDelivery reports whether this is the first time the event id has been
// seen. Deliveries without an event id cannot be deduplicated and are always
// treated as first.
func (d *Deduper) FirstDelivery(ctx context.Context, provider, eventID string) (bool, error) {
	if eventID == "" {
		return true, nil
	}
	created, err := d.repo.Record(ctx, provider, eventID)
	if err != nil {
		return false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to record webhook event")
	}
	return created, nil
}
