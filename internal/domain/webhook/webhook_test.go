package webhook

import (
	"context"
	"testing"
)

type mockEventRepository struct {
	seen map[string]bool
}

func (m *mockEventRepository) Record(ctx context.Context, provider, eventID string) (bool, error) {
	if m.seen == nil {
		m.seen = make(map[string]bool)
	}
	key := provider + "/" + eventID
	if m.seen[key] {
		return false, nil
	}
	m.seen[key] = true
	return true, nil
}

func TestFirstDelivery(t *testing.T) {
	deduper := NewDeduper(&mockEventRepository{})
	ctx := context.Background()

	first, err := deduper.FirstDelivery(ctx, "acuity", "evt-1")
	if err != nil {
		t.Fatalf("FirstDelivery failed: %v", err)
	}
	if !first {
		t.Error("a fresh event id should be a first delivery")
	}

	replay, err := deduper.FirstDelivery(ctx, "acuity", "evt-1")
	if err != nil {
		t.Fatalf("FirstDelivery failed: %v", err)
	}
	if replay {
		t.Error("a replayed event id must not be a first delivery")
	}
}

func TestFirstDelivery_ScopedByProvider(t *testing.T) {
	deduper := NewDeduper(&mockEventRepository{})
	ctx := context.Background()

	if _, err := deduper.FirstDelivery(ctx, "acuity", "evt-1"); err != nil {
		t.Fatalf("FirstDelivery failed: %v", err)
	}
	first, err := deduper.FirstDelivery(ctx, "squarespace", "evt-1")
	if err != nil {
		t.Fatalf("FirstDelivery failed: %v", err)
	}
	if !first {
		t.Error("the same event id from another provider is a distinct event")
	}
}

func TestFirstDelivery_EmptyEventID(t *testing.T) {
	deduper := NewDeduper(&mockEventRepository{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		first, err := deduper.FirstDelivery(ctx, "squarespace", "")
		if err != nil {
			t.Fatalf("FirstDelivery failed: %v", err)
		}
		if !first {
			t.Error("deliveries without an event id are never deduplicated")
		}
	}
}
