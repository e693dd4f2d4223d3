package realtime

import (
	"strings"
	"testing"
)

func TestNewConnection_AssignsID(t *testing.T) {
	first, err := NewConnection(nil)
	if err != nil {
		t.Fatalf("NewConnection failed: %v", err)
	}
	if !strings.HasPrefix(first.ID(), "conn") {
		t.Errorf("id = %q, want conn prefix", first.ID())
	}

	second, err := NewConnection(nil)
	if err != nil {
		t.Fatalf("NewConnection failed: %v", err)
	}
	if first.ID() == second.ID() {
		t.Error("connection ids must be unique")
	}
}
