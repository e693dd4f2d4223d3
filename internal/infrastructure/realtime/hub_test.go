package realtime

import (
	"encoding/json"
	"errors"
	"testing"
)

type fakeConn struct {
	id     string
	frames []Frame
	fail   bool
}

func (f *fakeConn) ID() string { return f.id }

func (f *fakeConn) Send(payload []byte) error {
	if f.fail {
		return errors.New("connection closed")
	}
	var frame Frame
	if err := json.Unmarshal(payload, &frame); err != nil {
		return err
	}
	f.frames = append(f.frames, frame)
	return nil
}

func (f *fakeConn) framesOfType(frameType string) []Frame {
	var out []Frame
	for _, frame := range f.frames {
		if frame.Type == frameType {
			out = append(out, frame)
		}
	}
	return out
}

func TestJoin_SendsAck(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{id: "c1"}

	hub.Join("room-a", conn)

	acks := conn.framesOfType("joined")
	if len(acks) != 1 {
		t.Fatalf("got %d joined frames, want 1", len(acks))
	}
	if acks[0].Room != "room-a" {
		t.Errorf("ack room = %q, want room-a", acks[0].Room)
	}
	if acks[0].ConnectionID != "c1" {
		t.Errorf("ack connection id = %q, want c1", acks[0].ConnectionID)
	}
	if hub.RoomSize("room-a") != 1 {
		t.Errorf("room size = %d, want 1", hub.RoomSize("room-a"))
	}
}

func TestBroadcast_ReachesRoomAndAdmin(t *testing.T) {
	hub := NewHub()
	client := &fakeConn{id: "client"}
	admin := &fakeConn{id: "admin"}
	bystander := &fakeConn{id: "bystander"}

	hub.Join("room-a", client)
	hub.Join(AdminRoom, admin)
	hub.Join("room-b", bystander)

	delivered := hub.Broadcast("room-a", "newMessage", map[string]string{"content": "hi"})
	if delivered != 2 {
		t.Errorf("delivered = %d, want 2", delivered)
	}
	if len(client.framesOfType("newMessage")) != 1 {
		t.Error("room member did not receive the frame")
	}
	if len(admin.framesOfType("newMessage")) != 1 {
		t.Error("admin room did not receive the mirrored frame")
	}
	if len(bystander.framesOfType("newMessage")) != 0 {
		t.Error("frame leaked into an unrelated room")
	}
}

func TestBroadcast_DedupesDualMembership(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{id: "both"}

	hub.Join("room-a", conn)
	hub.Join(AdminRoom, conn)

	delivered := hub.Broadcast("room-a", "newMessage", map[string]string{"content": "hi"})
	if delivered != 1 {
		t.Errorf("delivered = %d, want 1", delivered)
	}
	if got := len(conn.framesOfType("newMessage")); got != 1 {
		t.Errorf("dual-membership session received %d frames, want 1", got)
	}
}

func TestBroadcast_ToAdminRoomIsNotDoubled(t *testing.T) {
	hub := NewHub()
	admin := &fakeConn{id: "admin"}
	hub.Join(AdminRoom, admin)

	delivered := hub.Broadcast(AdminRoom, "announcement", map[string]string{"content": "hi"})
	if delivered != 1 {
		t.Errorf("delivered = %d, want 1", delivered)
	}
	if got := len(admin.framesOfType("announcement")); got != 1 {
		t.Errorf("admin received %d frames, want 1", got)
	}
}

func TestBroadcast_DetachesStaleConnections(t *testing.T) {
	hub := NewHub()
	live := &fakeConn{id: "live"}
	dead := &fakeConn{id: "dead"}

	hub.Join("room-a", live)
	hub.Join("room-a", dead)
	dead.fail = true

	delivered := hub.Broadcast("room-a", "newMessage", map[string]string{"content": "hi"})
	if delivered != 1 {
		t.Errorf("delivered = %d, want 1", delivered)
	}
	if hub.RoomSize("room-a") != 1 {
		t.Errorf("room size after stale detach = %d, want 1", hub.RoomSize("room-a"))
	}
}

func TestDetach_PrunesEmptyRooms(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{id: "c1"}

	hub.Join("room-a", conn)
	hub.Join("room-b", conn)
	hub.Detach(conn)

	if hub.RoomSize("room-a") != 0 || hub.RoomSize("room-b") != 0 {
		t.Error("detached connection still counted in room membership")
	}

	// A broadcast after detach reaches nobody.
	if delivered := hub.Broadcast("room-a", "newMessage", map[string]string{}); delivered != 0 {
		t.Errorf("delivered = %d after detach, want 0", delivered)
	}
}

func TestSendError(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{id: "c1"}

	hub.SendError(conn, "invalid token")

	frames := conn.framesOfType("error")
	if len(frames) != 1 {
		t.Fatalf("got %d error frames, want 1", len(frames))
	}
	var body map[string]string
	if err := json.Unmarshal(frames[0].Payload, &body); err != nil {
		t.Fatalf("bad error payload: %v", err)
	}
	if body["message"] != "invalid token" {
		t.Errorf("message = %q, want invalid token", body["message"])
	}
}
