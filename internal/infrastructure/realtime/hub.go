package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"studio-server/internal/infrastructure/logger"
	"studio-server/internal/infrastructure/metrics"
)

// AdminRoom is the room every staff socket joins. Broadcasts to any
// conversation room are mirrored here so the dashboard sees all traffic.
const AdminRoom = "admin-room"

// Conn is the hub's view of a websocket session.
type Conn interface {
	ID() string
	Send(payload []byte) error
}

// Frame is the envelope for every payload the hub pushes to clients.
// ConnectionID is set only on membership acks so clients can identify their
// own session.
type Frame struct {
	Type         string          `json:"type"`
	Room         string          `json:"room,omitempty"`
	ConnectionID string          `json:"connection_id,omitempty"`
	Payload      json.RawMessage `json:"payload,omitempty"`
}

// Hub tracks websocket sessions and their room memberships. Rooms for client
// sockets are keyed by conversation access token; staff sockets live in
// AdminRoom. A session may belong to several rooms at once.
type Hub struct {
	mu        sync.RWMutex
	rooms     map[string]map[string]Conn     // room -> connID -> conn
	connRooms map[string]map[string]struct{} // connID -> set of rooms
	conns     map[string]Conn

	log zerolog.Logger
}

// NewHub constructs an initialized Hub.
func NewHub() *Hub {
	return &Hub{
		rooms:     make(map[string]map[string]Conn),
		connRooms: make(map[string]map[string]struct{}),
		conns:     make(map[string]Conn),
		log:       logger.GetLogger().With().Str("component", "realtime_hub").Logger(),
	}
}

// Join adds the connection to the room and confirms membership with a
// "joined" frame.
func (h *Hub) Join(room string, conn Conn) {
	h.mu.Lock()
	h.conns[conn.ID()] = conn

	members := h.rooms[room]
	if members == nil {
		members = make(map[string]Conn)
		h.rooms[room] = members
	}
	members[conn.ID()] = conn

	memberships := h.connRooms[conn.ID()]
	if memberships == nil {
		memberships = make(map[string]struct{})
		h.connRooms[conn.ID()] = memberships
	}
	memberships[room] = struct{}{}
	h.mu.Unlock()

	ack, _ := json.Marshal(Frame{Type: "joined", Room: room, ConnectionID: conn.ID()})
	if err := conn.Send(ack); err != nil {
		h.Detach(conn)
	}
}

// Detach removes the connection from every room it joined and prunes rooms
// left empty.
func (h *Hub) Detach(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := conn.ID()
	for room := range h.connRooms[id] {
		members := h.rooms[room]
		delete(members, id)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(h.connRooms, id)
	delete(h.conns, id)
}

// Broadcast delivers payload to every member of the room and to AdminRoom.
// A session subscribed to both receives the frame once. Returns the number
// of sessions the frame was delivered to.
func (h *Hub) Broadcast(room string, frameType string, payload any) int {
	raw, err := json.Marshal(payload)
	if err != nil {
		h.log.Error().Err(err).Str("room", room).Msg("failed to encode broadcast payload")
		return 0
	}
	data, _ := json.Marshal(Frame{Type: frameType, Room: room, Payload: raw})

	h.mu.RLock()
	targets := make(map[string]Conn, len(h.rooms[room])+len(h.rooms[AdminRoom]))
	for id, conn := range h.rooms[room] {
		targets[id] = conn
	}
	if room != AdminRoom {
		for id, conn := range h.rooms[AdminRoom] {
			targets[id] = conn
		}
	}
	h.mu.RUnlock()

	delivered := 0
	var stale []Conn
	for _, conn := range targets {
		if err := conn.Send(data); err != nil {
			stale = append(stale, conn)
			continue
		}
		delivered++
	}
	for _, conn := range stale {
		h.Detach(conn)
	}

	kind := "conversation"
	if room == AdminRoom {
		kind = "admin"
	}
	metrics.BroadcastsTotal.WithLabelValues(kind).Inc()
	return delivered
}

// SendError pushes an error frame to a single connection.
func (h *Hub) SendError(conn Conn, message string) {
	raw, _ := json.Marshal(map[string]string{"message": message})
	data, _ := json.Marshal(Frame{Type: "error", Payload: raw})
	if err := conn.Send(data); err != nil {
		h.Detach(conn)
	}
}

// RoomSize reports current membership of a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
