package realtime

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"studio-server/internal/infrastructure/metrics"
	"studio-server/internal/utils/idgen"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 64
)

var ErrConnectionClosed = errors.New("connection closed")

// Connection wraps a websocket and serializes outbound writes through a
// buffered channel. Safe for concurrent use.
type Connection struct {
	id string

	ws    *websocket.Conn
	send  chan []byte
	once  sync.Once
	close chan struct{}
}

// NewConnection wraps an upgraded websocket.
func NewConnection(ws *websocket.Conn) (*Connection, error) {
	id, err := idgen.GenerateSecureID("conn", 16)
	if err != nil {
		return nil, err
	}
	return &Connection{
		id:    id,
		ws:    ws,
		send:  make(chan []byte, sendBuffer),
		close: make(chan struct{}),
	}, nil
}

// ID implements Conn.
func (c *Connection) ID() string {
	return c.id
}

// Start launches the write loop. Call exactly once per connection.
func (c *Connection) Start() {
	metrics.ActiveConnections.Inc()
	go c.writeLoop()
}

// Send enqueues payload for delivery. A full buffer means the client cannot
// keep up; the connection is closed to keep backpressure bounded.
func (c *Connection) Send(payload []byte) error {
	select {
	case <-c.close:
		return ErrConnectionClosed
	case c.send <- payload:
		return nil
	default:
		c.Close(websocket.CloseGoingAway, "send buffer full")
		return ErrConnectionClosed
	}
}

// Close terminates the connection and stops the write loop.
func (c *Connection) Close(code int, reason string) {
	c.once.Do(func() {
		close(c.close)
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
		_ = c.ws.Close()
		metrics.ActiveConnections.Dec()
	})
}

func (c *Connection) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.close:
			return
		case msg := <-c.send:
			if err := c.writeMessage(msg); err != nil {
				c.Close(websocket.CloseAbnormalClosure, "write failed")
				return
			}
		case <-ticker.C:
			if err := c.writePing(); err != nil {
				c.Close(websocket.CloseAbnormalClosure, "ping failed")
				return
			}
		}
	}
}

func (c *Connection) writeMessage(payload []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

func (c *Connection) writePing() error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.PingMessage, nil)
}
