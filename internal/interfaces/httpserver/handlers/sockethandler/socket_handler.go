package sockethandler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"studio-server/internal/config"
	"studio-server/internal/domain/conversation"
	"studio-server/internal/infrastructure/logger"
	"studio-server/internal/infrastructure/realtime"
)

const (
	pongWait       = 60 * time.Second
	maxMessageSize = 4096
)

// The widget runs on arbitrary client sites; origin checks would reject
// every legitimate connection. Tokens are the access control.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// clientFrame is the only message clients send: a room join request.
type clientFrame struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// SocketHandler upgrades GET /ws and pumps join requests into the hub.
type SocketHandler struct {
	router *conversation.Router
	hub    *realtime.Hub
	cfg    *config.Config
}

func NewSocketHandler(router *conversation.Router, hub *realtime.Hub, cfg *config.Config) *SocketHandler {
	return &SocketHandler{
		router: router,
		hub:    hub,
		cfg:    cfg,
	}
}

// Serve upgrades the request and runs the read loop until the client goes
// away. Room membership is rebuilt by clients re-joining after reconnect;
// nothing here is persisted.
func (h *SocketHandler) Serve(c *gin.Context) {
	log := logger.GetLogger()

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}

	conn, err := realtime.NewConnection(ws)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create websocket connection")
		_ = ws.Close()
		return
	}
	conn.Start()
	defer func() {
		h.hub.Detach(conn)
		conn.Close(websocket.CloseNormalClosure, "bye")
	}()

	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			h.hub.SendError(conn, "malformed frame")
			continue
		}
		if frame.Type != "join" {
			h.hub.SendError(conn, "unknown frame type")
			continue
		}
		h.handleJoin(c, conn, frame.Token)
	}
}

func (h *SocketHandler) handleJoin(c *gin.Context, conn *realtime.Connection, token string) {
	if token == "" {
		h.hub.SendError(conn, "token is required")
		return
	}

	// Staff consoles join the admin room with the admin bearer.
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.cfg.AdminToken)) == 1 {
		h.hub.Join(realtime.AdminRoom, conn)
		return
	}

	conv, err := h.router.ResolveByToken(c.Request.Context(), token)
	if err != nil {
		h.hub.SendError(conn, "unknown token")
		return
	}
	if conv.Status != conversation.ConversationStatusActive {
		h.hub.SendError(conn, "conversation is no longer active")
		return
	}
	h.hub.Join(conv.AccessToken, conn)
}
