package handlers

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"parlour-api/config/middleware"
	"parlour-api/pkg/logger"
	"parlour-api/pkg/realtime"
)

const localSocketAdmin = "socketAdmin"

// SocketHandler bridges websocket clients to the realtime hub.
// Clients send {"event":"join_admin"} or {"event":"leave_admin"} and receive attendance_update frames.
type SocketHandler struct {
	hub         *realtime.Hub
	tokens      middleware.TokenValidator
	users       middleware.UserFinder
	requireAuth bool
	pongWait    time.Duration
	log         logger.Logger
}

// NewSocketHandler serves clients of hub. A client that sends nothing, not even a pong, for
// pongWait is disconnected; zero disables the read deadline.
func NewSocketHandler(hub *realtime.Hub, tokens middleware.TokenValidator, users middleware.UserFinder, requireAuth bool, pongWait time.Duration) *SocketHandler {
	return &SocketHandler{
		hub:         hub,
		tokens:      tokens,
		users:       users,
		requireAuth: requireAuth,
		pongWait:    pongWait,
		log:         logger.Named("socket"),
	}
}

// Upgrade rejects plain HTTP requests and records whether the caller presented an admin token.
func (h *SocketHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	c.Locals(localSocketAdmin, h.isAdminToken(c.UserContext(), c.Query("token")))
	return c.Next()
}

func (h *SocketHandler) isAdminToken(ctx context.Context, token string) bool {
	if token == "" || h.tokens == nil || h.users == nil {
		return false
	}
	claims, err := h.tokens.ValidateToken(token)
	if err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	user, err := h.users.FindUserByID(ctx, claims.UserID)
	if err != nil || user == nil {
		return false
	}
	return user.IsAdmin()
}

// Serve returns the websocket endpoint.
func (h *SocketHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		isAdmin, _ := conn.Locals(localSocketAdmin).(bool)
		h.serveConn(newKeepaliveConn(conn, h.pongWait, socketWriteWait), isAdmin)
	})
}

// messageReader is the read side of a websocket connection.
type messageReader interface {
	ReadJSON(v interface{}) error
}

type socketConn interface {
	realtime.Conn
	messageReader
}

func (h *SocketHandler) serveConn(conn socketConn, isAdmin bool) {
	ctx := context.Background()
	id := h.hub.Register(conn)
	h.log.Debug(ctx, "client connected", logger.String("conn", id))
	defer func() {
		h.hub.Unregister(id)
		h.log.Debug(ctx, "client disconnected", logger.String("conn", id))
	}()

	for {
		var msg realtime.Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Event {
		case realtime.EventJoinAdmin:
			if h.requireAuth && !isAdmin {
				h.hub.Send(id, realtime.EventError, map[string]string{"error": "Admin access required"})
				continue
			}
			h.hub.Join(id, realtime.AdminRoom)
			h.log.Debug(ctx, "client joined admin room", logger.String("conn", id))
		case realtime.EventLeaveAdmin:
			h.hub.Leave(id, realtime.AdminRoom)
		default:
			h.hub.Send(id, realtime.EventError, map[string]string{"error": "Unknown event"})
		}
	}
}
