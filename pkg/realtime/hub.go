// Package realtime fans attendance events out to subscribed dashboard connections.
//
// Every connection owns a buffered send queue drained by its own writer goroutine, so a slow
// client never blocks a broadcast. Delivery is at-most-once: a full queue drops the message.
package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"parlour-api/models"
	"parlour-api/pkg/logger"
	"parlour-api/pkg/metrics"
)

const (
	AdminRoom = "admin_room"

	EventJoinAdmin        = "join_admin"
	EventLeaveAdmin       = "leave_admin"
	EventAttendanceUpdate = "attendance_update"
	EventError            = "error"

	defaultSendBuffer   = 32
	defaultPingInterval = 25 * time.Second
)

// Message is the JSON frame exchanged with clients.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Pinger is implemented by connections that can send keepalive pings. The hub pings them every
// ping interval from the connection's writer; a failed ping closes the connection.
type Pinger interface {
	Ping() error
}

type client struct {
	id    string
	conn  Conn
	send  chan Message
	rooms map[string]struct{}
	done  chan struct{}
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	rooms   map[string]map[string]*client

	sendBuffer   int
	pingInterval time.Duration
	log          logger.Logger
	metrics    *metrics.Manager
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{
		clients:    make(map[string]*client),
		rooms:      make(map[string]map[string]*client),
		sendBuffer:   defaultSendBuffer,
		pingInterval: defaultPingInterval,
		log:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register starts a writer for conn and returns the connection id.
func (h *Hub) Register(conn Conn) string {
	c := &client{
		id:    uuid.NewString(),
		conn:  conn,
		send:  make(chan Message, h.sendBuffer),
		rooms: make(map[string]struct{}),
		done:  make(chan struct{}),
	}

	h.mu.Lock()
	h.clients[c.id] = c
	n := len(h.clients)
	h.mu.Unlock()

	h.metrics.SetRealtimeConnections(n)
	go h.writeLoop(c)

	h.log.Debug(context.Background(), "connection registered", logger.String("conn", c.id))
	return c.id
}

// Unregister removes the connection from every room and stops its writer. Unknown ids are ignored.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if !ok {
		h.mu.Unlock()
		return
	}
	for room := range c.rooms {
		h.removeFromRoomLocked(room, id)
	}
	delete(h.clients, id)
	close(c.send)
	n := len(h.clients)
	h.mu.Unlock()

	<-c.done
	h.metrics.SetRealtimeConnections(n)
	h.log.Debug(context.Background(), "connection unregistered", logger.String("conn", id))
}

// Join adds the connection to room. Joining twice has no further effect.
func (h *Hub) Join(id, room string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[id]
	if !ok {
		return false
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]*client)
		h.rooms[room] = members
	}
	members[id] = c
	c.rooms[room] = struct{}{}
	return true
}

// Leave removes the connection from room. Leaving a room one is not in is a no-op.
func (h *Hub) Leave(id, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[id]; ok {
		delete(c.rooms, room)
	}
	h.removeFromRoomLocked(room, id)
}

func (h *Hub) removeFromRoomLocked(room, id string) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, id)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Broadcast queues the event for every current member of room and returns how many were queued.
func (h *Hub) Broadcast(room, event string, data interface{}) int {
	msg := Message{Event: event, Data: data}
	queued, dropped := 0, 0

	// Sends happen under the read lock so Unregister cannot close a queue mid-iteration.
	h.mu.RLock()
	for _, c := range h.rooms[room] {
		select {
		case c.send <- msg:
			queued++
		default:
			dropped++
		}
	}
	h.mu.RUnlock()

	h.metrics.RecordBroadcast(room, event, queued, dropped)
	if dropped > 0 {
		h.log.Warn(context.Background(), "broadcast dropped for slow connections",
			logger.String("room", room), logger.Int("dropped", dropped))
	}
	return queued
}

// Send queues a message for a single connection.
func (h *Hub) Send(id string, event string, data interface{}) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.clients[id]
	if !ok {
		return false
	}
	select {
	case c.send <- Message{Event: event, Data: data}:
		return true
	default:
		return false
	}
}

func (h *Hub) Members(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) IsMember(id, room string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[room][id]
	return ok
}

func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// NotifyAttendance pushes a punch to the admin room.
func (h *Hub) NotifyAttendance(_ context.Context, update models.AttendanceUpdate) {
	h.Broadcast(AdminRoom, EventAttendanceUpdate, update)
}

func (h *Hub) writeLoop(c *client) {
	defer close(c.done)

	var tick <-chan time.Time
	pinger, canPing := c.conn.(Pinger)
	if canPing && h.pingInterval > 0 {
		ticker := time.NewTicker(h.pingInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	failed := false
	fail := func(op string, err error) {
		failed = true
		tick = nil
		h.log.Debug(context.Background(), op+" to connection failed",
			logger.String("conn", c.id), logger.Error(err))
		_ = c.conn.Close()
	}

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if failed {
				continue
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				fail("write", err)
			}
		case <-tick:
			if err := pinger.Ping(); err != nil {
				fail("ping", err)
			}
		}
	}
}
