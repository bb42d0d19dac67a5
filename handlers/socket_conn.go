package handlers

import (
	"time"

	"github.com/gofiber/contrib/websocket"
)

const socketWriteWait = 10 * time.Second

// rawSocket is the subset of *websocket.Conn used for keepalive.
type rawSocket interface {
	ReadJSON(v interface{}) error
	WriteJSON(v interface{}) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// keepaliveConn drops peers that go silent. The read deadline starts at pongWait and every
// frame or pong from the client pushes it forward, so a peer that stops answering pings makes
// ReadJSON fail. Writes and pings give up after writeWait.
type keepaliveConn struct {
	raw       rawSocket
	pongWait  time.Duration
	writeWait time.Duration
}

func newKeepaliveConn(raw rawSocket, pongWait, writeWait time.Duration) *keepaliveConn {
	k := &keepaliveConn{raw: raw, pongWait: pongWait, writeWait: writeWait}
	if pongWait > 0 {
		_ = k.extendRead()
		raw.SetPongHandler(func(string) error { return k.extendRead() })
	}
	return k
}

func (k *keepaliveConn) extendRead() error {
	return k.raw.SetReadDeadline(time.Now().Add(k.pongWait))
}

func (k *keepaliveConn) ReadJSON(v interface{}) error {
	if err := k.raw.ReadJSON(v); err != nil {
		return err
	}
	if k.pongWait > 0 {
		return k.extendRead()
	}
	return nil
}

func (k *keepaliveConn) WriteJSON(v interface{}) error {
	if err := k.raw.SetWriteDeadline(time.Now().Add(k.writeWait)); err != nil {
		return err
	}
	return k.raw.WriteJSON(v)
}

// Ping is called by the hub's writer for this connection.
func (k *keepaliveConn) Ping() error {
	return k.raw.WriteControl(websocket.PingMessage, nil, time.Now().Add(k.writeWait))
}

func (k *keepaliveConn) Close() error {
	return k.raw.Close()
}
