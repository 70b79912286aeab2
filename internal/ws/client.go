package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait is the deadline for a single write to the peer
	writeWait = 10 * time.Second

	// pongWait is how long the connection survives without hearing a pong
	pongWait = 60 * time.Second

	// pingPeriod must be under pongWait to keep the connection alive
	pingPeriod = 54 * time.Second

	maxMessageSize = 4096
	sendBufferSize = 256
)

// client is one player's connection. It satisfies the registry's Conn
// interface: Send queues without blocking, so a slow reader never stalls
// game logic. A full buffer drops the message; game state lives server-side
// and the next event catches the reader up or the read deadline reaps it.
type client struct {
	gateway *Gateway
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	logger  *slog.Logger

	mu     sync.Mutex
	closed bool
}

func newClient(gateway *Gateway, conn *websocket.Conn) *client {
	return &client{
		gateway: gateway,
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		done:    make(chan struct{}),
		logger:  gateway.logger,
	}
}

// Send marshals and queues a message for the write pump. Sends that race
// with teardown are dropped: the send channel is never closed, so a notify
// arriving after close cannot panic another goroutine.
func (c *client) Send(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("failed to marshal outbound message", slog.Any("error", err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		c.logger.Warn("send buffer full, dropping message",
			slog.String("remote", c.conn.RemoteAddr().String()),
		)
	}
}

// close marks the client dead and signals the write pump, exactly once
func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
}

// readPump reads client messages until the connection dies, then tears the
// player down. Pongs extend the read deadline; a peer that stops answering
// pings gets reaped after pongWait.
func (c *client) readPump() {
	defer func() {
		c.gateway.disconnect(c)
		c.close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read error", slog.Any("error", err))
			}
			return
		}
		if messageType == websocket.TextMessage {
			c.gateway.handleMessage(c, data)
		}
	}
}

// writePump drains the send channel and keeps the connection alive with
// periodic pings
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

			// Flush whatever else is already queued
			for i := len(c.send); i > 0; i-- {
				if err := c.conn.WriteMessage(websocket.TextMessage, <-c.send); err != nil {
					return
				}
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
