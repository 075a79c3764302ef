package websocket

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

type client struct {
	id     string
	logger *slog.Logger
	hub    *Hub
	conn   *websocket.Conn

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(logger *slog.Logger, id string, hub *Hub, conn *websocket.Conn) *client {
	return &client{
		id:     id,
		logger: logger.With("client", id),
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}
}

// enqueue - never blocks, false means the queue is full or the client is gone.
func (that *client) enqueue(payload []byte) bool {
	select {
	case <-that.done:
		return false
	default:
	}

	select {
	case that.send <- payload:
		return true
	default:
		return false
	}
}

func (that *client) reply(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		that.logger.Error("failed to marshal reply", "method", "reply", "error", err)
		return
	}

	if !that.enqueue(payload) {
		that.logger.Warn("client queue full, reply dropped", "method", "reply", "action", msg.Action)
	}
}

func (that *client) close() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}

// readPump - handles control messages until the connection fails, then unregisters the client.
func (that *client) readPump() {
	log := that.logger.With("method", "readPump")

	defer func() {
		that.hub.unregister(that)
		that.close()
	}()

	that.conn.SetReadLimit(maxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("unexpected close", "error", err)
			}
			return
		}

		that.handleMessage(data)
	}
}

func (that *client) handleMessage(data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		that.reply(Message{Action: actionError, Error: "invalid message"})
		return
	}

	switch msg.Action {
	case actionSubscribe, actionUnsubscribe:
		if msg.GameID == "" {
			that.reply(Message{Action: actionError, Error: "gameId is required"})
			return
		}

		if msg.Action == actionSubscribe {
			that.hub.subscribe(that, msg.GameID)
			that.reply(Message{Action: actionSubscribed, GameID: msg.GameID})
			return
		}

		that.hub.unsubscribe(that, msg.GameID)
		that.reply(Message{Action: actionUnsubscribed, GameID: msg.GameID})
	case actionPing:
		that.reply(Message{Action: actionPong})
	default:
		that.reply(Message{Action: actionError, Error: "unknown action"})
	}
}

// writePump - the only writer of the connection. Sends queued messages and keepalive pings.
func (that *client) writePump() {
	log := that.logger.With("method", "writePump")

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case payload := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Warn("write failed", "error", err)
				that.close()
				return
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				that.close()
				return
			}
		case <-that.done:
			err := that.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
				log.Debug("close frame not sent", "error", err)
			}
			return
		}
	}
}
