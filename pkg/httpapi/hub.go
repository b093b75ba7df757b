package httpapi

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// messages queued per subscriber before it is dropped as too slow
	sendBuffer = 64
)

// wsMessage is what subscribers of a session receive
type wsMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type subscriber struct {
	conn *websocket.Conn
	send chan wsMessage
}

// hub fans the events of one session out to its websocket subscribers
type hub struct {
	log         *slog.Logger
	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
	closed      bool
}

func newHub(log *slog.Logger) *hub {
	return &hub{
		log:         log,
		subscribers: make(map[*subscriber]struct{}),
	}
}

// subscribe registers conn, nil after close
func (h *hub) subscribe(conn *websocket.Conn) *subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}

	sub := &subscriber{
		conn: conn,
		send: make(chan wsMessage, sendBuffer),
	}
	h.subscribers[sub] = struct{}{}
	h.log.Debug("websocket subscribed", "subscribers", len(h.subscribers))
	return sub
}

func (h *hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(sub)
}

// drop must be called with h.mu held
func (h *hub) drop(sub *subscriber) {
	if _, ok := h.subscribers[sub]; ok {
		delete(h.subscribers, sub)
		close(sub.send)
	}
}

// broadcast never blocks: a subscriber with a full queue is dropped
func (h *hub) broadcast(msg wsMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		select {
		case sub.send <- msg:
		default:
			h.log.Warn("dropping slow websocket subscriber", "type", msg.Type)
			h.drop(sub)
		}
	}
}

// close disconnects every subscriber
func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		h.drop(sub)
	}
	h.closed = true
}

// writePump owns the writes to the connection and closes it once the
// queue is closed
func (sub *subscriber) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sub.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sub.send:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = sub.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sub.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards incoming messages until the peer goes away
func (sub *subscriber) readPump(h *hub) {
	defer h.unsubscribe(sub)

	_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}
