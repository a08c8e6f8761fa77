// internal/httpserver/ws.go
//
// Live progress push.
// Each browser tab opens /ws and receives a "snapshot" message with the
// current progress, then a "progress" message after every change (phase
// completed or reset). The socket is one-way; anything the client sends is
// read and discarded so close frames are noticed.
//
// Each client has a buffered send queue drained by its own write pump. A
// client whose queue is full is disconnected rather than slowing the others.

package httpserver

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/magicnumbers/internal/progress"
)

type messageType string

const (
	msgSnapshot messageType = "snapshot"
	msgProgress messageType = "progress"
)

type wsMessage struct {
	Type    messageType           `json:"type"`
	Payload progress.GameProgress `json:"payload"`
}

const (
	sendBuffer = 16
	writeWait  = 10 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func newClient(conn *websocket.Conn) *client {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	go c.writePump()
	return c
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

// hub fans progress snapshots out to connected clients.
type hub struct {
	mu       sync.RWMutex
	clients  map[*client]bool
	progress *progress.Store
	cancel   func()
	once     sync.Once
}

func newHub(ps *progress.Store) *hub {
	h := &hub{clients: make(map[*client]bool), progress: ps}
	h.cancel = ps.Subscribe(func(p progress.GameProgress) {
		h.broadcast(wsMessage{Type: msgProgress, Payload: p})
	})
	return h
}

// add registers conn and queues the initial snapshot. The snapshot is taken
// under the hub lock so no change can be delivered ahead of it.
func (h *hub) add(conn *websocket.Conn) *client {
	c := newClient(conn)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
	data, err := json.Marshal(wsMessage{Type: msgSnapshot, Payload: h.progress.Progress()})
	if err != nil {
		log.Error().Err(err).Msg("ws snapshot marshal")
		return c
	}
	select {
	case c.send <- data:
	default:
	}
	return c
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *hub) broadcast(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("ws broadcast marshal")
		return
	}

	// Sends happen under the read lock; send channels are only closed under the write lock.
	var slow []*client
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		log.Warn().Msg("ws client too slow, disconnecting")
		h.remove(c)
	}
}

func (h *hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// close unsubscribes from the store and disconnects every client.
func (h *hub) close() {
	h.once.Do(func() {
		h.cancel()
		h.mu.Lock()
		defer h.mu.Unlock()
		for c := range h.clients {
			delete(h.clients, c)
			close(c.send)
		}
	})
}

// handleWS upgrades the connection and keeps reading until the client goes away.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: s.checkOrigin}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("ws upgrade")
		return
	}

	log.Debug().Str("remote", r.RemoteAddr).Msg("ws client connected")
	c := s.hub.add(conn)

	go func() {
		defer func() {
			s.hub.remove(c)
			log.Debug().Str("remote", r.RemoteAddr).Msg("ws client disconnected")
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// checkOrigin accepts same-host requests, requests without an Origin header
// and the configured client origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.origin {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}
