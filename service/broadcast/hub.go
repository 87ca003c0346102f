package broadcast

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/base/goroutine"
	"github.com/x-xyz/auctionapi/base/log"
	"github.com/x-xyz/auctionapi/base/metrics"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 30 * time.Second
	sendBufSize  = 64
	filterParam  = "tournamentId"
	maxReadBytes = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	// tournamentID filters the stream; empty receives everything
	tournamentID string
	send         chan []byte
	once         sync.Once
}

func (cl *client) close() {
	cl.once.Do(func() {
		close(cl.send)
	})
}

// Hub streams events to websocket observers. It is safe for concurrent use.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	met     metrics.Service
}

func NewHub(met metrics.Service) *Hub {
	return &Hub{
		clients: map[*client]struct{}{},
		met:     met,
	}
}

// Publish never blocks: a client whose buffer is full is disconnected
func (h *Hub) Publish(c ctx.Ctx, event string, payload interface{}) error {
	bs, err := encode(event, payload)
	if err != nil {
		return err
	}
	scope := scopeOf(bs)

	h.mu.RLock()
	slow := []*client{}
	for cl := range h.clients {
		if cl.tournamentID != "" && cl.tournamentID != scope {
			continue
		}
		select {
		case cl.send <- bs:
		default:
			slow = append(slow, cl)
		}
	}
	h.mu.RUnlock()

	for _, cl := range slow {
		c.WithField("tournamentId", cl.tournamentID).Warn("dropping slow websocket client")
		h.met.BumpSum("ws.drop", 1)
		h.remove(cl)
	}
	return nil
}

// Len returns the number of connected observers
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every observer
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		delete(h.clients, cl)
		cl.close()
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Log().WithField("err", err).Warn("websocket upgrade failed")
		return
	}

	cl := &client{
		conn:         conn,
		tournamentID: r.URL.Query().Get(filterParam),
		send:         make(chan []byte, sendBufSize),
	}
	h.add(cl)

	goroutine.RecoverableGo(func() { h.writeLoop(cl) }, goroutine.WithName("ws.write"))
	h.readLoop(cl)
}

func (h *Hub) add(cl *client) {
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()
	h.met.BumpSum("ws.connect", 1)
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		cl.close()
	}
	h.mu.Unlock()
}

// readLoop only drains control frames; observers cannot send commands
func (h *Hub) readLoop(cl *client) {
	defer h.remove(cl)

	cl.conn.SetReadLimit(maxReadBytes)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case bs, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, bs); err != nil {
				h.remove(cl)
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(cl)
				return
			}
		}
	}
}

// scopeOf extracts payload.tournamentId from an encoded frame
func scopeOf(frame []byte) string {
	v := struct {
		Payload struct {
			TournamentID string `json:"tournamentId"`
		} `json:"payload"`
	}{}
	if err := json.Unmarshal(frame, &v); err != nil {
		return ""
	}
	return v.Payload.TournamentID
}
