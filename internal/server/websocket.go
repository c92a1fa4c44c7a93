package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/crabby-lang/website/internal/logging"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Send pings to peer with this period.
	pingPeriod = 30 * time.Second

	// Messages queued per client before it is dropped as too slow.
	clientBuffer = 16
)

// Message types sent to the browser.
const (
	MessageFullReload = "full_reload"
)

// UpdateMessage represents a message sent to the browser
type UpdateMessage struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// hub tracks connected live-reload clients.
type hub struct {
	mutex   sync.Mutex
	clients map[*client]struct{}
	logger  logging.Logger
}

func newHub(logger logging.Logger) *hub {
	return &hub{
		clients: make(map[*client]struct{}),
		logger:  logger,
	}
}

func (h *hub) register(c *client) {
	h.mutex.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mutex.Unlock()
	h.logger.Debug(context.Background(), "Client connected", "total", total)
}

func (h *hub) unregister(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *hub) count() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// broadcast queues msg for every client. Clients whose queue is full are
// disconnected; a page that missed a reload is stale anyway.
func (h *hub) broadcast(msg UpdateMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		data = []byte(`{"type":"` + MessageFullReload + `"}`)
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

func (h *hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (s *PreviewServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.checkOrigin(r) {
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.allowedOrigins(),
	})
	if err != nil {
		s.logger.Warn(r.Context(), err, "WebSocket upgrade failed")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}
	s.hub.register(c)
	defer s.hub.unregister(c)

	// Browsers never send us anything; CloseRead handles control frames and
	// cancels ctx once the peer goes away.
	ctx := conn.CloseRead(r.Context())
	if err := writeLoop(ctx, c); err != nil && websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
		s.logger.Debug(ctx, "WebSocket write failed", "error", err.Error())
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

func writeLoop(ctx context.Context, c *client) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case message, ok := <-c.send:
			if !ok {
				return nil
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				return err
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return err
			}
		}
	}
}

// allowedOrigins lists the host[:port] values a page may connect from.
func (s *PreviewServer) allowedOrigins() []string {
	port := s.config.Server.Port
	origins := []string{
		fmt.Sprintf("%s:%d", s.config.Server.Host, port),
		fmt.Sprintf("localhost:%d", port),
		fmt.Sprintf("127.0.0.1:%d", port),
	}
	return append(origins, s.config.Server.AllowedOrigins...)
}

// checkOrigin rejects websocket requests from pages this server did not
// serve.
func (s *PreviewServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return false
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if originURL.Scheme != "http" && originURL.Scheme != "https" {
		return false
	}

	if strings.EqualFold(originURL.Host, r.Host) {
		return true
	}
	for _, allowed := range s.allowedOrigins() {
		if strings.EqualFold(originURL.Host, allowed) {
			return true
		}
	}
	return false
}
