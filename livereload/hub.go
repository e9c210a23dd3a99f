package livereload

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// DefaultEndpoint is the conventional mount path for the reload hub.
const DefaultEndpoint = "/hmr"

// reloadMessage is the text frame sent to clients when watched files
// change. The client script reloads the page on receipt.
const reloadMessage = "reload"

// Config configures a Hub.
type Config struct {
	// Logger receives connection and broadcast events. Defaults to a
	// no-op logger.
	Logger zerolog.Logger

	// CheckOrigin overrides the websocket origin check. When nil, all
	// origins are accepted; the hub is a development tool and the
	// reload message carries no data worth protecting.
	CheckOrigin func(r *http.Request) bool
}

// Hub accepts websocket connections and broadcasts reload notifications
// to every connected client. It implements http.Handler for its
// endpoint. The zero value is not usable; construct with NewHub.
type Hub struct {
	log      zerolog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewHub returns a hub ready to mount.
func NewHub(cfg Config) *Hub {
	checkOrigin := cfg.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}

	return &Hub{
		log: cfg.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the connection and holds it open until the client
// disconnects. Incoming messages are discarded; the protocol is
// server-to-client only.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug().Err(err).Msg("livereload upgrade failed")
		return
	}

	h.register(conn)
	h.log.Debug().Str("remote_addr", conn.RemoteAddr().String()).Msg("livereload client connected")

	defer func() {
		h.unregister(conn)
		conn.Close()
		h.log.Debug().Str("remote_addr", conn.RemoteAddr().String()).Msg("livereload client disconnected")
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends a text message to every connected client. Clients
// whose write fails are dropped.
func (h *Hub) Broadcast(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(message)); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// Reload broadcasts the reload notification.
func (h *Hub) Reload() {
	h.log.Debug().Int("clients", h.ClientCount()).Msg("livereload broadcast")
	h.Broadcast(reloadMessage)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[conn] = struct{}{}
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, conn)
}
