// Package live pushes committed roster events to websocket clients watching a
// team.
package live

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mcdev12/bpl/go/internal/outbox"
	"github.com/rs/zerolog/log"
)

// Config holds websocket connection settings.
type Config struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	SendBuffer      int
	CheckOrigin     func(r *http.Request) bool
}

func DefaultConfig() Config {
	return Config{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		SendBuffer:      64,
	}
}

// Hub tracks websocket clients by team and fans events out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*client]struct{}

	upgrader    websocket.Upgrader
	config      Config
	broadcastCh chan outbox.Envelope
}

type client struct {
	id     string
	teamID uuid.UUID
	conn   *websocket.Conn
	send   chan []byte
	hub    *Hub
}

func NewHub(config Config) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		broadcastCh: make(chan outbox.Envelope, 1000),
	}
}

// Start delivers queued events until ctx is done.
func (h *Hub) Start(ctx context.Context) {
	log.Info().Msg("live hub started")

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			log.Info().Msg("live hub shutting down")
			return
		case env := <-h.broadcastCh:
			h.deliver(env)
		}
	}
}

// Broadcast queues env for the clients of env.TeamID. Events are dropped when
// the queue is full.
func (h *Hub) Broadcast(env outbox.Envelope) {
	select {
	case h.broadcastCh <- env:
	default:
		log.Warn().Str("team_id", env.TeamID.String()).Msg("broadcast channel full, dropping event")
	}
}

// Connections reports the number of clients watching teamID.
func (h *Hub) Connections(teamID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[teamID])
}

func (h *Hub) attach(w http.ResponseWriter, r *http.Request, teamID uuid.UUID) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	c := &client{
		id:     uuid.NewString(),
		teamID: teamID,
		conn:   conn,
		send:   make(chan []byte, h.config.SendBuffer),
		hub:    h,
	}
	h.register(c)

	go c.writePump()
	go c.readPump()

	log.Info().
		Str("connection_id", c.id).
		Str("team_id", teamID.String()).
		Msg("websocket connection established")
	return nil
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[c.teamID] == nil {
		h.clients[c.teamID] = make(map[*client]struct{})
	}
	h.clients[c.teamID][c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[c.teamID]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.clients, c.teamID)
	}
	log.Debug().
		Str("connection_id", c.id).
		Str("team_id", c.teamID.String()).
		Msg("connection unregistered")
}

func (h *Hub) deliver(env outbox.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event for broadcast")
		return
	}

	// sends happen under the read lock so unregister cannot close a channel
	// mid-send
	var slow []*client
	h.mu.RLock()
	delivered := len(h.clients[env.TeamID])
	for c := range h.clients[env.TeamID] {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		log.Warn().Str("connection_id", c.id).Msg("send buffer full, closing connection")
		h.unregister(c)
		c.conn.Close()
	}

	if delivered > 0 {
		log.Debug().
			Str("event_type", string(env.EventType)).
			Str("team_id", env.TeamID.String()).
			Int("connections", delivered).
			Msg("event broadcast")
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	var all []*client
	for _, clients := range h.clients {
		for c := range clients {
			all = append(all, c)
		}
	}
	h.mu.Unlock()

	for _, c := range all {
		h.unregister(c)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.hub.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.hub.unregister(c)
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Debug().Err(err).Str("connection_id", c.id).Msg("failed to write message")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("connection_id", c.id).Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump only keeps the read deadline fresh; clients have nothing to say.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.config.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("connection_id", c.id).Msg("unexpected websocket close")
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	}
}
