// Package server fans simulation frames out to browser viewers over
// websockets. It is presentation plumbing only: the simulation never depends
// on it and keeps running with zero clients connected.
package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"pixelciv/internal/sims/pixelciv"
)

// Frame is one websocket message. Cells carries the display buffer and is
// base64-encoded by encoding/json.
type Frame struct {
	Type  string                              `json:"type"`
	Tick  uint64                              `json:"tick,omitempty"`
	W     int                                 `json:"w,omitempty"`
	H     int                                 `json:"h,omitempty"`
	Cells []byte                              `json:"cells,omitempty"`
	Stats map[string]pixelciv.PopulationStats `json:"stats,omitempty"`
}

type command struct {
	Type string `json:"type"`
	Seed int64  `json:"seed,omitempty"`
}

type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub tracks connected viewers and broadcasts tick frames to all of them.
type Hub struct {
	upgrader websocket.Upgrader

	w, h int

	mu      sync.Mutex
	clients map[string]*client

	onReset func(seed int64)
}

// NewHub creates a hub for a grid of the given dimensions.
func NewHub(w, h int) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		w:        w,
		h:        h,
		clients:  make(map[string]*client),
	}
}

// OnReset registers the callback invoked when a viewer sends a reset command.
func (h *Hub) OnReset(fn func(seed int64)) { h.onReset = fn }

// ClientCount reports the number of connected viewers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Handler upgrades an HTTP request to a websocket viewer session.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "err", err)
			return
		}
		c := &client{id: uuid.NewString(), conn: conn}
		h.mu.Lock()
		h.clients[c.id] = c
		h.mu.Unlock()
		slog.Info("viewer connected", "client", c.id)

		_ = c.send(Frame{Type: "config", W: h.w, H: h.h})

		for {
			var cmd command
			if err := conn.ReadJSON(&cmd); err != nil {
				break
			}
			if cmd.Type == "reset" && h.onReset != nil {
				h.onReset(cmd.Seed)
			}
		}

		h.mu.Lock()
		delete(h.clients, c.id)
		h.mu.Unlock()
		conn.Close()
		slog.Info("viewer disconnected", "client", c.id)
	}
}

// Broadcast sends one tick frame to every connected viewer, dropping clients
// whose connection fails.
func (h *Hub) Broadcast(tick uint64, cells []uint8, stats pixelciv.Stats) {
	h.mu.Lock()
	list := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		list = append(list, c)
	}
	h.mu.Unlock()
	if len(list) == 0 {
		return
	}

	frame := Frame{
		Type:  "tick",
		Tick:  tick,
		Cells: append([]byte(nil), cells...),
		Stats: statsByName(stats),
	}
	for _, c := range list {
		if err := c.send(frame); err != nil {
			slog.Warn("viewer send failed", "client", c.id, "err", err)
			h.mu.Lock()
			delete(h.clients, c.id)
			h.mu.Unlock()
			c.conn.Close()
		}
	}
}

func statsByName(stats pixelciv.Stats) map[string]pixelciv.PopulationStats {
	out := make(map[string]pixelciv.PopulationStats, pixelciv.NumGroups)
	for g := pixelciv.GroupRed; g <= pixelciv.GroupBlue; g++ {
		out[g.String()] = stats[g]
	}
	return out
}
