package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"pixelciv/internal/sims/pixelciv"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("hub never reached %d clients (have %d)", n, hub.ClientCount())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestViewerReceivesConfigThenTicks(t *testing.T) {
	hub := NewHub(8, 4)
	conn := dialHub(t, hub)

	var cfg Frame
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&cfg); err != nil {
		t.Fatalf("read config frame: %v", err)
	}
	if cfg.Type != "config" || cfg.W != 8 || cfg.H != 4 {
		t.Fatalf("config frame %+v, expected 8x4", cfg)
	}
	waitForClients(t, hub, 1)

	cells := make([]uint8, 8*4)
	cells[5] = 3
	stats := pixelciv.Stats{}
	stats[pixelciv.GroupRed] = pixelciv.PopulationStats{Total: 12, Diseased: 2, SumStrength: 600, SumAge: 120}
	hub.Broadcast(42, cells, stats)

	var tick Frame
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&tick); err != nil {
		t.Fatalf("read tick frame: %v", err)
	}
	if tick.Type != "tick" || tick.Tick != 42 {
		t.Fatalf("tick frame header %+v", tick)
	}
	if len(tick.Cells) != 8*4 || tick.Cells[5] != 3 {
		t.Fatalf("tick frame cells corrupted: len %d", len(tick.Cells))
	}
	if tick.Stats["Red"].Total != 12 {
		t.Fatalf("tick frame stats %+v", tick.Stats)
	}
}

func TestResetCommandInvokesCallback(t *testing.T) {
	hub := NewHub(4, 4)
	seeds := make(chan int64, 1)
	hub.OnReset(func(seed int64) { seeds <- seed })

	conn := dialHub(t, hub)
	waitForClients(t, hub, 1)

	if err := conn.WriteJSON(map[string]any{"type": "reset", "seed": 99}); err != nil {
		t.Fatalf("send reset: %v", err)
	}
	select {
	case seed := <-seeds:
		if seed != 99 {
			t.Fatalf("reset seed %d, expected 99", seed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reset callback never fired")
	}
}

func TestDisconnectDeregistersClient(t *testing.T) {
	hub := NewHub(4, 4)
	conn := dialHub(t, hub)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)

	// With no viewers left, broadcasting must be a no-op rather than a panic.
	hub.Broadcast(1, make([]uint8, 16), pixelciv.Stats{})
}
