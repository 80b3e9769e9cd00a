package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wricardo/mcp-training/venuenav/venue/service"
)

func newTestClient(hub *Hub, events string) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, 256),
		topics: parseTopics(events),
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.clients == nil {
		t.Error("Hub clients map is nil")
	}
	if hub.broadcast == nil || cap(hub.broadcast) != broadcastBuffer {
		t.Error("Hub broadcast channel is not buffered")
	}
	if hub.register == nil || hub.unregister == nil {
		t.Error("Hub register channels are nil")
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	client1 := newTestClient(hub, "")
	client2 := newTestClient(hub, "")

	hub.registerClient(client1)
	hub.registerClient(client2)
	if hub.ClientCount() != 2 {
		t.Errorf("Expected 2 clients, got %d", hub.ClientCount())
	}

	hub.unregisterClient(client1)
	if hub.ClientCount() != 1 {
		t.Errorf("Expected 1 client, got %d", hub.ClientCount())
	}
	if !hub.clients[client2] {
		t.Error("client2 should still be registered")
	}

	if _, ok := <-client1.send; ok {
		t.Error("Unregistering should close the send channel")
	}

	// Unregistering twice is harmless
	hub.unregisterClient(client1)
	if hub.ClientCount() != 1 {
		t.Errorf("Expected 1 client, got %d", hub.ClientCount())
	}
}

func TestParseTopics(t *testing.T) {
	tests := []struct {
		raw  string
		size int
	}{
		{"", 0},
		{"grid_loaded", 1},
		{"grid_loaded, route_computed", 2},
		{" ,grid_loaded,,grid_loaded", 1},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := parseTopics(tt.raw).Size(); got != tt.size {
				t.Errorf("Expected %d topics, got %d", tt.size, got)
			}
		})
	}
}

func TestHubBroadcastFiltersByTopic(t *testing.T) {
	hub := NewHub()
	all := newTestClient(hub, "")
	gridOnly := newTestClient(hub, service.EventGridLoaded)
	hub.registerClient(all)
	hub.registerClient(gridOnly)

	hub.broadcastEvent(&service.Event{ID: "1", Type: service.EventRouteComputed, Data: "r0 -> r4"})

	select {
	case data := <-all.send:
		var event service.Event
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("Failed to unmarshal event: %v", err)
		}
		if event.ID != "1" || event.Type != service.EventRouteComputed || event.Data != "r0 -> r4" {
			t.Errorf("Unexpected event %+v", event)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("No message received within timeout")
	}

	select {
	case data := <-gridOnly.send:
		t.Errorf("Client subscribed to grid_loaded received %s", data)
	default:
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	slow := &Client{hub: hub, send: make(chan []byte), topics: parseTopics("")}
	hub.registerClient(slow)

	hub.broadcastEvent(&service.Event{Type: service.EventGridLoaded})

	if hub.ClientCount() != 0 {
		t.Errorf("Expected slow client to be dropped, %d remain", hub.ClientCount())
	}
}

func TestNotifyNeverBlocks(t *testing.T) {
	hub := NewHub()

	// No Run loop: the buffer fills and further events are dropped.
	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastBuffer+10; i++ {
			hub.Notify(&service.Event{Type: service.EventRouteComputed})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked")
	}
	if len(hub.broadcast) != broadcastBuffer {
		t.Errorf("Expected %d queued events, got %d", broadcastBuffer, len(hub.broadcast))
	}
}

func TestWebSocketLifecycle(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}

	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	conn.Close()

	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}

func TestWebSocketReceivesEvents(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?events=grid_loaded"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Notify(&service.Event{ID: "skip", Type: service.EventRouteComputed})
	hub.Notify(&service.Event{ID: "want", Type: service.EventGridLoaded})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read WebSocket message: %v", err)
	}

	var event service.Event
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("Failed to unmarshal event: %v", err)
	}
	if event.ID != "want" {
		t.Errorf("Expected the grid_loaded event, got %+v", event)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}
