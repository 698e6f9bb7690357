package ws_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eduspace/infras/otel/mocks"
	"eduspace/internal/events"
	"eduspace/transport/ws"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *ws.Hub) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(hub.Serve))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func waitForClients(t *testing.T, hub *ws.Hub, want int) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d connected clients, got %d", want, hub.ClientCount())
		}

		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_BroadcastsPublishedEvents(t *testing.T) {
	bus := events.NewBus(mocks.NewOtel())
	hub := ws.NewHub(bus, mocks.NewOtel())

	conn := dialHub(t, hub)
	waitForClients(t, hub, 1)

	bus.Publish(context.Background(), events.Event{
		Type:    events.TypeBookingDeleted,
		Payload: events.BookingDeletedPayload{ID: "b-1"},
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var received events.Event
	require.NoError(t, json.Unmarshal(message, &received))

	assert.Equal(t, events.TypeBookingDeleted, received.Type)

	payload, ok := received.Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "b-1", payload["id"])
}

func TestHub_FansOutToEveryClient(t *testing.T) {
	bus := events.NewBus(mocks.NewOtel())
	hub := ws.NewHub(bus, mocks.NewOtel())

	first := dialHub(t, hub)
	second := dialHub(t, hub)
	waitForClients(t, hub, 2)

	bus.Publish(context.Background(), events.Event{
		Type:    events.TypeBookingDeleted,
		Payload: events.BookingDeletedPayload{ID: "b-2"},
	})

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

		_, message, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(message), events.TypeBookingDeleted)
	}
}

func TestHub_RemovesDisconnectedClients(t *testing.T) {
	bus := events.NewBus(mocks.NewOtel())
	hub := ws.NewHub(bus, mocks.NewOtel())

	conn := dialHub(t, hub)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)

	// a broadcast with no clients must not panic or block
	bus.Publish(context.Background(), events.Event{
		Type:    events.TypeBookingDeleted,
		Payload: events.BookingDeletedPayload{ID: "b-3"},
	})
}
