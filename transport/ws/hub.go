// Package ws pushes bus events to browser clients over websocket. Clients
// only listen; there is no replay, a client connected after an event was
// published must re-fetch state through the REST API.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"eduspace/infras/otel"
	"eduspace/internal/events"
	"eduspace/shared/constant"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	subscriberName = "ws-hub"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// a client that cannot drain this many pending frames is dropped
	sendBuffer = 16
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans bus events out to every connected websocket client.
type Hub struct {
	otel     otel.Otel
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub creates the hub and registers it on the event bus.
func NewHub(bus events.Bus, otel otel.Otel) *Hub {
	hub := &Hub{
		otel: otel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// tokens are not carried on the upgrade request, the stream only
			// mirrors data that is readable through public endpoints anyway
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: map[*client]struct{}{},
	}

	bus.Subscribe(subscriberName, hub.handleEvent)

	return hub
}

func (h *Hub) Router(router chi.Router) {
	router.Get("/ws", h.Serve)
}

// Serve upgrades the connection and keeps it registered until the peer
// disconnects.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	_, scope := h.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".WebSocket")
	defer scope.End()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upgrade websocket connection")

		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	log.Info().Int("clients", total).Msg("Websocket client connected")

	go h.writePump(c)
	go h.readPump(c)
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// handleEvent marshals the event and queues it on every client. Clients with
// a full send buffer are dropped rather than stalling the fan-out.
func (h *Hub) handleEvent(ctx context.Context, event events.Event) {
	_, scope := h.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Broadcast")
	defer scope.End()

	scope.SetAttribute("event.type", event.Type)

	message, err := json.Marshal(event)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("event", event.Type).Msg("failed to marshal event for broadcast")

		return
	}

	var stalled []*client

	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- message:
		default:
			stalled = append(stalled, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stalled {
		h.remove(c)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}

	delete(h.clients, c)
	close(c.send)

	_ = c.conn.Close()
}

// readPump discards inbound frames, the stream is one way. It exists to
// service control frames and to detect the peer going away.
func (h *Hub) readPump(c *client) {
	defer h.remove(c)

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		h.remove(c)
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})

				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
