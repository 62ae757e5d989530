package services

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
)

// Event is one message on the live admin feed. Kind is "notification" for
// domain events and "metrics" for sampler output.
type Event struct {
	Kind       string      `json:"kind"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

// EventHub fans events out to connected websocket clients. Add/Remove are
// only called from the socket handler goroutine per connection; writes happen
// on the hub goroutine.
type EventHub struct {
	clients map[*websocket.Conn]bool
	ch      chan Event
	joins   chan *websocket.Conn
	leaves  chan *websocket.Conn
}

func NewEventHub() *EventHub {
	return &EventHub{
		clients: map[*websocket.Conn]bool{},
		ch:      make(chan Event, 32),
		joins:   make(chan *websocket.Conn, 4),
		leaves:  make(chan *websocket.Conn, 4),
	}
}

func (h *EventHub) Run(ctx context.Context) {
	for {
		select {
		case conn := <-h.joins:
			h.clients[conn] = true
		case conn := <-h.leaves:
			delete(h.clients, conn)
		case event := <-h.ch:
			for conn := range h.clients {
				_ = conn.WriteJSON(event)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Broadcast never blocks; events are dropped when the buffer is full.
func (h *EventHub) Broadcast(kind string, payload interface{}) {
	event := Event{Kind: kind, OccurredAt: time.Now().UTC(), Payload: payload}
	select {
	case h.ch <- event:
	default:
	}
}

func (h *EventHub) Add(conn *websocket.Conn) {
	h.joins <- conn
}

func (h *EventHub) Remove(conn *websocket.Conn) {
	h.leaves <- conn
}
