package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/securepass/securepass/internal/store"
)

// ChangeEvent tells subscribers which store mutated and how.
type ChangeEvent struct {
	Store string   `json:"store"`
	Op    store.Op `json:"op"`
}

// EventHub fans store change notifications out to SSE clients.
type EventHub struct {
	mu      sync.RWMutex
	clients map[string]chan []byte
}

// NewEventHub constructs an empty hub.
func NewEventHub() *EventHub {
	return &EventHub{clients: make(map[string]chan []byte)}
}

// Broadcast sends the event to every connected client. Clients with a full
// buffer are skipped rather than blocked on.
func (h *EventHub) Broadcast(ev ChangeEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.clients {
		select {
		case ch <- data:
		default:
			// Client buffer full, skip
		}
	}
}

// Watch subscribes the hub to a store so every mutation is broadcast under
// the given store name.
func Watch[T any](h *EventHub, name string, c *store.Collection[T]) {
	c.Subscribe(func(op store.Op) {
		h.Broadcast(ChangeEvent{Store: name, Op: op})
	})
}

// ServeHTTP streams change events to the client as server-sent events until
// the connection closes.
func (h *EventHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	id := uuid.NewString()
	ch := make(chan []byte, 16)
	h.mu.Lock()
	h.clients[id] = ch
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		delete(h.clients, id)
		h.mu.Unlock()
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case data := <-ch:
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}
