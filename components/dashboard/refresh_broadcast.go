package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

const broadcastBuffer = 8

// EventFilter selects the widget events a subscriber receives.
type EventFilter func(WidgetEvent) bool

// DatasetFilter passes events for dataset, plus layout events that carry no dataset.
func DatasetFilter(dataset string) EventFilter {
	if dataset == "" {
		return nil
	}
	return func(event WidgetEvent) bool {
		return event.Dataset == "" || event.Dataset == dataset
	}
}

type subscriber struct {
	ch     chan WidgetEvent
	filter EventFilter
}

// BroadcastHook fans out widget and refresh events to in-process subscribers. Slow
// subscribers drop events instead of blocking the refresh.
type BroadcastHook struct {
	mu   sync.RWMutex
	subs map[int]subscriber
	next int
}

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{
		subs: make(map[int]subscriber),
	}
}

// WidgetUpdated satisfies the RefreshHook interface and broadcasts events.
func (h *BroadcastHook) WidgetUpdated(_ context.Context, event WidgetEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if sub.filter != nil && !sub.filter(event) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe returns a channel of all widget events and a cancel func.
func (h *BroadcastHook) Subscribe() (<-chan WidgetEvent, func()) {
	return h.SubscribeFiltered(nil)
}

// SubscribeFiltered returns a channel of the events accepted by filter (nil = all).
func (h *BroadcastHook) SubscribeFiltered(filter EventFilter) (<-chan WidgetEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan WidgetEvent, broadcastBuffer)
	h.subs[id] = subscriber{ch: ch, filter: filter}
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub.ch)
		}
	}
	return ch, cancel
}

// Subscribers reports the number of active subscriptions.
func (h *BroadcastHook) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams widget events as JSON. The optional
// dataset query parameter restricts refresh events to one dataset.
func (h *BroadcastHook) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer conn.Close()

	events, cancel := h.SubscribeFiltered(DatasetFilter(r.URL.Query().Get("dataset")))
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// ServeSSE provides a Server-Sent Events endpoint for refresh events. The event name is
// the event reason (refresh, add, delete, reorder).
func (h *BroadcastHook) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	events, cancel := h.SubscribeFiltered(DatasetFilter(r.URL.Query().Get("dataset")))
	defer cancel()

	flusher, _ := w.(http.Flusher)
	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Reason, payload); err != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}
