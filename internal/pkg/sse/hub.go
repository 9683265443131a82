package sse

import (
	"sync"
)

// Event represents an SSE event to be sent to subscribers of one event's
// live channel.
type Event struct {
	EventID string
	Name    string
	Data    interface{}
}

// Hub manages SSE subscribers and event broadcasting, keyed by event id.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber for an event and returns the delivery
// channel plus a cleanup function the caller must invoke on disconnect.
func (h *Hub) Subscribe(eventID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 16)

	if h.subscribers[eventID] == nil {
		h.subscribers[eventID] = make(map[chan Event]struct{})
	}
	h.subscribers[eventID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[eventID], ch)
		close(ch)
		if len(h.subscribers[eventID]) == 0 {
			delete(h.subscribers, eventID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a specific event id.
func (h *Hub) Publish(eventID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[eventID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock)
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers for an event id.
func (h *Hub) SubscriberCount(eventID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[eventID]; ok {
		return len(subs)
	}
	return 0
}

// TotalSubscribers returns the total number of active subscribers across all
// event channels.
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
