// Package realtime delivers chat message inserts to live subscribers:
// in-process via the Hub, across nodes via the optional redis Bridge,
// and down to browsers via websocket Connections.
package realtime

import (
	"sync"

	"github.com/dev-singh-05/gymers/internal/models"

	"github.com/google/uuid"
)

const subscriberBuffer = 128

// Subscription is one live feed of inserted messages. Close must be
// called when the consumer goes away; leaking subscriptions leaks the
// channel and the hub slot.
type Subscription struct {
	C <-chan models.Message

	id  string
	hub *Hub
}

// Close releases the hub slot. Safe to call more than once.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s.id)
}

// Hub fans inserted messages out to all active subscriptions. There is
// a single logical room, so no per-room bookkeeping is needed.
type Hub struct {
	mu      sync.RWMutex
	subs    map[string]chan models.Message
	dropped func() // invoked when a slow subscriber misses a message
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]chan models.Message)}
}

// OnDrop registers a callback fired whenever a message is dropped for a
// slow subscriber. Used for metrics; may be nil.
func (h *Hub) OnDrop(fn func()) {
	h.mu.Lock()
	h.dropped = fn
	h.mu.Unlock()
}

// Subscribe registers a new live feed. Delivery starts with the next
// published message.
func (h *Hub) Subscribe() *Subscription {
	ch := make(chan models.Message, subscriberBuffer)
	id := uuid.NewString()

	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()

	return &Subscription{C: ch, id: id, hub: h}
}

// Publish delivers msg to every subscriber. Subscribers with a full
// buffer miss the message rather than block the publisher.
func (h *Hub) Publish(msg models.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- msg:
		default:
			if h.dropped != nil {
				h.dropped()
			}
		}
	}
}

// Subscribers returns the current subscription count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) unsubscribe(id string) {
	h.mu.Lock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
	h.mu.Unlock()
}
