package dispatch

import (
	"sync"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/xivmarket/marketboard/internal/domain"
	"github.com/xivmarket/marketboard/internal/logger"
)

// defaultSendBuffer is the per-subscription send queue depth. A full
// queue drops the event for that subscriber only.
const defaultSendBuffer = 64

// Filter selects which events a subscription receives. Zero values
// match anything.
type Filter struct {
	Kind    domain.EventKind `json:"event,omitempty"`
	WorldID int32            `json:"world,omitempty"`
	ItemID  int32            `json:"item,omitempty"`
}

// Matches reports whether the filter selects the event.
func (f Filter) Matches(event *domain.UploadEvent) bool {
	if f.Kind != "" && f.Kind != event.Kind {
		return false
	}
	if f.WorldID != 0 && f.WorldID != event.WorldID {
		return false
	}
	if f.ItemID != 0 && f.ItemID != event.ItemID {
		return false
	}
	return true
}

// Subscription is one live client's interest in the event stream. Its
// send path is isolated so a slow client never blocks the others.
type Subscription struct {
	ID      string
	filters []Filter
	send    chan []byte

	mu     sync.Mutex
	closed bool
}

// C returns the channel serialized deltas are delivered on. It is
// closed when the subscription is torn down.
func (s *Subscription) C() <-chan []byte {
	return s.send
}

// AddFilter widens the subscription with another filter.
func (s *Subscription) AddFilter(f Filter) {
	s.mu.Lock()
	s.filters = append(s.filters, f)
	s.mu.Unlock()
}

// RemoveFilter drops every filter equal to f.
func (s *Subscription) RemoveFilter(f Filter) {
	s.mu.Lock()
	kept := s.filters[:0]
	for _, existing := range s.filters {
		if existing != f {
			kept = append(kept, existing)
		}
	}
	s.filters = kept
	s.mu.Unlock()
}

func (s *Subscription) matches(event *domain.UploadEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.filters {
		if f.Matches(event) {
			return true
		}
	}
	return false
}

// deliver enqueues the payload without blocking. Returns false when
// the subscription's queue is full or it is already closed.
func (s *Subscription) deliver(payload []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.send <- payload:
		return true
	default:
		return false
	}
}

func (s *Subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.send)
}

// Hub fans committed upload events out to live subscriptions.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]*Subscription
}

// NewHub creates an empty dispatch hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]*Subscription)}
}

// Subscribe registers a new subscription with the given initial
// filters. No filters means all events.
func (h *Hub) Subscribe(filters ...Filter) *Subscription {
	if len(filters) == 0 {
		filters = []Filter{{}}
	}

	sub := &Subscription{
		ID:      ulid.Make().String(),
		filters: filters,
		send:    make(chan []byte, defaultSendBuffer),
	}

	h.mu.Lock()
	h.subs[sub.ID] = sub
	h.mu.Unlock()

	return sub
}

// Unsubscribe tears a subscription down and closes its channel.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	sub, ok := h.subs[id]
	delete(h.subs, id)
	h.mu.Unlock()

	if ok {
		sub.close()
	}
}

// Broadcast pushes the serialized event to every matching
// subscription. Delivery is best-effort; a full subscriber queue drops
// the event for that subscriber only.
func (h *Hub) Broadcast(event *domain.UploadEvent, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		if !sub.matches(event) {
			continue
		}
		if !sub.deliver(payload) {
			logger.Warn("dropping event for slow subscriber",
				zap.String("subscription_id", sub.ID),
				zap.String("event", string(event.Kind)))
		}
	}
}

// Len reports the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
