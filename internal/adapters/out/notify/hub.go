// Package notify fans order events out to the owning user's active
// connections. Delivery is in-process, best effort and at most once: a user
// with no open connection simply misses the event, and a slow connection
// has events dropped rather than blocking the caller.
package notify

import (
	"log/slog"
	"sync"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/ports"
)

const defaultBuffer = 16

// Envelope pairs an event name with its payload for delivery.
type Envelope struct {
	Event string
	Data  ports.OrderEvent
}

// Subscription is one connection's event feed. Close it when the
// connection ends.
type Subscription struct {
	userKey string
	ch      chan Envelope
	hub     *Hub
	once    sync.Once
}

// Events returns the channel the connection reads from. The channel is
// closed when the subscription is closed.
func (s *Subscription) Events() <-chan Envelope {
	return s.ch
}

// Close removes the subscription from the hub and closes its channel.
// Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
		close(s.ch)
	})
}

// Hub is the in-process notification registry. It implements
// ports.Notifier.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscription]struct{}
	buffer int
	logger *slog.Logger
}

// NewHub creates a hub. A non-positive buffer falls back to the default
// per-subscription buffer size.
func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}

	return &Hub{
		subs:   make(map[string]map[*Subscription]struct{}),
		buffer: buffer,
		logger: logger.With("component", "notify_hub"),
	}
}

// Subscribe registers a new connection for the given user.
func (h *Hub) Subscribe(userID kernel.UUID) *Subscription {
	sub := &Subscription{
		userKey: userID.String(),
		ch:      make(chan Envelope, h.buffer),
		hub:     h,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[sub.userKey] == nil {
		h.subs[sub.userKey] = make(map[*Subscription]struct{})
	}
	h.subs[sub.userKey][sub] = struct{}{}

	return sub
}

// Notify delivers the event to every active connection of the user.
// Never blocks: a connection whose buffer is full loses the event.
func (h *Hub) Notify(userID kernel.UUID, eventName string, event ports.OrderEvent) {
	envelope := Envelope{Event: eventName, Data: event}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[userID.String()] {
		select {
		case sub.ch <- envelope:
		default:
			h.logger.Warn("dropping event for slow subscriber",
				"userId", userID.String(), "event", eventName)
		}
	}
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set := h.subs[sub.userKey]
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.userKey)
	}
}
