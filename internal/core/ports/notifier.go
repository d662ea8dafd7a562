package ports

import (
	"foodtruck/internal/core/domain/model/kernel"
)

// Event names pushed to customers over the notification channel.
const (
	EventOrderConfirmed = "order_confirmed"
	EventOrderReady     = "order_ready"
)

// OrderEvent is the payload delivered to a customer when their order
// changes state.
type OrderEvent struct {
	OrderID    string `json:"orderId"`
	PickupTime string `json:"pickupTime,omitempty"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
}

// Notifier pushes events to a single user's active connections.
// Delivery is best effort and at most once, a user with no active
// connection simply misses the event. Implementations must never block
// the caller and must never return an error that aborts a committed
// transaction.
type Notifier interface {
	Notify(userID kernel.UUID, eventName string, event OrderEvent)
}
