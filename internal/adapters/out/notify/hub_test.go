package notify_test

import (
	"log/slog"
	"testing"

	"foodtruck/internal/adapters/out/notify"
	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(buffer int) *notify.Hub {
	return notify.NewHub(buffer, slog.Default())
}

func TestHub_DeliversToOwner(t *testing.T) {
	hub := newTestHub(4)
	userID := kernel.NewUUID()

	sub := hub.Subscribe(userID)
	defer sub.Close()

	event := ports.OrderEvent{OrderID: kernel.NewUUID().String(), Status: "PROCESSING"}
	hub.Notify(userID, ports.EventOrderConfirmed, event)

	got := <-sub.Events()
	assert.Equal(t, ports.EventOrderConfirmed, got.Event)
	assert.Equal(t, event, got.Data)
}

func TestHub_DoesNotLeakToOtherUsers(t *testing.T) {
	hub := newTestHub(4)
	owner := kernel.NewUUID()
	bystander := kernel.NewUUID()

	ownerSub := hub.Subscribe(owner)
	defer ownerSub.Close()
	bystanderSub := hub.Subscribe(bystander)
	defer bystanderSub.Close()

	hub.Notify(owner, ports.EventOrderReady, ports.OrderEvent{Status: "COMPLETED"})

	require.Len(t, ownerSub.Events(), 1)
	assert.Empty(t, bystanderSub.Events())
}

func TestHub_FanOutToAllConnections(t *testing.T) {
	hub := newTestHub(4)
	userID := kernel.NewUUID()

	first := hub.Subscribe(userID)
	defer first.Close()
	second := hub.Subscribe(userID)
	defer second.Close()

	hub.Notify(userID, ports.EventOrderReady, ports.OrderEvent{Status: "COMPLETED"})

	assert.Len(t, first.Events(), 1)
	assert.Len(t, second.Events(), 1)
}

func TestHub_NoSubscribers_DoesNotBlock(t *testing.T) {
	hub := newTestHub(4)

	// Must return immediately even with nobody listening.
	hub.Notify(kernel.NewUUID(), ports.EventOrderConfirmed, ports.OrderEvent{})
}

func TestHub_FullBuffer_DropsInsteadOfBlocking(t *testing.T) {
	hub := newTestHub(1)
	userID := kernel.NewUUID()

	sub := hub.Subscribe(userID)
	defer sub.Close()

	hub.Notify(userID, ports.EventOrderConfirmed, ports.OrderEvent{OrderID: "first"})
	hub.Notify(userID, ports.EventOrderConfirmed, ports.OrderEvent{OrderID: "second"})

	got := <-sub.Events()
	assert.Equal(t, "first", got.Data.OrderID)
	assert.Empty(t, sub.Events())
}

func TestSubscription_Close_StopsDelivery(t *testing.T) {
	hub := newTestHub(4)
	userID := kernel.NewUUID()

	sub := hub.Subscribe(userID)
	sub.Close()
	sub.Close() // idempotent

	hub.Notify(userID, ports.EventOrderReady, ports.OrderEvent{})

	_, open := <-sub.Events()
	assert.False(t, open)
}
