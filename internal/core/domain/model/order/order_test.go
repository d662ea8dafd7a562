package order_test

import (
	"testing"
	"time"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustQuantity(t *testing.T, name string, v int) kernel.Quantity {
	t.Helper()
	q, err := kernel.NewQuantity(name, v)
	require.NoError(t, err)
	return q
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	now := time.Now().UTC()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		mustQuantity(t, "curryQuantity", 2),
		mustQuantity(t, "naanQuantity", 3),
		now,
		now.Add(580*time.Second),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates order in Processing status", func(t *testing.T) {
		now := time.Now().UTC()
		id := kernel.NewUUID()
		userID := kernel.NewUUID()
		pickup := now.Add(10 * time.Minute)

		o, err := order.NewOrder(id, userID,
			mustQuantity(t, "curryQuantity", 2),
			mustQuantity(t, "naanQuantity", 3),
			now, pickup)

		require.NoError(t, err)
		assert.Equal(t, order.Processing, o.Status())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.UserID().IsEqual(userID))
		assert.Equal(t, 2, o.CurryQuantity().Value())
		assert.Equal(t, 3, o.NaanQuantity().Value())
		assert.Equal(t, pickup, o.PickupTime())
		assert.Equal(t, now, o.CreatedAt())
		assert.NoError(t, o.Validate())
	})

	t.Run("pickup time equal to creation time is allowed", func(t *testing.T) {
		now := time.Now().UTC()

		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
			mustQuantity(t, "curryQuantity", 1),
			mustQuantity(t, "naanQuantity", 1),
			now, now)

		require.NoError(t, err)
	})

	t.Run("rejects pickup time before creation time", func(t *testing.T) {
		now := time.Now().UTC()

		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
			mustQuantity(t, "curryQuantity", 1),
			mustQuantity(t, "naanQuantity", 1),
			now, now.Add(-time.Second))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects zero identifiers", func(t *testing.T) {
		now := time.Now().UTC()
		var zeroID kernel.UUID

		_, err := order.NewOrder(zeroID, kernel.NewUUID(),
			mustQuantity(t, "curryQuantity", 1),
			mustQuantity(t, "naanQuantity", 1),
			now, now)
		require.Error(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), zeroID,
			mustQuantity(t, "curryQuantity", 1),
			mustQuantity(t, "naanQuantity", 1),
			now, now)
		require.Error(t, err)
	})

	t.Run("rejects zero-value quantities", func(t *testing.T) {
		now := time.Now().UTC()
		var zeroQty kernel.Quantity

		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
			zeroQty,
			mustQuantity(t, "naanQuantity", 1),
			now, now)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects zero timestamps", func(t *testing.T) {
		now := time.Now().UTC()

		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
			mustQuantity(t, "curryQuantity", 1),
			mustQuantity(t, "naanQuantity", 1),
			time.Time{}, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores a completed order", func(t *testing.T) {
		now := time.Now().UTC()

		o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(),
			mustQuantity(t, "curryQuantity", 2),
			mustQuantity(t, "naanQuantity", 3),
			now, now.Add(time.Minute), order.Completed)

		require.NoError(t, err)
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		now := time.Now().UTC()

		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(),
			mustQuantity(t, "curryQuantity", 2),
			mustQuantity(t, "naanQuantity", 3),
			now, now.Add(time.Minute), order.Unknown)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero value order is not constructed", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order is not constructed", func(t *testing.T) {
		var o *order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Complete(t *testing.T) {
	t.Run("Processing order completes", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Complete())
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("double complete is a conflict", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Complete())

		err := o.Complete()

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.Completed, o.Status())
	})
}

func TestOrder_IsEqual(t *testing.T) {
	t.Run("orders with same id are equal", func(t *testing.T) {
		o := newTestOrder(t)

		restored, err := order.RestoreOrder(o.ID(), o.UserID(),
			o.CurryQuantity(), o.NaanQuantity(),
			o.CreatedAt(), o.PickupTime(), o.Status())
		require.NoError(t, err)

		assert.True(t, o.IsEqual(restored))
	})

	t.Run("different ids are not equal", func(t *testing.T) {
		assert.False(t, newTestOrder(t).IsEqual(newTestOrder(t)))
	})

	t.Run("nil is not equal", func(t *testing.T) {
		assert.False(t, newTestOrder(t).IsEqual(nil))
	})
}
