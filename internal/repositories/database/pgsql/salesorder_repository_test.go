package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stocknest/stocknest_backend/internal/apperrors"
	"github.com/stocknest/stocknest_backend/internal/core/domain"
)

func TestEnsureReservable(t *testing.T) {
	active := domain.Item{ItemID: "item-1", Name: "Steel Bolt", Quantity: 10, IsActive: true}

	t.Run("active item with enough stock", func(t *testing.T) {
		assert.NoError(t, ensureReservable(active, 10))
	})

	t.Run("insufficient stock", func(t *testing.T) {
		err := ensureReservable(active, 11)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	})

	t.Run("inactive item rejected even with stock", func(t *testing.T) {
		inactive := active
		inactive.IsActive = false
		err := ensureReservable(inactive, 1)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
