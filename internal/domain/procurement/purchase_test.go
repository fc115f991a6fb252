package procurement

import (
	"testing"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPurchase(t *testing.T) *Purchase {
	t.Helper()
	p, err := NewPurchase(uuid.New(), uuid.New(), "PO-1001", "Parts Co", "eur", []Line{
		{SKU: "SCR-IP13", Quantity: 10, Price: decimal.RequireFromString("40.00"), IsPart: true},
		{SKU: "BAT-IP13", Quantity: 5, Price: decimal.RequireFromString("12.50"), IsPart: true},
	}, uuid.New())
	require.NoError(t, err)
	return p
}

func TestNewPurchase(t *testing.T) {
	p := newTestPurchase(t)
	assert.Equal(t, StatusPending, p.Status)
	assert.Equal(t, "EUR", p.Currency)
	assert.True(t, decimal.RequireFromString("462.5").Equal(p.TotalAmount()))

	_, err := NewPurchase(uuid.New(), uuid.New(), "PO-1", "Parts Co", "EUR", nil, uuid.New())
	assert.Error(t, err)

	_, err = NewPurchase(uuid.New(), uuid.New(), "PO-1", "Parts Co", "EUR", []Line{
		{SKU: "A-1", Quantity: 1}, {SKU: "A-1", Quantity: 2},
	}, uuid.New())
	assert.ErrorContains(t, err, "more than once")
}

func TestPurchase_Receive(t *testing.T) {
	t.Run("partial then full receipt", func(t *testing.T) {
		p := newTestPurchase(t)

		changes, err := p.Receive([]Receipt{{SKU: "SCR-IP13", Quantity: 4}}, uuid.New())
		require.NoError(t, err)
		require.Len(t, changes, 1)
		assert.Equal(t, int64(4), changes[0].Delta)
		assert.True(t, changes[0].CreateIfMissing)
		assert.Equal(t, StatusPartiallyReceived, p.Status)
		assert.True(t, p.HasReceipts())

		_, err = p.Receive([]Receipt{{SKU: "SCR-IP13", Quantity: 6}, {SKU: "BAT-IP13", Quantity: 5}}, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, StatusReceived, p.Status)
		assert.Len(t, p.PendingEvents(), 3)
	})

	t.Run("over-receipt is rejected without changes", func(t *testing.T) {
		p := newTestPurchase(t)

		_, err := p.Receive([]Receipt{{SKU: "BAT-IP13", Quantity: 3}, {SKU: "BAT-IP13", Quantity: 3}}, uuid.New())
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.False(t, p.HasReceipts())
		assert.Equal(t, StatusPending, p.Status)
	})

	t.Run("unknown sku is rejected", func(t *testing.T) {
		p := newTestPurchase(t)
		_, err := p.Receive([]Receipt{{SKU: "NOPE", Quantity: 1}}, uuid.New())
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}
