package customer

import (
	"testing"
	"time"

	"fooddash/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	c, err := NewCustomer(11, "Sita", shared.DefaultCurrency)
	require.NoError(t, err)
	assert.True(t, c.IsNew())
	assert.True(t, c.TotalSpent().IsZero())
	assert.Nil(t, c.LastOrderDate())

	_, err = NewCustomer(0, "Nobody", shared.DefaultCurrency)
	assert.ErrorIs(t, err, ErrInvalidCustomer)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestRecordOrderPlaced(t *testing.T) {
	c, err := NewCustomer(11, "Sita", shared.DefaultCurrency)
	require.NoError(t, err)

	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	c.RecordOrderPlaced(at)
	c.RecordOrderPlaced(at.Add(time.Hour))

	assert.Equal(t, 2, c.TotalOrders())
	require.NotNil(t, c.LastOrderDate())
	assert.True(t, c.LastOrderDate().Equal(at.Add(time.Hour)))
	assert.Zero(t, c.LoyaltyPoints(), "points are earned on delivery only")
}

func TestRecordDelivery(t *testing.T) {
	c, err := NewCustomer(11, "Sita", shared.DefaultCurrency)
	require.NoError(t, err)
	unit := decimal.NewFromInt(100)

	require.NoError(t, c.RecordDelivery(shared.MustParseMoney("322.50", shared.DefaultCurrency), unit))
	require.NoError(t, c.RecordDelivery(shared.MustParseMoney("99.99", shared.DefaultCurrency), unit))

	assert.Equal(t, "422.49 NPR", c.TotalSpent().String())
	assert.Equal(t, 3, c.LoyaltyPoints())

	err = c.RecordDelivery(shared.MustParseMoney("10", "USD"), unit)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.Equal(t, "422.49 NPR", c.TotalSpent().String())
}

func TestLoyaltyPointsFor(t *testing.T) {
	npr := func(s string) shared.Money { return shared.MustParseMoney(s, shared.DefaultCurrency) }
	unit := decimal.NewFromInt(100)

	assert.Equal(t, 0, LoyaltyPointsFor(npr("99.99"), unit))
	assert.Equal(t, 1, LoyaltyPointsFor(npr("100"), unit))
	assert.Equal(t, 3, LoyaltyPointsFor(npr("322.50"), unit))
	assert.Equal(t, 0, LoyaltyPointsFor(npr("500"), decimal.Zero))
	assert.Equal(t, 0, LoyaltyPointsFor(npr("-200"), unit))
}
