package delivery

import (
	"testing"

	"fooddash/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var share = decimal.RequireFromString("0.8")

func TestPartner_DeliveryCycle(t *testing.T) {
	p, err := NewPartner(31, "Ram", shared.DefaultCurrency)
	require.NoError(t, err)
	assert.True(t, p.CanTakeOrder())

	require.NoError(t, p.StartDelivery())
	assert.False(t, p.IsAvailable())
	assert.Equal(t, StatusOnDelivery, p.Status())

	err = p.StartDelivery()
	assert.ErrorIs(t, err, ErrPartnerUnavailable)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	require.NoError(t, p.CompleteDelivery(shared.MustParseMoney("40", shared.DefaultCurrency), share))
	assert.Equal(t, 1, p.TotalDeliveries())
	assert.Equal(t, "32.00 NPR", p.TotalEarnings().String())
	assert.True(t, p.CanTakeOrder())
}

func TestPartner_Release(t *testing.T) {
	p, err := NewPartner(31, "Ram", shared.DefaultCurrency)
	require.NoError(t, err)
	require.NoError(t, p.StartDelivery())

	p.Release()
	assert.True(t, p.CanTakeOrder())
	assert.Zero(t, p.TotalDeliveries())
	assert.True(t, p.TotalEarnings().IsZero())
}

func TestPartner_UnavailableStates(t *testing.T) {
	for _, status := range []Status{StatusBusy, StatusOffline} {
		p := RebuildFromDTO(ReconstructionDTO{
			ID:            31,
			Name:          "Ram",
			IsAvailable:   true,
			Status:        status,
			TotalEarnings: shared.ZeroMoney(shared.DefaultCurrency),
		})
		assert.False(t, p.CanTakeOrder(), status)
		assert.ErrorIs(t, p.StartDelivery(), ErrPartnerUnavailable, status)

		// 非配送中的状态不受 Release 影响
		p.Release()
		assert.Equal(t, status, p.Status())
	}

	p := RebuildFromDTO(ReconstructionDTO{ID: 32, Status: StatusAvailable, IsAvailable: false})
	assert.False(t, p.CanTakeOrder())
}

func TestNewPartner_Validation(t *testing.T) {
	_, err := NewPartner(0, "Nobody", shared.DefaultCurrency)
	assert.ErrorIs(t, err, ErrInvalidPartner)
}
