package coupon

import (
	"testing"
	"time"

	"fooddash/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func npr(s string) shared.Money { return shared.MustParseMoney(s, shared.DefaultCurrency) }

func save10() ReconstructionDTO {
	maxDiscount := npr("20")
	return ReconstructionDTO{
		Code:               " save10 ",
		DiscountType:       DiscountPercentage,
		DiscountValue:      decimal.NewFromInt(10),
		MaxDiscountAmount:  &maxDiscount,
		MinimumOrderAmount: npr("200"),
		IsActive:           true,
		ExpiryDate:         now.Add(24 * time.Hour),
	}
}

func TestNewCoupon_Validation(t *testing.T) {
	c, err := NewCoupon(save10())
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", c.Code())

	tests := []struct {
		name   string
		mutate func(*ReconstructionDTO)
	}{
		{"blank code", func(d *ReconstructionDTO) { d.Code = "  " }},
		{"zero percentage", func(d *ReconstructionDTO) { d.DiscountValue = decimal.Zero }},
		{"percentage over 100", func(d *ReconstructionDTO) { d.DiscountValue = decimal.NewFromInt(101) }},
		{"negative amount", func(d *ReconstructionDTO) {
			d.DiscountType = DiscountAmount
			d.DiscountValue = decimal.NewFromInt(-5)
		}},
		{"unknown type", func(d *ReconstructionDTO) { d.DiscountType = "BOGO" }},
		{"missing expiry", func(d *ReconstructionDTO) { d.ExpiryDate = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := save10()
			tt.mutate(&dto)
			_, err := NewCoupon(dto)
			assert.ErrorIs(t, err, ErrInvalidCoupon)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		})
	}
}

func TestIsEligible(t *testing.T) {
	restaurantID := int64(5)
	otherRestaurant := int64(6)
	maxUses := 3
	later := now.Add(time.Hour)

	tests := []struct {
		name     string
		mutate   func(*ReconstructionDTO)
		subtotal string
		want     bool
	}{
		{"eligible", func(*ReconstructionDTO) {}, "250", true},
		{"exactly the minimum", func(*ReconstructionDTO) {}, "200", true},
		{"below minimum", func(*ReconstructionDTO) {}, "199.99", false},
		{"inactive", func(d *ReconstructionDTO) { d.IsActive = false }, "250", false},
		{"not started", func(d *ReconstructionDTO) { d.StartDate = &later }, "250", false},
		{"expires now", func(d *ReconstructionDTO) { d.ExpiryDate = now }, "250", false},
		{"same restaurant", func(d *ReconstructionDTO) { d.RestaurantID = &restaurantID }, "250", true},
		{"other restaurant", func(d *ReconstructionDTO) { d.RestaurantID = &otherRestaurant }, "250", false},
		{"uses left", func(d *ReconstructionDTO) { d.MaxUses = &maxUses; d.UsedCount = 2 }, "250", true},
		{"used up", func(d *ReconstructionDTO) { d.MaxUses = &maxUses; d.UsedCount = 3 }, "250", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := save10()
			tt.mutate(&dto)
			c := RebuildFromDTO(dto)
			assert.Equal(t, tt.want, c.IsEligible(npr(tt.subtotal), restaurantID, now))
		})
	}
}

func TestDiscountFor(t *testing.T) {
	c := RebuildFromDTO(save10())
	assert.Equal(t, "15.00 NPR", c.DiscountFor(npr("150")).String())
	assert.Equal(t, "20.00 NPR", c.DiscountFor(npr("250")).String(), "capped at max discount")

	flat := save10()
	flat.DiscountType = DiscountAmount
	flat.DiscountValue = decimal.NewFromInt(50)
	flat.MaxDiscountAmount = nil
	assert.Equal(t, "50.00 NPR", RebuildFromDTO(flat).DiscountFor(npr("30")).String(),
		"discount is not limited by the subtotal here")

	unknown := save10()
	unknown.DiscountType = "BOGO"
	assert.True(t, RebuildFromDTO(unknown).DiscountFor(npr("300")).IsZero())
}

func TestRecordUsage(t *testing.T) {
	maxUses := 1
	dto := save10()
	dto.MaxUses = &maxUses
	c := RebuildFromDTO(dto)

	require.NoError(t, c.RecordUsage())
	assert.Equal(t, 1, c.UsedCount())

	err := c.RecordUsage()
	assert.ErrorIs(t, err, ErrCouponExhausted)
	assert.ErrorIs(t, err, shared.ErrConflict)
	assert.Equal(t, 1, c.UsedCount())

	unlimited := RebuildFromDTO(save10())
	for i := 0; i < 5; i++ {
		require.NoError(t, unlimited.RecordUsage())
	}
	assert.Equal(t, 5, unlimited.UsedCount())
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SAVE10", NormalizeCode("  save10\t"))
	assert.Equal(t, "", NormalizeCode("   "))
}
