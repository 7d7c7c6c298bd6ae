package pricing

import (
	"testing"
	"time"

	"fooddash/domain/coupon"
	"fooddash/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func npr(s string) shared.Money { return shared.MustParseMoney(s, shared.DefaultCurrency) }

func newEngine() *Engine {
	return NewEngine(Config{TaxRate: DefaultTaxRate}, func() time.Time { return fixedNow })
}

func newCoupon(t *testing.T, dto coupon.ReconstructionDTO) *coupon.Coupon {
	t.Helper()
	if dto.Code == "" {
		dto.Code = "SAVE"
	}
	if dto.ExpiryDate.IsZero() {
		dto.ExpiryDate = fixedNow.Add(24 * time.Hour)
	}
	if dto.MinimumOrderAmount.Currency() == "" {
		dto.MinimumOrderAmount = shared.ZeroMoney(shared.DefaultCurrency)
	}
	dto.IsActive = true
	c, err := coupon.NewCoupon(dto)
	require.NoError(t, err)
	return c
}

func TestComputeTotals_NoCoupon(t *testing.T) {
	cases := []struct {
		subtotal, fee, tax, total string
	}{
		{"0", "0", "0.00", "0.00"},
		{"250", "40", "32.50", "322.50"},
		{"100", "0", "13.00", "113.00"},
		{"99.99", "25.50", "13.00", "138.49"},
		{"1234.56", "60", "160.49", "1455.05"},
	}

	engine := newEngine()
	for _, tc := range cases {
		t.Run(tc.subtotal+"+"+tc.fee, func(t *testing.T) {
			totals, err := engine.ComputeTotals(Input{Subtotal: npr(tc.subtotal), DeliveryFee: npr(tc.fee)})
			require.NoError(t, err)

			assert.True(t, totals.Tax.Equals(npr(tc.tax)), "tax %s", totals.Tax)
			assert.True(t, totals.Total.Equals(npr(tc.total)), "total %s", totals.Total)
			assert.True(t, totals.Discount.IsZero())
			assert.False(t, totals.CouponApplied)
		})
	}
}

func TestComputeTotals_CouponBelowMinimumGivesNoDiscount(t *testing.T) {
	c := newCoupon(t, coupon.ReconstructionDTO{
		DiscountType:       coupon.DiscountAmount,
		DiscountValue:      decimal.NewFromInt(50),
		MinimumOrderAmount: npr("500"),
	})

	totals, err := newEngine().ComputeTotals(Input{Subtotal: npr("499.99"), DeliveryFee: npr("40"), Coupon: c})
	require.NoError(t, err)

	assert.True(t, totals.Discount.IsZero())
	assert.False(t, totals.CouponApplied)
}

func TestComputeTotals_PercentageCouponCapped(t *testing.T) {
	maxDiscount := npr("30")
	c := newCoupon(t, coupon.ReconstructionDTO{
		DiscountType:      coupon.DiscountPercentage,
		DiscountValue:     decimal.NewFromInt(20),
		MaxDiscountAmount: &maxDiscount,
	})

	totals, err := newEngine().ComputeTotals(Input{Subtotal: npr("400"), DeliveryFee: npr("40"), Coupon: c})
	require.NoError(t, err)

	// 20% of 400 = 80, capped at 30
	assert.True(t, totals.Discount.Equals(npr("30")))
	assert.True(t, totals.CouponApplied)
	assert.True(t, totals.Total.Equals(npr("462.00")), "total %s", totals.Total) // 400 + 52 + 40 - 30
}

func TestComputeTotals_PercentageCouponUnderCap(t *testing.T) {
	maxDiscount := npr("100")
	c := newCoupon(t, coupon.ReconstructionDTO{
		DiscountType:      coupon.DiscountPercentage,
		DiscountValue:     decimal.NewFromInt(10),
		MaxDiscountAmount: &maxDiscount,
	})

	totals, err := newEngine().ComputeTotals(Input{Subtotal: npr("250"), DeliveryFee: npr("40"), Coupon: c})
	require.NoError(t, err)
	assert.True(t, totals.Discount.Equals(npr("25")))
}

func TestComputeTotals_TotalClampedAtZero(t *testing.T) {
	c := newCoupon(t, coupon.ReconstructionDTO{
		DiscountType:  coupon.DiscountAmount,
		DiscountValue: decimal.NewFromInt(1000),
	})

	totals, err := newEngine().ComputeTotals(Input{Subtotal: npr("50"), DeliveryFee: npr("10"), Coupon: c})
	require.NoError(t, err)
	assert.True(t, totals.Total.IsZero())
}

func TestComputeTotals_CouponEligibility(t *testing.T) {
	otherRestaurant := int64(99)
	start := fixedNow.Add(time.Hour)
	one := 1

	cases := []struct {
		name string
		dto  coupon.ReconstructionDTO
	}{
		{"expired", coupon.ReconstructionDTO{ExpiryDate: fixedNow}},
		{"not started", coupon.ReconstructionDTO{StartDate: &start}},
		{"other restaurant", coupon.ReconstructionDTO{RestaurantID: &otherRestaurant}},
		{"exhausted", coupon.ReconstructionDTO{MaxUses: &one, UsedCount: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.dto.DiscountType = coupon.DiscountAmount
			tc.dto.DiscountValue = decimal.NewFromInt(10)
			c := newCoupon(t, tc.dto)

			totals, err := newEngine().ComputeTotals(Input{Subtotal: npr("100"), DeliveryFee: npr("0"), Coupon: c, RestaurantID: 1})
			require.NoError(t, err)
			assert.True(t, totals.Discount.IsZero())
			assert.False(t, totals.CouponApplied)
		})
	}
}

func TestComputeTotals_CurrencyMismatch(t *testing.T) {
	_, err := newEngine().ComputeTotals(Input{
		Subtotal:    npr("100"),
		DeliveryFee: shared.MustParseMoney("10", "USD"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
