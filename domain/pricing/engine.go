/*
Package pricing 订单计价引擎

纯计算：输入小计、配送费、可选优惠券，输出税额、折扣、总额。
税率来自配置，时间来源由构造时注入，不做任何 I/O。
*/
package pricing

import (
	"fooddash/domain/coupon"
	"fooddash/domain/shared"

	"github.com/shopspring/decimal"
)

// DefaultTaxRate 默认税率 13%
var DefaultTaxRate = decimal.NewFromFloat(0.13)

// Config 计价参数
type Config struct {
	TaxRate decimal.Decimal
}

// Input 一次计价的输入
type Input struct {
	Subtotal     shared.Money
	DeliveryFee  shared.Money
	Coupon       *coupon.Coupon // 可选
	RestaurantID int64
}

// Totals 计价结果
type Totals struct {
	Subtotal      shared.Money
	Tax           shared.Money
	DeliveryFee   shared.Money
	Discount      shared.Money
	Total         shared.Money
	CouponApplied bool
}

// Engine 计价引擎
type Engine struct {
	taxRate decimal.Decimal
	now     shared.Clock
}

// NewEngine 创建计价引擎，now 为空时使用系统时间
func NewEngine(cfg Config, now shared.Clock) *Engine {
	rate := cfg.TaxRate
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	if now == nil {
		now = shared.SystemClock
	}
	return &Engine{taxRate: rate, now: now}
}

func (e *Engine) TaxRate() decimal.Decimal { return e.taxRate }

// ComputeTotals 计算税额、折扣与总额
// 总额 = 小计 + 税 + 配送费 - 折扣，结果不小于零
func (e *Engine) ComputeTotals(in Input) (Totals, error) {
	currency := in.Subtotal.Currency()
	tax := in.Subtotal.MultiplyRate(e.taxRate)

	discount := shared.ZeroMoney(currency)
	applied := false
	if in.Coupon != nil && in.Coupon.IsEligible(in.Subtotal, in.RestaurantID, e.now()) {
		discount = in.Coupon.DiscountFor(in.Subtotal)
		applied = true
	}

	total, err := Compose(in.Subtotal, tax, in.DeliveryFee, discount)
	if err != nil {
		return Totals{}, err
	}

	return Totals{
		Subtotal:      in.Subtotal,
		Tax:           tax,
		DeliveryFee:   in.DeliveryFee,
		Discount:      discount,
		Total:         total,
		CouponApplied: applied,
	}, nil
}

// Compose 由各分项合成总额，订单聚合重算总额时也使用它
func Compose(subtotal, tax, deliveryFee, discount shared.Money) (shared.Money, error) {
	sum, err := subtotal.Add(tax)
	if err != nil {
		return shared.Money{}, err
	}
	if sum, err = sum.Add(deliveryFee); err != nil {
		return shared.Money{}, err
	}
	if sum, err = sum.Subtract(discount); err != nil {
		return shared.Money{}, err
	}
	return sum.ClampZero(), nil
}
