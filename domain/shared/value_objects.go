package shared

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultCurrency 平台默认结算币种
const DefaultCurrency = "NPR"

// moneyScale 金额统一保留两位小数
const moneyScale = 2

// Money 值对象 - 表示金额
// 底层使用 decimal 避免浮点误差，所有运算返回新的值对象
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney 创建新的Money值对象（按货币精度四舍五入）
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{
		amount:   amount.Round(moneyScale),
		currency: currency,
	}
}

// ParseMoney 从字符串解析金额，如 "100.50"
func ParseMoney(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, NewValidationError("money", "amount", fmt.Sprintf("invalid amount %q", amount))
	}
	return NewMoney(d, currency), nil
}

// MustParseMoney 解析失败直接 panic，仅用于常量与测试
func MustParseMoney(amount, currency string) Money {
	m, err := ParseMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney 返回指定币种的零金额
func ZeroMoney(currency string) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount 获取金额数量
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency 获取货币类型
func (m Money) Currency() string {
	return m.currency
}

// Add 金额相加，返回新的Money值对象
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Add(other.amount), m.currency), nil
}

// Subtract 金额相减，返回新的Money值对象
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Sub(other.amount), m.currency), nil
}

// Multiply 乘以数量（如单价 × 份数）
func (m Money) Multiply(quantity int) Money {
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(quantity))), m.currency)
}

// MultiplyRate 乘以比率（税率、分成比例等），结果按货币精度舍入
func (m Money) MultiplyRate(rate decimal.Decimal) Money {
	return NewMoney(m.amount.Mul(rate), m.currency)
}

// Min 返回较小的金额
func (m Money) Min(other Money) Money {
	if other.amount.LessThan(m.amount) {
		return other
	}
	return m
}

// ClampZero 负数金额截断为零
func (m Money) ClampZero() Money {
	if m.amount.IsNegative() {
		return ZeroMoney(m.currency)
	}
	return m
}

func (m Money) IsZero() bool     { return m.amount.IsZero() }
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// IsGreaterThan 比较金额是否大于另一个金额
func (m Money) IsGreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// IsLessThan 比较金额是否小于另一个金额
func (m Money) IsLessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// Equals 比较两个Money值对象是否相等
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount) && m.currency == other.currency
}

// String 形如 "322.50 NPR"
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale) + " " + m.currency
}

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return NewValidationError("money", "currency",
			fmt.Sprintf("currency mismatch: %s vs %s", m.currency, other.currency))
	}
	return nil
}
