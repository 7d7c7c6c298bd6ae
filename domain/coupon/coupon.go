/*
Package coupon 优惠券子领域

订单核心只读取优惠券并在下单成功时累加使用次数。
资格判断（启用、有效期、最低消费、餐厅范围、使用上限）集中在聚合内，
计价引擎只关心资格结果和折扣金额。
*/
package coupon

import (
	"strings"
	"time"

	"fooddash/domain/shared"

	"github.com/shopspring/decimal"
)

// DiscountType 折扣类型
type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountAmount     DiscountType = "AMOUNT"
)

var hundred = decimal.NewFromInt(100)

// Coupon 优惠券聚合根
type Coupon struct {
	id                 int64
	code               string
	description        string
	discountType       DiscountType
	discountValue      decimal.Decimal
	maxDiscountAmount  *shared.Money
	minimumOrderAmount shared.Money
	isActive           bool
	startDate          *time.Time
	expiryDate         time.Time
	restaurantID       *int64
	maxUses            *int
	usedCount          int
	version            int
}

// ReconstructionDTO 仅供仓储层重建聚合
type ReconstructionDTO struct {
	ID                 int64
	Code               string
	Description        string
	DiscountType       DiscountType
	DiscountValue      decimal.Decimal
	MaxDiscountAmount  *shared.Money
	MinimumOrderAmount shared.Money
	IsActive           bool
	StartDate          *time.Time
	ExpiryDate         time.Time
	RestaurantID       *int64
	MaxUses            *int
	UsedCount          int
	Version            int
}

func RebuildFromDTO(dto ReconstructionDTO) *Coupon {
	return &Coupon{
		id:                 dto.ID,
		code:               NormalizeCode(dto.Code),
		description:        dto.Description,
		discountType:       dto.DiscountType,
		discountValue:      dto.DiscountValue,
		maxDiscountAmount:  dto.MaxDiscountAmount,
		minimumOrderAmount: dto.MinimumOrderAmount,
		isActive:           dto.IsActive,
		startDate:          dto.StartDate,
		expiryDate:         dto.ExpiryDate,
		restaurantID:       dto.RestaurantID,
		maxUses:            dto.MaxUses,
		usedCount:          dto.UsedCount,
		version:            dto.Version,
	}
}

// NewCoupon 创建优惠券（后台配置与测试数据使用）
func NewCoupon(dto ReconstructionDTO) (*Coupon, error) {
	if strings.TrimSpace(dto.Code) == "" {
		return nil, NewInvalidCouponError("code", "coupon code is required")
	}
	switch dto.DiscountType {
	case DiscountPercentage:
		if dto.DiscountValue.LessThanOrEqual(decimal.Zero) || dto.DiscountValue.GreaterThan(hundred) {
			return nil, NewInvalidCouponError("discount_value", "percentage must be within (0, 100]")
		}
	case DiscountAmount:
		if dto.DiscountValue.LessThanOrEqual(decimal.Zero) {
			return nil, NewInvalidCouponError("discount_value", "discount amount must be positive")
		}
	default:
		return nil, NewInvalidCouponError("discount_type", "unknown discount type "+string(dto.DiscountType))
	}
	if dto.ExpiryDate.IsZero() {
		return nil, NewInvalidCouponError("expiry_date", "expiry date is required")
	}
	dto.Version = 0
	return RebuildFromDTO(dto), nil
}

// NormalizeCode 券码不区分大小写
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsEligible 判断优惠券在当前订单上是否可用
func (c *Coupon) IsEligible(subtotal shared.Money, restaurantID int64, now time.Time) bool {
	if !c.isActive {
		return false
	}
	if c.startDate != nil && now.Before(*c.startDate) {
		return false
	}
	if !now.Before(c.expiryDate) {
		return false
	}
	if c.restaurantID != nil && *c.restaurantID != restaurantID {
		return false
	}
	if c.maxUses != nil && c.usedCount >= *c.maxUses {
		return false
	}
	return !c.minimumOrderAmount.IsGreaterThan(subtotal)
}

// DiscountFor 计算折扣金额（不做资格判断），按上限封顶
func (c *Coupon) DiscountFor(subtotal shared.Money) shared.Money {
	var discount shared.Money
	switch c.discountType {
	case DiscountPercentage:
		discount = subtotal.MultiplyRate(c.discountValue.Div(hundred))
	case DiscountAmount:
		discount = shared.NewMoney(c.discountValue, subtotal.Currency())
	default:
		return shared.ZeroMoney(subtotal.Currency())
	}
	if c.maxDiscountAmount != nil {
		discount = discount.Min(*c.maxDiscountAmount)
	}
	return discount.ClampZero()
}

// RecordUsage 下单成功后累加使用次数
func (c *Coupon) RecordUsage() error {
	if c.maxUses != nil && c.usedCount >= *c.maxUses {
		return NewCouponExhaustedError(c.code)
	}
	c.usedCount++
	return nil
}

// AssignID 仓储插入后回填自增标识
func (c *Coupon) AssignID(id int64) {
	if c.id == 0 {
		c.id = id
	}
}

// IncrementVersionForSave 仓储保存成功后调用
func (c *Coupon) IncrementVersionForSave() { c.version++ }

func (c *Coupon) ID() int64                          { return c.id }
func (c *Coupon) Code() string                       { return c.code }
func (c *Coupon) Description() string                { return c.description }
func (c *Coupon) DiscountType() DiscountType         { return c.discountType }
func (c *Coupon) DiscountValue() decimal.Decimal     { return c.discountValue }
func (c *Coupon) MaxDiscountAmount() *shared.Money   { return c.maxDiscountAmount }
func (c *Coupon) MinimumOrderAmount() shared.Money   { return c.minimumOrderAmount }
func (c *Coupon) IsActive() bool                     { return c.isActive }
func (c *Coupon) StartDate() *time.Time              { return c.startDate }
func (c *Coupon) ExpiryDate() time.Time              { return c.expiryDate }
func (c *Coupon) RestaurantID() *int64               { return c.restaurantID }
func (c *Coupon) MaxUses() *int                      { return c.maxUses }
func (c *Coupon) UsedCount() int                     { return c.usedCount }
func (c *Coupon) Version() int                       { return c.version }
func (c *Coupon) PullEvents() []shared.DomainEvent   { return nil }

var _ shared.AggregateRoot = (*Coupon)(nil)
