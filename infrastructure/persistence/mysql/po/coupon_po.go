package po

import (
	"time"

	"fooddash/domain/coupon"
	"fooddash/domain/shared"

	"github.com/shopspring/decimal"
)

// CouponPO 优惠券，code 存储为大写
type CouponPO struct {
	ID                 int64               `gorm:"primaryKey;autoIncrement"`
	Code               string              `gorm:"size:50;uniqueIndex;not null"`
	Description        string              `gorm:"size:500"`
	DiscountType       string              `gorm:"size:20;not null"`
	DiscountValue      decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	MaxDiscountAmount  decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	MinimumOrderAmount decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	Currency           string              `gorm:"size:3;not null"`
	IsActive           bool                `gorm:"not null;default:true"`
	StartDate          *time.Time
	ExpiryDate         time.Time `gorm:"not null"`
	RestaurantID       *int64    `gorm:"index"`
	MaxUses            *int
	UsedCount          int       `gorm:"not null;default:0"`
	Version            int       `gorm:"not null;default:0"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (CouponPO) TableName() string {
	return "coupons"
}

func FromCouponDomain(c *coupon.Coupon) *CouponPO {
	po := &CouponPO{
		ID:                 c.ID(),
		Code:               c.Code(),
		Description:        c.Description(),
		DiscountType:       string(c.DiscountType()),
		DiscountValue:      c.DiscountValue(),
		MinimumOrderAmount: c.MinimumOrderAmount().Amount(),
		Currency:           c.MinimumOrderAmount().Currency(),
		IsActive:           c.IsActive(),
		StartDate:          c.StartDate(),
		ExpiryDate:         c.ExpiryDate(),
		RestaurantID:       c.RestaurantID(),
		MaxUses:            c.MaxUses(),
		UsedCount:          c.UsedCount(),
		Version:            c.Version(),
	}
	if max := c.MaxDiscountAmount(); max != nil {
		po.MaxDiscountAmount = decimal.NewNullDecimal(max.Amount())
	}
	return po
}

func (po *CouponPO) ToDomain() *coupon.Coupon {
	var maxDiscount *shared.Money
	if po.MaxDiscountAmount.Valid {
		m := shared.NewMoney(po.MaxDiscountAmount.Decimal, po.Currency)
		maxDiscount = &m
	}
	return coupon.RebuildFromDTO(coupon.ReconstructionDTO{
		ID:                 po.ID,
		Code:               po.Code,
		Description:        po.Description,
		DiscountType:       coupon.DiscountType(po.DiscountType),
		DiscountValue:      po.DiscountValue,
		MaxDiscountAmount:  maxDiscount,
		MinimumOrderAmount: shared.NewMoney(po.MinimumOrderAmount, po.Currency),
		IsActive:           po.IsActive,
		StartDate:          po.StartDate,
		ExpiryDate:         po.ExpiryDate,
		RestaurantID:       po.RestaurantID,
		MaxUses:            po.MaxUses,
		UsedCount:          po.UsedCount,
		Version:            po.Version,
	})
}
