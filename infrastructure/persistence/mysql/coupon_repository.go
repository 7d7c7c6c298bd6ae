package mysql

import (
	"context"
	"errors"

	"fooddash/domain/coupon"
	"fooddash/infrastructure/persistence"
	"fooddash/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// CouponRepository GORM 实现的优惠券仓储
type CouponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	normalized := coupon.NormalizeCode(code)
	var couponPO po.CouponPO
	if err := r.getDB(ctx).First(&couponPO, "code = ?", normalized).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coupon.NewCouponNotFoundError(normalized)
		}
		return nil, err
	}
	return couponPO.ToDomain(), nil
}

// Save 首次保存插入，之后只更新使用次数和启用状态
func (r *CouponRepository) Save(ctx context.Context, c *coupon.Coupon) error {
	db := r.getDB(ctx)
	couponPO := po.FromCouponDomain(c)

	if c.ID() == 0 {
		couponPO.Version = c.Version() + 1
		if err := db.Create(couponPO).Error; err != nil {
			return err
		}
		c.AssignID(couponPO.ID)
		c.IncrementVersionForSave()
		return nil
	}

	expectedVersion := c.Version()
	result := db.Model(&po.CouponPO{}).
		Where("id = ? AND version = ?", c.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"used_count": couponPO.UsedCount,
			"is_active":  couponPO.IsActive,
			"version":    expectedVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&po.CouponPO{}).Where("id = ?", c.ID()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return coupon.NewCouponNotFoundError(c.Code())
		}
		return coupon.NewConcurrentModificationError(c.Code())
	}

	c.IncrementVersionForSave()
	return nil
}

var _ coupon.Repository = (*CouponRepository)(nil)
