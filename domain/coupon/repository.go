package coupon

import "context"

// Repository 优惠券仓储
type Repository interface {
	// FindByCode 按券码查找（大小写不敏感），不存在返回 ErrCouponNotFound
	FindByCode(ctx context.Context, code string) (*Coupon, error)

	// Save 保存使用次数变更（乐观锁）
	Save(ctx context.Context, c *Coupon) error
}
