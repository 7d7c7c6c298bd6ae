package order

import (
	"context"
	"errors"

	"fooddash/domain/coupon"
	"fooddash/domain/restaurant"
)

// restaurantOwnerLookup 将 restaurant.Repository 适配为订单权限校验需要的店主查询。
// 餐厅不存在时返回 0，只有管理员能继续操作该订单。
type restaurantOwnerLookup struct {
	restaurantRepo restaurant.Repository
}

func (a *restaurantOwnerLookup) OwnerOf(ctx context.Context, restaurantID int64) (int64, error) {
	r, err := a.restaurantRepo.FindByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, restaurant.ErrRestaurantNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return r.OwnerID(), nil
}

// couponResolver 未知券码不报错，按无优惠处理。
type couponResolver struct {
	couponRepo coupon.Repository
}

func (a *couponResolver) Resolve(ctx context.Context, code string) (*coupon.Coupon, error) {
	if coupon.NormalizeCode(code) == "" {
		return nil, nil
	}
	c, err := a.couponRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, coupon.ErrCouponNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}
