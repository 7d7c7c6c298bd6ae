package cmd

import (
	"context"
	"errors"
	"time"

	"fooddash/domain/coupon"
	"fooddash/domain/customer"
	"fooddash/domain/delivery"
	"fooddash/domain/restaurant"
	"fooddash/domain/shared"
	"fooddash/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// catalogWriter 餐厅和菜单的写入端，仅用于初始化数据
type catalogWriter interface {
	SaveRestaurant(ctx context.Context, r *restaurant.Restaurant) error
	SaveMenuItem(ctx context.Context, item *restaurant.MenuItem) error
}

// 演示数据的固定 ID，方便本地用令牌调试
const (
	demoRestaurantID  int64 = 1
	demoOwnerID       int64 = 10
	demoCustomerID    int64 = 100
	demoPartnerID     int64 = 200
	demoCouponCode          = "WELCOME10"
	demoCouponPercent       = 10
)

// seedDemoData 库中已有演示餐厅时跳过
func seedDemoData(ctx context.Context, be *backend, currency string) error {
	if currency == "" {
		currency = "NPR"
	}
	if _, err := be.repos.Restaurants.FindByID(ctx, demoRestaurantID); err == nil {
		logger.Info("Demo data already present")
		return nil
	} else if !errors.Is(err, restaurant.ErrRestaurantNotFound) {
		return err
	}

	money := func(amount int64) shared.Money {
		return shared.NewMoney(decimal.NewFromInt(amount), currency)
	}

	if err := be.catalog.SaveRestaurant(ctx, restaurant.RebuildFromDTO(restaurant.ReconstructionDTO{
		ID:                       demoRestaurantID,
		Name:                     "Himalayan Kitchen",
		OwnerID:                  demoOwnerID,
		Status:                   restaurant.StatusApproved,
		IsOpen:                   true,
		DeliveryFee:              money(40),
		MinimumOrderAmount:       money(100),
		EstimatedDeliveryMinutes: 35,
	})); err != nil {
		return err
	}

	menu := []restaurant.MenuItemDTO{
		{ID: 1, Name: "Chicken Momo", Price: money(125), IsAvailable: true},
		{ID: 2, Name: "Veg Chowmein", Price: money(110), IsAvailable: true},
		{ID: 3, Name: "Thakali Set", Price: money(350), IsAvailable: false},
	}
	for _, dto := range menu {
		dto.RestaurantID = demoRestaurantID
		if err := be.catalog.SaveMenuItem(ctx, restaurant.RebuildMenuItem(dto)); err != nil {
			return err
		}
	}

	c, err := customer.NewCustomer(demoCustomerID, "Demo Customer", currency)
	if err != nil {
		return err
	}
	if err := be.repos.Customers.Save(ctx, c); err != nil {
		return err
	}

	p, err := delivery.NewPartner(demoPartnerID, "Demo Rider", currency)
	if err != nil {
		return err
	}
	if err := be.repos.Partners.Save(ctx, p); err != nil {
		return err
	}

	maxDiscount := money(100)
	cp, err := coupon.NewCoupon(coupon.ReconstructionDTO{
		Code:               demoCouponCode,
		Description:        "10% off your first order",
		DiscountType:       coupon.DiscountPercentage,
		DiscountValue:      decimal.NewFromInt(demoCouponPercent),
		MaxDiscountAmount:  &maxDiscount,
		MinimumOrderAmount: money(200),
		IsActive:           true,
		ExpiryDate:         time.Now().UTC().AddDate(1, 0, 0),
	})
	if err != nil {
		return err
	}
	if err := be.repos.Coupons.Save(ctx, cp); err != nil {
		return err
	}

	logger.Info("Demo data seeded",
		zap.Int64("restaurant_id", demoRestaurantID),
		zap.Int64("owner_id", demoOwnerID),
		zap.Int64("customer_id", demoCustomerID),
		zap.Int64("delivery_partner_id", demoPartnerID),
		zap.String("coupon", demoCouponCode))
	return nil
}
