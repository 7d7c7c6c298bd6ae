package mysql

import (
	"fmt"

	"fooddash/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AutoMigrate 创建或更新全部表结构
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&po.OrderPO{},
		&po.OrderItemPO{},
		&po.OrderStatusHistoryPO{},
		&po.CustomerPO{},
		&po.DeliveryPartnerPO{},
		&po.RestaurantPO{},
		&po.MenuItemPO{},
		&po.CouponPO{},
		&po.OutboxEventPO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
