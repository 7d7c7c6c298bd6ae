package restaurant

import "context"

// Repository 餐厅与菜单的只读仓储
type Repository interface {
	// FindByID 不存在返回 ErrRestaurantNotFound
	FindByID(ctx context.Context, id int64) (*Restaurant, error)

	// FindMenuItem 按餐厅范围查找菜品，不存在或不属于该餐厅返回 ErrMenuItemNotFound
	FindMenuItem(ctx context.Context, restaurantID, menuItemID int64) (*MenuItem, error)
}
