package mysql

import (
	"context"
	"errors"

	"fooddash/domain/restaurant"
	"fooddash/infrastructure/persistence"
	"fooddash/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// RestaurantRepository 餐厅目录只读仓储
// SaveRestaurant/SaveMenuItem 不属于领域接口，仅用于初始化数据
type RestaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

func (r *RestaurantRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id int64) (*restaurant.Restaurant, error) {
	var restaurantPO po.RestaurantPO
	if err := r.getDB(ctx).First(&restaurantPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, restaurant.NewRestaurantNotFoundError(id)
		}
		return nil, err
	}
	return restaurantPO.ToDomain(), nil
}

// FindMenuItem 按餐厅范围查询，别家餐厅的菜品视为不存在
func (r *RestaurantRepository) FindMenuItem(ctx context.Context, restaurantID, menuItemID int64) (*restaurant.MenuItem, error) {
	var itemPO po.MenuItemPO
	err := r.getDB(ctx).
		Where("id = ? AND restaurant_id = ?", menuItemID, restaurantID).
		First(&itemPO).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, restaurant.NewMenuItemNotFoundError(menuItemID)
		}
		return nil, err
	}
	return itemPO.ToDomain(), nil
}

// SaveRestaurant upsert by primary key
func (r *RestaurantRepository) SaveRestaurant(ctx context.Context, rest *restaurant.Restaurant) error {
	return r.getDB(ctx).Save(po.FromRestaurantDomain(rest)).Error
}

// SaveMenuItem upsert by primary key
func (r *RestaurantRepository) SaveMenuItem(ctx context.Context, item *restaurant.MenuItem) error {
	return r.getDB(ctx).Save(po.FromMenuItemDomain(item)).Error
}

var _ restaurant.Repository = (*RestaurantRepository)(nil)
