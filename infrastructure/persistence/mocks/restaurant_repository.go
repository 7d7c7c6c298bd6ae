package mocks

import (
	"context"

	"fooddash/domain/restaurant"
	"fooddash/infrastructure/persistence/mysql/po"
)

// MockRestaurantRepository 餐厅目录，SaveRestaurant/SaveMenuItem 仅用于初始化数据
type MockRestaurantRepository struct {
	store *Store
}

func NewMockRestaurantRepository(store *Store) *MockRestaurantRepository {
	return &MockRestaurantRepository{store: store}
}

func (r *MockRestaurantRepository) FindByID(ctx context.Context, id int64) (*restaurant.Restaurant, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.restaurants[id]
	if !ok {
		return nil, restaurant.NewRestaurantNotFoundError(id)
	}
	return row.ToDomain(), nil
}

func (r *MockRestaurantRepository) FindMenuItem(ctx context.Context, restaurantID, menuItemID int64) (*restaurant.MenuItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.menuItems[menuItemID]
	if !ok || row.RestaurantID != restaurantID {
		return nil, restaurant.NewMenuItemNotFoundError(menuItemID)
	}
	return row.ToDomain(), nil
}

func (r *MockRestaurantRepository) SaveRestaurant(ctx context.Context, rest *restaurant.Restaurant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.restaurants[rest.ID()] = *po.FromRestaurantDomain(rest)
	return nil
}

func (r *MockRestaurantRepository) SaveMenuItem(ctx context.Context, item *restaurant.MenuItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.menuItems[item.ID()] = *po.FromMenuItemDomain(item)
	return nil
}

var _ restaurant.Repository = (*MockRestaurantRepository)(nil)
