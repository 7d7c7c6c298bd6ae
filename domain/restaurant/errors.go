package restaurant

import (
	"errors"

	"fooddash/domain/shared"
)

var (
	ErrRestaurantNotFound  = errors.New("restaurant not found")
	ErrRestaurantClosed    = errors.New("restaurant is closed")
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrMenuItemUnavailable = errors.New("menu item is unavailable")
)

func NewRestaurantNotFoundError(id int64) error {
	return shared.NewKindError(shared.ErrNotFound, ErrRestaurantNotFound, "restaurant", "restaurant_id",
		"restaurant not found: "+idString(id))
}

func NewRestaurantClosedError(id int64, name string) error {
	return shared.NewKindError(shared.ErrInvalidInput, ErrRestaurantClosed, "restaurant", "restaurant_id",
		"restaurant "+name+" ("+idString(id)+") is currently closed")
}

func NewMenuItemNotFoundError(id int64) error {
	return shared.NewKindError(shared.ErrNotFound, ErrMenuItemNotFound, "menu_item", "menu_item_id",
		"menu item not found: "+idString(id))
}

func NewMenuItemUnavailableError(id int64, name string) error {
	return shared.NewKindError(shared.ErrInvalidInput, ErrMenuItemUnavailable, "menu_item", "menu_item_id",
		"menu item "+name+" ("+idString(id)+") is not available")
}
