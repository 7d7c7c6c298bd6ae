package po

import (
	"time"

	"fooddash/domain/restaurant"
	"fooddash/domain/shared"

	"github.com/shopspring/decimal"
)

// RestaurantPO 餐厅目录由餐厅服务维护，这里只读
type RestaurantPO struct {
	ID                       int64           `gorm:"primaryKey;autoIncrement"`
	Name                     string          `gorm:"size:200;not null"`
	OwnerID                  int64           `gorm:"index;not null"`
	Status                   string          `gorm:"size:20;not null"`
	IsOpen                   bool            `gorm:"not null;default:false"`
	Currency                 string          `gorm:"size:3;not null"`
	DeliveryFee              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MinimumOrderAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EstimatedDeliveryMinutes int             `gorm:"not null;default:30"`
	CreatedAt                time.Time       `gorm:"autoCreateTime"`
	UpdatedAt                time.Time       `gorm:"autoUpdateTime"`
}

func (RestaurantPO) TableName() string {
	return "restaurants"
}

// MenuItemPO 菜品
type MenuItemPO struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	RestaurantID int64           `gorm:"index;not null"`
	Name         string          `gorm:"size:200;not null"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency     string          `gorm:"size:3;not null"`
	IsAvailable  bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

func (MenuItemPO) TableName() string {
	return "menu_items"
}

func FromRestaurantDomain(r *restaurant.Restaurant) *RestaurantPO {
	return &RestaurantPO{
		ID:                       r.ID(),
		Name:                     r.Name(),
		OwnerID:                  r.OwnerID(),
		Status:                   string(r.Status()),
		IsOpen:                   r.IsOpen(),
		Currency:                 r.DeliveryFee().Currency(),
		DeliveryFee:              r.DeliveryFee().Amount(),
		MinimumOrderAmount:       r.MinimumOrderAmount().Amount(),
		EstimatedDeliveryMinutes: r.EstimatedDeliveryMinutes(),
	}
}

func (po *RestaurantPO) ToDomain() *restaurant.Restaurant {
	return restaurant.RebuildFromDTO(restaurant.ReconstructionDTO{
		ID:                       po.ID,
		Name:                     po.Name,
		OwnerID:                  po.OwnerID,
		Status:                   restaurant.Status(po.Status),
		IsOpen:                   po.IsOpen,
		DeliveryFee:              shared.NewMoney(po.DeliveryFee, po.Currency),
		MinimumOrderAmount:       shared.NewMoney(po.MinimumOrderAmount, po.Currency),
		EstimatedDeliveryMinutes: po.EstimatedDeliveryMinutes,
	})
}

func FromMenuItemDomain(m *restaurant.MenuItem) *MenuItemPO {
	return &MenuItemPO{
		ID:           m.ID(),
		RestaurantID: m.RestaurantID(),
		Name:         m.Name(),
		Price:        m.Price().Amount(),
		Currency:     m.Price().Currency(),
		IsAvailable:  m.IsAvailable(),
	}
}

func (po *MenuItemPO) ToDomain() *restaurant.MenuItem {
	return restaurant.RebuildMenuItem(restaurant.MenuItemDTO{
		ID:           po.ID,
		RestaurantID: po.RestaurantID,
		Name:         po.Name,
		Price:        shared.NewMoney(po.Price, po.Currency),
		IsAvailable:  po.IsAvailable,
	})
}
