/*
Package restaurant 餐厅与菜单子领域

对订单核心只读：下单时校验餐厅状态、营业状态、配送费、起送价，
以及菜品的归属和可售状态；状态机用 ownerID 判断餐厅老板权限。
*/
package restaurant

import (
	"strconv"

	"fooddash/domain/shared"
)

// Status 餐厅审核状态
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusSuspended Status = "SUSPENDED"
	StatusRejected  Status = "REJECTED"
	StatusClosed    Status = "CLOSED"
)

// Restaurant 餐厅（只读模型）
type Restaurant struct {
	id                       int64
	name                     string
	ownerID                  int64
	status                   Status
	isOpen                   bool
	deliveryFee              shared.Money
	minimumOrderAmount       shared.Money
	estimatedDeliveryMinutes int
}

type ReconstructionDTO struct {
	ID                       int64
	Name                     string
	OwnerID                  int64
	Status                   Status
	IsOpen                   bool
	DeliveryFee              shared.Money
	MinimumOrderAmount       shared.Money
	EstimatedDeliveryMinutes int
}

func RebuildFromDTO(dto ReconstructionDTO) *Restaurant {
	return &Restaurant{
		id:                       dto.ID,
		name:                     dto.Name,
		ownerID:                  dto.OwnerID,
		status:                   dto.Status,
		isOpen:                   dto.IsOpen,
		deliveryFee:              dto.DeliveryFee,
		minimumOrderAmount:       dto.MinimumOrderAmount,
		estimatedDeliveryMinutes: dto.EstimatedDeliveryMinutes,
	}
}

// EnsureAcceptingOrders 未审核通过视为不存在，未营业返回 RestaurantClosed
func (r *Restaurant) EnsureAcceptingOrders() error {
	if r.status != StatusApproved {
		return NewRestaurantNotFoundError(r.id)
	}
	if !r.isOpen {
		return NewRestaurantClosedError(r.id, r.name)
	}
	return nil
}

func (r *Restaurant) IsOwnedBy(userID int64) bool {
	return r.ownerID != 0 && r.ownerID == userID
}

func (r *Restaurant) ID() int64                        { return r.id }
func (r *Restaurant) Name() string                     { return r.name }
func (r *Restaurant) OwnerID() int64                   { return r.ownerID }
func (r *Restaurant) Status() Status                   { return r.status }
func (r *Restaurant) IsOpen() bool                     { return r.isOpen }
func (r *Restaurant) DeliveryFee() shared.Money        { return r.deliveryFee }
func (r *Restaurant) MinimumOrderAmount() shared.Money { return r.minimumOrderAmount }
func (r *Restaurant) EstimatedDeliveryMinutes() int    { return r.estimatedDeliveryMinutes }

// MenuItem 菜品（只读模型）
type MenuItem struct {
	id           int64
	restaurantID int64
	name         string
	price        shared.Money
	isAvailable  bool
}

type MenuItemDTO struct {
	ID           int64
	RestaurantID int64
	Name         string
	Price        shared.Money
	IsAvailable  bool
}

func RebuildMenuItem(dto MenuItemDTO) *MenuItem {
	return &MenuItem{
		id:           dto.ID,
		restaurantID: dto.RestaurantID,
		name:         dto.Name,
		price:        dto.Price,
		isAvailable:  dto.IsAvailable,
	}
}

// EnsureOrderable 菜品必须属于该餐厅且可售
func (m *MenuItem) EnsureOrderable(restaurantID int64) error {
	if m.restaurantID != restaurantID {
		return NewMenuItemNotFoundError(m.id)
	}
	if !m.isAvailable {
		return NewMenuItemUnavailableError(m.id, m.name)
	}
	return nil
}

func (m *MenuItem) ID() int64           { return m.id }
func (m *MenuItem) RestaurantID() int64 { return m.restaurantID }
func (m *MenuItem) Name() string        { return m.name }
func (m *MenuItem) Price() shared.Money { return m.price }
func (m *MenuItem) IsAvailable() bool   { return m.isAvailable }

func idString(id int64) string { return strconv.FormatInt(id, 10) }
