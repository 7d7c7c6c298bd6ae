package po

import (
	"time"

	"fooddash/domain/order"
	"fooddash/domain/shared"

	"github.com/shopspring/decimal"
)

// OrderPO Order persistence object
// Note: Only used for database mapping, does not contain any business logic
// Defining GORM associations is prohibited here; customer, restaurant and
// partner are stored as plain ids
type OrderPO struct {
	ID                       int64           `gorm:"primaryKey;autoIncrement"`
	OrderNumber              string          `gorm:"size:32;uniqueIndex;not null"`
	CustomerID               int64           `gorm:"index;not null"`
	RestaurantID             int64           `gorm:"index;not null"`
	DeliveryPartnerID        *int64          `gorm:"index"`
	Status                   string          `gorm:"size:20;index;not null"`
	DeliveryAddress          string          `gorm:"size:500;not null"`
	DeliveryInstructions     string          `gorm:"size:500"`
	Currency                 string          `gorm:"size:3;not null"`
	Subtotal                 decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxAmount                decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DeliveryFee              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountAmount           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalAmount              decimal.Decimal `gorm:"type:decimal(12,2);not null"` // derived, stored for reporting
	PaymentMethod            string          `gorm:"size:20;not null"`
	IsPaid                   bool            `gorm:"not null;default:false"`
	CouponCode               string          `gorm:"size:50"`
	EstimatedDeliveryMinutes int             `gorm:"not null;default:0"`
	ConfirmedAt              *time.Time
	ReadyAt                  *time.Time
	DeliveredAt              *time.Time
	Version                  int       `gorm:"not null;default:0"`
	CreatedAt                time.Time `gorm:"index;not null"`
	UpdatedAt                time.Time `gorm:"not null"`
}

// TableName Specify table name
func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO Order item persistence object
type OrderItemPO struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement"`
	OrderID             int64           `gorm:"index;not null"` // Only store ID, no GORM association
	MenuItemID          int64           `gorm:"not null"`
	Name                string          `gorm:"size:200;not null"`
	Quantity            int             `gorm:"not null"`
	UnitPrice           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SpecialInstructions string          `gorm:"size:500"`
}

// TableName Specify table name
func (OrderItemPO) TableName() string {
	return "order_items"
}

// OrderStatusHistoryPO one row per status change, append-only
type OrderStatusHistoryPO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OrderID    int64     `gorm:"index;not null"`
	FromStatus string    `gorm:"size:20"`
	ToStatus   string    `gorm:"size:20;not null"`
	ActorID    int64     `gorm:"not null"`
	ActorRole  string    `gorm:"size:20;not null"`
	ChangedAt  time.Time `gorm:"not null"`
}

// TableName Specify table name
func (OrderStatusHistoryPO) TableName() string {
	return "order_status_history"
}

// FromOrderDomain Convert domain model to persistence object
// Item and history rows carry the order id only once the order has one
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO) {
	orderPO := &OrderPO{
		ID:                       o.ID(),
		OrderNumber:              o.OrderNumber(),
		CustomerID:               o.CustomerID(),
		RestaurantID:             o.RestaurantID(),
		DeliveryPartnerID:        o.DeliveryPartnerID(),
		Status:                   string(o.Status()),
		DeliveryAddress:          o.DeliveryAddress(),
		DeliveryInstructions:     o.DeliveryInstructions(),
		Currency:                 o.Subtotal().Currency(),
		Subtotal:                 o.Subtotal().Amount(),
		TaxAmount:                o.Tax().Amount(),
		DeliveryFee:              o.DeliveryFee().Amount(),
		DiscountAmount:           o.Discount().Amount(),
		TotalAmount:              o.TotalAmount().Amount(),
		PaymentMethod:            string(o.PaymentMethod()),
		IsPaid:                   o.IsPaid(),
		CouponCode:               o.CouponCode(),
		EstimatedDeliveryMinutes: o.EstimatedDeliveryMinutes(),
		ConfirmedAt:              o.ConfirmedAt(),
		ReadyAt:                  o.ReadyAt(),
		DeliveredAt:              o.DeliveredAt(),
		Version:                  o.Version(),
		CreatedAt:                o.CreatedAt(),
		UpdatedAt:                o.UpdatedAt(),
	}

	items := o.Items()
	itemPOs := make([]OrderItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = OrderItemPO{
			ID:                  item.ID(),
			OrderID:             o.ID(),
			MenuItemID:          item.MenuItemID(),
			Name:                item.Name(),
			Quantity:            item.Quantity(),
			UnitPrice:           item.UnitPrice().Amount(),
			TotalPrice:          item.TotalPrice().Amount(),
			SpecialInstructions: item.SpecialInstructions(),
		}
	}

	return orderPO, itemPOs
}

// FromStatusChanges Convert history entries of an order to rows
func FromStatusChanges(orderID int64, changes []order.StatusChange) []OrderStatusHistoryPO {
	rows := make([]OrderStatusHistoryPO, len(changes))
	for i, c := range changes {
		rows[i] = OrderStatusHistoryPO{
			OrderID:    orderID,
			FromStatus: string(c.From),
			ToStatus:   string(c.To),
			ActorID:    c.ActorID,
			ActorRole:  string(c.ActorRole),
			ChangedAt:  c.ChangedAt,
		}
	}
	return rows
}

// ToDomain Convert persistence object to domain model
func (po *OrderPO) ToDomain(itemPOs []OrderItemPO, historyPOs []OrderStatusHistoryPO) *order.Order {
	money := func(d decimal.Decimal) shared.Money { return shared.NewMoney(d, po.Currency) }

	items := make([]order.OrderItem, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = order.RebuildItemFromDTO(order.ItemReconstructionDTO{
			ID:                  itemPO.ID,
			MenuItemID:          itemPO.MenuItemID,
			Name:                itemPO.Name,
			Quantity:            itemPO.Quantity,
			UnitPrice:           money(itemPO.UnitPrice),
			TotalPrice:          money(itemPO.TotalPrice),
			SpecialInstructions: itemPO.SpecialInstructions,
		})
	}

	history := make([]order.StatusChange, len(historyPOs))
	for i, h := range historyPOs {
		history[i] = order.StatusChange{
			From:      order.Status(h.FromStatus),
			To:        order.Status(h.ToStatus),
			ActorID:   h.ActorID,
			ActorRole: shared.Role(h.ActorRole),
			ChangedAt: h.ChangedAt,
		}
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:                       po.ID,
		OrderNumber:              po.OrderNumber,
		CustomerID:               po.CustomerID,
		RestaurantID:             po.RestaurantID,
		DeliveryPartnerID:        po.DeliveryPartnerID,
		Status:                   order.Status(po.Status),
		DeliveryAddress:          po.DeliveryAddress,
		DeliveryInstructions:     po.DeliveryInstructions,
		Subtotal:                 money(po.Subtotal),
		Tax:                      money(po.TaxAmount),
		DeliveryFee:              money(po.DeliveryFee),
		Discount:                 money(po.DiscountAmount),
		PaymentMethod:            order.PaymentMethod(po.PaymentMethod),
		IsPaid:                   po.IsPaid,
		CouponCode:               po.CouponCode,
		EstimatedDeliveryMinutes: po.EstimatedDeliveryMinutes,
		CreatedAt:                po.CreatedAt,
		UpdatedAt:                po.UpdatedAt,
		ConfirmedAt:              po.ConfirmedAt,
		ReadyAt:                  po.ReadyAt,
		DeliveredAt:              po.DeliveredAt,
		Items:                    items,
		History:                  history,
		Version:                  po.Version,
	})
}
