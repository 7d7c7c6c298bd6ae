/*
Package customer 顾客子领域

顾客档案以用户 ID 作为标识（一个用户至多一个顾客档案），
订单核心只修改统计字段：下单次数、最近下单时间、累计消费、积分。
*/
package customer

import (
	"time"

	"fooddash/domain/shared"

	"github.com/shopspring/decimal"
)

// Customer 顾客聚合根
type Customer struct {
	id            int64
	name          string
	loyaltyPoints int
	totalOrders   int
	totalSpent    shared.Money
	lastOrderDate *time.Time
	version       int
	isNew         bool
}

// ReconstructionDTO 仅供仓储层重建聚合
type ReconstructionDTO struct {
	ID            int64
	Name          string
	LoyaltyPoints int
	TotalOrders   int
	TotalSpent    shared.Money
	LastOrderDate *time.Time
	Version       int
}

func RebuildFromDTO(dto ReconstructionDTO) *Customer {
	return &Customer{
		id:            dto.ID,
		name:          dto.Name,
		loyaltyPoints: dto.LoyaltyPoints,
		totalOrders:   dto.TotalOrders,
		totalSpent:    dto.TotalSpent,
		lastOrderDate: dto.LastOrderDate,
		version:       dto.Version,
	}
}

// NewCustomer 为用户开通顾客档案
func NewCustomer(userID int64, name, currency string) (*Customer, error) {
	if userID <= 0 {
		return nil, NewInvalidCustomerError("id", "customer must reference a user")
	}
	return &Customer{
		id:         userID,
		name:       name,
		totalSpent: shared.ZeroMoney(currency),
		isNew:      true,
	}, nil
}

// RecordOrderPlaced 下单成功：订单数 +1，更新最近下单时间
func (c *Customer) RecordOrderPlaced(at time.Time) {
	c.totalOrders++
	c.lastOrderDate = &at
}

// RecordDelivery 订单送达：累计消费，按 pointUnit 折算积分（向下取整）
func (c *Customer) RecordDelivery(total shared.Money, pointUnit decimal.Decimal) error {
	spent, err := c.totalSpent.Add(total)
	if err != nil {
		return err
	}
	c.totalSpent = spent
	c.loyaltyPoints += LoyaltyPointsFor(total, pointUnit)
	return nil
}

// LoyaltyPointsFor floor(total / unit)
func LoyaltyPointsFor(total shared.Money, pointUnit decimal.Decimal) int {
	if pointUnit.Sign() <= 0 || total.IsNegative() {
		return 0
	}
	return int(total.Amount().Div(pointUnit).Floor().IntPart())
}

// IsNew 尚未持久化的档案走 INSERT
func (c *Customer) IsNew() bool { return c.isNew }

// IncrementVersionForSave 仓储保存成功后调用
func (c *Customer) IncrementVersionForSave() {
	c.version++
	c.isNew = false
}

func (c *Customer) ID() int64                        { return c.id }
func (c *Customer) Name() string                     { return c.name }
func (c *Customer) LoyaltyPoints() int               { return c.loyaltyPoints }
func (c *Customer) TotalOrders() int                 { return c.totalOrders }
func (c *Customer) TotalSpent() shared.Money         { return c.totalSpent }
func (c *Customer) LastOrderDate() *time.Time        { return c.lastOrderDate }
func (c *Customer) Version() int                     { return c.version }
func (c *Customer) PullEvents() []shared.DomainEvent { return nil }

var _ shared.AggregateRoot = (*Customer)(nil)
