package po

import (
	"time"

	"fooddash/domain/customer"
	"fooddash/domain/shared"

	"github.com/shopspring/decimal"
)

// CustomerPO 顾客档案，主键即用户 ID
type CustomerPO struct {
	ID            int64           `gorm:"primaryKey;autoIncrement:false"`
	Name          string          `gorm:"size:100;not null"`
	LoyaltyPoints int             `gorm:"not null;default:0"`
	TotalOrders   int             `gorm:"not null;default:0"`
	TotalSpent    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency      string          `gorm:"size:3;not null"`
	LastOrderDate *time.Time
	Version       int       `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (CustomerPO) TableName() string {
	return "customers"
}

func FromCustomerDomain(c *customer.Customer) *CustomerPO {
	return &CustomerPO{
		ID:            c.ID(),
		Name:          c.Name(),
		LoyaltyPoints: c.LoyaltyPoints(),
		TotalOrders:   c.TotalOrders(),
		TotalSpent:    c.TotalSpent().Amount(),
		Currency:      c.TotalSpent().Currency(),
		LastOrderDate: c.LastOrderDate(),
		Version:       c.Version(),
	}
}

func (po *CustomerPO) ToDomain() *customer.Customer {
	return customer.RebuildFromDTO(customer.ReconstructionDTO{
		ID:            po.ID,
		Name:          po.Name,
		LoyaltyPoints: po.LoyaltyPoints,
		TotalOrders:   po.TotalOrders,
		TotalSpent:    shared.NewMoney(po.TotalSpent, po.Currency),
		LastOrderDate: po.LastOrderDate,
		Version:       po.Version,
	})
}
