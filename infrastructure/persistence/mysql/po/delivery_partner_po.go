package po

import (
	"time"

	"fooddash/domain/delivery"
	"fooddash/domain/shared"

	"github.com/shopspring/decimal"
)

// DeliveryPartnerPO 配送员档案，主键即用户 ID
type DeliveryPartnerPO struct {
	ID              int64           `gorm:"primaryKey;autoIncrement:false"`
	Name            string          `gorm:"size:100;not null"`
	IsAvailable     bool            `gorm:"not null;default:true"`
	Status          string          `gorm:"size:20;not null"`
	TotalDeliveries int             `gorm:"not null;default:0"`
	TotalEarnings   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency        string          `gorm:"size:3;not null"`
	Version         int             `gorm:"not null;default:0"`
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime"`
}

func (DeliveryPartnerPO) TableName() string {
	return "delivery_partners"
}

func FromPartnerDomain(p *delivery.Partner) *DeliveryPartnerPO {
	return &DeliveryPartnerPO{
		ID:              p.ID(),
		Name:            p.Name(),
		IsAvailable:     p.IsAvailable(),
		Status:          string(p.Status()),
		TotalDeliveries: p.TotalDeliveries(),
		TotalEarnings:   p.TotalEarnings().Amount(),
		Currency:        p.TotalEarnings().Currency(),
		Version:         p.Version(),
	}
}

func (po *DeliveryPartnerPO) ToDomain() *delivery.Partner {
	return delivery.RebuildFromDTO(delivery.ReconstructionDTO{
		ID:              po.ID,
		Name:            po.Name,
		IsAvailable:     po.IsAvailable,
		Status:          delivery.Status(po.Status),
		TotalDeliveries: po.TotalDeliveries,
		TotalEarnings:   shared.NewMoney(po.TotalEarnings, po.Currency),
		Version:         po.Version,
	})
}
