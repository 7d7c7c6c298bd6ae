package mysql

import (
	"context"
	"errors"

	"fooddash/domain/delivery"
	"fooddash/infrastructure/persistence"
	"fooddash/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// DeliveryPartnerRepository GORM 实现的配送员仓储
type DeliveryPartnerRepository struct {
	db *gorm.DB
}

func NewDeliveryPartnerRepository(db *gorm.DB) *DeliveryPartnerRepository {
	return &DeliveryPartnerRepository{db: db}
}

func (r *DeliveryPartnerRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *DeliveryPartnerRepository) FindByID(ctx context.Context, id int64) (*delivery.Partner, error) {
	var partnerPO po.DeliveryPartnerPO
	if err := r.getDB(ctx).First(&partnerPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, delivery.NewPartnerNotFoundError(id)
		}
		return nil, err
	}
	return partnerPO.ToDomain(), nil
}

func (r *DeliveryPartnerRepository) Save(ctx context.Context, p *delivery.Partner) error {
	db := r.getDB(ctx)
	partnerPO := po.FromPartnerDomain(p)

	if p.IsNew() {
		partnerPO.Version = p.Version() + 1
		if err := db.Create(partnerPO).Error; err != nil {
			return err
		}
		p.IncrementVersionForSave()
		return nil
	}

	expectedVersion := p.Version()
	result := db.Model(&po.DeliveryPartnerPO{}).
		Where("id = ? AND version = ?", p.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"is_available":     partnerPO.IsAvailable,
			"status":           partnerPO.Status,
			"total_deliveries": partnerPO.TotalDeliveries,
			"total_earnings":   partnerPO.TotalEarnings,
			"version":          expectedVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&po.DeliveryPartnerPO{}).Where("id = ?", p.ID()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return delivery.NewPartnerNotFoundError(p.ID())
		}
		return delivery.NewConcurrentModificationError(p.ID())
	}

	p.IncrementVersionForSave()
	return nil
}

var _ delivery.Repository = (*DeliveryPartnerRepository)(nil)
