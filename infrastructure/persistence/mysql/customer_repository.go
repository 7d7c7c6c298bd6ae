package mysql

import (
	"context"
	"errors"

	"fooddash/domain/customer"
	"fooddash/infrastructure/persistence"
	"fooddash/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// CustomerRepository GORM 实现的顾客档案仓储
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	var customerPO po.CustomerPO
	if err := r.getDB(ctx).First(&customerPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.NewCustomerNotFoundError(id)
		}
		return nil, err
	}
	return customerPO.ToDomain(), nil
}

// Save 新档案直接插入，已有档案按版本号更新
func (r *CustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	db := r.getDB(ctx)
	customerPO := po.FromCustomerDomain(c)

	if c.IsNew() {
		customerPO.Version = c.Version() + 1
		if err := db.Create(customerPO).Error; err != nil {
			return err
		}
		c.IncrementVersionForSave()
		return nil
	}

	expectedVersion := c.Version()
	result := db.Model(&po.CustomerPO{}).
		Where("id = ? AND version = ?", c.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"name":            customerPO.Name,
			"loyalty_points":  customerPO.LoyaltyPoints,
			"total_orders":    customerPO.TotalOrders,
			"total_spent":     customerPO.TotalSpent,
			"last_order_date": customerPO.LastOrderDate,
			"version":         expectedVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&po.CustomerPO{}).Where("id = ?", c.ID()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return customer.NewCustomerNotFoundError(c.ID())
		}
		return customer.NewConcurrentModificationError(c.ID())
	}

	c.IncrementVersionForSave()
	return nil
}

var _ customer.Repository = (*CustomerRepository)(nil)
