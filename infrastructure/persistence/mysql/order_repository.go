package mysql

import (
	"context"
	"errors"
	"time"

	"fooddash/domain/order"
	"fooddash/domain/shared"
	"fooddash/infrastructure/persistence"
	"fooddash/infrastructure/persistence/mysql/po"
	"fooddash/infrastructure/persistence/retry"
	"fooddash/infrastructure/persistence/specification"

	"gorm.io/gorm"
)

// OrderRepository MySQL/GORM implementation of order repository
// DDD principle: Repository is only responsible for persistence of aggregate roots, not event publishing
// GORM usage specification: Association features are prohibited to maintain DDD aggregate boundaries
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository Create order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save Save order (create or update)
// Note: Manually manage saving of orders, items and history rows, do not use GORM associations
// When called within UoW.Execute(), it uses the transaction from context
// When called standalone, it creates its own transaction for atomicity
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, o)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o)
	})
}

func (r *OrderRepository) saveWithTx(tx *gorm.DB, o *order.Order) error {
	orderPO, itemPOs := po.FromOrderDomain(o)

	if o.IsNew() {
		orderPO.ID = 0
		orderPO.Version = o.Version() + 1
		if err := tx.Create(orderPO).Error; err != nil {
			if retry.IsDuplicateKey(err) {
				return order.NewDuplicateOrderNumberError(o.OrderNumber())
			}
			return err
		}
		for i := range itemPOs {
			itemPOs[i].ID = 0
			itemPOs[i].OrderID = orderPO.ID
		}
		if len(itemPOs) > 0 {
			if err := tx.Create(&itemPOs).Error; err != nil {
				return err
			}
		}
		o.AssignID(orderPO.ID)
	} else {
		// 乐观锁：只有版本号匹配才更新，行项目在下单后不可变
		expectedVersion := o.Version()
		result := tx.Model(&po.OrderPO{}).
			Where("id = ? AND version = ?", o.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"status":              orderPO.Status,
				"delivery_partner_id": orderPO.DeliveryPartnerID,
				"is_paid":             orderPO.IsPaid,
				"confirmed_at":        orderPO.ConfirmedAt,
				"ready_at":            orderPO.ReadyAt,
				"delivered_at":        orderPO.DeliveredAt,
				"updated_at":          orderPO.UpdatedAt,
				"version":             expectedVersion + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.OrderPO{}).Where("id = ?", o.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return order.NewOrderNotFoundError(o.ID())
			}
			return order.NewConcurrentModificationError(o.ID())
		}
	}

	if history := po.FromStatusChanges(o.ID(), o.NewHistory()); len(history) > 0 {
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
	}

	o.IncrementVersionForSave()
	o.ClearDirtyTracking()
	return nil
}

// FindByID Find order by ID
func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	db := r.getDB(ctx)
	var orderPO po.OrderPO

	if err := db.First(&orderPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, err
	}

	loaded, err := r.loadAggregates(db, []po.OrderPO{orderPO})
	if err != nil {
		return nil, err
	}
	return loaded[0], nil
}

// FindPage Orders matching spec, newest first
func (r *OrderRepository) FindPage(ctx context.Context, spec shared.Specification, page shared.PageRequest) ([]*order.Order, int64, error) {
	page = page.Normalize()
	scope, err := specification.OrderScope(spec)
	if err != nil {
		return nil, 0, err
	}
	query := func() *gorm.DB {
		return r.getDB(ctx).Model(&po.OrderPO{}).Scopes(scope)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []*order.Order{}, 0, nil
	}

	var orderPOs []po.OrderPO
	if err := query().Order("created_at DESC").Order("id DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&orderPOs).Error; err != nil {
		return nil, 0, err
	}

	orders, err := r.loadAggregates(r.getDB(ctx), orderPOs)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// CountCreatedBetween Number of orders created in [from, to)
func (r *OrderRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.OrderPO{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

// loadAggregates batch-loads items and history for the given orders
// Manually query child rows (do not use GORM's Preload to keep aggregate boundaries clear)
func (r *OrderRepository) loadAggregates(db *gorm.DB, orderPOs []po.OrderPO) ([]*order.Order, error) {
	if len(orderPOs) == 0 {
		return []*order.Order{}, nil
	}
	ids := make([]int64, len(orderPOs))
	for i, o := range orderPOs {
		ids[i] = o.ID
	}

	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id IN ?", ids).Order("id ASC").Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	var historyPOs []po.OrderStatusHistoryPO
	if err := db.Where("order_id IN ?", ids).Order("changed_at ASC").Order("id ASC").Find(&historyPOs).Error; err != nil {
		return nil, err
	}

	itemsByOrder := make(map[int64][]po.OrderItemPO, len(orderPOs))
	for _, item := range itemPOs {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}
	historyByOrder := make(map[int64][]po.OrderStatusHistoryPO, len(orderPOs))
	for _, h := range historyPOs {
		historyByOrder[h.OrderID] = append(historyByOrder[h.OrderID], h)
	}

	orders := make([]*order.Order, len(orderPOs))
	for i := range orderPOs {
		orders[i] = orderPOs[i].ToDomain(itemsByOrder[orderPOs[i].ID], historyByOrder[orderPOs[i].ID])
	}
	return orders, nil
}

// Compile-time interface implementation check
var _ order.Repository = (*OrderRepository)(nil)
