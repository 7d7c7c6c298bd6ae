package mocks

import (
	"context"
	"sort"
	"time"

	"fooddash/domain/order"
	"fooddash/domain/shared"
	"fooddash/infrastructure/persistence/mysql/po"
)

// MockOrderRepository In-memory implementation of order repository
// DDD principle: Repository is only responsible for persistence of aggregate roots, not event publishing
// Events are collected by the UoW and dispatched after the unit of work succeeds
type MockOrderRepository struct {
	store *Store
}

// NewMockOrderRepository Create in-memory order repository
func NewMockOrderRepository(store *Store) *MockOrderRepository {
	return &MockOrderRepository{store: store}
}

func (r *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	orderPO, itemPOs := po.FromOrderDomain(o)

	if o.IsNew() {
		if _, taken := s.orderNumbers[o.OrderNumber()]; taken {
			return order.NewDuplicateOrderNumberError(o.OrderNumber())
		}
		s.nextOrderID++
		orderPO.ID = s.nextOrderID
		orderPO.Version = o.Version() + 1
		for i := range itemPOs {
			s.nextItemID++
			itemPOs[i].ID = s.nextItemID
			itemPOs[i].OrderID = orderPO.ID
		}
		s.orders[orderPO.ID] = *orderPO
		s.orderItems[orderPO.ID] = itemPOs
		s.orderNumbers[orderPO.OrderNumber] = orderPO.ID
		o.AssignID(orderPO.ID)
	} else {
		// Check optimistic locking for existing orders
		existing, exists := s.orders[o.ID()]
		if !exists {
			return order.NewOrderNotFoundError(o.ID())
		}
		if existing.Version != o.Version() {
			return order.NewConcurrentModificationError(o.ID())
		}
		orderPO.Version = o.Version() + 1
		orderPO.CreatedAt = existing.CreatedAt
		s.orders[o.ID()] = *orderPO
	}

	history := po.FromStatusChanges(o.ID(), o.NewHistory())
	s.orderHistory[o.ID()] = append(s.orderHistory[o.ID()], history...)

	o.IncrementVersionForSave()
	o.ClearDirtyTracking()
	return nil
}

func (r *MockOrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	o, ok := r.load(id)
	if !ok {
		return nil, order.NewOrderNotFoundError(id)
	}
	return o, nil
}

// FindPage filters with IsSatisfiedBy, newest first
func (r *MockOrderRepository) FindPage(ctx context.Context, spec shared.Specification, page shared.PageRequest) ([]*order.Order, int64, error) {
	page = page.Normalize()

	r.store.mu.RLock()
	matched := make([]*order.Order, 0)
	for id := range r.store.orders {
		o, _ := r.load(id)
		if spec == nil || spec.IsSatisfiedBy(ctx, o) {
			matched = append(matched, o)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt().Equal(matched[j].CreatedAt()) {
			return matched[i].CreatedAt().After(matched[j].CreatedAt())
		}
		return matched[i].ID() > matched[j].ID()
	})

	total := int64(len(matched))
	start := page.Offset()
	if start >= len(matched) {
		return []*order.Order{}, total, nil
	}
	end := start + page.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *MockOrderRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, o := range r.store.orders {
		if !o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

// load rebuilds an aggregate from stored rows, caller holds the read lock
func (r *MockOrderRepository) load(id int64) (*order.Order, bool) {
	orderPO, ok := r.store.orders[id]
	if !ok {
		return nil, false
	}
	return orderPO.ToDomain(r.store.orderItems[id], r.store.orderHistory[id]), true
}

var _ order.Repository = (*MockOrderRepository)(nil)
