package mocks

import (
	"context"

	"fooddash/domain/customer"
	"fooddash/infrastructure/persistence/mysql/po"
)

type MockCustomerRepository struct {
	store *Store
}

func NewMockCustomerRepository(store *Store) *MockCustomerRepository {
	return &MockCustomerRepository{store: store}
}

func (r *MockCustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.customers[id]
	if !ok {
		return nil, customer.NewCustomerNotFoundError(id)
	}
	return row.ToDomain(), nil
}

func (r *MockCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row := po.FromCustomerDomain(c)
	existing, exists := r.store.customers[c.ID()]
	switch {
	case c.IsNew():
	case !exists:
		return customer.NewCustomerNotFoundError(c.ID())
	case existing.Version != c.Version():
		return customer.NewConcurrentModificationError(c.ID())
	}
	row.Version = c.Version() + 1
	r.store.customers[c.ID()] = *row
	c.IncrementVersionForSave()
	return nil
}

var _ customer.Repository = (*MockCustomerRepository)(nil)
