package mocks

import (
	"context"

	"fooddash/domain/delivery"
	"fooddash/infrastructure/persistence/mysql/po"
)

type MockDeliveryPartnerRepository struct {
	store *Store
}

func NewMockDeliveryPartnerRepository(store *Store) *MockDeliveryPartnerRepository {
	return &MockDeliveryPartnerRepository{store: store}
}

func (r *MockDeliveryPartnerRepository) FindByID(ctx context.Context, id int64) (*delivery.Partner, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.partners[id]
	if !ok {
		return nil, delivery.NewPartnerNotFoundError(id)
	}
	return row.ToDomain(), nil
}

func (r *MockDeliveryPartnerRepository) Save(ctx context.Context, p *delivery.Partner) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row := po.FromPartnerDomain(p)
	existing, exists := r.store.partners[p.ID()]
	switch {
	case p.IsNew():
	case !exists:
		return delivery.NewPartnerNotFoundError(p.ID())
	case existing.Version != p.Version():
		return delivery.NewConcurrentModificationError(p.ID())
	}
	row.Version = p.Version() + 1
	r.store.partners[p.ID()] = *row
	p.IncrementVersionForSave()
	return nil
}

var _ delivery.Repository = (*MockDeliveryPartnerRepository)(nil)
