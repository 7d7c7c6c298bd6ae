package mocks

import (
	"context"

	"fooddash/domain/coupon"
	"fooddash/infrastructure/persistence/mysql/po"
)

type MockCouponRepository struct {
	store *Store
}

func NewMockCouponRepository(store *Store) *MockCouponRepository {
	return &MockCouponRepository{store: store}
}

func (r *MockCouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	normalized := coupon.NormalizeCode(code)

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.coupons[normalized]
	if !ok {
		return nil, coupon.NewCouponNotFoundError(normalized)
	}
	return row.ToDomain(), nil
}

func (r *MockCouponRepository) Save(ctx context.Context, c *coupon.Coupon) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row := po.FromCouponDomain(c)
	if c.ID() == 0 {
		r.store.nextCouponID++
		row.ID = r.store.nextCouponID
	} else {
		existing, exists := r.store.coupons[c.Code()]
		if !exists {
			return coupon.NewCouponNotFoundError(c.Code())
		}
		if existing.Version != c.Version() {
			return coupon.NewConcurrentModificationError(c.Code())
		}
	}
	row.Version = c.Version() + 1
	r.store.coupons[row.Code] = *row
	c.AssignID(row.ID)
	c.IncrementVersionForSave()
	return nil
}

var _ coupon.Repository = (*MockCouponRepository)(nil)
