package coupon

import (
	"errors"

	"fooddash/domain/shared"
)

var (
	ErrCouponNotFound         = errors.New("coupon not found")
	ErrInvalidCoupon          = errors.New("invalid coupon")
	ErrCouponExhausted        = errors.New("coupon usage limit reached")
	ErrConcurrentModification = errors.New("coupon was modified by another transaction, please retry")
)

func NewCouponNotFoundError(code string) error {
	return shared.NewKindError(shared.ErrNotFound, ErrCouponNotFound, "coupon", "code", "coupon not found: "+code)
}

func NewInvalidCouponError(field, reason string) error {
	return shared.NewKindError(shared.ErrInvalidInput, ErrInvalidCoupon, "coupon", field, reason)
}

func NewCouponExhaustedError(code string) error {
	return shared.NewKindError(shared.ErrConflict, ErrCouponExhausted, "coupon", "code", "coupon "+code+" has reached its usage limit")
}

func NewConcurrentModificationError(code string) error {
	return shared.NewKindError(shared.ErrConflict, ErrConcurrentModification, "coupon", "", "coupon "+code+" was modified by another transaction, please retry")
}
