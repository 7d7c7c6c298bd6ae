package customer

import (
	"errors"
	"strconv"

	"fooddash/domain/shared"
)

var (
	ErrCustomerNotFound       = errors.New("customer not found")
	ErrInvalidCustomer        = errors.New("invalid customer")
	ErrConcurrentModification = errors.New("customer was modified by another transaction, please retry")
)

func NewCustomerNotFoundError(id int64) error {
	return shared.NewKindError(shared.ErrNotFound, ErrCustomerNotFound, "customer", "customer_id",
		"customer not found: "+strconv.FormatInt(id, 10))
}

func NewInvalidCustomerError(field, reason string) error {
	return shared.NewKindError(shared.ErrInvalidInput, ErrInvalidCustomer, "customer", field, reason)
}

func NewConcurrentModificationError(id int64) error {
	return shared.NewKindError(shared.ErrConflict, ErrConcurrentModification, "customer", "",
		"customer "+strconv.FormatInt(id, 10)+" was modified by another transaction, please retry")
}
