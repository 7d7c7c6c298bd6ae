package delivery

import (
	"errors"
	"strconv"

	"fooddash/domain/shared"
)

var (
	ErrPartnerNotFound        = errors.New("delivery partner not found")
	ErrPartnerUnavailable     = errors.New("delivery partner is not available")
	ErrInvalidPartner         = errors.New("invalid delivery partner")
	ErrConcurrentModification = errors.New("delivery partner was modified by another transaction, please retry")
)

func NewPartnerNotFoundError(id int64) error {
	return shared.NewKindError(shared.ErrNotFound, ErrPartnerNotFound, "delivery_partner", "delivery_partner_id",
		"delivery partner not found: "+strconv.FormatInt(id, 10))
}

func NewPartnerUnavailableError(id int64, status Status) error {
	return shared.NewKindError(shared.ErrInvalidInput, ErrPartnerUnavailable, "delivery_partner", "delivery_partner_id",
		"delivery partner "+strconv.FormatInt(id, 10)+" is not available (status "+string(status)+")")
}

func NewInvalidPartnerError(field, reason string) error {
	return shared.NewKindError(shared.ErrInvalidInput, ErrInvalidPartner, "delivery_partner", field, reason)
}

func NewConcurrentModificationError(id int64) error {
	return shared.NewKindError(shared.ErrConflict, ErrConcurrentModification, "delivery_partner", "",
		"delivery partner "+strconv.FormatInt(id, 10)+" was modified by another transaction, please retry")
}
