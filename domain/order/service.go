package order

import (
	"fooddash/domain/shared"
)

// AccessPolicy Order read/assign access rules
// DDD principle: Domain service only validates business rules; loading the
// restaurant owner is left to the application service
type AccessPolicy struct{}

// NewAccessPolicy Create order access policy
func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{}
}

// CanView admin, the order's customer, the restaurant owner or the assigned partner
func (p *AccessPolicy) CanView(o *Order, actor shared.Actor, restaurantOwnerID int64) error {
	if relatedTo(o, actor, restaurantOwnerID) {
		return nil
	}
	return NewAccessDeniedError("user " + idString(actor.UserID) + " cannot view order " + idString(o.ID()))
}

// CanAssignDelivery only admins and the owning restaurant owner assign partners
func (p *AccessPolicy) CanAssignDelivery(o *Order, actor shared.Actor, restaurantOwnerID int64) error {
	switch actor.Role {
	case shared.RoleAdmin:
		return nil
	case shared.RoleRestaurantOwner:
		if restaurantOwnerID != 0 && restaurantOwnerID == actor.UserID {
			return nil
		}
	}
	return NewUnauthorizedTransitionError(actor, o.ID())
}

// CanListCustomerOrders the customer themself or an admin
func (p *AccessPolicy) CanListCustomerOrders(actor shared.Actor, customerID int64) error {
	if actor.IsAdmin() || (actor.Role == shared.RoleCustomer && actor.UserID == customerID) {
		return nil
	}
	return NewAccessDeniedError("user " + idString(actor.UserID) + " cannot list orders of customer " + idString(customerID))
}

// CanListRestaurantOrders the restaurant owner or an admin
func (p *AccessPolicy) CanListRestaurantOrders(actor shared.Actor, restaurantID, restaurantOwnerID int64) error {
	if actor.IsAdmin() || (actor.Role == shared.RoleRestaurantOwner && actor.UserID == restaurantOwnerID) {
		return nil
	}
	return NewAccessDeniedError("user " + idString(actor.UserID) + " cannot list orders of restaurant " + idString(restaurantID))
}
