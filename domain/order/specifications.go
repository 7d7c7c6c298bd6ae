package order

import (
	"context"
	"time"

	"fooddash/domain/shared"
)

// ByCustomerSpecification filters orders by customer
type ByCustomerSpecification struct {
	CustomerID int64
}

// IsSatisfiedBy returns true if the order was placed by the customer
func (spec ByCustomerSpecification) IsSatisfiedBy(ctx context.Context, entity interface{}) bool {
	o, ok := entity.(*Order)
	return ok && o.CustomerID() == spec.CustomerID
}

// ByRestaurantSpecification filters orders by restaurant
type ByRestaurantSpecification struct {
	RestaurantID int64
}

// IsSatisfiedBy returns true if the order belongs to the restaurant
func (spec ByRestaurantSpecification) IsSatisfiedBy(ctx context.Context, entity interface{}) bool {
	o, ok := entity.(*Order)
	return ok && o.RestaurantID() == spec.RestaurantID
}

// ByStatusSpecification filters orders by status
type ByStatusSpecification struct {
	Status Status
}

// IsSatisfiedBy returns true if the order has the specified status
func (spec ByStatusSpecification) IsSatisfiedBy(ctx context.Context, entity interface{}) bool {
	o, ok := entity.(*Order)
	return ok && o.Status() == spec.Status
}

// ByDateRangeSpecification filters orders by creation date range [Start, End)
// Both Start and End are optional - if zero, they are ignored
type ByDateRangeSpecification struct {
	Start time.Time
	End   time.Time
}

// IsSatisfiedBy returns true if the order was created within the date range
func (spec ByDateRangeSpecification) IsSatisfiedBy(ctx context.Context, entity interface{}) bool {
	o, ok := entity.(*Order)
	if !ok {
		return false
	}
	createdAt := o.CreatedAt()

	if !spec.Start.IsZero() && createdAt.Before(spec.Start) {
		return false
	}
	if !spec.End.IsZero() && !createdAt.Before(spec.End) {
		return false
	}
	return true
}

// Helper functions for common specifications

// NewByCustomerSpecification creates a specification to filter by customer
func NewByCustomerSpecification(customerID int64) shared.Specification {
	return ByCustomerSpecification{CustomerID: customerID}
}

// NewByRestaurantSpecification creates a specification to filter by restaurant
func NewByRestaurantSpecification(restaurantID int64) shared.Specification {
	return ByRestaurantSpecification{RestaurantID: restaurantID}
}

// NewByStatusSpecification creates a specification to filter by status
func NewByStatusSpecification(status Status) shared.Specification {
	return ByStatusSpecification{Status: status}
}

// NewByDateRangeSpecification creates a specification to filter by date range
func NewByDateRangeSpecification(start, end time.Time) shared.Specification {
	return ByDateRangeSpecification{Start: start, End: end}
}
