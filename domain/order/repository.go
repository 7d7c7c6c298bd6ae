package order

import (
	"context"
	"time"

	"fooddash/domain/shared"
)

// Repository Order repository interface
type Repository interface {
	// Save Save or update order aggregate root
	// New orders are INSERTed (the database assigns the ID, a taken order number
	// returns ErrDuplicateOrderNumber); existing ones are updated with an
	// optimistic version check (ErrConcurrentModification on mismatch).
	// Repository only handles persistence, events collected by UoW and saved to outbox table
	Save(ctx context.Context, order *Order) error

	// FindByID Find order aggregate root by ID, with items and history
	FindByID(ctx context.Context, id int64) (*Order, error)

	// FindPage Orders matching spec, newest first, plus the total match count
	FindPage(ctx context.Context, spec shared.Specification, page shared.PageRequest) ([]*Order, int64, error)

	// CountCreatedBetween Number of orders created in [from, to), used for order numbering
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}
