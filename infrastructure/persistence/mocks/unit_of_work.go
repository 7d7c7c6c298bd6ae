package mocks

import (
	"context"

	"fooddash/domain/shared"
	"fooddash/infrastructure/persistence/retry"
	"fooddash/pkg/logger"

	"go.uber.org/zap"
)

// MockUnitOfWork in-memory unit of work
// Units of work run one at a time against the store; a failed fn restores the snapshot taken before it ran
// Events are handed to the publisher only after the unit of work succeeds
type MockUnitOfWork struct {
	store       *Store
	publisher   shared.DomainEventPublisher
	retryConfig retry.Config
	aggregates  []shared.AggregateRoot
}

// NewMockUnitOfWork creates a new MockUnitOfWork instance
func NewMockUnitOfWork(store *Store, publisher shared.DomainEventPublisher) *MockUnitOfWork {
	return &MockUnitOfWork{
		store:       store,
		publisher:   publisher,
		retryConfig: retry.DefaultConfig,
	}
}

// SetRetryConfig updates the retry configuration for this UnitOfWork
func (u *MockUnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

func (u *MockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	var events []shared.DomainEvent

	executeOnce := func(ctx context.Context) error {
		u.aggregates = make([]shared.AggregateRoot, 0)
		events = nil

		u.store.txMu.Lock()
		defer u.store.txMu.Unlock()

		snap := u.store.snapshot()
		if err := fn(ctx); err != nil {
			u.store.restore(snap)
			return err
		}
		if err := ctx.Err(); err != nil {
			u.store.restore(snap)
			return err
		}

		for _, agg := range u.aggregates {
			events = append(events, agg.PullEvents()...)
		}
		return nil
	}

	if err := retry.ExecuteWithRetry(ctx, u.retryConfig, executeOnce); err != nil {
		return retry.Classify("unit_of_work", err)
	}

	if u.publisher == nil {
		return nil
	}
	for _, event := range events {
		if err := u.publisher.Publish(ctx, event); err != nil {
			logger.Warn("Failed to dispatch domain event",
				zap.String("event", event.EventName()),
				zap.Error(err),
			)
		}
	}
	return nil
}

// RegisterNew registers a newly created aggregate root for event collection
func (u *MockUnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// RegisterDirty registers a modified aggregate root for event collection
func (u *MockUnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// MockUnitOfWorkFactory 每次调用创建新的内存工作单元
type MockUnitOfWorkFactory struct {
	store       *Store
	publisher   shared.DomainEventPublisher
	retryConfig retry.Config
}

func NewMockUnitOfWorkFactory(store *Store, publisher shared.DomainEventPublisher, retryConfig retry.Config) *MockUnitOfWorkFactory {
	return &MockUnitOfWorkFactory{store: store, publisher: publisher, retryConfig: retryConfig}
}

func (f *MockUnitOfWorkFactory) New() shared.UnitOfWork {
	uow := NewMockUnitOfWork(f.store, f.publisher)
	uow.SetRetryConfig(f.retryConfig)
	return uow
}

// Compile-time check that MockUnitOfWork implements shared.UnitOfWork
var (
	_ shared.UnitOfWork        = (*MockUnitOfWork)(nil)
	_ shared.UnitOfWorkFactory = (*MockUnitOfWorkFactory)(nil)
)
