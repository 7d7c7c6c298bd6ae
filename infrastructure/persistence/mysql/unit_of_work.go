package mysql

import (
	"context"
	"fmt"

	"fooddash/domain/shared"
	"fooddash/infrastructure/persistence"
	"fooddash/infrastructure/persistence/retry"
	"fooddash/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UnitOfWork 一次下单/改状态/指派配送员对应一个 GORM 事务
// 登记的聚合在提交前把事件写入 outbox，和业务数据同生共死
type UnitOfWork struct {
	db          *gorm.DB
	outbox      shared.OutboxRepository
	retryConfig retry.Config
	aggregates  []shared.AggregateRoot
}

func newUnitOfWork(db *gorm.DB, retryConfig retry.Config) *UnitOfWork {
	return &UnitOfWork{
		db:          db,
		outbox:      NewOutboxRepository(db),
		retryConfig: retryConfig,
	}
}

// Execute 在事务中执行 fn
// 版本冲突、订单号重复、死锁时整体重跑 fn（重新加载聚合再应用变更），
// 超时和锁等待耗尽归类为 shared.ErrTransient
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	attempt := func(ctx context.Context) error {
		u.aggregates = u.aggregates[:0]
		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			txCtx := persistence.ContextWithTx(ctx, tx)
			if err := fn(txCtx); err != nil {
				return err
			}
			return u.flushEvents(txCtx)
		})
	}
	return retry.Classify("unit_of_work", retry.ExecuteWithRetry(ctx, u.retryConfig, attempt))
}

// flushEvents 事件在事务内落 outbox，由 worker 在提交后投递通知
func (u *UnitOfWork) flushEvents(txCtx context.Context) error {
	saved := 0
	for _, agg := range u.aggregates {
		for _, event := range agg.PullEvents() {
			if err := u.outbox.SaveEvent(txCtx, event); err != nil {
				return fmt.Errorf("save %s to outbox: %w", event.EventName(), err)
			}
			saved++
		}
	}
	if saved > 0 {
		logger.FromContext(txCtx).Debug("Events written to outbox", zap.Int("count", saved))
	}
	return nil
}

// register 同一聚合在一次事务里只登记一次
func (u *UnitOfWork) register(aggregate shared.AggregateRoot) {
	for _, existing := range u.aggregates {
		if existing == aggregate {
			return
		}
	}
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *UnitOfWork) RegisterNew(aggregate shared.AggregateRoot)   { u.register(aggregate) }
func (u *UnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) { u.register(aggregate) }

// UnitOfWorkFactory 每个请求一个 UoW，共享连接池与重试配置
type UnitOfWorkFactory struct {
	db          *gorm.DB
	retryConfig retry.Config
}

func NewUnitOfWorkFactory(db *gorm.DB, retryConfig retry.Config) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db, retryConfig: retryConfig}
}

func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	return newUnitOfWork(f.db, f.retryConfig)
}

var (
	_ shared.UnitOfWork        = (*UnitOfWork)(nil)
	_ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
)
