package shared

import "context"

// UnitOfWork 一次业务操作的事务边界
// fn 返回错误时整体回滚，已登记聚合的事件随之丢弃；订单、客户、配送员都不会被删除，只有新建和修改
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
}

// UnitOfWorkFactory 每次业务调用创建独立的 UoW，避免并发请求共享已登记聚合。
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// OutboxRepository UoW 在事务内通过它落事件，投递由 worker 负责
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
