package shared

// AggregateRoot 订单、客户、配送员、优惠券
// ID 为数据库自增整数，首次保存前为 0；Version 每次保存加一，仓储据此做乐观锁
type AggregateRoot interface {
	ID() int64
	Version() int

	// PullEvents 取出并清空待发事件，UoW 在提交前调用
	PullEvents() []DomainEvent
}
