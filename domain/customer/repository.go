package customer

import "context"

// Repository 顾客仓储
type Repository interface {
	// FindByID 不存在返回 ErrCustomerNotFound
	FindByID(ctx context.Context, id int64) (*Customer, error)

	// Save 新建或按版本号更新（乐观锁），版本不匹配返回 ErrConcurrentModification
	Save(ctx context.Context, c *Customer) error
}
