package delivery

import "context"

// Repository 配送员仓储
type Repository interface {
	// FindByID 不存在返回 ErrPartnerNotFound
	FindByID(ctx context.Context, id int64) (*Partner, error)

	// Save 新建或按版本号更新（乐观锁）
	Save(ctx context.Context, p *Partner) error
}
