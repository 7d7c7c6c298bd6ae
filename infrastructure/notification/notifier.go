package notification

import (
	"context"

	"fooddash/pkg/logger"

	"go.uber.org/zap"
)

// Notifier 通知订单相关方，实现方负责投递渠道
// 通知在事务提交之后发出，失败不会回滚订单
type Notifier interface {
	Notify(ctx context.Context, orderID int64, message string) error
}

// LogNotifier 只写日志，开发环境和未配置 Redis 时使用
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(ctx context.Context, orderID int64, message string) error {
	logger.FromContext(ctx).Info("Order notification",
		zap.Int64("order_id", orderID),
		zap.String("message", message),
	)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
