package mysql

import (
	"context"
	"errors"
	"time"

	"fooddash/config"
	"fooddash/infrastructure/persistence/mysql/po"
	"fooddash/pkg/logger"

	"go.uber.org/zap"
)

// stuckAfter 处理中超过该时长的事件视为持有它的 worker 已退出
const stuckAfter = 5 * time.Minute

// OutboxPublisher 把 outbox 事件投递到通知渠道
type OutboxPublisher interface {
	Publish(ctx context.Context, eventType, payload string) error
}

// OutboxWorker 轮询 outbox 表；订单事务提交后的通知在这里才真正发出
// 多个 worker 可以并存，ClaimEvent 保证同一事件只被一个 worker 投递
type OutboxWorker struct {
	repository *OutboxRepository
	publisher  OutboxPublisher
	cfg        config.WorkerConfig
}

func NewOutboxWorker(repository *OutboxRepository, publisher OutboxPublisher, cfg config.WorkerConfig) (*OutboxWorker, error) {
	switch {
	case repository == nil:
		return nil, errors.New("outbox repository is required")
	case publisher == nil:
		return nil, errors.New("outbox publisher is required")
	case cfg.PollInterval <= 0:
		return nil, errors.New("worker.poll_interval must be positive")
	case cfg.BatchSize <= 0:
		return nil, errors.New("worker.batch_size must be positive")
	case cfg.MaxRetries <= 0:
		return nil, errors.New("worker.max_retries must be positive")
	}
	return &OutboxWorker{repository: repository, publisher: publisher, cfg: cfg}, nil
}

// Run 启动时先清一次积压，之后按 poll_interval 轮询，阻塞直到 ctx 取消
func (w *OutboxWorker) Run(ctx context.Context) error {
	logger.Info("Outbox worker started",
		zap.Duration("poll_interval", w.cfg.PollInterval),
		zap.Int("batch_size", w.cfg.BatchSize),
		zap.Int("max_retries", w.cfg.MaxRetries),
	)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		w.drain(ctx)
		select {
		case <-ctx.Done():
			logger.Info("Outbox worker stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// drain 批次取满且全部发出说明还有积压，继续取下一批
// 有投递失败时等下一个 tick，失败事件不在同一轮里连续重试
func (w *OutboxWorker) drain(ctx context.Context) {
	for ctx.Err() == nil {
		published, fetched, err := w.processBatch(ctx)
		if err != nil {
			logger.Error("Outbox batch processing failed", zap.Error(err))
			return
		}
		if fetched < w.cfg.BatchSize || published < fetched {
			return
		}
	}
}

// ProcessBatch 处理一批待发送事件，返回成功发出的数量
func (w *OutboxWorker) ProcessBatch(ctx context.Context) (int, error) {
	published, _, err := w.processBatch(ctx)
	return published, err
}

func (w *OutboxWorker) processBatch(ctx context.Context) (published, fetched int, err error) {
	if released, err := w.repository.ReleaseStuckEvents(ctx, stuckAfter); err != nil {
		logger.Warn("Failed to release stuck outbox events", zap.Error(err))
	} else if released > 0 {
		logger.Warn("Released stuck outbox events", zap.Int64("count", released))
	}

	events, err := w.repository.GetPendingEvents(ctx, w.cfg.BatchSize)
	if err != nil {
		return 0, 0, err
	}
	for _, event := range events {
		if w.deliver(ctx, event) {
			published++
		}
	}
	return published, len(events), nil
}

// deliver 认领、投递、记账；失败只影响该事件，订单早已提交
func (w *OutboxWorker) deliver(ctx context.Context, event *po.OutboxEventPO) bool {
	log := logger.ForOrder(ctx, event.AggregateID).With(
		zap.String("event_id", event.ID),
		zap.String("event_type", event.EventType),
	)

	claimed, err := w.repository.ClaimEvent(ctx, event.ID)
	if err != nil {
		log.Warn("Failed to claim outbox event", zap.Error(err))
		return false
	}
	if !claimed {
		return false
	}

	if err := w.publisher.Publish(ctx, event.EventType, event.Payload); err != nil {
		log.Warn("Outbox event publish failed", zap.Int("retry_count", event.RetryCount), zap.Error(err))
		if err := w.repository.MarkEventFailed(ctx, event.ID, w.cfg.MaxRetries, err); err != nil {
			log.Error("Failed to record outbox publish failure", zap.Error(err))
		}
		return false
	}

	if err := w.repository.MarkEventPublished(ctx, event.ID); err != nil {
		// 下次会被 ReleaseStuckEvents 放回，通知可能重复一次
		log.Error("Failed to mark outbox event as published", zap.Error(err))
		return false
	}
	return true
}
