package mocks

import (
	"context"
	"sync"

	"fooddash/domain/shared"
	"fooddash/pkg/logger"

	"go.uber.org/zap"
)

// MockEventPublisher 内存模式下的事件发布器
// 事件在工作单元成功后异步分发，处理器失败只记日志，不影响已完成的业务
type MockEventPublisher struct {
	bus *shared.EventBus
	wg  sync.WaitGroup
}

// NewMockEventPublisher 创建事件发布器
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{bus: shared.NewEventBus()}
}

// Publish 异步处理事件
func (p *MockEventPublisher) Publish(ctx context.Context, event shared.DomainEvent) error {
	if err := shared.ValidateEvent(event); err != nil {
		return err
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		// 请求上下文可能已结束，处理器使用独立上下文
		if err := p.bus.Publish(context.WithoutCancel(ctx), event); err != nil {
			logger.Warn("Event handler failed",
				zap.String("event", event.EventName()),
				zap.Int64("aggregate_id", event.GetAggregateID()),
				zap.Error(err),
			)
		}
	}()
	return nil
}

func (p *MockEventPublisher) Subscribe(eventName string, handler shared.EventHandler) error {
	return p.bus.Subscribe(eventName, handler)
}

// Wait 等待已分发的事件处理完成（优雅关闭时调用）
func (p *MockEventPublisher) Wait() {
	p.wg.Wait()
}

var _ shared.DomainEventPublisher = (*MockEventPublisher)(nil)
