package shared

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// DomainEvent 领域事件
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() int64
}

// NotificationEvent 需要通知订单相关方的事件
// 由通知发送方转换为 notify(orderID, message)
type NotificationEvent interface {
	DomainEvent
	OrderID() int64
	Message() string
}

// DomainEventPublisher 事务提交后的事件发布
type DomainEventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventName string, handler EventHandler) error
}

type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	Name() string
}

func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if event.GetAggregateID() <= 0 {
		return fmt.Errorf("event %s has no aggregate ID", event.EventName())
	}
	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}
	return nil
}

// WildcardEvent 订阅全部事件
const WildcardEvent = "*"

// EventBus 进程内事件总线，memory 后端用它在提交后同步投递通知
// 某个处理器失败不影响其他处理器，错误合并返回
type EventBus struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
	}
}

func (bus *EventBus) Publish(ctx context.Context, event DomainEvent) error {
	if err := ValidateEvent(event); err != nil {
		return err
	}

	bus.mu.RLock()
	handlers := make([]EventHandler, 0, len(bus.handlers[event.EventName()])+len(bus.handlers[WildcardEvent]))
	handlers = append(handlers, bus.handlers[event.EventName()]...)
	handlers = append(handlers, bus.handlers[WildcardEvent]...)
	bus.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("handler %s: %w", handler.Name(), err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("event %s: %w", event.EventName(), err)
	}
	return nil
}

func (bus *EventBus) Subscribe(eventName string, handler EventHandler) error {
	if eventName == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	for _, h := range bus.handlers[eventName] {
		if h.Name() == handler.Name() {
			return fmt.Errorf("handler %s already subscribed to %s", handler.Name(), eventName)
		}
	}
	bus.handlers[eventName] = append(bus.handlers[eventName], handler)
	return nil
}

var _ DomainEventPublisher = (*EventBus)(nil)
