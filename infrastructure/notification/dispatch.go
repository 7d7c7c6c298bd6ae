package notification

import (
	"context"
	"fmt"

	"fooddash/domain/shared"
	"fooddash/infrastructure/persistence/mysql/po"
)

// EventHandler 把领域事件转换为 notify(orderID, message)，订阅在进程内事件总线上
type EventHandler struct {
	notifier Notifier
}

func NewEventHandler(notifier Notifier) *EventHandler {
	return &EventHandler{notifier: notifier}
}

func (h *EventHandler) Name() string { return "order-notification" }

// Handle 非通知类事件直接忽略
func (h *EventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	n, ok := event.(shared.NotificationEvent)
	if !ok {
		return nil
	}
	return h.notifier.Notify(ctx, n.OrderID(), n.Message())
}

// OutboxPublisher outbox worker 的投递端，解析事件内容后发通知
type OutboxPublisher struct {
	notifier Notifier
}

func NewOutboxPublisher(notifier Notifier) *OutboxPublisher {
	return &OutboxPublisher{notifier: notifier}
}

func (p *OutboxPublisher) Publish(ctx context.Context, eventType, payload string) error {
	decoded, err := po.DecodePayload(payload)
	if err != nil {
		return fmt.Errorf("decode %s payload: %w", eventType, err)
	}
	if decoded.Message == "" || decoded.OrderID == 0 {
		return nil
	}
	return p.notifier.Notify(ctx, decoded.OrderID, decoded.Message)
}

var _ shared.EventHandler = (*EventHandler)(nil)
