package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fooddash/domain/order"
	"fooddash/domain/shared"
	"fooddash/infrastructure/persistence/mysql/po"
	"fooddash/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type published struct {
	channel string
	body    []byte
}

type fakeRedis struct {
	err  error
	sent []published
}

func (f *fakeRedis) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	body, _ := message.([]byte)
	f.sent = append(f.sent, published{channel: channel, body: body})
	return redis.NewIntResult(1, nil)
}

type captured struct {
	orderID int64
	message string
}

type captureNotifier struct {
	calls []captured
}

func (n *captureNotifier) Notify(_ context.Context, orderID int64, message string) error {
	n.calls = append(n.calls, captured{orderID: orderID, message: message})
	return nil
}

func TestRedisNotifier_PublishesToOrderChannel(t *testing.T) {
	client := &fakeRedis{}
	n := newRedisNotifier(client, "fooddash:orders")
	sentAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	n.now = func() time.Time { return sentAt }

	require.NoError(t, n.Notify(context.Background(), 42, "Order placed successfully"))
	require.Len(t, client.sent, 1)
	assert.Equal(t, "fooddash:orders:42", client.sent[0].channel)

	var msg Message
	require.NoError(t, json.Unmarshal(client.sent[0].body, &msg))
	assert.Equal(t, int64(42), msg.OrderID)
	assert.Equal(t, "Order placed successfully", msg.Message)
	assert.True(t, msg.SentAt.Equal(sentAt))
}

func TestRedisNotifier_ReportsPublishFailure(t *testing.T) {
	down := errors.New("connection refused")
	n := newRedisNotifier(&fakeRedis{err: down}, "fooddash:orders")

	err := n.Notify(context.Background(), 42, "Order status updated to CONFIRMED")
	assert.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "order 42")
}

func TestLogNotifier_WritesStructuredLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	require.NoError(t, NewLogNotifier().Notify(context.Background(), 7, "Delivery partner assigned"))

	entries := logs.FilterMessage("Order notification").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(7), fields["order_id"])
	assert.Equal(t, "Delivery partner assigned", fields["message"])
}

type otherEvent struct{}

func (otherEvent) EventName() string     { return "other" }
func (otherEvent) OccurredOn() time.Time { return time.Now() }
func (otherEvent) GetAggregateID() int64 { return 1 }

func TestEventHandler_ForwardsNotificationEvents(t *testing.T) {
	notifier := &captureNotifier{}
	h := NewEventHandler(notifier)
	ctx := context.Background()

	o := placedOrder(t)
	require.NoError(t, h.Handle(ctx, order.NewOrderPlacedEvent(o)))
	require.NoError(t, h.Handle(ctx, order.NewDeliveryPartnerAssignedEvent(o, 31)))
	require.NoError(t, h.Handle(ctx, otherEvent{}))

	assert.Equal(t, []captured{
		{orderID: 9, message: order.MessageOrderPlaced},
		{orderID: 9, message: order.MessageDeliveryPartnerAssigned},
	}, notifier.calls)
	assert.Equal(t, "order-notification", h.Name())
}

func TestOutboxPublisher_DecodesPayload(t *testing.T) {
	notifier := &captureNotifier{}
	p := NewOutboxPublisher(notifier)
	ctx := context.Background()

	o := placedOrder(t)
	row, err := po.FromDomainEvent(order.NewOrderStatusChangedEvent(o, order.StatusPending, order.StatusConfirmed))
	require.NoError(t, err)

	require.NoError(t, p.Publish(ctx, row.EventType, row.Payload))
	assert.Equal(t, []captured{{orderID: 9, message: order.StatusUpdatedMessage(order.StatusConfirmed)}}, notifier.calls)

	assert.Error(t, p.Publish(ctx, order.EventOrderPlaced, "{not json"))
	assert.NoError(t, p.Publish(ctx, "other", `{"event_name":"other","aggregate_id":1}`))
	assert.Len(t, notifier.calls, 1)
}

// placedOrder 已持久化（id 为 9）的待确认订单
func placedOrder(t *testing.T) *order.Order {
	t.Helper()
	npr := func(s string) shared.Money { return shared.MustParseMoney(s, shared.DefaultCurrency) }

	item, err := order.NewLineItem(1, "Momo", 1, npr("100"), "")
	require.NoError(t, err)
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:            9,
		OrderNumber:   "ORD-20260314-009",
		CustomerID:    11,
		RestaurantID:  5,
		Status:        order.StatusPending,
		Subtotal:      npr("100"),
		Tax:           npr("13"),
		DeliveryFee:   npr("40"),
		Discount:      npr("0"),
		PaymentMethod: order.PaymentCashOnDelivery,
		Items:         []order.OrderItem{item},
		CreatedAt:     time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Version:       1,
	})
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(ctx context.Context, orderID int64, message string) error {
	return m.Called(ctx, orderID, message).Error(0)
}

func TestEventHandler_PropagatesNotifierFailure(t *testing.T) {
	notifier := &mockNotifier{}
	notifier.On("Notify", mock.Anything, int64(9), order.MessageOrderPlaced).
		Return(errors.New("redis down")).Once()

	h := NewEventHandler(notifier)
	err := h.Handle(context.Background(), order.NewOrderPlacedEvent(placedOrder(t)))

	assert.EqualError(t, err, "redis down")
	notifier.AssertExpectations(t)
}

func TestOutboxPublisher_SkipsPayloadWithoutOrder(t *testing.T) {
	notifier := &mockNotifier{}
	p := NewOutboxPublisher(notifier)

	require.NoError(t, p.Publish(context.Background(), order.EventOrderPlaced,
		`{"event_name":"order.placed","aggregate_id":0,"message":"Order placed successfully"}`))
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}
