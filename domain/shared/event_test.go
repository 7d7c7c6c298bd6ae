package shared

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingEvent struct {
	name string
	id   int64
	at   time.Time
}

func (e pingEvent) EventName() string     { return e.name }
func (e pingEvent) OccurredOn() time.Time { return e.at }
func (e pingEvent) GetAggregateID() int64 { return e.id }

type recordingHandler struct {
	name string
	err  error
	seen []string
}

func (h *recordingHandler) Handle(_ context.Context, event DomainEvent) error {
	h.seen = append(h.seen, event.EventName())
	return h.err
}

func (h *recordingHandler) Name() string { return h.name }

func TestEventBus_DeliversToNamedAndWildcard(t *testing.T) {
	bus := NewEventBus()
	placed := &recordingHandler{name: "placed"}
	all := &recordingHandler{name: "all"}
	require.NoError(t, bus.Subscribe("order.placed", placed))
	require.NoError(t, bus.Subscribe(WildcardEvent, all))

	now := time.Now()
	require.NoError(t, bus.Publish(context.Background(), pingEvent{"order.placed", 1, now}))
	require.NoError(t, bus.Publish(context.Background(), pingEvent{"order.status_changed", 1, now}))

	assert.Equal(t, []string{"order.placed"}, placed.seen)
	assert.Equal(t, []string{"order.placed", "order.status_changed"}, all.seen)
}

func TestEventBus_HandlerFailureDoesNotStopOthers(t *testing.T) {
	errRedisDown := errors.New("redis down")
	bus := NewEventBus()
	failing := &recordingHandler{name: "redis", err: errRedisDown}
	logging := &recordingHandler{name: "log"}
	require.NoError(t, bus.Subscribe(WildcardEvent, failing))
	require.NoError(t, bus.Subscribe(WildcardEvent, logging))

	err := bus.Publish(context.Background(), pingEvent{"order.placed", 9, time.Now()})
	require.Error(t, err)
	assert.ErrorIs(t, err, errRedisDown)
	assert.Len(t, logging.seen, 1)
}

func TestEventBus_Rejects(t *testing.T) {
	bus := NewEventBus()
	h := &recordingHandler{name: "dup"}
	require.NoError(t, bus.Subscribe("order.placed", h))
	assert.Error(t, bus.Subscribe("order.placed", h))
	assert.Error(t, bus.Subscribe("", h))

	assert.Error(t, bus.Publish(context.Background(), pingEvent{"order.placed", 0, time.Now()}))
	assert.Error(t, bus.Publish(context.Background(), pingEvent{"", 1, time.Now()}))
	assert.Empty(t, h.seen)
}
