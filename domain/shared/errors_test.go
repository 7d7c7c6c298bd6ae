package shared

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCouponExpired = errors.New("coupon expired")

func TestNewKindError_MatchesKindAndReason(t *testing.T) {
	err := NewKindError(ErrInvalidInput, errCouponExpired, "coupon", "code", "coupon SAVE10 has expired")

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, errCouponExpired)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "coupon SAVE10 has expired", err.Error())

	wrapped := fmt.Errorf("place order: %w", err)
	entity, field, ok := DetailsOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, "coupon", entity)
	assert.Equal(t, "code", field)
	assert.Equal(t, ErrInvalidInput, KindOf(wrapped))
}

func TestNewKindError_CapturesStack(t *testing.T) {
	err := NewKindError(ErrConflict, nil, "order", "", "conflict")

	var stacker Stacker
	require.ErrorAs(t, err, &stacker)
	stack := stacker.Stack()
	require.NotEmpty(t, stack)
	assert.Contains(t, stack[0], "TestNewKindError_CapturesStack")
	assert.LessOrEqual(t, len(stack), 10)
}

func TestNewTransientError(t *testing.T) {
	err := NewTransientError("order", context.DeadlineExceeded)

	assert.True(t, IsTransient(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, ErrTransient, KindOf(err))
	assert.False(t, IsTransient(NewValidationError("money", "amount", "bad amount")))
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Nil(t, KindOf(errors.New("boom")))
	assert.Nil(t, KindOf(nil))

	_, _, ok := DetailsOf(errors.New("boom"))
	assert.False(t, ok)
}
