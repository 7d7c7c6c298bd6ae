package response

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fooddash/domain/order"
	"fooddash/domain/shared"
	"fooddash/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/orders/:id", func(c *gin.Context) {
		c.Set(RequestIDKey, "req-1")
		handler(c)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/7", nil))

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(logger.Replace(zap.New(core)))
	return logs
}

func TestHandleAppError_DomainError(t *testing.T) {
	logs := observe(t)

	w, body := serve(t, func(c *gin.Context) {
		HandleAppError(c, order.NewInvalidTransitionError(order.StatusDelivered, order.StatusPending))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "INVALID_TRANSITION", body.Error)
	assert.Equal(t, "cannot transition from DELIVERED to PENDING", body.Message)
	assert.Equal(t, "req-1", body.RequestID)

	entries := logs.FilterMessage(body.Message).All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "order", fields["entity"])
	assert.Equal(t, "status", fields["field"])
}

func TestHandleAppError_InternalHidesDetails(t *testing.T) {
	logs := observe(t)

	w, body := serve(t, func(c *gin.Context) {
		HandleAppError(c, errors.New("dial tcp 10.0.0.5:3306: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", body.Error)
	assert.Equal(t, "internal server error", body.Message)

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "connection refused")
}

func TestHandleAppError_TransientKeepsMessage(t *testing.T) {
	observe(t)

	w, body := serve(t, func(c *gin.Context) {
		HandleAppError(c, shared.NewTransientError("order", context.DeadlineExceeded))
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "TRANSIENT_FAILURE", body.Error)
	assert.Contains(t, body.Message, "please retry")
}

func TestHandleBadRequest(t *testing.T) {
	observe(t)

	w, body := serve(t, func(c *gin.Context) {
		HandleBadRequest(c, errors.New("json: cannot unmarshal"), "invalid request parameters")
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", body.Error)
	assert.Equal(t, "invalid request parameters", body.Message)
}

func TestHandleRouteNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.NoRoute(HandleRouteNotFound)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/menus", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body.Error)
	assert.Equal(t, "route GET /api/v1/menus not found", body.Message)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 45)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)

	last := NewPagination(3, 20, 45)
	assert.False(t, last.HasNext)
}
