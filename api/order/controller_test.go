package order

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fooddash/api/middleware"
	"fooddash/api/response"
	orderapp "fooddash/application/order"
	"fooddash/config"
	domainorder "fooddash/domain/order"
	"fooddash/domain/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var authConfig = &config.AuthConfig{JWTSecret: "test-secret", Issuer: "fooddash"}

// fakeService 记录调用方并返回预设结果
type fakeService struct {
	actor     shared.Actor
	orderID   int64
	create    orderapp.CreateOrderRequest
	status    orderapp.UpdateOrderStatusRequest
	assign    orderapp.AssignDeliveryRequest
	listQuery orderapp.ListOrdersQuery
	resp      *orderapp.OrderResponse
	list      *orderapp.OrderListResponse
	err       error
}

func (f *fakeService) CreateOrder(_ context.Context, actor shared.Actor, req orderapp.CreateOrderRequest) (*orderapp.OrderResponse, error) {
	f.actor, f.create = actor, req
	return f.resp, f.err
}

func (f *fakeService) GetOrder(_ context.Context, actor shared.Actor, orderID int64) (*orderapp.OrderResponse, error) {
	f.actor, f.orderID = actor, orderID
	return f.resp, f.err
}

func (f *fakeService) UpdateOrderStatus(_ context.Context, actor shared.Actor, orderID int64, req orderapp.UpdateOrderStatusRequest) (*orderapp.OrderResponse, error) {
	f.actor, f.orderID, f.status = actor, orderID, req
	return f.resp, f.err
}

func (f *fakeService) AssignDeliveryPartner(_ context.Context, actor shared.Actor, orderID int64, req orderapp.AssignDeliveryRequest) (*orderapp.OrderResponse, error) {
	f.actor, f.orderID, f.assign = actor, orderID, req
	return f.resp, f.err
}

func (f *fakeService) ListOrdersByCustomer(_ context.Context, actor shared.Actor, customerID int64, query orderapp.ListOrdersQuery) (*orderapp.OrderListResponse, error) {
	f.actor, f.orderID, f.listQuery = actor, customerID, query
	return f.list, f.err
}

func (f *fakeService) ListOrdersByRestaurant(_ context.Context, actor shared.Actor, restaurantID int64, query orderapp.ListOrdersQuery) (*orderapp.OrderListResponse, error) {
	f.actor, f.orderID, f.listQuery = actor, restaurantID, query
	return f.list, f.err
}

func newTestEngine(svc OrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	group := engine.Group("/api/v1", middleware.RequestIDMiddleware(), middleware.ActorMiddleware(authConfig))
	NewController(svc).RegisterRoutes(group)
	return engine
}

func bearer(t *testing.T, actor shared.Actor) string {
	t.Helper()
	token, err := middleware.IssueToken(authConfig, actor, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func do(t *testing.T, engine *gin.Engine, method, path, auth string, body interface{}) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

var customer = shared.Actor{UserID: 11, Role: shared.RoleCustomer}

func TestCreateOrder_Created(t *testing.T) {
	svc := &fakeService{resp: &orderapp.OrderResponse{ID: 1, OrderNumber: "ORD-20260314-001", Status: "PENDING", TotalAmount: "322.50"}}
	engine := newTestEngine(svc)

	w, resp := do(t, engine, http.MethodPost, "/api/v1/orders", bearer(t, customer), map[string]interface{}{
		"restaurant_id":    5,
		"delivery_address": "Thamel, Kathmandu",
		"coupon_code":      "SAVE10",
		"items":            []map[string]interface{}{{"menu_item_id": 1, "quantity": 2}},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Order placed successfully", resp.Message)
	assert.NotEmpty(t, resp.RequestID)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ORD-20260314-001", data["order_number"])
	assert.Equal(t, "322.50", data["total_amount"])

	assert.Equal(t, customer, svc.actor)
	assert.Equal(t, int64(5), svc.create.RestaurantID)
	assert.Equal(t, "SAVE10", svc.create.CouponCode)
	require.Len(t, svc.create.Items, 1)
	assert.Equal(t, 2, svc.create.Items[0].Quantity)
}

func TestCreateOrder_BindingErrors(t *testing.T) {
	engine := newTestEngine(&fakeService{})

	w, resp := do(t, engine, http.MethodPost, "/api/v1/orders", bearer(t, customer), map[string]interface{}{
		"restaurant_id":    5,
		"delivery_address": "Thamel",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", resp.Error)

	w, _ = do(t, engine, http.MethodPost, "/api/v1/orders", bearer(t, customer), map[string]interface{}{
		"restaurant_id":    5,
		"delivery_address": "Thamel",
		"items":            []map[string]interface{}{{"menu_item_id": 1, "quantity": 0}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoutes_RequireBearerToken(t *testing.T) {
	engine := newTestEngine(&fakeService{})

	w, resp := do(t, engine, http.MethodGet, "/api/v1/orders/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", resp.Error)

	w, _ = do(t, engine, http.MethodGet, "/api/v1/orders/1", "Bearer not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other := &config.AuthConfig{JWTSecret: "other-secret", Issuer: "fooddash"}
	token, err := middleware.IssueToken(other, customer, time.Hour)
	require.NoError(t, err)
	w, _ = do(t, engine, http.MethodGet, "/api/v1/orders/1", "Bearer "+token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDomainErrorsMapToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", domainorder.NewOrderNotFoundError(7), http.StatusNotFound, "ORDER_NOT_FOUND"},
		{"access denied", domainorder.NewAccessDeniedError("not yours"), http.StatusForbidden, "FORBIDDEN"},
		{"unauthorized transition", domainorder.NewUnauthorizedTransitionError(customer, 7), http.StatusForbidden, "FORBIDDEN"},
		{"invalid transition", domainorder.NewInvalidTransitionError(domainorder.StatusPending, domainorder.StatusDelivered), http.StatusBadRequest, "INVALID_TRANSITION"},
		{"conflict", domainorder.NewConcurrentModificationError(7), http.StatusConflict, "CONCURRENT_MODIFICATION"},
		{"transient", shared.NewTransientError("order", context.DeadlineExceeded), http.StatusServiceUnavailable, "TRANSIENT_FAILURE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(&fakeService{err: tt.err})
			w, resp := do(t, engine, http.MethodPut, "/api/v1/orders/7/status", bearer(t, customer), map[string]string{"status": "DELIVERED"})
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, resp.Error)
			assert.False(t, resp.Success)
		})
	}
}

func TestUpdateStatusAndAssign(t *testing.T) {
	svc := &fakeService{resp: &orderapp.OrderResponse{ID: 7, Status: "CONFIRMED"}}
	engine := newTestEngine(svc)
	owner := shared.Actor{UserID: 21, Role: shared.RoleRestaurantOwner}

	w, resp := do(t, engine, http.MethodPut, "/api/v1/orders/7/status", bearer(t, owner), map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(7), svc.orderID)
	assert.Equal(t, "confirmed", svc.status.Status)
	assert.Equal(t, owner, svc.actor)

	w, resp = do(t, engine, http.MethodPut, "/api/v1/orders/7/assign-delivery", bearer(t, owner), map[string]int64{"delivery_partner_id": 31})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Delivery partner assigned", resp.Message)
	assert.Equal(t, int64(31), svc.assign.DeliveryPartnerID)

	w, _ = do(t, engine, http.MethodPut, "/api/v1/orders/abc/status", bearer(t, owner), map[string]string{"status": "CONFIRMED"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, engine, http.MethodPut, "/api/v1/orders/7/assign-delivery", bearer(t, owner), map[string]int64{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOrders_Paginated(t *testing.T) {
	svc := &fakeService{list: &orderapp.OrderListResponse{
		Orders:     []*orderapp.OrderResponse{{ID: 3}, {ID: 2}},
		Total:      3,
		Page:       1,
		PageSize:   2,
		TotalPages: 2,
	}}
	engine := newTestEngine(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/11/orders?status=PENDING&page=1&page_size=2", nil)
	req.Header.Set("Authorization", bearer(t, customer))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp response.PaginatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Pagination.TotalItems)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNext)
	assert.Len(t, resp.Data, 2)

	assert.Equal(t, int64(11), svc.orderID)
	assert.Equal(t, orderapp.ListOrdersQuery{Status: "PENDING", Page: 1, PageSize: 2}, svc.listQuery)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/5/orders", nil)
	req.Header.Set("Authorization", bearer(t, shared.Actor{UserID: 21, Role: shared.RoleRestaurantOwner}))
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(5), svc.orderID)
}
