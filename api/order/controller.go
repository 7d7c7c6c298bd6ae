/*
Package order - 订单 API 控制器

职责:
1. 接收 HTTP 请求，解析路径、查询和 JSON 参数
2. 从认证中间件取出调用方身份，交给应用服务
3. 使用 response 包统一处理响应和错误

错误处理原则:
1. 参数绑定错误: 使用 response.HandleBadRequest 直接返回 400
2. 业务错误: 使用 response.HandleAppError，由错误码决定状态码
*/
package order

import (
	"context"
	"strconv"

	"fooddash/api/ctxutil"
	"fooddash/api/response"
	orderapp "fooddash/application/order"
	"fooddash/domain/shared"

	"github.com/gin-gonic/gin"
)

// OrderService 控制器依赖的订单用例，由 orderapp.ApplicationService 实现
type OrderService interface {
	CreateOrder(ctx context.Context, actor shared.Actor, req orderapp.CreateOrderRequest) (*orderapp.OrderResponse, error)
	GetOrder(ctx context.Context, actor shared.Actor, orderID int64) (*orderapp.OrderResponse, error)
	UpdateOrderStatus(ctx context.Context, actor shared.Actor, orderID int64, req orderapp.UpdateOrderStatusRequest) (*orderapp.OrderResponse, error)
	AssignDeliveryPartner(ctx context.Context, actor shared.Actor, orderID int64, req orderapp.AssignDeliveryRequest) (*orderapp.OrderResponse, error)
	ListOrdersByCustomer(ctx context.Context, actor shared.Actor, customerID int64, query orderapp.ListOrdersQuery) (*orderapp.OrderListResponse, error)
	ListOrdersByRestaurant(ctx context.Context, actor shared.Actor, restaurantID int64, query orderapp.ListOrdersQuery) (*orderapp.OrderListResponse, error)
}

// Controller 订单控制器
type Controller struct {
	orderService OrderService
}

// NewController 创建订单控制器
func NewController(orderService OrderService) *Controller {
	return &Controller{
		orderService: orderService,
	}
}

// RegisterRoutes 注册订单路由，调用方须已挂载认证中间件
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("", c.CreateOrder)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.PUT("/:id/status", c.UpdateOrderStatus)
		orderGroup.PUT("/:id/assign-delivery", c.AssignDeliveryPartner)
	}
	router.GET("/customers/:id/orders", c.ListCustomerOrders)
	router.GET("/restaurants/:id/orders", c.ListRestaurantOrders)
}

// CreateOrder 下单
// POST /api/v1/orders
func (c *Controller) CreateOrder(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req orderapp.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBadRequest(ctx, err, "invalid request parameters")
		return
	}

	order, err := c.orderService.CreateOrder(ctxutil.WithRequestID(ctx), actor, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, order, "Order placed successfully")
}

// GetOrder 订单详情（含明细与状态历史）
// GET /api/v1/orders/:id
//
// 错误处理链路:
//
//	Repository 返回: order.ErrOrderNotFound
//	     ↓
//	Service 直接传递
//	     ↓
//	HandleAppError: FromDomainError -> ORDER_NOT_FOUND -> 404
func (c *Controller) GetOrder(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	orderID, ok := pathID(ctx, "order ID")
	if !ok {
		return
	}

	order, err := c.orderService.GetOrder(ctxutil.WithRequestID(ctx), actor, orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order retrieved successfully")
}

// UpdateOrderStatus 推进订单状态
// PUT /api/v1/orders/:id/status
func (c *Controller) UpdateOrderStatus(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	orderID, ok := pathID(ctx, "order ID")
	if !ok {
		return
	}

	var req orderapp.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBadRequest(ctx, err, "invalid request parameters")
		return
	}

	order, err := c.orderService.UpdateOrderStatus(ctxutil.WithRequestID(ctx), actor, orderID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order status updated successfully")
}

// AssignDeliveryPartner 指派配送员
// PUT /api/v1/orders/:id/assign-delivery
func (c *Controller) AssignDeliveryPartner(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	orderID, ok := pathID(ctx, "order ID")
	if !ok {
		return
	}

	var req orderapp.AssignDeliveryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBadRequest(ctx, err, "invalid request parameters")
		return
	}

	order, err := c.orderService.AssignDeliveryPartner(ctxutil.WithRequestID(ctx), actor, orderID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "Delivery partner assigned")
}

// ListCustomerOrders 顾客订单列表
// GET /api/v1/customers/:id/orders?status=&page=&page_size=
func (c *Controller) ListCustomerOrders(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	customerID, ok := pathID(ctx, "customer ID")
	if !ok {
		return
	}
	query, ok := bindListQuery(ctx)
	if !ok {
		return
	}

	list, err := c.orderService.ListOrdersByCustomer(ctxutil.WithRequestID(ctx), actor, customerID, query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, list.Orders, pagination(list), "customer orders retrieved successfully")
}

// ListRestaurantOrders 餐厅订单列表
// GET /api/v1/restaurants/:id/orders?status=&page=&page_size=
func (c *Controller) ListRestaurantOrders(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	restaurantID, ok := pathID(ctx, "restaurant ID")
	if !ok {
		return
	}
	query, ok := bindListQuery(ctx)
	if !ok {
		return
	}

	list, err := c.orderService.ListOrdersByRestaurant(ctxutil.WithRequestID(ctx), actor, restaurantID, query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, list.Orders, pagination(list), "restaurant orders retrieved successfully")
}

func requireActor(ctx *gin.Context) (shared.Actor, bool) {
	actor, ok := ctxutil.ActorFrom(ctx)
	if !ok {
		response.HandleUnauthorized(ctx, "authentication required")
	}
	return actor, ok
}

func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.HandleBadRequest(ctx, err, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

func bindListQuery(ctx *gin.Context) (orderapp.ListOrdersQuery, bool) {
	var query orderapp.ListOrdersQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleBadRequest(ctx, err, "invalid query parameters")
		return query, false
	}
	return query, true
}

func pagination(list *orderapp.OrderListResponse) response.Pagination {
	return response.NewPagination(list.Page, list.PageSize, list.Total)
}
