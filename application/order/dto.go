package order

import "time"

// CreateOrderRequest 表示创建订单的入参。
// CustomerID 仅管理员代客下单时填写，顾客本人下单取令牌中的用户 ID。
type CreateOrderRequest struct {
	CustomerID           int64              `json:"customer_id"`
	RestaurantID         int64              `json:"restaurant_id" binding:"required,min=1"`
	Items                []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress      string             `json:"delivery_address" binding:"required"`
	DeliveryInstructions string             `json:"delivery_instructions"`
	PaymentMethod        string             `json:"payment_method"`
	CouponCode           string             `json:"coupon_code"`
}

// OrderItemRequest 表示创建订单时的单个菜品项，价格以菜单为准。
type OrderItemRequest struct {
	MenuItemID          int64  `json:"menu_item_id" binding:"required,min=1"`
	Quantity            int    `json:"quantity" binding:"required,min=1"`
	SpecialInstructions string `json:"special_instructions"`
}

// UpdateOrderStatusRequest 表示更新订单状态入参。
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AssignDeliveryRequest 表示指派配送员入参。
type AssignDeliveryRequest struct {
	DeliveryPartnerID int64 `json:"delivery_partner_id" binding:"required,min=1"`
}

// ListOrdersQuery 列表查询参数。
type ListOrdersQuery struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// OrderResponse 表示订单返回模型。
type OrderResponse struct {
	ID                       int64                   `json:"id"`
	OrderNumber              string                  `json:"order_number"`
	CustomerID               int64                   `json:"customer_id"`
	RestaurantID             int64                   `json:"restaurant_id"`
	DeliveryPartnerID        *int64                  `json:"delivery_partner_id,omitempty"`
	Status                   string                  `json:"status"`
	DeliveryAddress          string                  `json:"delivery_address"`
	DeliveryInstructions     string                  `json:"delivery_instructions,omitempty"`
	Currency                 string                  `json:"currency"`
	Subtotal                 string                  `json:"subtotal"`
	TaxAmount                string                  `json:"tax_amount"`
	DeliveryFee              string                  `json:"delivery_fee"`
	DiscountAmount           string                  `json:"discount_amount"`
	TotalAmount              string                  `json:"total_amount"`
	PaymentMethod            string                  `json:"payment_method"`
	IsPaid                   bool                    `json:"is_paid"`
	CouponCode               string                  `json:"coupon_code,omitempty"`
	EstimatedDeliveryMinutes int                     `json:"estimated_delivery_minutes"`
	Items                    []OrderItemResponse     `json:"items"`
	History                  []StatusHistoryResponse `json:"history,omitempty"`
	CreatedAt                time.Time               `json:"created_at"`
	UpdatedAt                time.Time               `json:"updated_at"`
	ConfirmedAt              *time.Time              `json:"confirmed_at,omitempty"`
	ReadyAt                  *time.Time              `json:"ready_at,omitempty"`
	DeliveredAt              *time.Time              `json:"delivered_at,omitempty"`
	Version                  int                     `json:"version"`
}

// OrderItemResponse 表示订单项返回模型。
type OrderItemResponse struct {
	ID                  int64  `json:"id"`
	MenuItemID          int64  `json:"menu_item_id"`
	Name                string `json:"name"`
	Quantity            int    `json:"quantity"`
	UnitPrice           string `json:"unit_price"`
	TotalPrice          string `json:"total_price"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

// StatusHistoryResponse 表示一次状态变更。
type StatusHistoryResponse struct {
	From      string    `json:"from,omitempty"`
	To        string    `json:"to"`
	ActorID   int64     `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
	ChangedAt time.Time `json:"changed_at"`
}

// OrderListResponse 分页列表。
type OrderListResponse struct {
	Orders     []*OrderResponse `json:"orders"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}
