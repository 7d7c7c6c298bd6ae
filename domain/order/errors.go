/*
Package order - 订单错误

每个构造函数返回 shared.DomainError：分类哨兵决定 HTTP 状态，
订单哨兵决定具体错误码，retry 包据此判断是否值得重试。
*/
package order

import (
	"errors"
	"strconv"

	"fooddash/domain/shared"
)

var (
	// ErrOrderNotFound 订单未找到
	ErrOrderNotFound = errors.New("order not found")

	// ErrConcurrentModification 并发修改冲突（乐观锁），调用方应重试
	ErrConcurrentModification = errors.New("order was modified by another transaction, please retry")

	// ErrInvalidTransition 状态图中不存在该边，或当前角色不允许走该边
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrUnauthorizedTransition 调用方与订单没有所需的关系
	ErrUnauthorizedTransition = errors.New("actor is not allowed to act on this order")

	// ErrAccessDenied 无权查看订单或订单列表
	ErrAccessDenied = errors.New("access to order denied")

	// ErrEmptyOrderItems 订单项为空
	ErrEmptyOrderItems = errors.New("order must have at least one item")

	// ErrInvalidQuantity 无效的订单项数量
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrBelowMinimumOrder 小计低于餐厅起送金额
	ErrBelowMinimumOrder = errors.New("order subtotal is below the restaurant minimum")

	// ErrDuplicateOrderNumber 订单号唯一约束冲突（同日并发下单）
	ErrDuplicateOrderNumber = errors.New("order number already exists")

	// ErrPartnerAlreadyAssigned 订单已有配送员
	ErrPartnerAlreadyAssigned = errors.New("order already has a delivery partner")

	// ErrInvalidOrder 其他订单字段校验失败
	ErrInvalidOrder = errors.New("invalid order")
)

// NewOrderNotFoundError errors.Is 对 ErrOrderNotFound 和 shared.ErrNotFound 都成立
func NewOrderNotFoundError(orderID int64) error {
	return newOrderError(shared.ErrNotFound, ErrOrderNotFound, "", "order not found: "+idString(orderID))
}

// NewConcurrentModificationError 乐观锁版本不一致
func NewConcurrentModificationError(orderID int64) error {
	return newOrderError(shared.ErrConflict, ErrConcurrentModification, "",
		"order "+idString(orderID)+" was modified by another transaction, please retry")
}

// NewInvalidTransitionError 创建无效状态转换错误
func NewInvalidTransitionError(from, to Status) error {
	return newOrderError(shared.ErrInvalidInput, ErrInvalidTransition, "status",
		"cannot transition from "+string(from)+" to "+string(to))
}

// NewUnauthorizedTransitionError 调用方角色与订单关系不满足
func NewUnauthorizedTransitionError(actor shared.Actor, orderID int64) error {
	return newOrderError(shared.ErrForbidden, ErrUnauthorizedTransition, "",
		"user "+idString(actor.UserID)+" ("+string(actor.Role)+") cannot update order "+idString(orderID))
}

// NewAccessDeniedError 创建无权访问错误
func NewAccessDeniedError(reason string) error {
	return newOrderError(shared.ErrForbidden, ErrAccessDenied, "", reason)
}

func NewEmptyOrderItemsError() error {
	return newOrderError(shared.ErrInvalidInput, ErrEmptyOrderItems, "items", "order must have at least one item")
}

// NewInvalidQuantityError 创建订单项数量错误
func NewInvalidQuantityError(menuItemID int64, quantity int) error {
	return newOrderError(shared.ErrInvalidInput, ErrInvalidQuantity, "quantity",
		"quantity for menu item "+idString(menuItemID)+" must be at least 1, got "+strconv.Itoa(quantity))
}

// NewBelowMinimumOrderError 小计低于起送金额
func NewBelowMinimumOrderError(subtotal, minimum shared.Money) error {
	return newOrderError(shared.ErrInvalidInput, ErrBelowMinimumOrder, "items",
		"order subtotal "+subtotal.String()+" is below the minimum order amount "+minimum.String())
}

// NewDuplicateOrderNumberError 订单号已存在
func NewDuplicateOrderNumberError(orderNumber string) error {
	return newOrderError(shared.ErrConflict, ErrDuplicateOrderNumber, "order_number",
		"order number "+orderNumber+" already exists")
}

// NewPartnerAlreadyAssignedError 重复指派配送员
func NewPartnerAlreadyAssignedError(orderID, partnerID int64) error {
	return newOrderError(shared.ErrInvalidInput, ErrPartnerAlreadyAssigned, "delivery_partner_id",
		"order "+idString(orderID)+" is already assigned to delivery partner "+idString(partnerID))
}

// NewInvalidOrderError 没有专门哨兵的字段错误
func NewInvalidOrderError(field, reason string) error {
	return newOrderError(shared.ErrInvalidInput, ErrInvalidOrder, field, reason)
}

func newOrderError(kind, sentinel error, field, message string) error {
	return shared.NewKindError(kind, sentinel, "order", field, message)
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
