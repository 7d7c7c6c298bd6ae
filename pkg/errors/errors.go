package errors

import (
	"errors"
	"fmt"
	"net/http"

	"fooddash/domain/coupon"
	"fooddash/domain/customer"
	"fooddash/domain/delivery"
	"fooddash/domain/order"
	"fooddash/domain/restaurant"
	"fooddash/domain/shared"
)

// ErrorCode 错误码
type ErrorCode string

const (
	// 通用错误码
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeTooManyRequest   ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation       ErrorCode = "VALIDATION_ERROR"
	CodeTransientFailure ErrorCode = "TRANSIENT_FAILURE"

	// 业务错误码
	CodeOrderNotFound        ErrorCode = "ORDER_NOT_FOUND"
	CodeCustomerNotFound     ErrorCode = "CUSTOMER_NOT_FOUND"
	CodeRestaurantNotFound   ErrorCode = "RESTAURANT_NOT_FOUND"
	CodeMenuItemNotFound     ErrorCode = "MENU_ITEM_NOT_FOUND"
	CodePartnerNotFound      ErrorCode = "DELIVERY_PARTNER_NOT_FOUND"
	CodeRestaurantClosed     ErrorCode = "RESTAURANT_CLOSED"
	CodeMenuItemUnavailable  ErrorCode = "MENU_ITEM_UNAVAILABLE"
	CodeBelowMinimumOrder    ErrorCode = "BELOW_MINIMUM_ORDER"
	CodePartnerUnavailable   ErrorCode = "DELIVERY_PARTNER_UNAVAILABLE"
	CodeInvalidTransition    ErrorCode = "INVALID_TRANSITION"
	CodeConcurrentModify     ErrorCode = "CONCURRENT_MODIFICATION"
	CodeDuplicateOrderNumber ErrorCode = "DUPLICATE_ORDER_NUMBER"
)

// AppError 应用错误
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode 返回对应的HTTP状态码
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation, CodeRestaurantClosed, CodeMenuItemUnavailable,
		CodeBelowMinimumOrder, CodePartnerUnavailable, CodeInvalidTransition:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound, CodeOrderNotFound, CodeCustomerNotFound, CodeRestaurantNotFound,
		CodeMenuItemNotFound, CodePartnerNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeConcurrentModify, CodeDuplicateOrderNumber:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeTransientFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// New 创建新错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// 常用错误构造函数

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

// Is 检查是否为特定错误码
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// specificCodes 子领域哨兵到业务错误码，按顺序匹配
var specificCodes = []struct {
	sentinel error
	code     ErrorCode
}{
	{order.ErrOrderNotFound, CodeOrderNotFound},
	{customer.ErrCustomerNotFound, CodeCustomerNotFound},
	{restaurant.ErrRestaurantNotFound, CodeRestaurantNotFound},
	{restaurant.ErrMenuItemNotFound, CodeMenuItemNotFound},
	{delivery.ErrPartnerNotFound, CodePartnerNotFound},
	{restaurant.ErrRestaurantClosed, CodeRestaurantClosed},
	{restaurant.ErrMenuItemUnavailable, CodeMenuItemUnavailable},
	{order.ErrBelowMinimumOrder, CodeBelowMinimumOrder},
	{delivery.ErrPartnerUnavailable, CodePartnerUnavailable},
	{order.ErrInvalidTransition, CodeInvalidTransition},
	{order.ErrDuplicateOrderNumber, CodeDuplicateOrderNumber},
	{order.ErrConcurrentModification, CodeConcurrentModify},
	{customer.ErrConcurrentModification, CodeConcurrentModify},
	{delivery.ErrConcurrentModification, CodeConcurrentModify},
	{coupon.ErrConcurrentModification, CodeConcurrentModify},
}

// kindCodes 分类哨兵的兜底错误码
var kindCodes = map[error]ErrorCode{
	shared.ErrTransient:    CodeTransientFailure,
	shared.ErrNotFound:     CodeNotFound,
	shared.ErrInvalidInput: CodeValidation,
	shared.ErrForbidden:    CodeForbidden,
	shared.ErrUnauthorized: CodeUnauthorized,
	shared.ErrConflict:     CodeConflict,
}

// FromDomainError 将领域错误映射为应用错误
// 暂时性失败优先，其次子领域哨兵，最后按分类兜底
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	msg := err.Error()
	if shared.IsTransient(err) {
		return Wrap(err, CodeTransientFailure, msg)
	}
	for _, s := range specificCodes {
		if errors.Is(err, s.sentinel) {
			return Wrap(err, s.code, msg)
		}
	}
	if code, ok := kindCodes[shared.KindOf(err)]; ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, CodeInternal, msg)
}
