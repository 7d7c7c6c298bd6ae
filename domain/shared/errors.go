/*
Package shared - 领域层共享错误定义

五类错误各有一个分类哨兵：未找到、校验失败、无权限、冲突、暂时性失败。
子领域再定义自己的原因哨兵（如 order.ErrInvalidTransition），
DomainError 同时携带两者，errors.Is 对任一个都成立；
pkg/errors 先按原因哨兵给出具体错误码，再按分类兜底。

堆栈在错误创建时捕获，打印日志时才格式化。
领域错误不包含 HTTP 状态码等传输层概念。
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrNotFound 资源未找到
	ErrNotFound = errors.New("not found")

	// ErrConflict 并发修改、唯一约束冲突、优惠券用尽
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput 参数校验失败或当前状态不允许该操作
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized 未认证
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden 已认证但与订单无关或角色不允许
	ErrForbidden = errors.New("forbidden")

	// ErrTransient 超时、死锁、锁等待，调用方可自行重试
	ErrTransient = errors.New("transient failure")
)

var kinds = []error{ErrTransient, ErrNotFound, ErrInvalidInput, ErrForbidden, ErrUnauthorized, ErrConflict}

// DomainError 携带分类、原因、业务上下文和发生点堆栈
type DomainError struct {
	// Err 分类哨兵
	Err error

	// Entity 出错的实体，如 "order"、"coupon"
	Entity string

	// Field 校验失败的字段，可为空
	Field string

	Message string

	// Cause 子领域原因哨兵或底层错误（如数据库超时）
	Cause error

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap 同时暴露分类哨兵和原因
func (e *DomainError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// Stack 按需格式化堆栈
func (e *DomainError) Stack() []string {
	return formatStack(e.stack)
}

// Stacker 可提供堆栈的错误，API 层据此打印 5xx 日志
type Stacker interface {
	Stack() []string
}

// NewKindError 子领域错误的统一构造：kind 为分类哨兵，reason 为子领域哨兵
func NewKindError(kind, reason error, entity, field, message string) error {
	return &DomainError{
		Err:     kind,
		Entity:  entity,
		Field:   field,
		Message: message,
		Cause:   reason,
		stack:   captureStack(3),
	}
}

// NewValidationError 没有专门原因哨兵的校验失败（金额格式、币种不一致）
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   captureStack(3),
	}
}

// NewTransientError 保留底层原因，便于日志排查
func NewTransientError(entity string, cause error) error {
	return &DomainError{
		Err:     ErrTransient,
		Entity:  entity,
		Message: entity + " operation timed out or hit a lock conflict, please retry",
		Cause:   cause,
		stack:   captureStack(3),
	}
}

func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// KindOf 返回错误所属的分类哨兵，非领域错误返回 nil
// 暂时性失败优先：一个超时可能同时包着别的分类
func KindOf(err error) error {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// DetailsOf 取出领域错误的实体和字段，用于结构化日志
func DetailsOf(err error) (entity, field string, ok bool) {
	var de *DomainError
	if !errors.As(err, &de) {
		return "", "", false
	}
	return de.Entity, de.Field, true
}

func captureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// formatStack 过滤 runtime 帧，最多 10 帧
func formatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) >= 10 {
			break
		}
	}
	return result
}
