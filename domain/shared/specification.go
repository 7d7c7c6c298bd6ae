package shared

import (
	"context"
)

// Specification 查询规格
// 内存仓储直接调用 IsSatisfiedBy 过滤；GORM 仓储通过 specification.OrderScope 转成 WHERE 条件
type Specification interface {
	// IsSatisfiedBy 判断实体是否满足规格，entity 需断言为具体领域类型
	IsSatisfiedBy(ctx context.Context, entity interface{}) bool
}

// AndSpecification 逻辑与
type AndSpecification struct {
	Left  Specification
	Right Specification
}

func (spec AndSpecification) IsSatisfiedBy(ctx context.Context, entity interface{}) bool {
	return spec.Left.IsSatisfiedBy(ctx, entity) && spec.Right.IsSatisfiedBy(ctx, entity)
}

// And 组合多个规格，nil 规格会被忽略
func And(specs ...Specification) Specification {
	var result Specification
	for _, s := range specs {
		if s == nil {
			continue
		}
		if result == nil {
			result = s
			continue
		}
		result = AndSpecification{Left: result, Right: s}
	}
	return result
}

// NotSpecification 逻辑非
type NotSpecification struct {
	Spec Specification
}

func (spec NotSpecification) IsSatisfiedBy(ctx context.Context, entity interface{}) bool {
	return !spec.Spec.IsSatisfiedBy(ctx, entity)
}

func Not(inner Specification) Specification {
	return NotSpecification{Spec: inner}
}
