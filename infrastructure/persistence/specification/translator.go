// Package specification 把订单查询规格翻译成 GORM scope
package specification

import (
	"fmt"

	"fooddash/domain/order"
	"fooddash/domain/shared"

	"gorm.io/gorm"
)

// Scope 可直接传给 db.Scopes
type Scope func(*gorm.DB) *gorm.DB

func identity(db *gorm.DB) *gorm.DB { return db }

// OrderScope 翻译 orders 表上的规格
// 无法翻译的规格返回错误：静默丢弃条件会把按客户的列表放大成全表
func OrderScope(spec shared.Specification) (Scope, error) {
	switch s := spec.(type) {
	case nil:
		return identity, nil

	case shared.AndSpecification:
		left, err := OrderScope(s.Left)
		if err != nil {
			return nil, err
		}
		right, err := OrderScope(s.Right)
		if err != nil {
			return nil, err
		}
		return func(db *gorm.DB) *gorm.DB { return right(left(db)) }, nil

	case shared.NotSpecification:
		inner, err := OrderScope(s.Spec)
		if err != nil {
			return nil, err
		}
		// NOT (...) 分组需要一个干净的会话承载内层条件
		return func(db *gorm.DB) *gorm.DB {
			return db.Not(inner(db.Session(&gorm.Session{NewDB: true})))
		}, nil

	case order.ByCustomerSpecification:
		return where("customer_id = ?", s.CustomerID), nil
	case order.ByRestaurantSpecification:
		return where("restaurant_id = ?", s.RestaurantID), nil
	case order.ByStatusSpecification:
		return where("status = ?", string(s.Status)), nil

	case order.ByDateRangeSpecification:
		return func(db *gorm.DB) *gorm.DB {
			if !s.Start.IsZero() {
				db = db.Where("created_at >= ?", s.Start)
			}
			if !s.End.IsZero() {
				db = db.Where("created_at < ?", s.End)
			}
			return db
		}, nil
	}

	return nil, fmt.Errorf("specification %T has no SQL translation", spec)
}

func where(query string, arg interface{}) Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where(query, arg) }
}
