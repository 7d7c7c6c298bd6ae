package shared

import "time"

// Role 调用方角色
type Role string

const (
	RoleAdmin           Role = "ADMIN"
	RoleRestaurantOwner Role = "RESTAURANT_OWNER"
	RoleDeliveryPartner Role = "DELIVERY_PARTNER"
	RoleCustomer        Role = "CUSTOMER"
)

// IsValid 判断角色是否为已知角色
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleRestaurantOwner, RoleDeliveryPartner, RoleCustomer:
		return true
	}
	return false
}

// Actor 发起操作的用户（身份由 API 层从令牌中解析）
type Actor struct {
	UserID int64
	Role   Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Clock 时间来源，便于测试注入固定时间
type Clock func() time.Time

// SystemClock 返回 UTC 当前时间
func SystemClock() time.Time {
	return time.Now().UTC()
}
