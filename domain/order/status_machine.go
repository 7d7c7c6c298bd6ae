package order

import (
	"fooddash/domain/customer"
	"fooddash/domain/delivery"
	"fooddash/domain/shared"

	"github.com/shopspring/decimal"
)

// lifecycle 订单状态图，终态没有出边
var lifecycle = map[Status][]Status{
	StatusPending:        {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusReadyForPickup},
	StatusReadyForPickup: {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
}

// roleTransitions 非管理员角色各自可走的边；管理员可走 lifecycle 中任意一条边
var roleTransitions = map[shared.Role]map[Status][]Status{
	shared.RoleRestaurantOwner: {
		StatusPending:   {StatusConfirmed, StatusRejected},
		StatusConfirmed: {StatusPreparing},
		StatusPreparing: {StatusReadyForPickup},
	},
	shared.RoleDeliveryPartner: {
		StatusReadyForPickup: {StatusOutForDelivery},
		StatusOutForDelivery: {StatusDelivered},
	},
	shared.RoleCustomer: {
		StatusPending: {StatusCancelled},
	},
}

// DefaultPartnerShare 配送员获得配送费的比例
var DefaultPartnerShare = decimal.NewFromFloat(0.8)

// DefaultLoyaltyPointUnit 每消费多少金额获得 1 积分
var DefaultLoyaltyPointUnit = decimal.NewFromInt(100)

// StatusMachineConfig 送达结算参数
// PartnerShare 未设置（Valid=false）时取默认值；显式配置的 0 表示配送员不分成
type StatusMachineConfig struct {
	PartnerShare     decimal.NullDecimal
	LoyaltyPointUnit decimal.Decimal
}

// StatusMachine 订单状态机：角色权限、状态图校验、时间戳与送达结算
type StatusMachine struct {
	partnerShare     decimal.Decimal
	loyaltyPointUnit decimal.Decimal
	now              shared.Clock
}

// NewStatusMachine 未设置的参数回落到默认值
func NewStatusMachine(cfg StatusMachineConfig, now shared.Clock) *StatusMachine {
	share := DefaultPartnerShare
	if cfg.PartnerShare.Valid {
		share = cfg.PartnerShare.Decimal
	}
	if cfg.LoyaltyPointUnit.Sign() <= 0 {
		cfg.LoyaltyPointUnit = DefaultLoyaltyPointUnit
	}
	if now == nil {
		now = shared.SystemClock
	}
	return &StatusMachine{
		partnerShare:     share,
		loyaltyPointUnit: cfg.LoyaltyPointUnit,
		now:              now,
	}
}

// CanTransition 判断角色能否走 from -> to 这条边（不检查与订单的关系）
func (m *StatusMachine) CanTransition(role shared.Role, from, to Status) bool {
	if role == shared.RoleAdmin {
		return hasEdge(lifecycle, from, to)
	}
	table, ok := roleTransitions[role]
	return ok && hasEdge(table, from, to)
}

// Authorize 判定顺序：
//   - 未知角色或与订单无关 -> ErrUnauthorizedTransition（Forbidden）
//   - 状态图中没有这条边 -> ErrInvalidTransition（InvalidInput）
//   - 边存在但不属于该角色 -> ErrUnauthorizedTransition，与是否已指派无关
func (m *StatusMachine) Authorize(o *Order, target Status, actor shared.Actor, restaurantOwnerID int64) error {
	if !relatedTo(o, actor, restaurantOwnerID) {
		return NewUnauthorizedTransitionError(actor, o.ID())
	}
	if !hasEdge(lifecycle, o.Status(), target) {
		return NewInvalidTransitionError(o.Status(), target)
	}
	if !m.CanTransition(actor.Role, o.Status(), target) {
		return NewUnauthorizedTransitionError(actor, o.ID())
	}
	return nil
}

func hasEdge(table map[Status][]Status, from, to Status) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Apply 校验并执行状态变更：写时间戳、追加历史、记录通知事件
func (m *StatusMachine) Apply(o *Order, target Status, actor shared.Actor, restaurantOwnerID int64) error {
	if err := m.Authorize(o, target, actor, restaurantOwnerID); err != nil {
		return err
	}
	o.changeStatus(target, actor, m.now())
	return nil
}

// SettleDelivery 订单送达后的统计结算
// 顾客累计消费与积分；已指派的配送员累计单数、收入并恢复可接单
func (m *StatusMachine) SettleDelivery(o *Order, c *customer.Customer, p *delivery.Partner) error {
	if o.Status() != StatusDelivered {
		return NewInvalidOrderError("status", "only delivered orders can be settled")
	}
	if c == nil || c.ID() != o.CustomerID() {
		return NewInvalidOrderError("customer_id", "customer does not match order "+idString(o.ID()))
	}
	if err := c.RecordDelivery(o.TotalAmount(), m.loyaltyPointUnit); err != nil {
		return err
	}

	if o.DeliveryPartnerID() == nil {
		return nil
	}
	if p == nil || !o.HasDeliveryPartner(p.ID()) {
		return NewInvalidOrderError("delivery_partner_id", "delivery partner does not match order "+idString(o.ID()))
	}
	return p.CompleteDelivery(o.DeliveryFee(), m.partnerShare)
}

// PartnerShare 配送员分成比例
func (m *StatusMachine) PartnerShare() decimal.Decimal { return m.partnerShare }

// LoyaltyPointUnit 积分折算单位
func (m *StatusMachine) LoyaltyPointUnit() decimal.Decimal { return m.loyaltyPointUnit }

func relatedTo(o *Order, actor shared.Actor, restaurantOwnerID int64) bool {
	switch actor.Role {
	case shared.RoleAdmin:
		return true
	case shared.RoleRestaurantOwner:
		return restaurantOwnerID != 0 && restaurantOwnerID == actor.UserID
	case shared.RoleDeliveryPartner:
		return o.HasDeliveryPartner(actor.UserID)
	case shared.RoleCustomer:
		return o.CustomerID() == actor.UserID
	}
	return false
}
