/*
Package delivery 配送员子领域

配送员档案以用户 ID 作为标识。指派订单时要求配送员可接单，
指派后状态变为 ON_DELIVERY；订单送达后累计配送单数和收入并恢复可接单。
*/
package delivery

import (
	"fooddash/domain/shared"

	"github.com/shopspring/decimal"
)

// Status 配送员状态
type Status string

const (
	StatusAvailable  Status = "AVAILABLE"
	StatusBusy       Status = "BUSY"
	StatusOffline    Status = "OFFLINE"
	StatusOnDelivery Status = "ON_DELIVERY"
)

// Partner 配送员聚合根
type Partner struct {
	id              int64
	name            string
	isAvailable     bool
	status          Status
	totalDeliveries int
	totalEarnings   shared.Money
	version         int
	isNew           bool
}

type ReconstructionDTO struct {
	ID              int64
	Name            string
	IsAvailable     bool
	Status          Status
	TotalDeliveries int
	TotalEarnings   shared.Money
	Version         int
}

func RebuildFromDTO(dto ReconstructionDTO) *Partner {
	return &Partner{
		id:              dto.ID,
		name:            dto.Name,
		isAvailable:     dto.IsAvailable,
		status:          dto.Status,
		totalDeliveries: dto.TotalDeliveries,
		totalEarnings:   dto.TotalEarnings,
		version:         dto.Version,
	}
}

// NewPartner 为用户开通配送员档案，默认可接单
func NewPartner(userID int64, name, currency string) (*Partner, error) {
	if userID <= 0 {
		return nil, NewInvalidPartnerError("id", "delivery partner must reference a user")
	}
	return &Partner{
		id:            userID,
		name:          name,
		isAvailable:   true,
		status:        StatusAvailable,
		totalEarnings: shared.ZeroMoney(currency),
		isNew:         true,
	}, nil
}

// CanTakeOrder 可接单：可用标记为真且状态为 AVAILABLE
func (p *Partner) CanTakeOrder() bool {
	return p.isAvailable && p.status == StatusAvailable
}

// StartDelivery 接单，状态变为 ON_DELIVERY
func (p *Partner) StartDelivery() error {
	if !p.CanTakeOrder() {
		return NewPartnerUnavailableError(p.id, p.status)
	}
	p.isAvailable = false
	p.status = StatusOnDelivery
	return nil
}

// CompleteDelivery 送达结算：单数 +1，收入累加 deliveryFee × share
func (p *Partner) CompleteDelivery(deliveryFee shared.Money, share decimal.Decimal) error {
	earnings, err := p.totalEarnings.Add(deliveryFee.MultiplyRate(share))
	if err != nil {
		return err
	}
	p.totalEarnings = earnings
	p.totalDeliveries++
	if p.status == StatusOnDelivery {
		p.status = StatusAvailable
		p.isAvailable = true
	}
	return nil
}

// Release 订单取消时放回可接单状态，不计收入
func (p *Partner) Release() {
	if p.status == StatusOnDelivery {
		p.status = StatusAvailable
		p.isAvailable = true
	}
}

func (p *Partner) IsNew() bool { return p.isNew }

// IncrementVersionForSave 仓储保存成功后调用
func (p *Partner) IncrementVersionForSave() {
	p.version++
	p.isNew = false
}

func (p *Partner) ID() int64                        { return p.id }
func (p *Partner) Name() string                     { return p.name }
func (p *Partner) IsAvailable() bool                { return p.isAvailable }
func (p *Partner) Status() Status                   { return p.status }
func (p *Partner) TotalDeliveries() int             { return p.totalDeliveries }
func (p *Partner) TotalEarnings() shared.Money      { return p.totalEarnings }
func (p *Partner) Version() int                     { return p.version }
func (p *Partner) PullEvents() []shared.DomainEvent { return nil }

var _ shared.AggregateRoot = (*Partner)(nil)
