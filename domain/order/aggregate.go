/*
Package order Order subdomain - the core of the delivery marketplace

The Order aggregate owns its line items and status history. It is created in
PENDING by the order application service, mutated only by the StatusMachine
and by delivery assignment, and never deleted (cancellation is a status).

Money fields are stored as components (subtotal, tax, delivery fee, discount);
the total is always derived from them.
*/
package order

import (
	"strings"
	"time"

	"fooddash/domain/pricing"
	"fooddash/domain/shared"
)

// Order Order aggregate root
// All modifications to Order and OrderItem must go through the aggregate root
type Order struct {
	id                   int64
	orderNumber          string
	customerID           int64
	restaurantID         int64
	deliveryPartnerID    *int64
	status               Status
	deliveryAddress      string
	deliveryInstructions string

	subtotal    shared.Money
	tax         shared.Money
	deliveryFee shared.Money
	discount    shared.Money

	paymentMethod            PaymentMethod
	isPaid                   bool
	couponCode               string
	estimatedDeliveryMinutes int

	createdAt   time.Time
	updatedAt   time.Time
	confirmedAt *time.Time
	readyAt     *time.Time
	deliveredAt *time.Time

	items   []OrderItem
	history []StatusChange
	version int // Optimistic lock version number, incremented by the repository after save

	events []shared.DomainEvent

	// Dirty tracking: history entries appended since load
	newHistory []StatusChange
	isNew      bool
}

// OrderItem Order line - entity inside the aggregate
// The unit price is a snapshot of the menu item's price at order time
type OrderItem struct {
	id                  int64
	menuItemID          int64
	name                string
	quantity            int
	unitPrice           shared.Money
	totalPrice          shared.Money
	specialInstructions string
}

// StatusChange one entry of the order's status audit trail
type StatusChange struct {
	From      Status
	To        Status
	ActorID   int64
	ActorRole shared.Role
	ChangedAt time.Time
}

// Status Order status enum
type Status string

const (
	StatusPending        Status = "PENDING"
	StatusConfirmed      Status = "CONFIRMED"
	StatusPreparing      Status = "PREPARING"
	StatusReadyForPickup Status = "READY_FOR_PICKUP"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
	StatusRejected       Status = "REJECTED"
)

var allStatuses = []Status{
	StatusPending, StatusConfirmed, StatusPreparing, StatusReadyForPickup,
	StatusOutForDelivery, StatusDelivered, StatusCancelled, StatusRejected,
}

// ParseStatus parses a status name (case-insensitive)
func ParseStatus(s string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range allStatuses {
		if st == candidate {
			return st, nil
		}
	}
	return "", NewInvalidOrderError("status", "unknown order status: "+s)
}

// IsTerminal REJECTED, CANCELLED and DELIVERED accept no further transitions
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusDelivered
}

// PaymentMethod payment method chosen at checkout (payment itself is not processed here)
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
	PaymentESewa          PaymentMethod = "ESEWA"
	PaymentIMEPay         PaymentMethod = "IME_PAY"
	PaymentCreditCard     PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard      PaymentMethod = "DEBIT_CARD"
	PaymentMobileWallet   PaymentMethod = "MOBILE_WALLET"
)

// ParsePaymentMethod empty input defaults to cash on delivery
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if strings.TrimSpace(s) == "" {
		return PaymentCashOnDelivery, nil
	}
	pm := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	switch pm {
	case PaymentCashOnDelivery, PaymentESewa, PaymentIMEPay, PaymentCreditCard, PaymentDebitCard, PaymentMobileWallet:
		return pm, nil
	}
	return "", NewInvalidOrderError("payment_method", "unsupported payment method: "+s)
}

// ============================================================================
// Factory Methods
// ============================================================================

// NewLineItem builds one order line, snapshotting the unit price
func NewLineItem(menuItemID int64, name string, quantity int, unitPrice shared.Money, specialInstructions string) (OrderItem, error) {
	if quantity < 1 {
		return OrderItem{}, NewInvalidQuantityError(menuItemID, quantity)
	}
	if unitPrice.IsNegative() {
		return OrderItem{}, NewInvalidOrderError("unit_price", "unit price cannot be negative")
	}
	return OrderItem{
		menuItemID:          menuItemID,
		name:                name,
		quantity:            quantity,
		unitPrice:           unitPrice,
		totalPrice:          unitPrice.Multiply(quantity),
		specialInstructions: specialInstructions,
	}, nil
}

// SumItems subtotal = sum of line totals
func SumItems(currency string, items []OrderItem) (shared.Money, error) {
	subtotal := shared.ZeroMoney(currency)
	var err error
	for _, item := range items {
		subtotal, err = subtotal.Add(item.totalPrice)
		if err != nil {
			return shared.Money{}, err
		}
	}
	return subtotal, nil
}

// PlaceOrderParams everything needed to create an order in PENDING
type PlaceOrderParams struct {
	OrderNumber              string
	CustomerID               int64
	RestaurantID             int64
	DeliveryAddress          string
	DeliveryInstructions     string
	PaymentMethod            PaymentMethod
	Items                    []OrderItem
	Totals                   pricing.Totals
	CouponCode               string
	EstimatedDeliveryMinutes int
	PlacedAt                 time.Time
	PlacedBy                 shared.Actor
}

// NewOrder Create new Order aggregate root in PENDING
// The subtotal of the supplied totals must equal the sum of the line items
func NewOrder(p PlaceOrderParams) (*Order, error) {
	if p.OrderNumber == "" {
		return nil, NewInvalidOrderError("order_number", "order number is required")
	}
	if p.CustomerID <= 0 || p.RestaurantID <= 0 {
		return nil, NewInvalidOrderError("customer_id", "order must reference a customer and a restaurant")
	}
	if strings.TrimSpace(p.DeliveryAddress) == "" {
		return nil, NewInvalidOrderError("delivery_address", "delivery address is required")
	}
	if len(p.Items) == 0 {
		return nil, NewEmptyOrderItemsError()
	}

	subtotal, err := SumItems(p.Totals.Subtotal.Currency(), p.Items)
	if err != nil {
		return nil, err
	}
	if !subtotal.Equals(p.Totals.Subtotal) {
		return nil, NewInvalidOrderError("subtotal", "subtotal "+p.Totals.Subtotal.String()+" does not match line items "+subtotal.String())
	}

	items := make([]OrderItem, len(p.Items))
	copy(items, p.Items)

	o := &Order{
		orderNumber:              p.OrderNumber,
		customerID:               p.CustomerID,
		restaurantID:             p.RestaurantID,
		status:                   StatusPending,
		deliveryAddress:          strings.TrimSpace(p.DeliveryAddress),
		deliveryInstructions:     p.DeliveryInstructions,
		subtotal:                 p.Totals.Subtotal,
		tax:                      p.Totals.Tax,
		deliveryFee:              p.Totals.DeliveryFee,
		discount:                 p.Totals.Discount,
		paymentMethod:            p.PaymentMethod,
		isPaid:                   false,
		couponCode:               p.CouponCode,
		estimatedDeliveryMinutes: p.EstimatedDeliveryMinutes,
		createdAt:                p.PlacedAt,
		updatedAt:                p.PlacedAt,
		items:                    items,
		isNew:                    true,
	}
	if _, err := o.composeTotal(); err != nil {
		return nil, err
	}

	o.appendHistory(StatusChange{
		To:        StatusPending,
		ActorID:   p.PlacedBy.UserID,
		ActorRole: p.PlacedBy.Role,
		ChangedAt: p.PlacedAt,
	})
	o.events = append(o.events, NewOrderPlacedEvent(o))

	return o, nil
}

// ============================================================================
// ReconstructionDTO - For Repository Layer Use Only
// ============================================================================

// ReconstructionDTO Order reconstruction data transfer object
// ⚠️ Note: only repository implementations should use this
type ReconstructionDTO struct {
	ID                       int64
	OrderNumber              string
	CustomerID               int64
	RestaurantID             int64
	DeliveryPartnerID        *int64
	Status                   Status
	DeliveryAddress          string
	DeliveryInstructions     string
	Subtotal                 shared.Money
	Tax                      shared.Money
	DeliveryFee              shared.Money
	Discount                 shared.Money
	PaymentMethod            PaymentMethod
	IsPaid                   bool
	CouponCode               string
	EstimatedDeliveryMinutes int
	CreatedAt                time.Time
	UpdatedAt                time.Time
	ConfirmedAt              *time.Time
	ReadyAt                  *time.Time
	DeliveredAt              *time.Time
	Items                    []OrderItem
	History                  []StatusChange
	Version                  int
}

// RebuildFromDTO Reconstruct Order aggregate root from DTO
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:                       dto.ID,
		orderNumber:              dto.OrderNumber,
		customerID:               dto.CustomerID,
		restaurantID:             dto.RestaurantID,
		deliveryPartnerID:        dto.DeliveryPartnerID,
		status:                   dto.Status,
		deliveryAddress:          dto.DeliveryAddress,
		deliveryInstructions:     dto.DeliveryInstructions,
		subtotal:                 dto.Subtotal,
		tax:                      dto.Tax,
		deliveryFee:              dto.DeliveryFee,
		discount:                 dto.Discount,
		paymentMethod:            dto.PaymentMethod,
		isPaid:                   dto.IsPaid,
		couponCode:               dto.CouponCode,
		estimatedDeliveryMinutes: dto.EstimatedDeliveryMinutes,
		createdAt:                dto.CreatedAt,
		updatedAt:                dto.UpdatedAt,
		confirmedAt:              dto.ConfirmedAt,
		readyAt:                  dto.ReadyAt,
		deliveredAt:              dto.DeliveredAt,
		items:                    dto.Items,
		history:                  dto.History,
		version:                  dto.Version,
		isNew:                    false,
	}
}

// ItemReconstructionDTO Order item reconstruction data transfer object
type ItemReconstructionDTO struct {
	ID                  int64
	MenuItemID          int64
	Name                string
	Quantity            int
	UnitPrice           shared.Money
	TotalPrice          shared.Money
	SpecialInstructions string
}

// RebuildItemFromDTO Rebuild OrderItem from DTO
func RebuildItemFromDTO(dto ItemReconstructionDTO) OrderItem {
	return OrderItem{
		id:                  dto.ID,
		menuItemID:          dto.MenuItemID,
		name:                dto.Name,
		quantity:            dto.Quantity,
		unitPrice:           dto.UnitPrice,
		totalPrice:          dto.TotalPrice,
		specialInstructions: dto.SpecialInstructions,
	}
}

// ============================================================================
// State Change Methods
// ============================================================================
//
// Status changes happen through StatusMachine.Apply (role checks) and
// AssignDeliveryPartner. Version is NOT incremented here; the repository
// increments it after a successful optimistic update.

// changeStatus applies a validated transition: stamps timestamps, history and event
func (o *Order) changeStatus(to Status, actor shared.Actor, at time.Time) {
	from := o.status
	o.status = to
	o.updatedAt = at

	switch to {
	case StatusConfirmed:
		o.confirmedAt = &at
	case StatusReadyForPickup:
		o.readyAt = &at
	case StatusDelivered:
		o.deliveredAt = &at
	}

	o.appendHistory(StatusChange{From: from, To: to, ActorID: actor.UserID, ActorRole: actor.Role, ChangedAt: at})
	o.events = append(o.events, NewOrderStatusChangedEvent(o, from, to))
}

// AssignDeliveryPartner binds a delivery partner to the order
// A READY_FOR_PICKUP order advances to OUT_FOR_DELIVERY; earlier statuses are left unchanged
func (o *Order) AssignDeliveryPartner(partnerID int64, actor shared.Actor, at time.Time) error {
	if o.status.IsTerminal() || o.status == StatusOutForDelivery {
		return NewInvalidTransitionError(o.status, StatusOutForDelivery)
	}
	if o.deliveryPartnerID != nil {
		return NewPartnerAlreadyAssignedError(o.id, *o.deliveryPartnerID)
	}

	o.deliveryPartnerID = &partnerID
	o.updatedAt = at

	if o.status == StatusReadyForPickup {
		o.status = StatusOutForDelivery
		o.appendHistory(StatusChange{
			From:      StatusReadyForPickup,
			To:        StatusOutForDelivery,
			ActorID:   actor.UserID,
			ActorRole: actor.Role,
			ChangedAt: at,
		})
	}

	o.events = append(o.events, NewDeliveryPartnerAssignedEvent(o, partnerID))
	return nil
}

func (o *Order) appendHistory(change StatusChange) {
	o.history = append(o.history, change)
	o.newHistory = append(o.newHistory, change)
}

// composeTotal total = subtotal + tax + delivery fee - discount, clamped at zero
func (o *Order) composeTotal() (shared.Money, error) {
	return pricing.Compose(o.subtotal, o.tax, o.deliveryFee, o.discount)
}

// ============================================================================
// Persistence hooks - For Repository Layer Use Only
// ============================================================================

// AssignID stores the identity generated by the database on insert
func (o *Order) AssignID(id int64) {
	if o.id == 0 {
		o.id = id
	}
}

// IncrementVersionForSave Increments the version after successful persistence
func (o *Order) IncrementVersionForSave() {
	o.version++
}

// IsNew Returns true if this aggregate was newly created (not loaded from DB)
func (o *Order) IsNew() bool { return o.isNew }

// NewHistory Returns history entries appended since load; repository INSERTs these
func (o *Order) NewHistory() []StatusChange {
	out := make([]StatusChange, len(o.newHistory))
	copy(out, o.newHistory)
	return out
}

// ClearDirtyTracking Clears dirty tracking state after successful save
func (o *Order) ClearDirtyTracking() {
	o.newHistory = nil
	o.isNew = false
}

// ============================================================================
// Getters - Read-only Accessors
// ============================================================================

func (o *Order) ID() int64                    { return o.id }
func (o *Order) OrderNumber() string          { return o.orderNumber }
func (o *Order) CustomerID() int64            { return o.customerID }
func (o *Order) RestaurantID() int64          { return o.restaurantID }
func (o *Order) DeliveryPartnerID() *int64    { return o.deliveryPartnerID }
func (o *Order) Status() Status               { return o.status }
func (o *Order) DeliveryAddress() string      { return o.deliveryAddress }
func (o *Order) DeliveryInstructions() string { return o.deliveryInstructions }
func (o *Order) Subtotal() shared.Money       { return o.subtotal }
func (o *Order) Tax() shared.Money            { return o.tax }
func (o *Order) DeliveryFee() shared.Money    { return o.deliveryFee }
func (o *Order) Discount() shared.Money       { return o.discount }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) IsPaid() bool                 { return o.isPaid }
func (o *Order) CouponCode() string           { return o.couponCode }
func (o *Order) EstimatedDeliveryMinutes() int {
	return o.estimatedDeliveryMinutes
}
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time    { return o.updatedAt }
func (o *Order) ConfirmedAt() *time.Time { return o.confirmedAt }
func (o *Order) ReadyAt() *time.Time     { return o.readyAt }
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }
func (o *Order) Version() int            { return o.version }

// TotalAmount derived from the components, never stored on its own
func (o *Order) TotalAmount() shared.Money {
	total, err := o.composeTotal()
	if err != nil {
		return shared.ZeroMoney(o.subtotal.Currency())
	}
	return total
}

// HasDeliveryPartner reports whether partnerID is the assigned partner
func (o *Order) HasDeliveryPartner(partnerID int64) bool {
	return o.deliveryPartnerID != nil && *o.deliveryPartnerID == partnerID
}

// Items Return copy of order items
func (o *Order) Items() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

// History Return copy of the status audit trail, oldest first
func (o *Order) History() []StatusChange {
	out := make([]StatusChange, len(o.history))
	copy(out, o.history)
	return out
}

// ============================================================================
// Domain Event Management
// ============================================================================

// orderEvent events recorded before the order has a database identity get it bound on pull
type orderEvent interface {
	shared.DomainEvent
	bindOrderID(id int64)
}

// PullEvents Get and clear aggregate root's event list
// Called by the UoW after the repository saved the order, so the identity is known
func (o *Order) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(o.events))
	for i, e := range o.events {
		if oe, ok := e.(orderEvent); ok {
			oe.bindOrderID(o.id)
		}
		events[i] = e
	}
	o.events = nil
	return events
}

// OrderItem Getters

func (item OrderItem) ID() int64                   { return item.id }
func (item OrderItem) MenuItemID() int64           { return item.menuItemID }
func (item OrderItem) Name() string                { return item.name }
func (item OrderItem) Quantity() int               { return item.quantity }
func (item OrderItem) UnitPrice() shared.Money     { return item.unitPrice }
func (item OrderItem) TotalPrice() shared.Money    { return item.totalPrice }
func (item OrderItem) SpecialInstructions() string { return item.specialInstructions }

// Compile-time check that Order implements AggregateRoot interface
var _ shared.AggregateRoot = (*Order)(nil)
