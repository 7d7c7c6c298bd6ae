package order

import (
	"time"

	"fooddash/domain/shared"
)

// Event names, also used as outbox event_type and notifier channel suffix
const (
	EventOrderPlaced             = "order.placed"
	EventOrderStatusChanged      = "order.status_changed"
	EventDeliveryPartnerAssigned = "order.delivery_partner_assigned"
)

// MessageOrderPlaced notification text for a newly placed order
const MessageOrderPlaced = "Order placed successfully"

// MessageDeliveryPartnerAssigned notification text for an assignment
const MessageDeliveryPartnerAssigned = "Delivery partner assigned"

// StatusUpdatedMessage notification text for a status change
func StatusUpdatedMessage(status Status) string {
	return "Order status updated to " + string(status)
}

type OrderPlacedEvent struct {
	orderID     int64
	orderNumber string
	customerID  int64
	total       shared.Money
	occurredOn  time.Time
}

func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		orderID:     o.id,
		orderNumber: o.orderNumber,
		customerID:  o.customerID,
		total:       o.TotalAmount(),
		occurredOn:  o.createdAt,
	}
}

func (e *OrderPlacedEvent) EventName() string      { return EventOrderPlaced }
func (e *OrderPlacedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderPlacedEvent) GetAggregateID() int64  { return e.orderID }
func (e *OrderPlacedEvent) OrderID() int64         { return e.orderID }
func (e *OrderPlacedEvent) OrderNumber() string    { return e.orderNumber }
func (e *OrderPlacedEvent) CustomerID() int64      { return e.customerID }
func (e *OrderPlacedEvent) Total() shared.Money    { return e.total }
func (e *OrderPlacedEvent) Message() string        { return MessageOrderPlaced }
func (e *OrderPlacedEvent) bindOrderID(id int64) {
	if e.orderID == 0 {
		e.orderID = id
	}
}

type OrderStatusChangedEvent struct {
	orderID    int64
	from       Status
	to         Status
	occurredOn time.Time
}

func NewOrderStatusChangedEvent(o *Order, from, to Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		orderID:    o.id,
		from:       from,
		to:         to,
		occurredOn: o.updatedAt,
	}
}

func (e *OrderStatusChangedEvent) EventName() string     { return EventOrderStatusChanged }
func (e *OrderStatusChangedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *OrderStatusChangedEvent) GetAggregateID() int64 { return e.orderID }
func (e *OrderStatusChangedEvent) OrderID() int64        { return e.orderID }
func (e *OrderStatusChangedEvent) From() Status          { return e.from }
func (e *OrderStatusChangedEvent) To() Status            { return e.to }
func (e *OrderStatusChangedEvent) Message() string       { return StatusUpdatedMessage(e.to) }

// Transition from/to as plain strings for serializers outside the domain
func (e *OrderStatusChangedEvent) Transition() (string, string) {
	return string(e.from), string(e.to)
}

func (e *OrderStatusChangedEvent) bindOrderID(id int64) {
	if e.orderID == 0 {
		e.orderID = id
	}
}

type DeliveryPartnerAssignedEvent struct {
	orderID    int64
	partnerID  int64
	occurredOn time.Time
}

func NewDeliveryPartnerAssignedEvent(o *Order, partnerID int64) *DeliveryPartnerAssignedEvent {
	return &DeliveryPartnerAssignedEvent{
		orderID:    o.id,
		partnerID:  partnerID,
		occurredOn: o.updatedAt,
	}
}

func (e *DeliveryPartnerAssignedEvent) EventName() string     { return EventDeliveryPartnerAssigned }
func (e *DeliveryPartnerAssignedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *DeliveryPartnerAssignedEvent) GetAggregateID() int64 { return e.orderID }
func (e *DeliveryPartnerAssignedEvent) OrderID() int64        { return e.orderID }
func (e *DeliveryPartnerAssignedEvent) PartnerID() int64      { return e.partnerID }
func (e *DeliveryPartnerAssignedEvent) Message() string       { return MessageDeliveryPartnerAssigned }
func (e *DeliveryPartnerAssignedEvent) bindOrderID(id int64) {
	if e.orderID == 0 {
		e.orderID = id
	}
}

var (
	_ shared.NotificationEvent = (*OrderPlacedEvent)(nil)
	_ shared.NotificationEvent = (*OrderStatusChangedEvent)(nil)
	_ shared.NotificationEvent = (*DeliveryPartnerAssignedEvent)(nil)
)
