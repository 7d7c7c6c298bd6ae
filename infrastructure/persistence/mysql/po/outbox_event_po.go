package po

import (
	"encoding/json"
	"time"

	"fooddash/domain/shared"

	"github.com/google/uuid"
)

// OutboxEventPO Outbox event persistence object
// Implements transactional outbox pattern for reliable event publishing
type OutboxEventPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	AggregateID int64     `gorm:"index;not null"`
	EventType   string    `gorm:"size:100;index;not null"`          // e.g. "order.placed"
	Payload     string    `gorm:"type:text;not null"`               // JSON serialized EventPayload
	Status      string    `gorm:"size:20;default:PENDING;not null"` // PENDING, PROCESSING, PUBLISHED, FAILED
	RetryCount  int       `gorm:"default:0;not null"`
	LastError   string    `gorm:"size:500"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName Specify table name
func (OutboxEventPO) TableName() string {
	return "outbox_events"
}

// EventStatus Outbox event status enum
type EventStatus string

const (
	EventStatusPending    EventStatus = "PENDING"
	EventStatusProcessing EventStatus = "PROCESSING"
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusFailed     EventStatus = "FAILED"
)

// EventPayload outbox 中保存的事件内容，通知发送方据此还原 notify(orderID, message)
type EventPayload struct {
	EventName   string    `json:"event_name"`
	AggregateID int64     `json:"aggregate_id"`
	OccurredOn  time.Time `json:"occurred_on"`
	OrderID     int64     `json:"order_id,omitempty"`
	Message     string    `json:"message,omitempty"`
	OrderNumber string    `json:"order_number,omitempty"`
	FromStatus  string    `json:"from_status,omitempty"`
	ToStatus    string    `json:"to_status,omitempty"`
	PartnerID   int64     `json:"partner_id,omitempty"`
}

// FromDomainEvent Convert domain event to outbox persistence object
func FromDomainEvent(event shared.DomainEvent) (*OutboxEventPO, error) {
	payload, err := serializeEventToJSON(event)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &OutboxEventPO{
		ID:          uuid.New().String(),
		AggregateID: event.GetAggregateID(),
		EventType:   event.EventName(),
		Payload:     payload,
		Status:      string(EventStatusPending),
		RetryCount:  0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// serializeEventToJSON picks up optional fields through small accessor interfaces
// so the persistence layer does not import concrete event types
func serializeEventToJSON(event shared.DomainEvent) (string, error) {
	payload := EventPayload{
		EventName:   event.EventName(),
		AggregateID: event.GetAggregateID(),
		OccurredOn:  event.OccurredOn(),
	}

	if n, ok := event.(shared.NotificationEvent); ok {
		payload.OrderID = n.OrderID()
		payload.Message = n.Message()
	}
	if e, ok := event.(interface{ OrderNumber() string }); ok {
		payload.OrderNumber = e.OrderNumber()
	}
	if e, ok := event.(interface{ PartnerID() int64 }); ok {
		payload.PartnerID = e.PartnerID()
	}
	if e, ok := event.(interface{ Transition() (string, string) }); ok {
		payload.FromStatus, payload.ToStatus = e.Transition()
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodePayload parses the stored JSON back into an EventPayload
func DecodePayload(raw string) (EventPayload, error) {
	var payload EventPayload
	err := json.Unmarshal([]byte(raw), &payload)
	return payload, err
}
