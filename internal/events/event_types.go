package events

import (
	"time"

	"github.com/meiway/mailplus-crm/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventContactCreated        EventType = "contact_created"
	EventMailItemLogged        EventType = "mail_item_logged"
	EventMailItemStatusChanged EventType = "mail_item_status_changed"
	EventMessageLogged         EventType = "message_logged"
	EventMessageResponded      EventType = "message_responded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	OwnerID   string      `json:"owner_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ContactCreatedPayload payload.
type ContactCreatedPayload struct {
	ContactID   string               `json:"contact_id"`
	CompanyName *string              `json:"company_name,omitempty"`
	Status      domain.ContactStatus `json:"status"`
}

// MailItemLoggedPayload payload.
type MailItemLoggedPayload struct {
	MailItemID string `json:"mail_item_id"`
	ContactID  string `json:"contact_id"`
	ItemType   string `json:"item_type"`
}

// MailItemStatusChangedPayload payload.
type MailItemStatusChangedPayload struct {
	MailItemID string                `json:"mail_item_id"`
	ContactID  string                `json:"contact_id"`
	OldStatus  domain.MailItemStatus `json:"old_status"`
	NewStatus  domain.MailItemStatus `json:"new_status"`
	PickupDate *time.Time            `json:"pickup_date,omitempty"`
}

// MessageLoggedPayload payload.
type MessageLoggedPayload struct {
	MessageID    string                `json:"message_id"`
	ContactID    string                `json:"contact_id"`
	MailItemID   *string               `json:"mail_item_id,omitempty"`
	Channel      domain.MessageChannel `json:"channel"`
	MessageType  string                `json:"message_type"`
	SubjectLine  *string               `json:"subject_line,omitempty"`
	FollowUpDate *time.Time            `json:"follow_up_date,omitempty"`
}

// MessageRespondedPayload payload.
type MessageRespondedPayload struct {
	MessageID    string    `json:"message_id"`
	ContactID    string    `json:"contact_id"`
	ResponseDate time.Time `json:"response_date"`
}
