package dto

import (
	"time"

	"github.com/meiway/mailplus-crm/internal/domain"
)

// CreateMailItemRequest payload.
type CreateMailItemRequest struct {
	ContactID   string                 `json:"contact_id"`
	ItemType    *string                `json:"item_type"`
	Description *string                `json:"description"`
	Status      *domain.MailItemStatus `json:"status"`
}

// UpdateMailItemStatusRequest payload for status transitions.
type UpdateMailItemStatusRequest struct {
	Status     domain.MailItemStatus `json:"status"`
	PickupDate *time.Time            `json:"pickup_date"`
}

// MailItemResponse response.
type MailItemResponse struct {
	ID           string                `json:"mail_item_id"`
	ContactID    string                `json:"contact_id"`
	ItemType     string                `json:"item_type"`
	Description  *string               `json:"description,omitempty"`
	ReceivedDate time.Time             `json:"received_date"`
	Status       domain.MailItemStatus `json:"status"`
	PickupDate   *time.Time            `json:"pickup_date,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

// MailItemWithContactResponse joins a mail item with contact display fields.
type MailItemWithContactResponse struct {
	MailItemResponse
	CompanyName   *string `json:"company_name,omitempty"`
	ContactPerson *string `json:"contact_person,omitempty"`
	UnitNumber    *string `json:"unit_number,omitempty"`
	MailboxNumber *string `json:"mailbox_number,omitempty"`
}
