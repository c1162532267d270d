package dto

import (
	"time"

	"github.com/meiway/mailplus-crm/internal/domain"
)

// CreateContactRequest payload. All fields optional; status defaults
// server-side to PENDING.
type CreateContactRequest struct {
	CompanyName        *string               `json:"company_name"`
	UnitNumber         *string               `json:"unit_number"`
	ContactPerson      *string               `json:"contact_person"`
	LanguagePreference *string               `json:"language_preference"`
	Email              *string               `json:"email"`
	PhoneNumber        *string               `json:"phone_number"`
	ServiceTier        *int                  `json:"service_tier"`
	Options            *string               `json:"options"`
	MailboxNumber      *string               `json:"mailbox_number"`
	Status             *domain.ContactStatus `json:"status"`
}

// UpdateContactRequest payload; absent fields are left untouched.
type UpdateContactRequest = CreateContactRequest

// ContactResponse response.
type ContactResponse struct {
	ID                 string               `json:"contact_id"`
	CompanyName        *string              `json:"company_name,omitempty"`
	UnitNumber         *string              `json:"unit_number,omitempty"`
	ContactPerson      *string              `json:"contact_person,omitempty"`
	LanguagePreference *string              `json:"language_preference,omitempty"`
	Email              *string              `json:"email,omitempty"`
	PhoneNumber        *string              `json:"phone_number,omitempty"`
	ServiceTier        *int                 `json:"service_tier,omitempty"`
	Options            *string              `json:"options,omitempty"`
	MailboxNumber      *string              `json:"mailbox_number,omitempty"`
	Status             domain.ContactStatus `json:"status"`
	CreatedAt          time.Time            `json:"created_at"`
}

// ContactDetailResponse includes the contact's related records.
type ContactDetailResponse struct {
	ContactResponse
	MailItems        []MailItemResponse        `json:"mail_items"`
	OutreachMessages []OutreachMessageResponse `json:"outreach_messages"`
}
