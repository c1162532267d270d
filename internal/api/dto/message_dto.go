package dto

import (
	"time"

	"github.com/meiway/mailplus-crm/internal/domain"
)

// CreateMessageRequest payload for logging an outreach message.
type CreateMessageRequest struct {
	ContactID      string                `json:"contact_id"`
	MailItemID     *string               `json:"mail_item_id"`
	MessageType    string                `json:"message_type"`
	Channel        domain.MessageChannel `json:"channel"`
	SubjectLine    *string               `json:"subject_line"`
	MessageContent string                `json:"message_content"`
	TemplateID     *string               `json:"template_id"`
	FollowUpNeeded *bool                 `json:"follow_up_needed"`
	FollowUpDate   *time.Time            `json:"follow_up_date"`
	Notes          *string               `json:"notes"`
}

// OutreachMessageResponse response.
type OutreachMessageResponse struct {
	ID             string                `json:"message_id"`
	ContactID      string                `json:"contact_id"`
	MailItemID     *string               `json:"mail_item_id,omitempty"`
	MessageType    string                `json:"message_type"`
	Channel        domain.MessageChannel `json:"channel"`
	SubjectLine    *string               `json:"subject_line,omitempty"`
	MessageContent string                `json:"message_content"`
	SentAt         time.Time             `json:"sent_at"`
	Responded      bool                  `json:"responded"`
	ResponseDate   *time.Time            `json:"response_date,omitempty"`
	FollowUpNeeded bool                  `json:"follow_up_needed"`
	FollowUpDate   *time.Time            `json:"follow_up_date,omitempty"`
	Notes          *string               `json:"notes,omitempty"`
}

// OutreachMessageWithContactResponse joins contact display fields.
type OutreachMessageWithContactResponse struct {
	OutreachMessageResponse
	CompanyName   *string `json:"company_name,omitempty"`
	ContactPerson *string `json:"contact_person,omitempty"`
	UnitNumber    *string `json:"unit_number,omitempty"`
}
