package dto

import (
	"time"

	"github.com/meiway/mailplus-crm/internal/domain"
)

// CreateTemplateRequest payload for custom templates.
type CreateTemplateRequest struct {
	TemplateName   string                  `json:"template_name"`
	TemplateType   domain.TemplateType     `json:"template_type"`
	SubjectLine    *string                 `json:"subject_line"`
	MessageBody    string                  `json:"message_body"`
	DefaultChannel *domain.TemplateChannel `json:"default_channel"`
}

// TemplateResponse response.
type TemplateResponse struct {
	ID             string                 `json:"template_id"`
	TemplateName   string                 `json:"template_name"`
	TemplateType   domain.TemplateType    `json:"template_type"`
	SubjectLine    *string                `json:"subject_line,omitempty"`
	MessageBody    string                 `json:"message_body"`
	DefaultChannel domain.TemplateChannel `json:"default_channel"`
	IsDefault      bool                   `json:"is_default"`
	CreatedAt      time.Time              `json:"created_at"`
}
