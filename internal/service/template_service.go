package service

import (
	"context"
	"strings"

	"github.com/meiway/mailplus-crm/internal/domain"
	"github.com/meiway/mailplus-crm/internal/repository"
	apperrors "github.com/meiway/mailplus-crm/pkg/util/errorutil"
)

// TemplateService manages message templates and renders their placeholders.
type TemplateService struct {
	templates repository.TemplateRepository
}

// TemplateCreateInput describes a custom template payload.
type TemplateCreateInput struct {
	TemplateName   string
	TemplateType   domain.TemplateType
	SubjectLine    *string
	MessageBody    string
	DefaultChannel *domain.TemplateChannel
}

// RenderedTemplate holds a template after variable substitution.
type RenderedTemplate struct {
	Subject *string
	Body    string
}

// NewTemplateService constructs the service.
func NewTemplateService(templates repository.TemplateRepository) *TemplateService {
	return &TemplateService{templates: templates}
}

// ListTemplates returns the caller's templates plus shared defaults.
func (s *TemplateService) ListTemplates(ctx context.Context, ownerID string) ([]domain.MessageTemplate, error) {
	return s.templates.ListVisible(ctx, ownerID)
}

// CreateTemplate stores a per-user custom template.
func (s *TemplateService) CreateTemplate(ctx context.Context, ownerID string, input TemplateCreateInput) (*domain.MessageTemplate, error) {
	if strings.TrimSpace(input.TemplateName) == "" {
		return nil, apperrors.NewValidationError("template_name is required", nil)
	}
	if strings.TrimSpace(input.MessageBody) == "" {
		return nil, apperrors.NewValidationError("message_body is required", nil)
	}
	if !domain.ValidTemplateType(input.TemplateType) {
		return nil, apperrors.NewValidationError("invalid template_type", map[string]any{"template_type": input.TemplateType})
	}
	channel := domain.TemplateChannelEmail
	if input.DefaultChannel != nil {
		if !domain.ValidTemplateChannel(*input.DefaultChannel) {
			return nil, apperrors.NewValidationError("invalid default_channel", map[string]any{"default_channel": *input.DefaultChannel})
		}
		channel = *input.DefaultChannel
	}

	tpl := &domain.MessageTemplate{
		OwnerID:        &ownerID,
		TemplateName:   strings.TrimSpace(input.TemplateName),
		TemplateType:   input.TemplateType,
		SubjectLine:    input.SubjectLine,
		MessageBody:    input.MessageBody,
		DefaultChannel: channel,
		IsDefault:      false,
	}
	if err := s.templates.Create(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// RenderByID loads a visible template and substitutes its placeholders from
// the contact and optional mail item.
func (s *TemplateService) RenderByID(ctx context.Context, ownerID, templateID string, contact *domain.Contact, item *domain.MailItem) (*RenderedTemplate, error) {
	tpl, err := s.templates.GetByID(ctx, ownerID, templateID)
	if err != nil {
		return nil, err
	}
	return RenderTemplate(tpl, contact, item), nil
}

// RenderTemplate substitutes {{variable}} placeholders in the template body
// and subject using contact and mail item fields. Unknown placeholders are
// left in place.
func RenderTemplate(tpl *domain.MessageTemplate, contact *domain.Contact, item *domain.MailItem) *RenderedTemplate {
	vars := templateVars(contact, item)

	body := substitute(tpl.MessageBody, vars)
	var subject *string
	if tpl.SubjectLine != nil {
		rendered := substitute(*tpl.SubjectLine, vars)
		subject = &rendered
	}
	return &RenderedTemplate{Subject: subject, Body: body}
}

func templateVars(contact *domain.Contact, item *domain.MailItem) map[string]string {
	vars := map[string]string{}
	if contact != nil {
		vars["contact_name"] = deref(contact.ContactPerson)
		vars["company_name"] = deref(contact.CompanyName)
		vars["unit_number"] = deref(contact.UnitNumber)
		vars["mailbox_number"] = deref(contact.MailboxNumber)
	}
	if item != nil {
		vars["item_type"] = item.ItemType
		vars["description"] = deref(item.Description)
		vars["received_date"] = item.ReceivedDate.Format("January 2, 2006")
	}
	return vars
}

func substitute(text string, vars map[string]string) string {
	result := text
	for k, v := range vars {
		result = strings.ReplaceAll(result, "{{"+k+"}}", v)
	}
	return result
}

func deref(val *string) string {
	if val == nil {
		return ""
	}
	return *val
}
