package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meiway/mailplus-crm/internal/api/dto"
	"github.com/meiway/mailplus-crm/internal/auth"
	"github.com/meiway/mailplus-crm/internal/domain"
	"github.com/meiway/mailplus-crm/internal/service"
	apperrors "github.com/meiway/mailplus-crm/pkg/util/errorutil"
)

// TemplatesHandler manages message template endpoints.
type TemplatesHandler struct {
	service *service.TemplateService
}

// NewTemplatesHandler constructs handler.
func NewTemplatesHandler(templateService *service.TemplateService) *TemplatesHandler {
	return &TemplatesHandler{service: templateService}
}

// ListTemplates GET /templates.
func (h *TemplatesHandler) ListTemplates(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	templates, err := h.service.ListTemplates(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	resp := make([]dto.TemplateResponse, 0, len(templates))
	for i := range templates {
		resp = append(resp, templateResponse(&templates[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// CreateTemplate POST /templates.
func (h *TemplatesHandler) CreateTemplate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	tpl, err := h.service.CreateTemplate(c.Context(), principal.User.ID, service.TemplateCreateInput{
		TemplateName:   req.TemplateName,
		TemplateType:   req.TemplateType,
		SubjectLine:    req.SubjectLine,
		MessageBody:    req.MessageBody,
		DefaultChannel: req.DefaultChannel,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": templateResponse(tpl)})
}

func templateResponse(tpl *domain.MessageTemplate) dto.TemplateResponse {
	return dto.TemplateResponse{
		ID:             tpl.ID,
		TemplateName:   tpl.TemplateName,
		TemplateType:   tpl.TemplateType,
		SubjectLine:    tpl.SubjectLine,
		MessageBody:    tpl.MessageBody,
		DefaultChannel: tpl.DefaultChannel,
		IsDefault:      tpl.IsDefault,
		CreatedAt:      tpl.CreatedAt,
	}
}
