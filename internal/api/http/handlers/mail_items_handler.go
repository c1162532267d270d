package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/meiway/mailplus-crm/internal/api/dto"
	"github.com/meiway/mailplus-crm/internal/auth"
	"github.com/meiway/mailplus-crm/internal/domain"
	"github.com/meiway/mailplus-crm/internal/service"
	apperrors "github.com/meiway/mailplus-crm/pkg/util/errorutil"
)

// MailItemsHandler manages mail item endpoints.
type MailItemsHandler struct {
	service *service.MailItemService
}

// NewMailItemsHandler constructs handler.
func NewMailItemsHandler(mailItemService *service.MailItemService) *MailItemsHandler {
	return &MailItemsHandler{service: mailItemService}
}

// CreateMailItem POST /mail-items.
func (h *MailItemsHandler) CreateMailItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateMailItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	item, err := h.service.CreateMailItem(c.Context(), principal.User.ID, service.MailItemCreateInput{
		ContactID:   req.ContactID,
		ItemType:    req.ItemType,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": mailItemResponse(item)})
}

// ListMailItems GET /mail-items.
func (h *MailItemsHandler) ListMailItems(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	filter := service.MailItemListFilter{}
	if contactID := c.Query("contact_id"); contactID != "" {
		filter.ContactID = &contactID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.MailItemStatus(strings.TrimSpace(part)))
		}
	}

	items, err := h.service.ListMailItems(c.Context(), principal.User.ID, filter)
	if err != nil {
		return err
	}
	resp := make([]dto.MailItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, mailItemResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// UpdateStatus PUT /mail-items/:id/status.
func (h *MailItemsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateMailItemStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status is required", nil)
	}

	item, err := h.service.SetStatus(c.Context(), principal.User.ID, c.Params("id"), req.Status, req.PickupDate)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": mailItemResponse(item)})
}

func mailItemResponse(item *domain.MailItem) dto.MailItemResponse {
	return dto.MailItemResponse{
		ID:           item.ID,
		ContactID:    item.ContactID,
		ItemType:     item.ItemType,
		Description:  item.Description,
		ReceivedDate: item.ReceivedDate,
		Status:       item.Status,
		PickupDate:   item.PickupDate,
		CreatedAt:    item.CreatedAt,
	}
}

func mailItemWithContactResponse(item *domain.MailItemWithContact) dto.MailItemWithContactResponse {
	return dto.MailItemWithContactResponse{
		MailItemResponse: mailItemResponse(&item.MailItem),
		CompanyName:      item.CompanyName,
		ContactPerson:    item.ContactPerson,
		UnitNumber:       item.UnitNumber,
		MailboxNumber:    item.MailboxNumber,
	}
}
