package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meiway/mailplus-crm/internal/api/dto"
	"github.com/meiway/mailplus-crm/internal/auth"
	"github.com/meiway/mailplus-crm/internal/domain"
	"github.com/meiway/mailplus-crm/internal/service"
	apperrors "github.com/meiway/mailplus-crm/pkg/util/errorutil"
)

// ContactsHandler manages contact endpoints.
type ContactsHandler struct {
	service *service.ContactService
}

// NewContactsHandler constructs handler.
func NewContactsHandler(contactService *service.ContactService) *ContactsHandler {
	return &ContactsHandler{service: contactService}
}

// CreateContact POST /contacts.
func (h *ContactsHandler) CreateContact(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	contact, err := h.service.CreateContact(c.Context(), principal.User.ID, contactInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": contactResponse(contact)})
}

// ListContacts GET /contacts.
func (h *ContactsHandler) ListContacts(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	contacts, err := h.service.ListContacts(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.ContactResponse, 0, len(contacts))
	for i := range contacts {
		items = append(items, contactResponse(&contacts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetContact GET /contacts/:id.
func (h *ContactsHandler) GetContact(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	detail, err := h.service.GetContactWithDetails(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": contactDetailResponse(detail)})
}

// UpdateContact PUT /contacts/:id.
func (h *ContactsHandler) UpdateContact(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	contact, err := h.service.UpdateContact(c.Context(), principal.User.ID, c.Params("id"), contactInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": contactResponse(contact)})
}

// DeleteContact DELETE /contacts/:id.
func (h *ContactsHandler) DeleteContact(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteContact(c.Context(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}

func contactInput(req dto.CreateContactRequest) service.ContactCreateInput {
	return service.ContactCreateInput{
		CompanyName:        req.CompanyName,
		UnitNumber:         req.UnitNumber,
		ContactPerson:      req.ContactPerson,
		LanguagePreference: req.LanguagePreference,
		Email:              req.Email,
		PhoneNumber:        req.PhoneNumber,
		ServiceTier:        req.ServiceTier,
		Options:            req.Options,
		MailboxNumber:      req.MailboxNumber,
		Status:             req.Status,
	}
}

func contactResponse(contact *domain.Contact) dto.ContactResponse {
	return dto.ContactResponse{
		ID:                 contact.ID,
		CompanyName:        contact.CompanyName,
		UnitNumber:         contact.UnitNumber,
		ContactPerson:      contact.ContactPerson,
		LanguagePreference: contact.LanguagePreference,
		Email:              contact.Email,
		PhoneNumber:        contact.PhoneNumber,
		ServiceTier:        contact.ServiceTier,
		Options:            contact.Options,
		MailboxNumber:      contact.MailboxNumber,
		Status:             contact.Status,
		CreatedAt:          contact.CreatedAt,
	}
}

func contactDetailResponse(detail *domain.ContactWithDetails) dto.ContactDetailResponse {
	items := make([]dto.MailItemResponse, 0, len(detail.MailItems))
	for i := range detail.MailItems {
		items = append(items, mailItemResponse(&detail.MailItems[i]))
	}
	msgs := make([]dto.OutreachMessageResponse, 0, len(detail.OutreachMessages))
	for i := range detail.OutreachMessages {
		msgs = append(msgs, messageResponse(&detail.OutreachMessages[i]))
	}
	return dto.ContactDetailResponse{
		ContactResponse:  contactResponse(&detail.Contact),
		MailItems:        items,
		OutreachMessages: msgs,
	}
}
