package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meiway/mailplus-crm/internal/api/dto"
	"github.com/meiway/mailplus-crm/internal/auth"
	"github.com/meiway/mailplus-crm/internal/domain"
	"github.com/meiway/mailplus-crm/internal/service"
	apperrors "github.com/meiway/mailplus-crm/pkg/util/errorutil"
)

// MessagesHandler manages outreach message endpoints.
type MessagesHandler struct {
	service *service.OutreachService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(outreachService *service.OutreachService) *MessagesHandler {
	return &MessagesHandler{service: outreachService}
}

// CreateMessage POST /messages.
func (h *MessagesHandler) CreateMessage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	msg, err := h.service.LogMessage(c.Context(), principal.User.ID, service.LogMessageInput{
		ContactID:      req.ContactID,
		MailItemID:     req.MailItemID,
		MessageType:    req.MessageType,
		Channel:        req.Channel,
		SubjectLine:    req.SubjectLine,
		MessageContent: req.MessageContent,
		TemplateID:     req.TemplateID,
		FollowUpNeeded: req.FollowUpNeeded,
		FollowUpDate:   req.FollowUpDate,
		Notes:          req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": messageResponse(msg)})
}

// ListMessages GET /messages.
func (h *MessagesHandler) ListMessages(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	filter := service.MessageListFilter{}
	if contactID := c.Query("contact_id"); contactID != "" {
		filter.ContactID = &contactID
	}
	if mailItemID := c.Query("mail_item_id"); mailItemID != "" {
		filter.MailItemID = &mailItemID
	}

	msgs, err := h.service.ListMessages(c.Context(), principal.User.ID, filter)
	if err != nil {
		return err
	}
	resp := make([]dto.OutreachMessageWithContactResponse, 0, len(msgs))
	for i := range msgs {
		resp = append(resp, dto.OutreachMessageWithContactResponse{
			OutreachMessageResponse: messageResponse(&msgs[i].OutreachMessage),
			CompanyName:             msgs[i].CompanyName,
			ContactPerson:           msgs[i].ContactPerson,
			UnitNumber:              msgs[i].UnitNumber,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}

// MarkResponded POST /messages/:id/respond.
func (h *MessagesHandler) MarkResponded(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	msg, err := h.service.MarkResponded(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": messageResponse(msg)})
}

func messageResponse(msg *domain.OutreachMessage) dto.OutreachMessageResponse {
	return dto.OutreachMessageResponse{
		ID:             msg.ID,
		ContactID:      msg.ContactID,
		MailItemID:     msg.MailItemID,
		MessageType:    msg.MessageType,
		Channel:        msg.Channel,
		SubjectLine:    msg.SubjectLine,
		MessageContent: msg.MessageContent,
		SentAt:         msg.SentAt,
		Responded:      msg.Responded,
		ResponseDate:   msg.ResponseDate,
		FollowUpNeeded: msg.FollowUpNeeded,
		FollowUpDate:   msg.FollowUpDate,
		Notes:          msg.Notes,
	}
}
