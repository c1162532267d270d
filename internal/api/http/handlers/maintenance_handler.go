package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meiway/mailplus-crm/internal/api/dto"
	"github.com/meiway/mailplus-crm/internal/auth"
	"github.com/meiway/mailplus-crm/internal/service"
	apperrors "github.com/meiway/mailplus-crm/pkg/util/errorutil"
)

// MaintenanceHandler exposes corrective data operations.
type MaintenanceHandler struct {
	service *service.MaintenanceService
}

// NewMaintenanceHandler constructs handler.
func NewMaintenanceHandler(maintenanceService *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: maintenanceService}
}

// ReassignData POST /maintenance/reassign-data. Moves all contact rows to
// the caller; both the primary and fallback outcomes are reported.
func (h *MaintenanceHandler) ReassignData(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	result, err := h.service.ReassignOwnership(c.Context(), principal.User.ID)
	if err != nil && result == nil {
		return err
	}

	resp := dto.ReassignDataResponse{
		Success:        result.Succeeded(),
		ReassignedRows: result.ReassignedRows,
		PrimaryError:   result.PrimaryError,
		FallbackRows:   result.FallbackRows,
		FallbackError:  result.FallbackError,
	}
	status := fiber.StatusOK
	if !resp.Success {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(fiber.Map{"data": resp})
}
