package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meiway/mailplus-crm/internal/api/dto"
	"github.com/meiway/mailplus-crm/internal/auth"
	"github.com/meiway/mailplus-crm/internal/service"
	apperrors "github.com/meiway/mailplus-crm/pkg/util/errorutil"
)

// DashboardHandler serves the summary view.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// GetStats GET /dashboard/stats.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	stats, err := h.service.ComputeStats(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}

	recent := make([]dto.MailItemWithContactResponse, 0, len(stats.RecentMailItems))
	for i := range stats.RecentMailItems {
		recent = append(recent, mailItemWithContactResponse(&stats.RecentMailItems[i]))
	}
	overdue := make([]dto.OutreachMessageResponse, 0, len(stats.OverdueFollowups))
	for i := range stats.OverdueFollowups {
		overdue = append(overdue, messageResponse(&stats.OverdueFollowups[i]))
	}

	return c.JSON(fiber.Map{"data": dto.DashboardStatsResponse{
		TotalContacts:    stats.TotalContacts,
		ActiveMailItems:  stats.ActiveMailItems,
		PendingFollowups: stats.PendingFollowups,
		RecentMailItems:  recent,
		OverdueFollowups: overdue,
	}})
}
