package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meiway/mailplus-crm/internal/api/http/handlers"
	"github.com/meiway/mailplus-crm/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Contacts       *handlers.ContactsHandler
	MailItems      *handlers.MailItemsHandler
	Messages       *handlers.MessagesHandler
	Templates      *handlers.TemplatesHandler
	Dashboard      *handlers.DashboardHandler
	Maintenance    *handlers.MaintenanceHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/reset/request", cfg.Users.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Users.ConfirmPasswordReset)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Users.ChangePassword)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	contacts := api.Group("/contacts")
	contacts.Post("/", cfg.Contacts.CreateContact)
	contacts.Get("/", cfg.Contacts.ListContacts)
	contacts.Get("/:id", cfg.Contacts.GetContact)
	contacts.Put("/:id", cfg.Contacts.UpdateContact)
	contacts.Delete("/:id", cfg.Contacts.DeleteContact)

	mailItems := api.Group("/mail-items")
	mailItems.Post("/", cfg.MailItems.CreateMailItem)
	mailItems.Get("/", cfg.MailItems.ListMailItems)
	mailItems.Put("/:id/status", cfg.MailItems.UpdateStatus)

	messages := api.Group("/messages")
	messages.Post("/", cfg.Messages.CreateMessage)
	messages.Get("/", cfg.Messages.ListMessages)
	messages.Post("/:id/respond", cfg.Messages.MarkResponded)

	templates := api.Group("/templates")
	templates.Get("/", cfg.Templates.ListTemplates)
	templates.Post("/", cfg.Templates.CreateTemplate)

	api.Get("/dashboard/stats", cfg.Dashboard.GetStats)

	api.Post("/maintenance/reassign-data", cfg.Maintenance.ReassignData)
}
