package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticketing-api/internal/api/http/handlers"
	"github.com/spec-kit/ticketing-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	WorkOrders     *handlers.WorkOrdersHandler
	Metrics        *handlers.MetricsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Get("/tickets", cfg.Tickets.ListTickets)
	protected.Post("/tickets", cfg.Tickets.CreateTicket)
	protected.Post("/tickets/done", cfg.Tickets.CompleteTicket)
	protected.Get("/tickets/:id", cfg.Tickets.GetTicket)

	protected.Get("/workorders", cfg.WorkOrders.ListWorkOrders)
	protected.Post("/workorders", cfg.WorkOrders.CreateWorkOrder)
	protected.Post("/workorders/sendnotification", cfg.WorkOrders.SendNotification)
	protected.Post("/workorders/accept", cfg.WorkOrders.AcceptWorkOrder)
	protected.Post("/workorders/done", cfg.WorkOrders.CompleteWorkOrder)
	protected.Get("/workorders/:id", cfg.WorkOrders.GetWorkOrder)

	if cfg.Metrics != nil {
		protected.Get("/metrics", cfg.Metrics.Snapshot)
	}
}
