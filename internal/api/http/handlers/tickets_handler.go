package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticketing-api/internal/api/dto"
	"github.com/spec-kit/ticketing-api/internal/service"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	username, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), username, service.TicketCreateInput{
		Title:       req.ResolvedTitle(),
		Description: req.ResolvedDescription(),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// CompleteTicket POST /tickets/done.
func (h *TicketsHandler) CompleteTicket(c *fiber.Ctx) error {
	username, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.TicketIDRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	ticket, err := h.service.CompleteTicket(c.UserContext(), username, req.TicketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.service.ListTickets(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	id, err := pathID(c, "ticketId")
	if err != nil {
		return err
	}
	ticket, err := h.service.GetTicket(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}
