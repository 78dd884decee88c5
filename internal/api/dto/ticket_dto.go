package dto

import (
	"time"

	"github.com/spec-kit/ticketing-api/internal/domain"
)

// CreateTicketRequest payload. The ticket-prefixed names take precedence
// over the short ones when both are sent.
type CreateTicketRequest struct {
	TicketTitle       string `json:"ticketTitle" query:"ticketTitle" form:"ticketTitle"`
	TicketDescription string `json:"ticketDescription" query:"ticketDescription" form:"ticketDescription"`
	Title             string `json:"title" query:"title" form:"title"`
	Description       string `json:"description" query:"description" form:"description"`
}

// ResolvedTitle returns whichever title field was supplied.
func (r CreateTicketRequest) ResolvedTitle() string {
	if r.TicketTitle != "" {
		return r.TicketTitle
	}
	return r.Title
}

// ResolvedDescription returns whichever description field was supplied.
func (r CreateTicketRequest) ResolvedDescription() string {
	if r.TicketDescription != "" {
		return r.TicketDescription
	}
	return r.Description
}

// TicketIDRequest identifies a ticket for lifecycle actions.
type TicketIDRequest struct {
	TicketID int64 `json:"ticketId" query:"ticketId" form:"ticketId"`
}

// TicketResponse is the API representation of a ticket.
type TicketResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      domain.Status `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		CreatedAt:   ticket.CreatedAt,
	}
}
