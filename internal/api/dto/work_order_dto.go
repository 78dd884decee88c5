package dto

import (
	"time"

	"github.com/spec-kit/ticketing-api/internal/domain"
)

// CreateWorkOrderRequest payload.
type CreateWorkOrderRequest struct {
	TicketID   int64  `json:"ticketId" query:"ticketId" form:"ticketId"`
	Details    string `json:"details" query:"details" form:"details"`
	AssignedTo string `json:"assignedTo" query:"assignedTo" form:"assignedTo"`
	IsInternal bool   `json:"isInternal" query:"isInternal" form:"isInternal"`
}

// WorkOrderIDRequest identifies a work order for lifecycle actions.
type WorkOrderIDRequest struct {
	WorkOrderID int64 `json:"workOrderId" query:"workOrderId" form:"workOrderId"`
}

// WorkOrderResponse is the API representation of a work order.
type WorkOrderResponse struct {
	ID               int64         `json:"id"`
	TicketID         int64         `json:"ticket_id"`
	AssignedTo       string        `json:"assigned_to"`
	Details          string        `json:"details"`
	Status           domain.Status `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	Internal         bool          `json:"internal"`
	NotificationSent bool          `json:"notification_sent"`
}

// NewWorkOrderResponse maps a domain work order.
func NewWorkOrderResponse(wo *domain.WorkOrder) WorkOrderResponse {
	return WorkOrderResponse{
		ID:               wo.ID,
		TicketID:         wo.TicketID,
		AssignedTo:       wo.AssignedTo,
		Details:          wo.Details,
		Status:           wo.Status,
		CreatedAt:        wo.CreatedAt,
		Internal:         wo.Internal,
		NotificationSent: wo.NotificationSent,
	}
}
