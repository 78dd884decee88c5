package events

import (
	"time"

	"github.com/spec-kit/ticketing-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated                  EventType = "ticket_created"
	EventTicketStatusChanged            EventType = "ticket_status_changed"
	EventWorkOrderCreated               EventType = "work_order_created"
	EventWorkOrderStatusChanged         EventType = "work_order_status_changed"
	EventWorkOrderNotificationRequested EventType = "work_order_notification_requested"
)

// Actor identifies the authenticated caller behind an event.
type Actor struct {
	Username string `json:"username"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	TicketID    int64       `json:"ticket_id"`
	WorkOrderID int64       `json:"work_order_id,omitempty"`
	Actor       Actor       `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title string `json:"title"`
}

// StatusChangedPayload payload shared by tickets and work orders.
type StatusChangedPayload struct {
	OldStatus domain.Status  `json:"old_status"`
	NewStatus domain.Status  `json:"new_status"`
	Trigger   domain.Trigger `json:"trigger"`
}

// WorkOrderCreatedPayload payload.
type WorkOrderCreatedPayload struct {
	AssignedTo string `json:"assigned_to"`
	Internal   bool   `json:"internal"`
}

// WorkOrderNotificationPayload carries what a notification channel needs to
// reach the assignee.
type WorkOrderNotificationPayload struct {
	AssignedTo string        `json:"assigned_to"`
	Details    string        `json:"details"`
	Status     domain.Status `json:"status"`
	Internal   bool          `json:"internal"`
}
