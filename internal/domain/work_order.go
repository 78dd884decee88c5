package domain

import "time"

// WorkOrder is a unit of work spawned against exactly one ticket.
type WorkOrder struct {
	ID               int64
	TicketID         int64
	AssignedTo       string
	Details          string
	Status           Status
	CreatedAt        time.Time
	Internal         bool
	NotificationSent bool
}
