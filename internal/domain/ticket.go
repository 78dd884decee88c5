package domain

import "time"

// Ticket is the aggregate for a reported issue.
type Ticket struct {
	ID          int64
	Title       string
	Description string
	Status      Status
	CreatedAt   time.Time
}
