package domain

import "time"

// IssuedToken describes a signed access token handed to a caller.
type IssuedToken struct {
	Value     string
	ID        string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
