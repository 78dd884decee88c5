package domain

// User is an account allowed to obtain access tokens.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}
