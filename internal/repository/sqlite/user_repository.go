package sqlite

import (
	"context"
	"database/sql"

	"github.com/spec-kit/ticketing-api/internal/domain"
	"github.com/spec-kit/ticketing-api/internal/repository"
)

// UserRepository stores credential records in SQLite.
type UserRepository struct {
	db dbtx
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a SQLite user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByUsername loads the user with exactly this username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM users WHERE username = ?`, username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// CreateIfAbsent inserts the user unless the username already exists.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, user *domain.User) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?) ON CONFLICT (username) DO NOTHING`,
		user.Username, user.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return false, err
	}
	user.ID = id
	return true, nil
}
