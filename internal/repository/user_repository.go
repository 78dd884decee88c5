package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticketing-api/internal/domain"
)

type userRepository struct {
	db dbtx
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{db: pool}
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT id, username, password_hash
        FROM users WHERE username=$1`

	var user domain.User
	if err := r.db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
	); err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (r *userRepository) CreateIfAbsent(ctx context.Context, user *domain.User) (bool, error) {
	const query = `
        INSERT INTO users (username, password_hash)
        VALUES ($1, $2)
        ON CONFLICT (username) DO NOTHING
        RETURNING id`

	err := r.db.QueryRow(ctx, query, user.Username, user.PasswordHash).Scan(&user.ID)
	if err == nil {
		return true, nil
	}
	if errors.Is(mapError(err), ErrNotFound) {
		return false, nil
	}
	return false, err
}
