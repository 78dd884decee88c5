package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticketing-api/internal/domain"
)

const ticketColumns = `id, title, description, status, created_at`

type ticketRepository struct {
	db dbtx
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{db: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, status, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	return mapError(r.db.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.CreatedAt,
	).Scan(&ticket.ID))
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	return r.fetchSingle(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id=$1`, id)
}

func (r *ticketRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Ticket, error) {
	return r.fetchSingle(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id=$1 FOR UPDATE`, id)
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	const query = `UPDATE tickets SET status=$1 WHERE id=$2`
	return requireAffected(r.db.Exec(ctx, query, status, id))
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.CreatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	result := []domain.Ticket{}
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Title,
			&ticket.Description,
			&ticket.Status,
			&ticket.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
