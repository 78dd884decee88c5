package sqlite

import (
	"context"
	"database/sql"

	"github.com/spec-kit/ticketing-api/internal/domain"
	"github.com/spec-kit/ticketing-api/internal/repository"
)

const ticketColumns = `id, title, description, status, created_at`

type ticketRepository struct {
	db dbtx
}

// NewTicketRepository creates a SQLite ticket repository.
func NewTicketRepository(db *sql.DB) repository.TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets (title, description, status, created_at) VALUES (?, ?, ?, ?)`,
		ticket.Title, ticket.Description, string(ticket.Status), ticket.CreatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ticket.ID = id
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	var ticket domain.Ticket
	err := r.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id).Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &ticket, nil
}

// GetForUpdate relies on the transaction holding SQLite's database-wide
// write lock (_txlock=immediate) rather than a row lock.
func (r *ticketRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Ticket, error) {
	return r.GetByID(ctx, id)
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	return requireAffected(r.db.ExecContext(ctx, `UPDATE tickets SET status = ? WHERE id = ?`, string(status), id))
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := []domain.Ticket{}
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
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}
