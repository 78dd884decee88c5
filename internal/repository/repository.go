package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticketing-api/internal/domain"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// UserRepository defines persistence access for credential records.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// CreateIfAbsent inserts user unless the username is taken and reports
	// whether a row was written.
	CreateIfAbsent(ctx context.Context, user *domain.User) (bool, error)
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	// GetForUpdate loads a ticket and locks it for the rest of the transaction.
	GetForUpdate(ctx context.Context, id int64) (*domain.Ticket, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
	List(ctx context.Context) ([]domain.Ticket, error)
}

// WorkOrderRepository encapsulates work order persistence.
type WorkOrderRepository interface {
	Create(ctx context.Context, workOrder *domain.WorkOrder) error
	GetByID(ctx context.Context, id int64) (*domain.WorkOrder, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.WorkOrder, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
	MarkNotificationSent(ctx context.Context, id int64) error
	CountUnfinishedByTicket(ctx context.Context, ticketID int64) (int, error)
	List(ctx context.Context) ([]domain.WorkOrder, error)
}

// TxRepositories are repositories bound to a single transaction.
type TxRepositories struct {
	Tickets    TicketRepository
	WorkOrders WorkOrderRepository
}

// Transactor runs a unit of work atomically. The transaction commits when fn
// returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}

// Repositories bundles every store the services depend on.
type Repositories struct {
	Users      UserRepository
	Tickets    TicketRepository
	WorkOrders WorkOrderRepository
	Transactor Transactor
}

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewPostgresRepositories returns Postgres-backed implementations.
func NewPostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:      NewUserRepository(pool),
		Tickets:    NewTicketRepository(pool),
		WorkOrders: NewWorkOrderRepository(pool),
		Transactor: &pgTransactor{pool: pool},
	}
}

type pgTransactor struct {
	pool *pgxpool.Pool
}

func (t *pgTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error {
	return pgx.BeginFunc(ctx, t.pool, func(tx pgx.Tx) error {
		return fn(ctx, TxRepositories{
			Tickets:    &ticketRepository{db: tx},
			WorkOrders: &workOrderRepository{db: tx},
		})
	})
}

const pgForeignKeyViolation = "23503"

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return ErrNotFound
	}
	return err
}

func requireAffected(cmd pgconn.CommandTag, err error) error {
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
