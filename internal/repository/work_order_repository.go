package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticketing-api/internal/domain"
)

const workOrderColumns = `id, ticket_id, assigned_to, details, status, created_at, internal, notification_sent`

type workOrderRepository struct {
	db dbtx
}

// NewWorkOrderRepository instantiates repository.
func NewWorkOrderRepository(pool *pgxpool.Pool) WorkOrderRepository {
	return &workOrderRepository{db: pool}
}

func (r *workOrderRepository) Create(ctx context.Context, wo *domain.WorkOrder) error {
	const query = `
        INSERT INTO work_orders (ticket_id, assigned_to, details, status, created_at, internal, notification_sent)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id`
	return mapError(r.db.QueryRow(ctx, query,
		wo.TicketID,
		wo.AssignedTo,
		wo.Details,
		wo.Status,
		wo.CreatedAt,
		wo.Internal,
		wo.NotificationSent,
	).Scan(&wo.ID))
}

func (r *workOrderRepository) GetByID(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	return r.fetchSingle(ctx, `SELECT `+workOrderColumns+` FROM work_orders WHERE id=$1`, id)
}

func (r *workOrderRepository) GetForUpdate(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	return r.fetchSingle(ctx, `SELECT `+workOrderColumns+` FROM work_orders WHERE id=$1 FOR UPDATE`, id)
}

func (r *workOrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	const query = `UPDATE work_orders SET status=$1 WHERE id=$2`
	return requireAffected(r.db.Exec(ctx, query, status, id))
}

func (r *workOrderRepository) MarkNotificationSent(ctx context.Context, id int64) error {
	const query = `UPDATE work_orders SET notification_sent=TRUE WHERE id=$1`
	return requireAffected(r.db.Exec(ctx, query, id))
}

func (r *workOrderRepository) CountUnfinishedByTicket(ctx context.Context, ticketID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM work_orders WHERE ticket_id=$1 AND status <> $2`
	var count int
	if err := r.db.QueryRow(ctx, query, ticketID, domain.StatusDone).Scan(&count); err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

func (r *workOrderRepository) List(ctx context.Context) ([]domain.WorkOrder, error) {
	rows, err := r.db.Query(ctx, `SELECT `+workOrderColumns+` FROM work_orders ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWorkOrders(rows)
}

func (r *workOrderRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.WorkOrder, error) {
	row := r.db.QueryRow(ctx, query, arg)
	wo, err := scanWorkOrder(row)
	if err != nil {
		return nil, mapError(err)
	}
	return wo, nil
}

func scanWorkOrder(row pgx.Row) (*domain.WorkOrder, error) {
	var wo domain.WorkOrder
	if err := row.Scan(
		&wo.ID,
		&wo.TicketID,
		&wo.AssignedTo,
		&wo.Details,
		&wo.Status,
		&wo.CreatedAt,
		&wo.Internal,
		&wo.NotificationSent,
	); err != nil {
		return nil, err
	}
	return &wo, nil
}

func scanWorkOrders(rows pgx.Rows) ([]domain.WorkOrder, error) {
	result := []domain.WorkOrder{}
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *wo)
	}
	return result, rows.Err()
}
