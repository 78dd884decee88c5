package sqlite

import (
	"context"
	"database/sql"

	"github.com/spec-kit/ticketing-api/internal/domain"
	"github.com/spec-kit/ticketing-api/internal/repository"
)

const workOrderColumns = `id, ticket_id, assigned_to, details, status, created_at, internal, notification_sent`

type workOrderRepository struct {
	db dbtx
}

// NewWorkOrderRepository creates a SQLite work order repository.
func NewWorkOrderRepository(db *sql.DB) repository.WorkOrderRepository {
	return &workOrderRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkOrder(row scanner) (*domain.WorkOrder, error) {
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

func (r *workOrderRepository) Create(ctx context.Context, wo *domain.WorkOrder) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO work_orders (ticket_id, assigned_to, details, status, created_at, internal, notification_sent)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		wo.TicketID, wo.AssignedTo, wo.Details, string(wo.Status), wo.CreatedAt, wo.Internal, wo.NotificationSent,
	)
	if err != nil {
		return mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	wo.ID = id
	return nil
}

func (r *workOrderRepository) GetByID(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	wo, err := scanWorkOrder(r.db.QueryRowContext(ctx, `SELECT `+workOrderColumns+` FROM work_orders WHERE id = ?`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return wo, nil
}

func (r *workOrderRepository) GetForUpdate(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *workOrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	return requireAffected(r.db.ExecContext(ctx, `UPDATE work_orders SET status = ? WHERE id = ?`, string(status), id))
}

func (r *workOrderRepository) MarkNotificationSent(ctx context.Context, id int64) error {
	return requireAffected(r.db.ExecContext(ctx, `UPDATE work_orders SET notification_sent = 1 WHERE id = ?`, id))
}

func (r *workOrderRepository) CountUnfinishedByTicket(ctx context.Context, ticketID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM work_orders WHERE ticket_id = ? AND status <> ?`,
		ticketID, string(domain.StatusDone),
	).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

func (r *workOrderRepository) List(ctx context.Context) ([]domain.WorkOrder, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+workOrderColumns+` FROM work_orders ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workOrders := []domain.WorkOrder{}
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		workOrders = append(workOrders, *wo)
	}
	return workOrders, rows.Err()
}
