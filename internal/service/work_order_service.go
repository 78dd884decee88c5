package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/ticketing-api/internal/domain"
	"github.com/spec-kit/ticketing-api/internal/events"
	"github.com/spec-kit/ticketing-api/internal/repository"
	apperrors "github.com/spec-kit/ticketing-api/pkg/util/errorutil"
)

// WorkOrderService coordinates work order workflows.
type WorkOrderService struct {
	workOrders repository.WorkOrderRepository
	tx         repository.Transactor
	dispatcher events.Dispatcher
	policy     domain.TransitionPolicy
	now        func() time.Time
}

// WorkOrderCreateInput describes work order creation payload.
type WorkOrderCreateInput struct {
	TicketID   int64
	Details    string
	AssignedTo string
	Internal   bool
}

// NewWorkOrderService constructs the service.
func NewWorkOrderService(deps LifecycleDependencies) *WorkOrderService {
	deps = deps.withDefaults()
	return &WorkOrderService{
		workOrders: deps.WorkOrderRepo,
		tx:         deps.Transactor,
		dispatcher: deps.Dispatcher,
		policy:     deps.Policy,
		now:        deps.Now,
	}
}

// CreateWorkOrder stores an OPEN work order and moves its ticket to
// ON_PROGRESS. Both writes share one transaction.
func (s *WorkOrderService) CreateWorkOrder(ctx context.Context, actor string, input WorkOrderCreateInput) (*domain.WorkOrder, error) {
	if err := requirePositiveID("ticketId", input.TicketID); err != nil {
		return nil, err
	}
	details := strings.TrimSpace(input.Details)
	assignedTo := strings.TrimSpace(input.AssignedTo)
	if details == "" || assignedTo == "" {
		return nil, apperrors.NewValidationError("details and assignedTo required", nil)
	}

	wo := &domain.WorkOrder{
		TicketID:   input.TicketID,
		AssignedTo: assignedTo,
		Details:    details,
		Status:     domain.StatusOpen,
		CreatedAt:  s.now().UTC(),
		Internal:   input.Internal,
	}

	var oldTicketStatus, newTicketStatus domain.Status
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		ticket, err := repos.Tickets.GetForUpdate(ctx, input.TicketID)
		if err != nil {
			return err
		}
		next, err := domain.NextStatus(s.policy, ticket.Status, domain.TriggerWorkOrderOpened)
		if err != nil {
			return err
		}
		if err := repos.Tickets.UpdateStatus(ctx, ticket.ID, next); err != nil {
			return err
		}
		oldTicketStatus, newTicketStatus = ticket.Status, next
		return repos.WorkOrders.Create(ctx, wo)
	})
	if err != nil {
		return nil, lifecycleError(err, "ticket", input.TicketID)
	}

	publishEvent(ctx, s.dispatcher, s.now, events.Event{
		Type:        events.EventWorkOrderCreated,
		TicketID:    wo.TicketID,
		WorkOrderID: wo.ID,
		Actor:       events.Actor{Username: actor},
		Payload:     events.WorkOrderCreatedPayload{AssignedTo: wo.AssignedTo, Internal: wo.Internal},
	})
	if oldTicketStatus != newTicketStatus {
		publishEvent(ctx, s.dispatcher, s.now, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: wo.TicketID,
			Actor:    events.Actor{Username: actor},
			Payload: events.StatusChangedPayload{
				OldStatus: oldTicketStatus,
				NewStatus: newTicketStatus,
				Trigger:   domain.TriggerWorkOrderOpened,
			},
		})
	}
	return wo, nil
}

// GetWorkOrder loads a single work order.
func (s *WorkOrderService) GetWorkOrder(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	if err := requirePositiveID("workOrderId", id); err != nil {
		return nil, err
	}
	wo, err := s.workOrders.GetByID(ctx, id)
	if err != nil {
		return nil, lifecycleError(err, "work order", id)
	}
	return wo, nil
}

// ListWorkOrders returns every work order ordered by id.
func (s *WorkOrderService) ListWorkOrders(ctx context.Context) ([]domain.WorkOrder, error) {
	return s.workOrders.List(ctx)
}

// SendNotification flags the work order as notified. The flag only moves
// from false to true; dispatch is requested once, on that flip.
func (s *WorkOrderService) SendNotification(ctx context.Context, actor string, id int64) (*domain.WorkOrder, error) {
	if err := requirePositiveID("workOrderId", id); err != nil {
		return nil, err
	}

	var (
		wo      *domain.WorkOrder
		flipped bool
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		current, err := repos.WorkOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !current.NotificationSent {
			if err := repos.WorkOrders.MarkNotificationSent(ctx, id); err != nil {
				return err
			}
			current.NotificationSent = true
			flipped = true
		}
		wo = current
		return nil
	})
	if err != nil {
		return nil, lifecycleError(err, "work order", id)
	}

	if flipped {
		publishEvent(ctx, s.dispatcher, s.now, events.Event{
			Type:        events.EventWorkOrderNotificationRequested,
			TicketID:    wo.TicketID,
			WorkOrderID: wo.ID,
			Actor:       events.Actor{Username: actor},
			Payload: events.WorkOrderNotificationPayload{
				AssignedTo: wo.AssignedTo,
				Details:    wo.Details,
				Status:     wo.Status,
				Internal:   wo.Internal,
			},
		})
	}
	return wo, nil
}

// AcceptWorkOrder moves a work order to ON_PROGRESS.
func (s *WorkOrderService) AcceptWorkOrder(ctx context.Context, actor string, id int64) (*domain.WorkOrder, error) {
	return s.transition(ctx, actor, id, domain.TriggerAccept)
}

// CompleteWorkOrder moves a work order to DONE.
func (s *WorkOrderService) CompleteWorkOrder(ctx context.Context, actor string, id int64) (*domain.WorkOrder, error) {
	return s.transition(ctx, actor, id, domain.TriggerComplete)
}

func (s *WorkOrderService) transition(ctx context.Context, actor string, id int64, trigger domain.Trigger) (*domain.WorkOrder, error) {
	if err := requirePositiveID("workOrderId", id); err != nil {
		return nil, err
	}

	var (
		wo        *domain.WorkOrder
		oldStatus domain.Status
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		current, err := repos.WorkOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		next, err := domain.NextStatus(s.policy, current.Status, trigger)
		if err != nil {
			return err
		}
		if err := repos.WorkOrders.UpdateStatus(ctx, id, next); err != nil {
			return err
		}
		oldStatus = current.Status
		current.Status = next
		wo = current
		return nil
	})
	if err != nil {
		return nil, lifecycleError(err, "work order", id)
	}

	if oldStatus != wo.Status {
		publishEvent(ctx, s.dispatcher, s.now, events.Event{
			Type:        events.EventWorkOrderStatusChanged,
			TicketID:    wo.TicketID,
			WorkOrderID: wo.ID,
			Actor:       events.Actor{Username: actor},
			Payload: events.StatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: wo.Status,
				Trigger:   trigger,
			},
		})
	}
	return wo, nil
}
