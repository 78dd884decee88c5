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

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	tx         repository.Transactor
	dispatcher events.Dispatcher
	policy     domain.TransitionPolicy
	now        func() time.Time
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
}

// NewTicketService constructs the service.
func NewTicketService(deps LifecycleDependencies) *TicketService {
	deps = deps.withDefaults()
	return &TicketService{
		tickets:    deps.TicketRepo,
		tx:         deps.Transactor,
		dispatcher: deps.Dispatcher,
		policy:     deps.Policy,
		now:        deps.Now,
	}
}

// CreateTicket stores a new OPEN ticket.
func (s *TicketService) CreateTicket(ctx context.Context, actor string, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		Status:      domain.StatusOpen,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, s.now, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    events.Actor{Username: actor},
		Payload:  events.TicketCreatedPayload{Title: ticket.Title},
	})
	return ticket, nil
}

// GetTicket loads a single ticket.
func (s *TicketService) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	if err := requirePositiveID("ticketId", id); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, lifecycleError(err, "ticket", id)
	}
	return ticket, nil
}

// ListTickets returns every ticket ordered by id.
func (s *TicketService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.List(ctx)
}

// CompleteTicket marks a ticket DONE. Under the strict policy tickets with
// unfinished work orders are rejected.
func (s *TicketService) CompleteTicket(ctx context.Context, actor string, id int64) (*domain.Ticket, error) {
	if err := requirePositiveID("ticketId", id); err != nil {
		return nil, err
	}

	var (
		ticket    *domain.Ticket
		oldStatus domain.Status
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		current, err := repos.Tickets.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s.policy == domain.PolicyStrict {
			unfinished, err := repos.WorkOrders.CountUnfinishedByTicket(ctx, id)
			if err != nil {
				return err
			}
			if err := domain.CanCompleteTicket(s.policy, unfinished); err != nil {
				return err
			}
		}
		next, err := domain.NextStatus(s.policy, current.Status, domain.TriggerComplete)
		if err != nil {
			return err
		}
		if err := repos.Tickets.UpdateStatus(ctx, id, next); err != nil {
			return err
		}
		oldStatus = current.Status
		current.Status = next
		ticket = current
		return nil
	})
	if err != nil {
		return nil, lifecycleError(err, "ticket", id)
	}

	if oldStatus != ticket.Status {
		publishEvent(ctx, s.dispatcher, s.now, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			Actor:    events.Actor{Username: actor},
			Payload: events.StatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
				Trigger:   domain.TriggerComplete,
			},
		})
	}
	return ticket, nil
}
