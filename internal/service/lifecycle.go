package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ticketing-api/internal/domain"
	"github.com/spec-kit/ticketing-api/internal/events"
	"github.com/spec-kit/ticketing-api/internal/repository"
	apperrors "github.com/spec-kit/ticketing-api/pkg/util/errorutil"
)

// LifecycleDependencies bundles what the ticket and work order services share.
type LifecycleDependencies struct {
	TicketRepo    repository.TicketRepository
	WorkOrderRepo repository.WorkOrderRepository
	Transactor    repository.Transactor
	Dispatcher    events.Dispatcher
	Policy        domain.TransitionPolicy
	// Now defaults to time.Now.
	Now func() time.Time
}

func (d LifecycleDependencies) withDefaults() LifecycleDependencies {
	if d.Policy == "" {
		d.Policy = domain.PolicyPermissive
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

func requirePositiveID(field string, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError(fmt.Sprintf("%s must be a positive integer", field), map[string]any{field: id})
	}
	return nil
}

// lifecycleError converts repository and transition failures into API errors.
func lifecycleError(err error, resource string, id int64) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	case errors.Is(err, domain.ErrInvalidTransition):
		return apperrors.NewConflict(err.Error(), map[string]any{"id": id})
	}
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return fmt.Errorf("%s %d: %w", resource, id, err)
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, now func() time.Time, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = now().UTC()
	}
	_ = dispatcher.Publish(ctx, event)
}
