package domain

import (
	"errors"
	"fmt"
)

// Status enumerates lifecycle states shared by tickets and work orders.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusOnProgress Status = "ON_PROGRESS"
	StatusDone       Status = "DONE"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusOnProgress, StatusDone:
		return true
	}
	return false
}

func (s Status) rank() int {
	switch s {
	case StatusOpen:
		return 0
	case StatusOnProgress:
		return 1
	case StatusDone:
		return 2
	}
	return -1
}

// Trigger names the event that moves an entity between statuses.
type Trigger string

const (
	// TriggerAccept moves a work order to ON_PROGRESS.
	TriggerAccept Trigger = "accept"
	// TriggerComplete moves a ticket or work order to DONE.
	TriggerComplete Trigger = "complete"
	// TriggerWorkOrderOpened forces the owning ticket to ON_PROGRESS when a
	// work order is created against it.
	TriggerWorkOrderOpened Trigger = "work_order_opened"
)

// TransitionPolicy selects how strictly transitions are checked.
type TransitionPolicy string

const (
	// PolicyPermissive accepts every trigger from every status.
	PolicyPermissive TransitionPolicy = "permissive"
	// PolicyStrict rejects moves backwards along OPEN -> ON_PROGRESS -> DONE
	// and completing tickets that still have unfinished work orders.
	PolicyStrict TransitionPolicy = "strict"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnknownTrigger    = errors.New("unknown transition trigger")
)

var triggerTargets = map[Trigger]Status{
	TriggerAccept:          StatusOnProgress,
	TriggerComplete:        StatusDone,
	TriggerWorkOrderOpened: StatusOnProgress,
}

// NextStatus returns the status reached by applying trigger to current.
func NextStatus(policy TransitionPolicy, current Status, trigger Trigger) (Status, error) {
	target, ok := triggerTargets[trigger]
	if !ok {
		return current, fmt.Errorf("%w: %q", ErrUnknownTrigger, trigger)
	}
	if !current.Valid() {
		return current, fmt.Errorf("%w: unknown current status %q", ErrInvalidTransition, current)
	}
	if policy == PolicyStrict && target.rank() < current.rank() {
		return current, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
	}
	return target, nil
}

// CanCompleteTicket checks whether a ticket with the given number of
// unfinished work orders may be marked DONE.
func CanCompleteTicket(policy TransitionPolicy, unfinishedWorkOrders int) error {
	if policy == PolicyStrict && unfinishedWorkOrders > 0 {
		return fmt.Errorf("%w: %d work orders not done", ErrInvalidTransition, unfinishedWorkOrders)
	}
	return nil
}

// ParseTransitionPolicy maps a config value onto a policy, defaulting to
// permissive.
func ParseTransitionPolicy(strict bool) TransitionPolicy {
	if strict {
		return PolicyStrict
	}
	return PolicyPermissive
}
