package events

import (
	"context"
	"errors"
	"testing"
)

func TestInMemoryDispatcher(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string

	d.Subscribe(EventWorkOrderCreated, func(ctx context.Context, e Event) error {
		calls = append(calls, "first")
		return errors.New("first failed")
	})
	d.Subscribe(EventWorkOrderCreated, func(ctx context.Context, e Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventTicketCreated, func(ctx context.Context, e Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventWorkOrderCreated, TicketID: 1})
	if err == nil {
		t.Error("expected handler error to be reported")
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("expected both work order handlers to run in order, got %v", calls)
	}
}

func TestInMemoryDispatcher_NoListeners(t *testing.T) {
	d := NewInMemoryDispatcher()
	if err := d.Publish(context.Background(), Event{Type: EventTicketStatusChanged}); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}
