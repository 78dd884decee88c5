package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/ticketing-api/internal/config"
	"github.com/spec-kit/ticketing-api/internal/domain"
	"github.com/spec-kit/ticketing-api/internal/events"
	"github.com/spec-kit/ticketing-api/internal/repository"
	apperrors "github.com/spec-kit/ticketing-api/pkg/util/errorutil"
)

var testNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:             "service-test-secret",
		Issuer:                "ticketing-api",
		Audience:              "ticketing-clients",
		AccessTokenTTLMinutes: 180,
		BcryptCost:            4,
	}
}

// memStore is an in-memory implementation of every repository. Transactions
// snapshot the maps and restore them when the unit of work fails.
type memStore struct {
	mu         sync.Mutex
	users      map[string]domain.User
	tickets    map[int64]domain.Ticket
	workOrders map[int64]domain.WorkOrder
	nextUser   int64
	nextTicket int64
	nextWO     int64

	// failWorkOrderCreate, when set, is returned by WorkOrders.Create.
	failWorkOrderCreate error
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[string]domain.User{},
		tickets:    map[int64]domain.Ticket{},
		workOrders: map[int64]domain.WorkOrder{},
	}
}

func (s *memStore) repositories() repository.Repositories {
	return repository.Repositories{
		Users:      &memUserRepo{s: s},
		Tickets:    &memTicketRepo{s: s},
		WorkOrders: &memWorkOrderRepo{s: s},
		Transactor: &memTransactor{s: s},
	}
}

func (s *memStore) ticket(id int64) (domain.Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	return t, ok
}

func (s *memStore) workOrder(id int64) (domain.WorkOrder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wo, ok := s.workOrders[id]
	return wo, ok
}

func (s *memStore) workOrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workOrders)
}

type memTransactor struct {
	s *memStore
}

func (t *memTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	t.s.mu.Lock()
	tickets := make(map[int64]domain.Ticket, len(t.s.tickets))
	for k, v := range t.s.tickets {
		tickets[k] = v
	}
	workOrders := make(map[int64]domain.WorkOrder, len(t.s.workOrders))
	for k, v := range t.s.workOrders {
		workOrders[k] = v
	}
	nextTicket, nextWO := t.s.nextTicket, t.s.nextWO
	t.s.mu.Unlock()

	err := fn(ctx, repository.TxRepositories{
		Tickets:    &memTicketRepo{s: t.s},
		WorkOrders: &memWorkOrderRepo{s: t.s},
	})
	if err != nil {
		t.s.mu.Lock()
		t.s.tickets, t.s.workOrders = tickets, workOrders
		t.s.nextTicket, t.s.nextWO = nextTicket, nextWO
		t.s.mu.Unlock()
	}
	return err
}

type memUserRepo struct {
	s *memStore
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *memUserRepo) CreateIfAbsent(_ context.Context, user *domain.User) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.Username]; ok {
		return false, nil
	}
	r.s.nextUser++
	user.ID = r.s.nextUser
	r.s.users[user.Username] = *user
	return true, nil
}

type memTicketRepo struct {
	s *memStore
}

func (r *memTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextTicket++
	ticket.ID = r.s.nextTicket
	r.s.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *memTicketRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Ticket, error) {
	return r.GetByID(ctx, id)
}

func (r *memTicketRepo) UpdateStatus(_ context.Context, id int64, status domain.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return repository.ErrNotFound
	}
	t.Status = status
	r.s.tickets[id] = t
	return nil
}

func (r *memTicketRepo) List(_ context.Context) ([]domain.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Ticket, 0, len(r.s.tickets))
	for _, t := range r.s.tickets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memWorkOrderRepo struct {
	s *memStore
}

func (r *memWorkOrderRepo) Create(_ context.Context, wo *domain.WorkOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWorkOrderCreate != nil {
		return r.s.failWorkOrderCreate
	}
	if _, ok := r.s.tickets[wo.TicketID]; !ok {
		return repository.ErrNotFound
	}
	r.s.nextWO++
	wo.ID = r.s.nextWO
	r.s.workOrders[wo.ID] = *wo
	return nil
}

func (r *memWorkOrderRepo) GetByID(_ context.Context, id int64) (*domain.WorkOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wo, ok := r.s.workOrders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &wo, nil
}

func (r *memWorkOrderRepo) GetForUpdate(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *memWorkOrderRepo) UpdateStatus(_ context.Context, id int64, status domain.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wo, ok := r.s.workOrders[id]
	if !ok {
		return repository.ErrNotFound
	}
	wo.Status = status
	r.s.workOrders[id] = wo
	return nil
}

func (r *memWorkOrderRepo) MarkNotificationSent(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wo, ok := r.s.workOrders[id]
	if !ok {
		return repository.ErrNotFound
	}
	wo.NotificationSent = true
	r.s.workOrders[id] = wo
	return nil
}

func (r *memWorkOrderRepo) CountUnfinishedByTicket(_ context.Context, ticketID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, wo := range r.s.workOrders {
		if wo.TicketID == ticketID && wo.Status != domain.StatusDone {
			n++
		}
	}
	return n, nil
}

func (r *memWorkOrderRepo) List(_ context.Context) ([]domain.WorkOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.WorkOrder, 0, len(r.s.workOrders))
	for _, wo := range r.s.workOrders {
		out = append(out, wo)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// recordingDispatcher keeps every published event.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) ofType(t events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, e := range d.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func errorCode(err error) string {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
