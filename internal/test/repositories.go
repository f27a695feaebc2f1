package test

import (
	"context"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
)

// OrderRepositoryStub keeps orders in memory and enforces the
// stripe id and (event, buyer) uniqueness like the database does.
type OrderRepositoryStub struct {
	FindFn          func(context.Context, string, string) (*model.Order, error)
	GetByStripeIDFn func(context.Context, string) (*model.Order, error)
	InsertFn        func(context.Context, model.Order) (*model.Order, error)
	ListByBuyerFn   func(context.Context, string, int, int) ([]model.OrderView, int, error)
	ListByEventFn   func(context.Context, string, string) ([]model.OrderView, error)

	mu       sync.Mutex
	Orders   []model.Order
	Attempts []model.Order
}

// FindByEventAndBuyer returns stored order for the pair.
func (s *OrderRepositoryStub) FindByEventAndBuyer(ctx context.Context, eventID, buyerID string) (*model.Order, error) {
	if s.FindFn != nil {
		return s.FindFn(ctx, eventID, buyerID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Orders {
		if o.EventID == eventID && o.BuyerID == buyerID {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByStripeID returns stored order by payment session id.
func (s *OrderRepositoryStub) GetByStripeID(ctx context.Context, stripeID string) (*model.Order, error) {
	if s.GetByStripeIDFn != nil {
		return s.GetByStripeIDFn(ctx, stripeID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Orders {
		if o.StripeID == stripeID {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Insert records the attempt and stores the order unless it violates uniqueness.
func (s *OrderRepositoryStub) Insert(ctx context.Context, order model.Order) (*model.Order, error) {
	s.mu.Lock()
	s.Attempts = append(s.Attempts, order)
	s.mu.Unlock()
	if s.InsertFn != nil {
		return s.InsertFn(ctx, order)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Orders {
		if o.StripeID == order.StripeID || (o.EventID == order.EventID && o.BuyerID == order.BuyerID) {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	order.CreatedAt = time.Now()
	s.Orders = append(s.Orders, order)
	return &order, nil
}

// ListByBuyer returns stored orders for the buyer.
func (s *OrderRepositoryStub) ListByBuyer(ctx context.Context, buyerID string, limit, offset int) ([]model.OrderView, int, error) {
	if s.ListByBuyerFn != nil {
		return s.ListByBuyerFn(ctx, buyerID, limit, offset)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []model.OrderView
	for i := len(s.Orders) - 1; i >= 0; i-- {
		if s.Orders[i].BuyerID == buyerID {
			all = append(all, model.OrderView{Order: s.Orders[i]})
		}
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// ListByEvent returns stored orders for the event matching search by buyer id.
func (s *OrderRepositoryStub) ListByEvent(ctx context.Context, eventID, search string) ([]model.OrderView, error) {
	if s.ListByEventFn != nil {
		return s.ListByEventFn(ctx, eventID, search)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.OrderView
	for _, o := range s.Orders {
		if o.EventID != eventID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(o.BuyerID), strings.ToLower(search)) {
			continue
		}
		result = append(result, model.OrderView{Order: o})
	}
	return result, nil
}

// Count returns the number of stored orders.
func (s *OrderRepositoryStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Orders)
}

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	UpsertFn        func(context.Context, model.Identity) (*model.User, error)
	GetByIDFn       func(context.Context, string) (*model.User, error)
	UpdateProfileFn func(context.Context, string, model.Profile) (*model.User, error)
	DeleteFn        func(context.Context, string, model.OrderDeletePolicy) error

	Users   map[string]*model.User
	Deleted []DeleteCall
	Err     error
}

// DeleteCall captures user deletion arguments.
type DeleteCall struct {
	ID     string
	Policy model.OrderDeletePolicy
}

// NewUserRepositoryStub constructs stub repository with initialized map.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{Users: make(map[string]*model.User)}
}

// Upsert stores identity fields.
func (s *UserRepositoryStub) Upsert(ctx context.Context, identity model.Identity) (*model.User, error) {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, identity)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	user := s.ensure(identity.ID)
	user.Identity = identity
	return user, nil
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateProfile stores profile and marks onboarding complete.
func (s *UserRepositoryStub) UpdateProfile(ctx context.Context, id string, profile model.Profile) (*model.User, error) {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, id, profile)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	user := s.ensure(id)
	user.Profile = profile
	user.HasCompletedProfile = true
	return user, nil
}

// Delete records the call and removes the user.
func (s *UserRepositoryStub) Delete(ctx context.Context, id string, policy model.OrderDeletePolicy) error {
	s.Deleted = append(s.Deleted, DeleteCall{ID: id, Policy: policy})
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id, policy)
	}
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Users[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Users, id)
	return nil
}

func (s *UserRepositoryStub) ensure(id string) *model.User {
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	user, ok := s.Users[id]
	if !ok {
		user = &model.User{Identity: model.Identity{ID: id}, CreatedAt: time.Now()}
		s.Users[id] = user
	}
	return user
}

// EventRepositoryStub stores events in-memory for tests.
type EventRepositoryStub struct {
	CreateFn  func(context.Context, model.Event) (*model.Event, error)
	GetByIDFn func(context.Context, string) (*model.Event, error)

	Events map[string]*model.Event
}

// Create stores the event.
func (s *EventRepositoryStub) Create(ctx context.Context, event model.Event) (*model.Event, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, event)
	}
	if s.Events == nil {
		s.Events = make(map[string]*model.Event)
	}
	if _, ok := s.Events[event.ID]; ok {
		return nil, domainErrors.ErrAlreadyExists
	}
	event.CreatedAt = time.Now()
	s.Events[event.ID] = &event
	return &event, nil
}

// GetByID returns stored event or not found.
func (s *EventRepositoryStub) GetByID(ctx context.Context, id string) (*model.Event, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if event, ok := s.Events[id]; ok {
		return event, nil
	}
	return nil, domainErrors.ErrNotFound
}
