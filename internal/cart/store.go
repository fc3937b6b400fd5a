package cart

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/Deneth0077/CSH-MainFront/internal/cart/persistence"
	"github.com/Deneth0077/CSH-MainFront/internal/domain"
)

// Listener observes every cart transition. Listeners run synchronously
// inside Dispatch, so by the time a command returns every dependent has
// seen the new state.
type Listener func(state domain.CartState)

// Store is the single source of truth for the cart. All mutation goes
// through Dispatch, which applies the pure domain transition, persists the
// result and fans it out to listeners before accepting the next command.
type Store struct {
	mu        sync.Mutex
	state     domain.CartState
	persister persistence.CartPersister
	listeners []Listener
}

func NewStore(p persistence.CartPersister) *Store {
	return &Store{
		state:     domain.CartState{Items: []domain.CartItem{}},
		persister: p,
	}
}

// Restore seeds the store from persisted state. A missing or unreadable
// record falls back to the empty cart; corruption is logged, never
// surfaced.
func (s *Store) Restore(ctx context.Context) {
	state, err := s.persister.Load(ctx)
	if err != nil {
		if !errors.Is(err, persistence.ErrNotFound) {
			log.Printf("restore cart failed, starting empty: %v", err)
		}
		return
	}
	if state.Items == nil {
		state.Items = []domain.CartItem{}
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Dispatch applies one command and returns the resulting state.
func (s *Store) Dispatch(ctx context.Context, cmd domain.CartCommand) domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.Apply(s.state, cmd)

	if err := s.persister.Save(ctx, s.state); err != nil {
		log.Printf("persist cart failed: %v", err)
	}

	for _, fn := range s.listeners {
		fn(s.state)
	}

	return s.state
}

func (s *Store) AddItem(ctx context.Context, p domain.ProductSummary) domain.CartState {
	return s.Dispatch(ctx, domain.AddItem(p))
}

func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) domain.CartState {
	return s.Dispatch(ctx, domain.UpdateQuantity(productID, quantity))
}

func (s *Store) RemoveItem(ctx context.Context, productID string) domain.CartState {
	return s.Dispatch(ctx, domain.RemoveItem(productID))
}

func (s *Store) Clear(ctx context.Context) domain.CartState {
	return s.Dispatch(ctx, domain.ClearCart())
}

// State returns a snapshot of the current cart. The items slice is a copy;
// callers can hold it across later mutations.
func (s *Store) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.CartItem, len(s.state.Items))
	copy(items, s.state.Items)
	return domain.CartState{Items: items, Total: s.state.Total}
}

// Subscribe registers a listener for all subsequent transitions.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
