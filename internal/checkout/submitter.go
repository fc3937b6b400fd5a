package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/Deneth0077/CSH-MainFront/internal/api"
	"github.com/Deneth0077/CSH-MainFront/internal/domain"
)

// CartClearer is the one cart command checkout needs.
type CartClearer interface {
	Clear(ctx context.Context) domain.CartState
}

// Submitter turns a draft into exactly one order request and reconciles
// the response. The cart is cleared only after a confirmed order.
type Submitter struct {
	client *api.Client
	cart   CartClearer

	inFlight atomic.Bool
	mu       sync.Mutex
	status   SubmissionStatus
}

func NewSubmitter(client *api.Client, cart CartClearer) *Submitter {
	return &Submitter{
		client: client,
		cart:   cart,
		status: StatusIdle,
	}
}

// Status reports the current attempt's state, so callers can disable
// re-submission while one is outstanding.
func (s *Submitter) Status() SubmissionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Submitter) transition(next SubmissionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.status.CanTransition(next) {
		// Transitions are driven by Submit alone, so this is a programming
		// error rather than a runtime condition.
		log.Printf("%v: %s -> %s", IllegalTransitionError, s.status, next)
	}
	s.status = next
}

// Submit validates the draft, issues one POST to the order endpoint and
// normalizes the response. A second call while one is outstanding fails
// with ErrSubmissionInFlight; it is never queued.
func (s *Submitter) Submit(ctx context.Context, draft *domain.OrderDraft) (*domain.OrderConfirmation, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	s.transition(StatusValidating)
	if err := validate(draft); err != nil {
		s.transition(StatusIdle)
		return nil, err
	}

	s.transition(StatusSubmitting)
	confirmation, err := s.send(ctx, draft)
	if err != nil {
		var rejected *OrderRejectedError
		if errors.As(err, &rejected) {
			s.transition(StatusRejected)
		} else {
			s.transition(StatusFailed)
		}
		s.transition(StatusIdle)
		return nil, err
	}

	s.transition(StatusConfirmed)
	s.cart.Clear(ctx)
	return confirmation, nil
}

func validate(draft *domain.OrderDraft) error {
	required := []struct{ field, value string }{
		{"fullName", draft.FullName},
		{"email", draft.Email},
		{"phone", draft.Phone},
		{"address", draft.Address},
		{"paymentMethod", draft.PaymentMethod},
	}
	for _, r := range required {
		if r.value == "" {
			return &ValidationError{Field: r.field}
		}
	}
	if len(draft.Items) == 0 {
		return ErrEmptyCart
	}
	return nil
}

func (s *Submitter) send(ctx context.Context, draft *domain.OrderDraft) (*domain.OrderConfirmation, error) {
	endpoint := s.client.BaseURL() + "/orders"

	req, err := builderFor(draft.PaymentMethod).Build(ctx, endpoint, draft)
	if err != nil {
		return nil, &OrderSubmissionError{Message: genericSubmissionMessage, Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &OrderSubmissionError{Message: genericSubmissionMessage, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &OrderSubmissionError{Message: genericSubmissionMessage, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &OrderSubmissionError{Message: errorMessage(body)}
	}

	return normalize(body)
}
