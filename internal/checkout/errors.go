package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart           = errors.New("cart is empty, nothing to checkout")
	ErrSubmissionInFlight  = errors.New("a submission is already in flight")
	IllegalTransitionError = errors.New("illegal transition of submission status")
)

// ValidationError reports a missing required billing field. It is raised
// before any network I/O.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// OrderRejectedError means the order API explicitly declined the order.
// Message is the server's own wording and is shown verbatim.
type OrderRejectedError struct {
	Message string
}

func (e *OrderRejectedError) Error() string {
	return e.Message
}

// OrderSubmissionError covers transport failures and unusable responses.
type OrderSubmissionError struct {
	Message string
	Err     error
}

func (e *OrderSubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *OrderSubmissionError) Unwrap() error { return e.Err }

const genericSubmissionMessage = "Failed to place order. Please try again."
