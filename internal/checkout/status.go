package checkout

// SubmissionStatus tracks one checkout attempt:
// Idle -> Validating -> Submitting -> {Confirmed | Rejected | Failed}.
// Rejected and Failed return to Idle so the user can retry; Confirmed is
// terminal for the attempt.
type SubmissionStatus string

const (
	StatusIdle       SubmissionStatus = "IDLE"
	StatusValidating SubmissionStatus = "VALIDATING"
	StatusSubmitting SubmissionStatus = "SUBMITTING"
	StatusConfirmed  SubmissionStatus = "CONFIRMED"
	StatusRejected   SubmissionStatus = "REJECTED"
	StatusFailed     SubmissionStatus = "FAILED"
)

func (s SubmissionStatus) IsTerminal() bool {
	return s == StatusConfirmed
}

// String representation (for logging)
func (s SubmissionStatus) String() string {
	return string(s)
}

var legalTransitions = map[SubmissionStatus][]SubmissionStatus{
	StatusIdle:       {StatusValidating},
	StatusValidating: {StatusSubmitting, StatusIdle},
	StatusSubmitting: {StatusConfirmed, StatusRejected, StatusFailed},
	StatusRejected:   {StatusIdle},
	StatusFailed:     {StatusIdle},
	// Confirmed ends the attempt; the only way forward is a fresh one.
	StatusConfirmed: {StatusValidating},
}

// CanTransition reports whether moving from s to next is legal.
func (s SubmissionStatus) CanTransition(next SubmissionStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
