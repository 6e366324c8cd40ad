package checkout

// Status is the submission state of a checkout session.
type Status string

const (
	// StatusIdle means no submission is in progress.
	StatusIdle Status = "IDLE"
	// StatusSubmitting means exactly one sale request is in flight. The
	// session rejects further submissions and cart mutations until it leaves
	// this state.
	StatusSubmitting Status = "SUBMITTING"
	// StatusSettled means the last submission was confirmed by the backend.
	StatusSettled Status = "SETTLED"
	// StatusFailed means the last submission was refused or errored; the cart
	// is preserved for correction and explicit re-initiation.
	StatusFailed Status = "FAILED"
)

// IsTerminal reports whether the status is an end state of a submission. A
// terminal session returns to Idle on the next user action.
func (s Status) IsTerminal() bool {
	return s == StatusSettled || s == StatusFailed
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}
