package clock

import "errors"

var (
	// ErrInvalidHost matches every *InvalidHostError.
	ErrInvalidHost = errors.New("invalid host")
	// ErrStopped is returned by Start once the clock has been stopped.
	ErrStopped = errors.New("clock stopped")
)

// InvalidHostError means the host cannot carry the clock's layers. It is only
// returned from New.
type InvalidHostError struct {
	Reason string
	Err    error
}

func (e *InvalidHostError) Error() string {
	if e.Err != nil {
		return "invalid host: " + e.Reason + ": " + e.Err.Error()
	}
	return "invalid host: " + e.Reason
}

func (e *InvalidHostError) Is(target error) bool { return target == ErrInvalidHost }

func (e *InvalidHostError) Unwrap() error { return e.Err }
