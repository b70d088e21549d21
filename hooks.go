package deepcache

import "time"

// Hooks receives callbacks for every borrow and every unit of work run
// by a client. Implementations must be cheap and non-blocking as they
// are invoked on every call.
type Hooks interface {
	// BorrowObserved is called after each attempt to borrow a connection.
	// The error is nil when a connection was handed out.
	BorrowObserved(elapsed time.Duration, err error)

	// CommandObserved is called after each unit of work completes. The op
	// is the name of the client operation (e.g. "list.range"), not the
	// backend command.
	CommandObserved(op string, elapsed time.Duration, err error)
}

// NopHooks is the default no-op implementation.
type NopHooks struct{}

func (NopHooks) BorrowObserved(time.Duration, error)          {}
func (NopHooks) CommandObserved(string, time.Duration, error) {}
