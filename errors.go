package deepcache

import (
	"errors"
	"fmt"
)

var (
	// ErrPoolExhausted is returned when the borrow timeout elapses.
	ErrPoolExhausted = errors.New("no connection available in pool")

	// ErrPoolClosed is returned when borrowing from a closed pool.
	ErrPoolClosed = errors.New("pool is closed")

	// ErrEmptyKey is returned by operations which reject a blank key
	// before touching the backend.
	ErrEmptyKey = errors.New("empty key")

	// ErrNoValues is returned by variadic operations invoked without
	// any values.
	ErrNoValues = errors.New("no values given")

	// ErrInvalidDeadline is returned when a deadline string cannot be
	// parsed with DeadlineLayout.
	ErrInvalidDeadline = errors.New("invalid deadline")
)

// OpError describes a failed operation. The value returned alongside an
// OpError is always the neutral value documented for that operation.
type OpError struct {
	Op  string
	Key string
	Err error
}

func (e *OpError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// DecodeError is returned by typed accessors when a stored value cannot
// be decoded by the codec. The connection used to read the value is not
// affected.
type DecodeError struct {
	Key string
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsConnectionError returns true if err was caused by a failure of the
// underlying connection rather than an error reply from the server.
func IsConnectionError(err error) bool {
	var target connErr
	return errors.As(err, &target)
}
