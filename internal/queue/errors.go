package queue

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

var (
	// ErrEmpty is returned by non-blocking dequeues on an empty queue.
	// It wraps iox.ErrWouldBlock: the caller should retry, not fail.
	ErrEmpty = fmt.Errorf("queue: empty: %w", iox.ErrWouldBlock)

	// ErrFull is returned by non-blocking enqueues on a full bounded queue.
	// It wraps iox.ErrWouldBlock: the caller should retry, not fail.
	ErrFull = fmt.Errorf("queue: full: %w", iox.ErrWouldBlock)

	// ErrClosed is returned by operations on a closed, drained queue.
	ErrClosed = errors.New("queue: closed")

	// ErrConcurrentAccess matches every *ConcurrentAccessError.
	ErrConcurrentAccess = errors.New("queue: concurrent access fault")

	// ErrInvalidVariant is returned by ParseVariant and Build.
	ErrInvalidVariant = errors.New("queue: invalid variant")

	// ErrCapacity is returned by Build when the capacity does not suit the variant.
	ErrCapacity = errors.New("queue: invalid capacity")
)

// ConcurrentAccessError reports structural interference between
// simultaneous operations on an Unsafe queue.
type ConcurrentAccessError struct {
	// Op is the operation that observed the interference.
	Op string
	// Err is the underlying condition, e.g. ErrEmpty for a check-then-act miss.
	Err error
	// Panic holds the recovered value when torn state made the container panic.
	Panic any
}

func (e *ConcurrentAccessError) Error() string {
	switch {
	case e.Panic != nil:
		return fmt.Sprintf("queue: concurrent access fault in %s: panic: %v", e.Op, e.Panic)
	case e.Err != nil:
		return fmt.Sprintf("queue: concurrent access fault in %s: %v", e.Op, e.Err)
	default:
		return "queue: concurrent access fault in " + e.Op
	}
}

func (e *ConcurrentAccessError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrConcurrentAccess) hold for every fault.
func (e *ConcurrentAccessError) Is(target error) bool {
	return target == ErrConcurrentAccess
}

// IsWouldBlock reports whether err means the operation could not proceed
// immediately (ErrEmpty or ErrFull). A concurrent access fault is never
// would-block, even when it wraps ErrEmpty.
func IsWouldBlock(err error) bool {
	if errors.Is(err, ErrConcurrentAccess) {
		return false
	}
	return iox.IsWouldBlock(err)
}
