// Package cancel provides the cooperative cancellation flag that producer and
// consumer tasks poll once per loop iteration.
//
// This package offers two implementations of the Canceler interface:
//   - AtomicCanceler: a single atomic boolean (the default)
//   - ContextCanceler: wraps context.Context
//
// The atomic approach is significantly faster in polling hot-loops where
// Done() is called millions of times per second.
package cancel

import (
	"context"
	"fmt"
	"strings"
)

// Canceler provides cancellation signaling to workers.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Cancel() may be called concurrently with Done()
type Canceler interface {
	// Done returns true if cancellation has been triggered.
	Done() bool

	// Cancel triggers cancellation. Safe to call multiple times.
	Cancel()
}

// Mode selects a Canceler implementation.
type Mode int

const (
	ModeAtomic Mode = iota
	ModeContext
)

func (m Mode) String() string {
	switch m {
	case ModeAtomic:
		return "atomic"
	case ModeContext:
		return "context"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps "atomic" or "context" to its Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "atomic":
		return ModeAtomic, nil
	case "context":
		return ModeContext, nil
	default:
		return 0, fmt.Errorf("cancel: unknown mode %q", s)
	}
}

// Set implements pflag.Value.
func (m *Mode) Set(s string) error {
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *Mode) Type() string { return "mode" }

// New creates a Canceler of the given mode.
//
// A ContextCanceler is derived from parent and fires when parent is done.
// An AtomicCanceler ignores parent; callers bridge it themselves.
func New(m Mode, parent context.Context) Canceler {
	if m == ModeContext {
		return NewContext(parent)
	}
	return NewAtomic()
}
