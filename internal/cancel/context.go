package cancel

import "context"

// ContextCanceler wraps context.Context for cancellation signaling.
//
// This is the standard library approach. Each call to Done() performs
// a select on ctx.Done(), which has overhead from channel operations.
type ContextCanceler struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
}

// NewContext creates a ContextCanceler from a parent context.
func NewContext(parent context.Context) *ContextCanceler {
	ctx, cancel := context.WithCancelCause(parent)
	return &ContextCanceler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Done returns true if the context has been cancelled.
//
// This performs a non-blocking select on ctx.Done().
func (c *ContextCanceler) Done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Cancel triggers cancellation of the context with context.Canceled.
func (c *ContextCanceler) Cancel() {
	c.cancel(nil)
}

// CancelCause triggers cancellation and records cause.
// Only the first cause sticks.
func (c *ContextCanceler) CancelCause(cause error) {
	c.cancel(cause)
}

// Cause returns why the context was cancelled, or nil.
func (c *ContextCanceler) Cause() error {
	return context.Cause(c.ctx)
}

// Context returns the underlying context.Context.
// Useful for passing to functions that expect a context.
func (c *ContextCanceler) Context() context.Context {
	return c.ctx
}
