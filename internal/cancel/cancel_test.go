package cancel_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/randomizedcoder/prodcons-bench/internal/cancel"
)

func TestContextCanceler(t *testing.T) {
	c := cancel.NewContext(context.Background())

	if c.Done() {
		t.Error("expected Done() = false before Cancel()")
	}

	c.Cancel()

	if !c.Done() {
		t.Error("expected Done() = true after Cancel()")
	}

	// Verify idempotent
	c.Cancel()
	if !c.Done() {
		t.Error("expected Done() = true after second Cancel()")
	}
}

func TestAtomicCanceler(t *testing.T) {
	c := cancel.NewAtomic()

	if c.Done() {
		t.Error("expected Done() = false before Cancel()")
	}

	c.Cancel()

	if !c.Done() {
		t.Error("expected Done() = true after Cancel()")
	}

	// Verify idempotent
	c.Cancel()
	if !c.Done() {
		t.Error("expected Done() = true after second Cancel()")
	}
}

func TestAtomicCanceler_Reset(t *testing.T) {
	c := cancel.NewAtomic()

	c.Cancel()
	if !c.Done() {
		t.Error("expected Done() = true after Cancel()")
	}

	c.Reset()
	if c.Done() {
		t.Error("expected Done() = false after Reset()")
	}
}

func TestContextCanceler_Context(t *testing.T) {
	parent := context.Background()
	c := cancel.NewContext(parent)

	ctx := c.Context()
	if ctx == nil {
		t.Error("expected non-nil context")
	}

	// Context should not be done yet
	select {
	case <-ctx.Done():
		t.Error("expected context to not be done")
	default:
		// OK
	}

	c.Cancel()

	// Context should be done now
	select {
	case <-ctx.Done():
		// OK
	default:
		t.Error("expected context to be done after Cancel()")
	}
}

// Test that both implementations satisfy the interface
func TestCancelerInterface(t *testing.T) {
	testCases := []struct {
		name string
		c    cancel.Canceler
	}{
		{"Context", cancel.NewContext(context.Background())},
		{"Atomic", cancel.NewAtomic()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.c.Done() {
				t.Error("expected Done() = false initially")
			}

			tc.c.Cancel()

			if !tc.c.Done() {
				t.Error("expected Done() = true after Cancel()")
			}
		})
	}
}

func TestContextCanceler_Cause(t *testing.T) {
	c := cancel.NewContext(context.Background())
	if c.Cause() != nil {
		t.Errorf("expected nil cause before cancel, got %v", c.Cause())
	}

	stalled := errors.New("stalled")
	c.CancelCause(stalled)
	c.CancelCause(errors.New("second"))

	if !c.Done() {
		t.Error("expected Done() = true after CancelCause()")
	}
	if !errors.Is(c.Cause(), stalled) {
		t.Errorf("expected first cause to stick, got %v", c.Cause())
	}
}

func TestContextCanceler_ParentCancel(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	c := cancel.NewContext(parent)

	cancelParent()

	if !c.Done() {
		t.Error("expected Done() = true after parent cancelled")
	}
	if !errors.Is(c.Cause(), context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", c.Cause())
	}
}

func TestNew(t *testing.T) {
	if _, ok := cancel.New(cancel.ModeAtomic, context.Background()).(*cancel.AtomicCanceler); !ok {
		t.Error("expected ModeAtomic to build an *AtomicCanceler")
	}
	if _, ok := cancel.New(cancel.ModeContext, context.Background()).(*cancel.ContextCanceler); !ok {
		t.Error("expected ModeContext to build a *ContextCanceler")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    cancel.Mode
		wantErr bool
	}{
		{"atomic", cancel.ModeAtomic, false},
		{" Context ", cancel.ModeContext, false},
		{"channel", 0, true},
	}
	for _, tc := range tests {
		got, err := cancel.ParseMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tc.in, got, tc.want)
		}
		if !tc.wantErr && got.String() != strings.ToLower(strings.TrimSpace(tc.in)) {
			t.Errorf("String() = %q for input %q", got.String(), tc.in)
		}
	}
}
