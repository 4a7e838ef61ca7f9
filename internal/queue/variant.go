package queue

import (
	"fmt"
	"strings"
)

// Variant selects a queue implementation.
type Variant int

const (
	VariantLocked Variant = iota + 1
	VariantLockFree
	VariantChannel
	VariantSharded
	VariantUnsafe
)

var variantNames = map[Variant]string{
	VariantLocked:   "locked",
	VariantLockFree: "lockfree",
	VariantChannel:  "channel",
	VariantSharded:  "sharded",
	VariantUnsafe:   "unsafe",
}

// Variants lists every variant in declaration order.
func Variants() []Variant {
	return []Variant{VariantLocked, VariantLockFree, VariantChannel, VariantSharded, VariantUnsafe}
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Safe reports whether the variant is linearizable under concurrent use.
func (v Variant) Safe() bool {
	return v != VariantUnsafe
}

// ParseVariant maps a name such as "locked" to its Variant.
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for v, name := range variantNames {
		if name == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidVariant, s)
}

// Set implements pflag.Value so a Variant can be bound to a CLI flag.
func (v *Variant) Set(s string) error {
	parsed, err := ParseVariant(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Type implements pflag.Value.
func (v *Variant) Type() string { return "variant" }

// Options configures Build.
type Options struct {
	// Capacity bounds the queue. 0 means unbounded, which only Locked and
	// Unsafe support.
	Capacity int

	// Producers is the number of producer handles a Sharded queue serves.
	Producers int
}

// Validate checks that opts suit variant v.
func (o Options) Validate(v Variant) error {
	if o.Capacity < 0 {
		return fmt.Errorf("%w: %d is negative", ErrCapacity, o.Capacity)
	}
	switch v {
	case VariantLocked, VariantUnsafe:
		return nil
	case VariantLockFree:
		if o.Capacity < 2 {
			return fmt.Errorf("%w: %s needs capacity >= 2, got %d", ErrCapacity, v, o.Capacity)
		}
	case VariantChannel:
		if o.Capacity < 1 {
			return fmt.Errorf("%w: %s needs capacity >= 1, got %d", ErrCapacity, v, o.Capacity)
		}
	case VariantSharded:
		if o.Producers < 1 {
			return fmt.Errorf("%w: %s needs at least one producer", ErrCapacity, v)
		}
		if o.Capacity < o.Producers {
			return fmt.Errorf("%w: %s needs capacity >= producers (%d), got %d",
				ErrCapacity, v, o.Producers, o.Capacity)
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidVariant, v)
	}
	return nil
}

// Build creates a queue of variant v.
func Build[T any](v Variant, opts Options) (Queue[T], error) {
	if err := opts.Validate(v); err != nil {
		return nil, err
	}
	switch v {
	case VariantLocked:
		return NewLocked[T](opts.Capacity), nil
	case VariantLockFree:
		return NewLockFree[T](opts.Capacity), nil
	case VariantChannel:
		return NewChannel[T](opts.Capacity), nil
	case VariantSharded:
		return NewSharded[T](opts.Capacity, opts.Producers)
	default:
		return NewUnsafe[T](opts.Capacity), nil
	}
}
