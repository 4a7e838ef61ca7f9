//go:build race

package queue

// RaceEnabled is true when the race detector is active.
// Tests that race on Unsafe on purpose skip themselves when it is set.
const RaceEnabled = true
