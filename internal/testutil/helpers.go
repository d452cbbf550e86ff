package testutil

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/war/internal/game/dice"
)

// NewTestSource creates a deterministic dice source for tests
func NewTestSource(seed uint64) *dice.Rand {
	return dice.NewSource(seed)
}

// Rolls scripts a source that yields values in order.
func Rolls(values ...int) *dice.Sequence {
	return dice.NewSequence(values...)
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// AssertPanic asserts that the given function panics
func AssertPanic(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic but none occurred: %v", msgAndArgs)
		}
	}()
	f()
}
