// Package clock abstracts wall-clock time so lifecycle and quota decisions
// are deterministic under test.
package clock

import "time"

type Clock interface {
	Now() time.Time // UTC
}

// Real reads the system clock.
type Real struct{}

func (Real) Now() time.Time { return time.Now().UTC() }

// Fixed always reports the same instant. For tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// NewFixed is a convenience for tests.
func NewFixed(t time.Time) Fixed { return Fixed{T: t.UTC()} }
