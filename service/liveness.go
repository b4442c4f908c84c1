package service

import (
	"sync/atomic"
	"time"

	"stopwatchdog/helpers"
	"stopwatchdog/interfaces"
)

// Liveness records when the reconciliation loop last completed a pass.
// Safe for concurrent use: the loop writes, the health endpoint reads.
type Liveness struct {
	clock    interfaces.TimeProvider
	lastMark atomic.Int64 // unix nanoseconds
}

// NewLiveness creates a Liveness whose mark starts at clock.Now().
func NewLiveness(clock interfaces.TimeProvider) *Liveness {
	l := &Liveness{clock: helpers.NilPanic(clock, "service.liveness.go: clock is required")}
	l.lastMark.Store(l.clock.Now().UnixNano())
	return l
}

// MarkProgress moves the mark to now. Called once per completed reconciliation pass.
func (l *Liveness) MarkProgress() {
	l.lastMark.Store(l.clock.Now().UnixNano())
}

// LastProgress returns the current mark.
func (l *Liveness) LastProgress() time.Time {
	return time.Unix(0, l.lastMark.Load())
}

// IsHealthy reports whether the last mark is younger than staleAfter.
func (l *Liveness) IsHealthy(staleAfter time.Duration) bool {
	return l.clock.Now().Sub(l.LastProgress()) < staleAfter
}
