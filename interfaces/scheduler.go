package interfaces

import "time"

// Timer is a handle to a pending one-shot callback.
type Timer interface {
	// Stop prevents the callback from firing. Returns false if it already fired or was stopped.
	Stop() bool
}

// Scheduler runs one-shot callbacks after a delay. Production code wraps time.AfterFunc;
// tests fire callbacks by hand.
//
//go:generate moq -stub -out mock/scheduler.go -pkg mock . Scheduler
type Scheduler interface {
	// AfterFunc calls f in its own goroutine once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}
