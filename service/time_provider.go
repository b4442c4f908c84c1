package service

import (
	"time"

	"stopwatchdog/helpers"
	"stopwatchdog/interfaces"
)

// timeProvider implements interfaces.TimeProvider. It returns the current time via the injected now func.
type timeProvider struct {
	now func() time.Time
}

// NewTimeProvider creates a TimeProvider that returns time via the given now func. Panics on nil now.
//
// Called from cmd/main with time.Now().UTC.
func NewTimeProvider(now func() time.Time) interfaces.TimeProvider {
	return &timeProvider{now: helpers.NilPanic(now, "service.time_provider.go: now is required")}
}

func (t *timeProvider) Now() time.Time {
	return t.now()
}

// timerScheduler implements interfaces.Scheduler on top of time.AfterFunc.
type timerScheduler struct{}

// NewScheduler returns the wall-clock scheduler used in production.
func NewScheduler() interfaces.Scheduler {
	return timerScheduler{}
}

func (timerScheduler) AfterFunc(d time.Duration, f func()) interfaces.Timer {
	return time.AfterFunc(d, f)
}
