package interfaces

import (
	"context"

	"stopwatchdog/domain"
)

// Notifier delivers watchdog events to humans. Delivery is best effort: implementations
// log failures and never report them to the caller.
//
//go:generate moq -stub -out mock/notifier.go -pkg mock . Notifier
type Notifier interface {
	Notify(ctx context.Context, event domain.Event)
}
