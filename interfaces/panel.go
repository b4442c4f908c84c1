package interfaces

import (
	"context"

	"stopwatchdog/domain"
)

// Panel is the management panel API used by the watchdog.
//
// Every method performs exactly one HTTP call and never retries. Failures are
// service.MyError with code transient_api_error wrapping a service.APIError.
//
//go:generate moq -stub -out mock/panel.go -pkg mock . Panel
type Panel interface {
	// GetState returns the current lifecycle state of the server.
	GetState(ctx context.Context, serverID string) (domain.State, error)

	// GetName returns the display name of the server. The result may be cached indefinitely.
	GetName(ctx context.Context, serverID string) (string, error)

	// ForceKill sends the kill power signal. The effect is irreversible.
	ForceKill(ctx context.Context, serverID string) error
}
