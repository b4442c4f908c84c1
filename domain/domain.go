package domain

import (
	"strings"
	"time"
)

// State is a lifecycle state of a server as reported by the panel.
type State string

const (
	StateRunning  State = "running"
	StateStarting State = "starting"
	StateStopping State = "stopping"
	StateOffline  State = "offline"
	// StateOther covers anything the panel reports that the watchdog does not act on.
	StateOther State = "other"
)

// ParseState maps the panel's current_state value to a State. Unknown values become StateOther.
func ParseState(s string) State {
	switch State(strings.ToLower(strings.TrimSpace(s))) {
	case StateRunning:
		return StateRunning
	case StateStarting:
		return StateStarting
	case StateStopping:
		return StateStopping
	case StateOffline:
		return StateOffline
	default:
		return StateOther
	}
}

// EventKind is the category of a watchdog notification.
type EventKind string

const (
	EventDetected  EventKind = "detected"
	EventKilled    EventKind = "killed"
	EventRecovered EventKind = "recovered"
)

// Event is one watchdog notification.
type Event struct {
	Kind       EventKind
	ServerID   string        // panel server identifier
	ServerName string        // display name, falls back to ServerID
	Timeout    time.Duration // kill deadline, set for every kind
}
