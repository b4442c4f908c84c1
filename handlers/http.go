// Package handlers contains http handlers for the stop watchdog.
package handlers

import (
	"net/http"
	"time"

	"stopwatchdog/helpers"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// LivenessReporter answers whether the reconciliation loop is making progress.
type LivenessReporter interface {
	IsHealthy(staleAfter time.Duration) bool
	LastProgress() time.Time
}

// ServerInterface is the set of routes served on the health port.
type ServerInterface interface {
	// GetHealth (GET /health)
	GetHealth(ectx echo.Context) error
}

// HTTPServer implements ServerInterface.
type HTTPServer struct {
	liveness   LivenessReporter
	staleAfter time.Duration
	logger     log.Logger
}

// NewHTTPServer creates a new HTTPServer. staleAfter is the age of the liveness mark at which
// the service is reported stale (three poll intervals in production).
func NewHTTPServer(liveness LivenessReporter, staleAfter time.Duration, logger log.Logger) *HTTPServer {
	logger = log.WithPrefix(logger, "component", "HTTPServer")
	return &HTTPServer{
		liveness:   helpers.NilPanic(liveness, "handlers.http.go: liveness is required"),
		staleAfter: staleAfter,
		logger:     logger,
	}
}

// GetHealth (GET /health) returns 200 "OK" while the liveness mark is fresh and 500 "STALE" otherwise.
func (h *HTTPServer) GetHealth(ectx echo.Context) error {
	if h.liveness.IsHealthy(h.staleAfter) {
		return ectx.String(http.StatusOK, "OK")
	}

	level.Warn(h.logger).Log(
		"msg", "Health check stale",
		"last_progress", h.liveness.LastProgress().UTC().Format(time.RFC3339),
		"stale_after", h.staleAfter,
	)
	return ectx.String(http.StatusInternalServerError, "STALE")
}

// RegisterHandlers registers the routes of si on e. Every other path is answered by echo's 404.
func RegisterHandlers(e *echo.Echo, si ServerInterface) {
	e.GET("/health", si.GetHealth)
}
