package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stopwatchdog/adapters/myredis"
	"stopwatchdog/adapters/notify"
	"stopwatchdog/adapters/panel"
	"stopwatchdog/handlers"
	"stopwatchdog/interfaces"
	"stopwatchdog/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

const shutdownTimeout = 10 * time.Second

// watchdogRunner is the part of service.Watchdog driven by main.
type watchdogRunner interface {
	Run(ctx context.Context)
	Shutdown(ctx context.Context) error
}

// runWatchdog runs w until ctx is done. Shutdown starts as soon as ctx is done, while the
// current pass may still be unwinding, and its error is returned once Run has also returned.
func runWatchdog(ctx context.Context, w watchdogRunner, timeout time.Duration) error {
	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		shutdownErr <- w.Shutdown(shutdownCtx)
	}()

	w.Run(ctx)
	return <-shutdownErr
}

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting stop watchdog")

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"panel_url", config.PanelURL,
		"servers", len(config.Servers),
		"kill_after", config.KillAfter,
		"check_interval", config.CheckInterval,
		"healthcheck_port", config.HealthPort,
		"application_key", config.Credentials.ApplicationKey != "",
		"webhook", config.WebhookURL != "",
		"redis_addr", config.Redis.Addr,
	)

	httpClient := &http.Client{Timeout: config.HTTPTimeout}

	// Optional Redis name store
	var names interfaces.Cache[string]
	if config.Redis.Addr != "" {
		redisClient, err := myredis.NewRedisUniversalClient(config.Redis.Addr, myredis.WithTimeout(config.HTTPTimeout))
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
			os.Exit(1)
		}
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to connect to Redis", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "Connected to Redis")
		names = myredis.NewNameCache(redisClient, "server-name")
	}

	liveness := service.NewLiveness(service.NewTimeProvider(func() time.Time { return time.Now().UTC() }))

	var watchdog *service.Watchdog
	{
		panelClient := panel.NewClient(config.PanelURL, config.Credentials, httpClient)
		notifier := notify.NewDiscord(config.WebhookURL, httpClient, logger)
		watchdog = service.NewWatchdog(
			service.WatchdogConfig{
				Servers:        config.Servers,
				KillAfter:      config.KillAfter,
				CheckInterval:  config.CheckInterval,
				NotifyOnDetect: config.NotifyOnDetect,
				NameCacheTTL:   config.NameCacheTTL,
			},
			panelClient,
			notifier,
			names,
			service.NewScheduler(),
			liveness,
			logger,
		)
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		e = echo.New()
		e.HideBanner = true
		e.HidePort = true
		service.RegisterErrorHandler(e, logger)
		handlers.RegisterHandlers(e, handlers.NewHTTPServer(liveness, config.StaleAfter(), logger))
	}

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := fmt.Sprintf(":%d", config.HealthPort)
		level.Info(logger).Log("msg", "Healthcheck listening", "addr", addr, "path", "/health")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
		}
	}()

	if err := runWatchdog(ctx, watchdog, shutdownTimeout); err != nil {
		level.Error(logger).Log("msg", "Error during watchdog shutdown", "err", err)
	}
	level.Info(logger).Log("msg", "Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}

	level.Info(logger).Log("msg", "Stop watchdog stopped")
}
