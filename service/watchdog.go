package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"stopwatchdog/domain"
	"stopwatchdog/helpers"
	"stopwatchdog/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// WatchdogConfig holds the tunables of the stop watchdog.
type WatchdogConfig struct {
	// Servers is the fleet, processed in this order on every pass.
	Servers []string
	// KillAfter is how long a server may stay in stopping before it is killed.
	KillAfter time.Duration
	// CheckInterval is the period of the reconciliation pass.
	CheckInterval time.Duration
	// NotifyOnDetect enables the "stop detected" notification.
	NotifyOnDetect bool
	// NameCacheTTL is the TTL of display names written to the optional name store.
	NameCacheTTL time.Duration
}

// instanceRecord is the per-server state. Created on first observation, never removed.
// All fields are guarded by Watchdog.mu.
type instanceRecord struct {
	displayName string
	pending     *deadline
}

// deadline is the handle of an armed kill timer. Its presence in instanceRecord.pending
// is the watchdog's memory of having seen the server in stopping.
type deadline struct {
	timer interfaces.Timer
	// claimed is set by the deadline callback once it owns the kill decision.
	// A claimed deadline can no longer be cancelled by a pass.
	claimed bool
}

// Watchdog enforces an upper bound on the time a server may spend in stopping.
//
// A reconciliation pass only arms and disarms deadlines. The kill decision belongs to the
// deadline callback, which runs on its own goroutine exactly when the deadline elapses.
type Watchdog struct {
	cfg       WatchdogConfig
	panel     interfaces.Panel
	notifier  interfaces.Notifier
	names     interfaces.Cache[string]
	scheduler interfaces.Scheduler
	liveness  *Liveness
	logger    log.Logger

	// passMu serialises reconciliation passes.
	passMu sync.Mutex

	mu       sync.Mutex
	records  map[string]*instanceRecord
	closed   bool
	inflight sync.WaitGroup
}

// NewWatchdog creates a Watchdog. names is optional (nil disables the second-tier name store);
// every other dependency is required and a nil one panics.
func NewWatchdog(
	cfg WatchdogConfig,
	panel interfaces.Panel,
	notifier interfaces.Notifier,
	names interfaces.Cache[string],
	scheduler interfaces.Scheduler,
	liveness *Liveness,
	logger log.Logger,
) *Watchdog {
	return &Watchdog{
		cfg:       cfg,
		panel:     helpers.NilPanic(panel, "service.watchdog.go: panel is required"),
		notifier:  helpers.NilPanic(notifier, "service.watchdog.go: notifier is required"),
		names:     names,
		scheduler: helpers.NilPanic(scheduler, "service.watchdog.go: scheduler is required"),
		liveness:  helpers.NilPanic(liveness, "service.watchdog.go: liveness is required"),
		logger:    log.With(helpers.NilPanic(logger, "service.watchdog.go: logger is required"), "component", "watchdog"),
		records:   make(map[string]*instanceRecord, len(cfg.Servers)),
	}
}

// Run performs a pass immediately and then one pass every CheckInterval until ctx is done.
// A pass slower than CheckInterval delays the next one instead of overlapping it.
func (w *Watchdog) Run(ctx context.Context) {
	level.Info(w.logger).Log(
		"msg", "Watchdog started",
		"servers", len(w.cfg.Servers),
		"kill_after", w.cfg.KillAfter,
		"check_interval", w.cfg.CheckInterval,
	)

	w.Reconcile(ctx)

	ticker := time.NewTicker(w.cfg.CheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Reconcile(ctx)
		}
	}
}

// Reconcile runs one pass over every configured server. It returns false if the pass was
// skipped because another pass is still running, the watchdog is shut down, or ctx was
// cancelled before the pass finished.
//
// An error for one server is logged and never stops the pass. The liveness mark moves
// unless every server failed.
func (w *Watchdog) Reconcile(ctx context.Context) bool {
	if !w.passMu.TryLock() {
		level.Warn(w.logger).Log("msg", "Previous reconciliation pass still running, skipping tick")
		return false
	}
	defer w.passMu.Unlock()

	if w.isClosed() {
		return false
	}

	failed := 0
	for _, id := range w.cfg.Servers {
		if ctx.Err() != nil {
			return false
		}
		if err := w.reconcileServer(ctx, id); err != nil {
			failed++
			level.Error(w.logger).Log("msg", "Reconcile failed", "server_id", id, "err", err)
		}
	}

	if failed > 0 && failed == len(w.cfg.Servers) {
		level.Warn(w.logger).Log("msg", "Every server failed in this pass, liveness not updated", "failed", failed)
		return true
	}
	w.liveness.MarkProgress()
	return true
}

func (w *Watchdog) reconcileServer(ctx context.Context, id string) error {
	state, err := w.panel.GetState(ctx, id)
	if err != nil {
		return fmt.Errorf("getState failed, err: %w", err)
	}
	name := w.displayName(ctx, id)

	switch state {
	case domain.StateStopping:
		w.arm(ctx, id, name)
	case domain.StateOffline:
		w.disarm(ctx, id, name)
	}
	return nil
}

// arm starts the kill deadline unless one is already pending.
func (w *Watchdog) arm(ctx context.Context, id, name string) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	rec := w.record(id)
	if rec.pending != nil {
		w.mu.Unlock()
		return
	}
	d := &deadline{}
	// The callback takes w.mu first, so it cannot observe d before it is stored.
	d.timer = w.scheduler.AfterFunc(w.cfg.KillAfter, func() { w.onDeadline(id, d) })
	rec.pending = d
	w.mu.Unlock()

	level.Info(w.logger).Log(
		"msg", "Stop detected, deadline armed",
		"server_id", id,
		"server_name", name,
		"kill_after", w.cfg.KillAfter,
	)
	if w.cfg.NotifyOnDetect {
		w.notifier.Notify(ctx, w.event(domain.EventDetected, id, name))
	}
}

// disarm cancels a pending deadline that the callback has not claimed yet.
func (w *Watchdog) disarm(ctx context.Context, id, name string) {
	w.mu.Lock()
	rec := w.records[id]
	if w.closed || rec == nil || rec.pending == nil || rec.pending.claimed {
		w.mu.Unlock()
		return
	}
	rec.pending.timer.Stop()
	rec.pending = nil
	w.mu.Unlock()

	level.Info(w.logger).Log("msg", "Stopped normally", "server_id", id, "server_name", name)
	w.notifier.Notify(ctx, w.event(domain.EventRecovered, id, name))
}

// onDeadline runs on the timer goroutine. It re-checks the state once and kills the server
// if it is still not offline. The handle is discarded whatever happens; there is no retry.
func (w *Watchdog) onDeadline(id string, d *deadline) {
	w.mu.Lock()
	rec := w.records[id]
	if w.closed || rec == nil || rec.pending != d || d.claimed {
		w.mu.Unlock()
		return
	}
	d.claimed = true
	name := rec.displayName
	if name == "" {
		name = id
	}
	w.inflight.Add(1)
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		if rec.pending == d {
			rec.pending = nil
		}
		w.mu.Unlock()
		w.inflight.Done()
	}()

	logger := log.With(w.logger, "server_id", id, "server_name", name)

	// Not derived from the run context: a kill that has started is allowed to finish during shutdown.
	ctx := context.Background()

	state, err := w.panel.GetState(ctx, id)
	if err != nil {
		level.Error(logger).Log("msg", "Kill check failed", "err", err)
		return
	}
	if state == domain.StateOffline {
		level.Info(logger).Log("msg", "Stopped before deadline")
		return
	}

	level.Warn(logger).Log("msg", "Force killing server", "state", state, "kill_after", w.cfg.KillAfter)
	if err := w.panel.ForceKill(ctx, id); err != nil {
		level.Error(logger).Log("msg", "Force kill failed", "err", err)
		return
	}
	w.notifier.Notify(ctx, w.event(domain.EventKilled, id, name))
}

// Shutdown cancels every pending deadline without firing it and makes later passes and
// callbacks no-ops. Callbacks that already claimed their deadline are waited for until
// ctx is done.
func (w *Watchdog) Shutdown(ctx context.Context) error {
	w.mu.Lock()
	w.closed = true
	cancelled := 0
	for _, rec := range w.records {
		if rec.pending != nil && !rec.pending.claimed {
			rec.pending.timer.Stop()
			rec.pending = nil
			cancelled++
		}
	}
	w.mu.Unlock()

	level.Info(w.logger).Log("msg", "Pending deadlines cancelled", "count", cancelled)

	done := make(chan struct{})
	go func() {
		w.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for in-flight kills, err: %w", ctx.Err())
	}
}

// Pending returns the sorted ids of servers with an armed or firing deadline.
func (w *Watchdog) Pending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0)
	for id, rec := range w.records {
		if rec.pending != nil {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func (w *Watchdog) isClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// record returns the record for id, creating it. w.mu must be held.
func (w *Watchdog) record(id string) *instanceRecord {
	rec, ok := w.records[id]
	if !ok {
		rec = &instanceRecord{}
		w.records[id] = rec
	}
	return rec
}

func (w *Watchdog) event(kind domain.EventKind, id, name string) domain.Event {
	return domain.Event{
		Kind:       kind,
		ServerID:   id,
		ServerName: name,
		Timeout:    w.cfg.KillAfter,
	}
}
