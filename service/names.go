package service

import (
	"context"
	"fmt"

	"github.com/go-kit/log/level"
)

// displayName returns the cached name of id, looking it up on first use.
// Only the pass goroutine calls it, so a lookup for the same id never runs twice at once.
// On failure the id is returned and nothing is cached, so the next pass tries again.
func (w *Watchdog) displayName(ctx context.Context, id string) string {
	w.mu.Lock()
	rec := w.record(id)
	name := rec.displayName
	w.mu.Unlock()
	if name != "" {
		return name
	}

	name, err := w.lookupName(ctx, id)
	if err != nil {
		level.Warn(w.logger).Log("msg", "Name lookup failed, using server id", "server_id", id, "err", err)
		return id
	}

	w.mu.Lock()
	if rec.displayName == "" {
		rec.displayName = name
	}
	name = rec.displayName
	w.mu.Unlock()
	return name
}

// lookupName consults the optional name store, then the panel. Names fetched from the
// panel are written back to the store. Store failures are logged and otherwise ignored.
func (w *Watchdog) lookupName(ctx context.Context, id string) (string, error) {
	if w.names != nil {
		name, err := w.names.ReadValue(ctx, id)
		switch {
		case err == nil && name != "":
			return name, nil
		case err != nil && !IsEntityNotFoundError(err):
			level.Warn(w.logger).Log("msg", "Name store read failed", "server_id", id, "err", err)
		}
	}

	name, err := w.panel.GetName(ctx, id)
	if err != nil {
		return "", fmt.Errorf("getName failed, err: %w", err)
	}
	if name == "" {
		name = id
	}

	if w.names != nil {
		if err := w.names.WriteValue(ctx, id, name, int(w.cfg.NameCacheTTL.Milliseconds())); err != nil {
			level.Warn(w.logger).Log("msg", "Name store write failed", "server_id", id, "err", err)
		}
	}
	return name, nil
}
