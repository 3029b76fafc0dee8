package scratch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Janitor prunes stale scratch entries on a cron schedule, so abandoned
// autosave snapshots don't accumulate forever.
type Janitor struct {
	store    Pruner
	schedule string
	maxAge   time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
	mu       sync.Mutex
	running  bool
}

// NewJanitor creates a janitor pruning entries older than maxAge on the given
// cron schedule (standard 5-field syntax, e.g. "0 3 * * *" for daily at 3 AM).
func NewJanitor(store Pruner, schedule string, maxAge time.Duration) *Janitor {
	return &Janitor{
		store:    store,
		schedule: schedule,
		maxAge:   maxAge,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "scratch.janitor"),
	}
}

// Start begins scheduled pruning. An empty schedule disables the janitor.
func (j *Janitor) Start(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		return nil
	}
	if j.schedule == "" {
		j.logger.Info("prune schedule not configured, janitor disabled")
		return nil
	}

	if _, err := cron.ParseStandard(j.schedule); err != nil {
		return fmt.Errorf("invalid prune schedule %q: %w", j.schedule, err)
	}

	_, err := j.cron.AddFunc(j.schedule, func() {
		j.prune(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule prune job: %w", err)
	}

	j.cron.Start()
	j.running = true
	j.logger.Info("janitor started", "schedule", j.schedule, "max_age", j.maxAge)
	return nil
}

// Stop halts scheduled pruning and waits for a running prune to finish.
func (j *Janitor) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.running {
		return
	}
	<-j.cron.Stop().Done()
	j.running = false
	j.logger.Info("janitor stopped")
}

// prune runs one pruning pass. Failures are logged, never fatal: pruning is
// housekeeping, not correctness.
func (j *Janitor) prune(ctx context.Context) {
	pruned, err := j.store.PruneOlderThan(ctx, j.maxAge)
	if err != nil {
		j.logger.Warn("prune failed", "error", err)
		return
	}
	if pruned > 0 {
		j.logger.Info("pruned stale scratch entries", "count", pruned)
	}
}
