package watch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amonroe/agentmon/internal/aggregate"
	"github.com/amonroe/agentmon/internal/store"
)

// Loop periodically reads the status store, aggregates the result and
// delivers the view to a frame callback.
//
// The loop is strictly serial: one tick is one full read-aggregate-render
// cycle and no two ticks overlap. A tick whose store read fails is logged
// and dropped; the loop keeps running so the dashboard stays available
// through transient filesystem hiccups. Stopping is driven entirely by the
// context passed to [Loop.Run].
type Loop struct {
	store    store.Store
	interval time.Duration
	onFrame  func(aggregate.View)
	logger   *slog.Logger

	// refresh delivers out-of-band wake-ups (e.g. from a [Watcher]) that
	// trigger an immediate tick without resetting the cadence. Nil means
	// ticker-only operation.
	refresh <-chan struct{}
}

// NewLoop creates a refresh loop over st that fires onFrame every interval.
//
// onFrame is invoked from the loop goroutine; it must not block for long or
// frames will fall behind. A nil logger falls back to [slog.Default].
func NewLoop(st store.Store, interval time.Duration, onFrame func(aggregate.View), logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		store:    st,
		interval: interval,
		onFrame:  onFrame,
		logger:   logger,
	}
}

// SetRefresh attaches a channel whose receives trigger an immediate tick.
// Must be called before [Loop.Run].
func (l *Loop) SetRefresh(ch <-chan struct{}) {
	l.refresh = ch
}

// Run executes the loop until ctx is cancelled, starting with an immediate
// tick so the first frame never waits out a full period.
//
// Run always returns nil on cancellation: by the time the context is done
// the caller has no use for a partially completed tick, and per-tick read
// failures were already logged and swallowed.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.tick(ctx)
		case _, ok := <-l.refresh:
			if !ok {
				// Watcher went away; fall back to ticker-only.
				l.refresh = nil
				continue
			}
			l.tick(ctx)
		}
	}
}

// RunOnce performs exactly one read-aggregate cycle and returns the view.
//
// Unlike the loop's self-healing ticks, the one-shot form propagates a read
// failure: a non-interactive caller wants the error, not a silently empty
// board.
func (l *Loop) RunOnce(ctx context.Context) (aggregate.View, error) {
	if err := ctx.Err(); err != nil {
		return aggregate.View{}, err
	}
	all, err := l.store.ReadAll()
	if err != nil {
		return aggregate.View{}, fmt.Errorf("read status store: %w", err)
	}
	view := aggregate.GroupAndRank(all)
	if l.onFrame != nil {
		l.onFrame(view)
	}
	return view, nil
}

// tick runs one cycle, swallowing read errors so the loop never dies.
func (l *Loop) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	all, err := l.store.ReadAll()
	if err != nil {
		l.logger.Warn("status scan failed, skipping tick", "error", err)
		return
	}
	if l.onFrame != nil {
		l.onFrame(aggregate.GroupAndRank(all))
	}
}
