package agentmon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/amonroe/agentmon/internal/aggregate"
	"github.com/amonroe/agentmon/internal/store"
	"github.com/amonroe/agentmon/internal/watch"
)

const (
	defaultRefreshInterval = time.Second
	minRefreshInterval     = 100 * time.Millisecond
)

// Monitor is the reader side of the status board: it polls the status
// directory, aggregates what it finds and delivers ordered views to a
// frame handler.
//
// Monitor is created with [New] using functional options and driven with
// [Monitor.Start]. The typical lifecycle is:
//
//	mon, err := agentmon.New(
//	    agentmon.WithStatusDir(dir),
//	    agentmon.WithFrameHandler(render),
//	)
//	if err != nil {
//	    slog.Error("failed to create monitor", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	mon.Start(ctx) // blocks until context cancelled
//
// The caller controls the lifecycle via the context. Cancel the context to
// stop the refresh loop.
type Monitor struct {
	statusDir   string
	refresh     time.Duration
	logger      *slog.Logger
	onFrame     func(View)
	fileWatcher bool
}

// New creates a [Monitor] with the given options.
//
// A status directory must be configured via [WithStatusDir]; everything
// else has defaults: a 1 second refresh interval, [slog.Default] for
// logging, filesystem watching enabled, and no frame handler (useful when
// only [Monitor.Snapshot] is needed).
func New(opts ...Option) (*Monitor, error) {
	cfg := &monConfig{
		refresh:     defaultRefreshInterval,
		fileWatcher: true,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.statusDir == "" {
		return nil, errors.New("a status directory is required")
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Monitor{
		statusDir:   cfg.statusDir,
		refresh:     cfg.refresh,
		logger:      logger,
		onFrame:     cfg.onFrame,
		fileWatcher: cfg.fileWatcher,
	}, nil
}

// StatusDir returns the directory the monitor reads from.
func (m *Monitor) StatusDir() string {
	return m.statusDir
}

// RefreshInterval returns the configured tick period.
func (m *Monitor) RefreshInterval() time.Duration {
	return m.refresh
}

// Start runs the refresh loop until ctx is cancelled.
//
// Every tick reads the whole status directory, ranks the result and calls
// the frame handler. A tick that fails to read is logged and skipped; the
// loop itself never stops on store errors. When filesystem watching is
// enabled, changes under the status directory trigger an immediate extra
// refresh between ticks.
//
// The status directory is created if missing. Start returns nil on
// graceful shutdown.
func (m *Monitor) Start(ctx context.Context) error {
	if err := os.MkdirAll(m.statusDir, 0o755); err != nil {
		return fmt.Errorf("create status dir: %w", err)
	}

	m.logger.Info("monitor starting",
		"status_dir", m.statusDir,
		"refresh", m.refresh.String(),
	)

	loop := watch.NewLoop(store.NewFileStore(m.statusDir), m.refresh, m.deliverFrame, m.logger)

	if m.fileWatcher {
		watcher := watch.NewWatcher(m.statusDir, m.logger)
		if err := watcher.Start(ctx); err != nil {
			// The ticker alone keeps the board fresh; degrade quietly.
			m.logger.Warn("filesystem watcher unavailable, falling back to polling only", "error", err)
		} else {
			loop.SetRefresh(watcher.Events())
		}
	}

	err := loop.Run(ctx)
	m.logger.Info("monitor stopped")
	return err
}

// Snapshot performs a single read-aggregate cycle and returns the view,
// without invoking the frame handler. Used for one-shot, non-interactive
// rendering; unlike the loop's ticks, a read failure is returned.
func (m *Monitor) Snapshot(ctx context.Context) (View, error) {
	loop := watch.NewLoop(store.NewFileStore(m.statusDir), m.refresh, nil, m.logger)
	av, err := loop.RunOnce(ctx)
	if err != nil {
		return View{}, err
	}
	return viewFromAggregate(av, time.Now()), nil
}

// deliverFrame converts an internal view and hands it to the frame handler.
func (m *Monitor) deliverFrame(av aggregate.View) {
	if m.onFrame == nil {
		return
	}
	view := viewFromAggregate(av, time.Now())
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("frame handler panicked", "panic", r)
		}
	}()
	m.onFrame(view)
}

// Reporter is the writer side of the status board, used by agent processes
// to publish and clear their own records.
//
// Reporters from independent processes are safe to use concurrently: each
// write replaces its record atomically and never touches other keys.
type Reporter struct {
	store *store.FileStore
}

// NewReporter creates a [Reporter] publishing into statusDir.
func NewReporter(statusDir string) *Reporter {
	return &Reporter{store: store.NewFileStore(statusDir)}
}

// Report validates and publishes a record, replacing any previous record
// for the same (Namespace, ID). An empty Namespace defaults to the
// sentinel namespace; a zero UpdatedAt is stamped with the current time.
//
// The status value is validated here, at the write boundary: the store
// below stays tolerant, the API does not.
func (r *Reporter) Report(rec Record) error {
	if _, err := ParseStatus(string(rec.Status)); err != nil {
		return err
	}
	if rec.Namespace == "" {
		rec.Namespace = DefaultNamespace
	}
	return r.store.Write(rec.Namespace, rec.ID, recordToStore(rec))
}

// Clear removes the record for (namespace, id), reporting whether a record
// existed. Clearing an absent key is not an error. An emptied namespace is
// garbage-collected on disk.
func (r *Reporter) Clear(namespace, id string) (bool, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return r.store.Clear(namespace, id)
}

// DefaultNamespace is the sentinel namespace used when a writer does not
// supply one.
const DefaultNamespace = store.DefaultNamespace
