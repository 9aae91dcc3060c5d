package agentmon

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// monConfig holds mutable state during Monitor construction.
type monConfig struct {
	statusDir   string
	refresh     time.Duration
	logger      *slog.Logger
	onFrame     func(View)
	fileWatcher bool
}

// Option is a function that configures a [Monitor] instance during
// construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithStatusDir], [WithRefreshInterval], [WithLogger],
// [WithFrameHandler], [WithFileWatcher].
type Option func(*monConfig) error

// WithStatusDir sets the directory the monitor reads status records from.
//
// This is the one required option. The directory is created on first use
// if it does not exist. Resolution from flags, environment or config files
// is the caller's concern (see the config package); the monitor receives a
// single resolved path.
func WithStatusDir(dir string) Option {
	return func(cfg *monConfig) error {
		if dir == "" {
			return errors.New("status dir cannot be empty")
		}
		cfg.statusDir = dir
		return nil
	}
}

// WithRefreshInterval sets the tick period of the refresh loop.
//
// Defaults to 1 second. Cancellation latency does not depend on this
// value: the loop responds to its context between ticks regardless of the
// period.
//
// Returns an error for intervals below 100ms, which would burn CPU
// re-scanning the directory for no visible benefit.
func WithRefreshInterval(d time.Duration) Option {
	return func(cfg *monConfig) error {
		if d < minRefreshInterval {
			return fmt.Errorf("refresh interval must be at least %s, got %s", minRefreshInterval, d)
		}
		cfg.refresh = d
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Monitor.
//
// This controls where operational messages (scan failures, watcher
// degradation) are written. If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *monConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithFrameHandler registers the function that receives every refreshed
// [View].
//
// The handler is invoked from the refresh loop's goroutine and must not
// block for long, or frames will fall behind the configured interval.
// Panics within the handler are recovered and logged; they do not stop
// the loop.
//
// Nil handlers are silently ignored, which leaves the monitor usable for
// [Monitor.Snapshot] only.
func WithFrameHandler(fn func(View)) Option {
	return func(cfg *monConfig) error {
		if fn == nil {
			return nil
		}
		cfg.onFrame = fn
		return nil
	}
}

// WithFileWatcher enables or disables the filesystem watcher that turns
// status directory changes into immediate refreshes between ticks.
//
// Enabled by default. The watcher is purely an accelerator: with it
// disabled (or unavailable on the platform), the board still refreshes
// every tick.
func WithFileWatcher(enabled bool) Option {
	return func(cfg *monConfig) error {
		cfg.fileWatcher = enabled
		return nil
	}
}
