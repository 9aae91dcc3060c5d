package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/amonroe/agentmon"
	"github.com/amonroe/agentmon/config"
	"github.com/amonroe/agentmon/internal/tui"
)

// watchCmd runs the dashboard.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the live status board",
	Long: `Show the status board for all reporting agents.

By default this opens a full-screen live view that refreshes every second
and repaints immediately when an agent reports. Press q to quit.

With --once (or when stdout is not a terminal, e.g. piped into a file)
the board is printed once to stdout instead.

Examples:
  agentmon watch
  agentmon watch --once
  agentmon watch --status-dir /tmp/status --refresh 500ms`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Bool("once", false, "print the board once and exit")
	watchCmd.Flags().String("status-dir", "", "status directory (default: AGENTMON_DIR or ~/.agentmon/status)")
	watchCmd.Flags().Duration("refresh", 0, "refresh period (default: 1s, or the config file's value)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	once, _ := cmd.Flags().GetBool("once")
	dirFlag, _ := cmd.Flags().GetString("status-dir")
	refreshFlag, _ := cmd.Flags().GetDuration("refresh")

	cfg, err := config.LoadDefault()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	statusDir := config.ResolveStatusDir(dirFlag, cfg)
	refresh := cfg.Refresh.Duration()
	if refreshFlag > 0 {
		refresh = refreshFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A non-TTY stdout cannot host the full-screen board; fall back to a
	// single plain frame, same as --once.
	if once || !isatty.IsTerminal(os.Stdout.Fd()) {
		return watchOnce(ctx, statusDir, refresh)
	}
	return watchLive(ctx, statusDir, refresh)
}

// watchOnce renders a single frame to stdout and exits.
func watchOnce(ctx context.Context, statusDir string, refresh time.Duration) error {
	mon, err := agentmon.New(
		agentmon.WithStatusDir(statusDir),
		agentmon.WithRefreshInterval(refresh),
		agentmon.WithLogger(newLogger()),
	)
	if err != nil {
		return fmt.Errorf("failed to create monitor: %w", err)
	}

	view, err := mon.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to read status: %w", err)
	}
	fmt.Println(tui.Render(view, statusDir, time.Now()))
	return nil
}

// watchLive runs the full-screen dashboard until the user quits or a
// termination signal arrives.
func watchLive(ctx context.Context, statusDir string, refresh time.Duration) error {
	p := tea.NewProgram(
		tui.NewModel(statusDir, agentmon.View{}),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	// While the alternate screen is up, stray log lines would corrupt the
	// board; operational noise goes nowhere in live mode.
	quietLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mon, err := agentmon.New(
		agentmon.WithStatusDir(statusDir),
		agentmon.WithRefreshInterval(refresh),
		agentmon.WithLogger(quietLogger),
		agentmon.WithFrameHandler(func(v agentmon.View) {
			p.Send(tui.FrameMsg(v))
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create monitor: %w", err)
	}

	// The monitor feeds frames; the program owns the terminal. Stopping
	// either side stops the other: quitting the program cancels monCtx,
	// and a signal cancels both through ctx.
	monCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		_ = mon.Start(monCtx)
	}()

	if _, err := p.Run(); err != nil {
		// A signal-driven shutdown surfaces as a killed program; that is
		// a clean exit here, the terminal has already been restored.
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
