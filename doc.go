// Package agentmon provides a file-backed status board for coding agents:
// many short-lived agent processes publish their state into a shared
// directory, and a single dashboard process aggregates and renders it live.
//
// There is no server and no network transport. The entire protocol is a
// directory of JSON files, one record per (namespace, id) pair, written
// atomically via temp-file-plus-rename:
//
//	<status-root>/<namespace>/<id>.json
//
// Any process that can write a file can report; any process that can list
// a directory can observe. The store is best-effort and last-write-wins,
// and the reader silently tolerates missing or corrupt records.
//
// # Reporting
//
// Agent processes publish through a [Reporter]:
//
//	rep := agentmon.NewReporter(dir)
//	err := rep.Report(agentmon.Record{
//	    Namespace: "myrepo",
//	    ID:        "feature-auth",
//	    Status:    agentmon.StatusRunning,
//	    Summary:   "refactoring the auth module",
//	})
//
// A record stays on the board until replaced or cleared:
//
//	removed, err := rep.Clear("myrepo", "feature-auth")
//
// # Monitoring
//
// The dashboard side polls the directory with a [Monitor], receiving an
// ordered [View] on every refresh:
//
//	mon, _ := agentmon.New(
//	    agentmon.WithStatusDir(dir),
//	    agentmon.WithFrameHandler(func(v agentmon.View) { render(v) }),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	mon.Start(ctx) // blocks until context is cancelled
//
// Views are deterministically ordered: within a namespace, records blocked
// on user input sort first, then running, errored, idle and unknown;
// namespaces themselves sort by the urgency of their contents, then name.
//
// # Architecture
//
// The library consists of several internal packages (under internal/):
//
//   - internal/store: Atomic file persistence of status records
//   - internal/aggregate: Pure grouping and ranking of records
//   - internal/watch: The refresh loop and the fsnotify accelerator
//   - internal/tui: The terminal dashboard renderer
//   - internal/events: Hook-event-to-status mapping for agent integrations
//
// The internal packages are not part of the public API and may change
// without notice. The agentmon CLI (cmd/agentmon) wraps all of this into
// report, watch, hook and demo subcommands.
package agentmon
