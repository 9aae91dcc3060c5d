// Package watch drives the dashboard's periodic read-aggregate-render
// cycle.
//
// This package is internal to agentmon and contains the refresh loop: a
// single cooperative loop that, on every tick, reads the whole status
// store, ranks the result, and hands the view to an injected frame
// callback. Ticks never overlap, a tick that fails to read is logged and
// skipped rather than terminating the loop, and cancellation is honored
// between ticks without waiting out a full period.
//
// The main components are:
//
//   - [Loop]: The tick loop, with a blocking Run and a one-shot RunOnce
//   - [Watcher]: Optional fsnotify-based trigger that coalesces status
//     directory changes into immediate refreshes between ticks
//
// Users of the agentmon library should not need to interact with this
// package directly. The loop is managed by the Monitor.
package watch
