// Package store provides durable, file-backed persistence of agent status
// records.
//
// This package is internal to agentmon and implements the on-disk status
// protocol shared by writer processes (agents reporting their state) and
// the single dashboard reader. Records live one-per-file under
// <root>/<namespace>/<id>.json and are replaced atomically via
// temp-file-plus-rename, so readers and writers need no coordination beyond
// the filesystem itself.
//
// The main components are:
//
//   - [Store]: Interface defining write, read-all and clear operations
//   - [FileStore]: Directory-tree implementation of Store
//   - [Record]: Wire representation of a single agent's status
//
// The read path is deliberately tolerant: corrupt or half-written entries
// are skipped, unknown status values are preserved for the presentation
// layer to classify, and a missing store root reads as empty.
//
// Users of the agentmon library should not need to interact with this
// package directly. Storage is managed internally by the Monitor and the
// reporting CLI.
package store
