// Package input holds what the key processors have in common.
//
// A processor turns key events into edits on one buffer. The vi processor
// (package vim) is modal; the normal processor (package normal) inserts
// printable keys directly. Both embed a Core, which owns the cursor,
// selection, overwrite and search state, and both talk back to the host
// through a Notifier.
//
// Kind names the processor variants. The set is closed: a host switches on
// the Kind it was configured with.
package input
