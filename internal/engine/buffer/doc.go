// Package buffer provides the line buffer the editing engine operates on.
//
// A Buffer is an ordered sequence of byte-oriented text lines plus a cursor
// position and a page window. It offers two mutation surfaces:
//
//   - Cursor-relative operations (AddLineBefore, DeleteCharAt, ReplaceLine,
//     ...) used by key processors and the ed interpreter.
//   - Explicit-index primitives (InsertLine, DeleteLine, SetLine,
//     InsertChar, DeleteChar, SetChar) used when replaying undo entries and
//     by editing utilities that must not disturb the cursor.
//
// Every primitive mutation emits exactly one notification to the registered
// observers. Observers are plain callback closures:
//
//	h := buf.AddObserver(buffer.Observer{
//	    LineDeleted: func(line int, text string) { ... },
//	})
//	defer buf.RemoveObserver(h)
//
// Positions:
//
// Point is a 0-indexed (line, column) pair. Columns count bytes; a column
// equal to the line length addresses the end of the line.
//
// Concurrency:
//
// A Buffer is owned by a single editing session and is not safe for
// concurrent use. Notifications are delivered synchronously, in
// registration order, before the mutating call returns.
package buffer
