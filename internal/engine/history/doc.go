// Package history provides undo/redo for a line buffer.
//
// A Log observes buffer notifications and records one reversible Entry per
// mutation. Entries capture their position when they are created, so later
// edits cannot shift them.
//
// # Entries
//
// Each Entry is one of six kinds, named after the mutation it recorded:
//   - AddLine, DeleteLine: the line index and its text
//   - ReplaceLine: the line index with old and new text
//   - AddChar, DeleteChar: the position and the character
//   - ReplaceChar: the position with old and new characters
//
// Undoing an entry applies its inverse through the buffer's explicit-index
// primitives; redoing it applies the mutation again.
//
// # Groups
//
// Entries are collected into groups, and one Undo reverts one group:
//
//	log := history.New(buf, history.WithMaxGroups(1000))
//
//	log.StartGroup()
//	// ... several edits ...
//	log.EndGroup()
//
//	log.Undo() // reverts all of them
//
// A mutation made with no open group forms a group of its own. Groups do
// not nest: StartGroup while a group is open returns ErrGroupOpen, and the
// matching EndGroup is absorbed so the outer group stays open.
//
// # Cursor Restoration
//
// A group records the cursor when it opens and when it closes. Undo
// restores the first, Redo the second.
//
// # Replay
//
// While a group is being replayed the Log ignores the notifications the
// replay itself produces.
package history
