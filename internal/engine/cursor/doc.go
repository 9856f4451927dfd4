// Package cursor provides the selection model for text editing.
//
// A Selection tracks one active region over buffer coordinates in one of
// two modes:
//
//   - ModeRange: a linear span in document order. Interior lines are fully
//     selected; the boundary lines are selected from the start column and
//     up to the end column. A range selection is valid only when start
//     precedes end.
//   - ModeRect: a column box spanning every row from start to end.
//
// Selections grow with the Extend* operations, which move the cursor and
// adjust whichever endpoint is nearer the moved cursor:
//
//	sel := cursor.NewSelection(buf)
//	sel.ExtendRight(3)   // select three characters to the right
//	text := sel.Text()
//
// Every change to the selected state, mode or endpoints invokes the
// OnChange callback with the current selected text.
package cursor
