// Package normal implements the non-modal key processor.
//
// There are no modes, counts or pending keys: every key maps to one
// buffer or selection operation. Printable characters are typed at the
// cursor, Shift with an arrow extends the selection, and Control keys
// handle the clipboard register, undo, save and quit:
//
//	Ctrl-A  select all          Ctrl-C  copy selection
//	Ctrl-X  cut selection       Ctrl-V  paste
//	Ctrl-Z  undo                Ctrl-Y  redo
//	Ctrl-D  delete line         Ctrl-F  search
//	Ctrl-S  save                Ctrl-Q  quit
package normal
