// Package vim implements a vi key processor.
//
// Commands follow vi's grammar:
//
//	["x][count]command
//	["x][count]operator[count]motion
//	["x][count]operator operator      (dd, yy, cc, <<, >>, !!)
//
// Operators (c, d, y, <, >, ! and g) and the commands that take a character
// argument (f, F, t, T, m, r, z, Z, `, ', ", q, @, [ and ]) leave the
// processor waiting for the next key. Digits build a count; a leading 0 is
// the motion to column 0.
//
// Insert mode runs from the command that entered it up to Escape and forms
// a single undo group. The last change, including any text it inserted, is
// kept as a key sequence and replayed by ".". Lines starting with ":" are
// handed to the ed interpreter in ex mode, except :set, which is handled
// here.
package vim
