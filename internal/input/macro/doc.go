// Package macro records key sequences into named registers and plays them
// back, as vi's q and @ commands do.
//
// Registers are the letters a-z and the digits 0-9. Recording into an
// uppercase letter appends to the lowercase register. Macros persist as a
// JSON object mapping register names to sequences in vi key notation:
//
//	{"version":1,"last":"a","macros":{"a":"0dwj","b":"A;<Esc>j"}}
//
// Recorder and Player are safe for concurrent use.
package macro
