// Package prim provides a table of single-word commands over the
// cursor-relative buffer surface. It is the scripting-level counterpart of
// the ed interpreter: each command names one buffer primitive.
//
//	r file    read file into the buffer
//	w file    write the buffer
//	m col ln  move the cursor
//	M dx dy   move the cursor relatively
//	a c, A c  add a character after or before the cursor
//	l t, L t  add a line after or before the cursor line
//	x, X      delete the character at or before the cursor
//	d, D      delete the cursor line or the one before it
//	R text    replace the cursor line
package prim

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/ctext/internal/engine/buffer"
)

// Func runs a command with its argument text. It reports whether the
// arguments were accepted and the primitive succeeded.
type Func func(b *buffer.Buffer, args string) bool

// Table maps command names to primitives.
type Table struct {
	buf  *buffer.Buffer
	cmds map[string]Func
}

// New creates a table bound to buf with the standard commands registered.
func New(buf *buffer.Buffer) *Table {
	t := &Table{buf: buf, cmds: make(map[string]Func)}
	t.Register("r", read)
	t.Register("w", write)
	t.Register("m", moveTo)
	t.Register("M", rmoveTo)
	t.Register("a", charArg((*buffer.Buffer).AddCharAfter))
	t.Register("A", charArg((*buffer.Buffer).AddCharBefore))
	t.Register("l", lineArg((*buffer.Buffer).AddLineAfter))
	t.Register("L", lineArg((*buffer.Buffer).AddLineBefore))
	t.Register("x", noArg((*buffer.Buffer).DeleteCharAt))
	t.Register("X", noArg((*buffer.Buffer).DeleteCharBefore))
	t.Register("d", noArg((*buffer.Buffer).DeleteLineAt))
	t.Register("D", noArg((*buffer.Buffer).DeleteLineBefore))
	t.Register("R", func(b *buffer.Buffer, args string) bool {
		b.ReplaceLine(args)
		return true
	})
	return t
}

// Register adds or replaces the command name.
func (t *Table) Register(name string, fn Func) {
	t.cmds[name] = fn
}

// Names returns the registered command names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.cmds))
	for name := range t.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exec runs one command line. The first word is the command name and the
// rest, with leading space removed, is its argument. An empty line
// succeeds; an unknown name fails.
func (t *Table) Exec(line string) bool {
	line = strings.TrimLeft(line, " \t")
	name, args := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		name, args = line[:i], strings.TrimLeft(line[i:], " \t")
	}
	if name == "" {
		return true
	}
	fn, ok := t.cmds[name]
	if !ok {
		return false
	}
	return fn(t.buf, args)
}

func read(b *buffer.Buffer, args string) bool {
	return b.Read(args) == nil
}

func write(b *buffer.Buffer, args string) bool {
	return b.Write(args) == nil
}

// ints parses exactly two integers.
func ints(args string) (int, int, bool) {
	f := strings.Fields(args)
	if len(f) != 2 {
		return 0, 0, false
	}
	x, err1 := strconv.Atoi(f[0])
	y, err2 := strconv.Atoi(f[1])
	return x, y, err1 == nil && err2 == nil
}

func moveTo(b *buffer.Buffer, args string) bool {
	x, y, ok := ints(args)
	if !ok {
		return false
	}
	b.MoveTo(buffer.Point{Line: y, Col: x})
	return true
}

func rmoveTo(b *buffer.Buffer, args string) bool {
	dx, dy, ok := ints(args)
	if !ok {
		return false
	}
	b.RMoveTo(dy, dx)
	return true
}

func charArg(fn func(*buffer.Buffer, byte)) Func {
	return func(b *buffer.Buffer, args string) bool {
		if len(args) != 1 {
			return false
		}
		fn(b, args[0])
		return true
	}
}

func lineArg(fn func(*buffer.Buffer, string)) Func {
	return func(b *buffer.Buffer, args string) bool {
		if args == "" {
			return false
		}
		fn(b, args)
		return true
	}
}

func noArg(fn func(*buffer.Buffer)) Func {
	return func(b *buffer.Buffer, _ string) bool {
		fn(b)
		return true
	}
}
