// Package script runs Lua scripts against an editing session.
//
// Scripts see these globals. Line numbers are 1-based as is usual in Lua;
// columns are 0-based byte offsets.
//
//	ed(cmd)            run an ed command, raising on failure
//	keys(str)          feed keys such as "dw<Esc>" to the key processor
//	cmd(line)          run a command line such as ":s/a/b/" or "/foo"
//	prim(line)         run a primitive buffer command, returning success
//	line(n)            text of line n, or nil
//	lines()            table of every line
//	line_count()       number of lines
//	cursor()           line and column of the cursor
//	set_cursor(l, c)   move the cursor
//	print(...)         write to the script output
//
// Only the base, table, string and math libraries are opened.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/ctext/internal/engine/buffer"
)

// ErrClosed is returned when running code on a closed Engine.
var ErrClosed = errors.New("lua engine is closed")

// Session is the editing session a script drives. *app.Session
// satisfies it.
type Session interface {
	ExecEd(line string) error
	Keys(keys string) error
	ExecCmd(line string)
	ExecPrim(line string) bool
	Buffer() *buffer.Buffer
}

// Engine is a Lua state bound to one session. It is not safe for
// concurrent use.
type Engine struct {
	L      *lua.LState
	s      Session
	out    io.Writer
	closed bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithOutput sends print output to w instead of discarding it.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.out = w
	}
}

// New creates an Engine for s.
func New(s Session, opts ...Option) *Engine {
	e := &Engine{s: s, out: io.Discard}
	for _, opt := range opts {
		opt(e)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	e.L = L

	funcs := map[string]lua.LGFunction{
		"ed":         e.ed,
		"keys":       e.keys,
		"cmd":        e.cmd,
		"prim":       e.prim,
		"line":       e.line,
		"lines":      e.lines,
		"line_count": e.lineCount,
		"cursor":     e.cursor,
		"set_cursor": e.setCursor,
		"print":      e.print,
	}
	for name, fn := range funcs {
		L.SetGlobal(name, L.NewFunction(fn))
	}
	return e
}

// DoString runs code. Cancelling ctx stops the script.
func (e *Engine) DoString(ctx context.Context, code string) error {
	return e.run(ctx, func() error { return e.L.DoString(code) })
}

// DoFile runs the script at path. Cancelling ctx stops the script.
func (e *Engine) DoFile(ctx context.Context, path string) error {
	return e.run(ctx, func() error { return e.L.DoFile(path) })
}

func (e *Engine) run(ctx context.Context, fn func() error) (err error) {
	if e.closed {
		return ErrClosed
	}
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Close releases the Lua state.
func (e *Engine) Close() {
	if !e.closed {
		e.closed = true
		e.L.Close()
	}
}

// ed(cmd)
func (e *Engine) ed(L *lua.LState) int {
	if err := e.s.ExecEd(L.CheckString(1)); err != nil {
		L.RaiseError("ed: %v", err)
	}
	return 0
}

// keys(str)
func (e *Engine) keys(L *lua.LState) int {
	if err := e.s.Keys(L.CheckString(1)); err != nil {
		L.RaiseError("keys: %v", err)
	}
	return 0
}

// cmd(line)
func (e *Engine) cmd(L *lua.LState) int {
	e.s.ExecCmd(L.CheckString(1))
	return 0
}

// prim(line) -> bool
func (e *Engine) prim(L *lua.LState) int {
	L.Push(lua.LBool(e.s.ExecPrim(L.CheckString(1))))
	return 1
}

// line(n) -> string | nil
func (e *Engine) line(L *lua.LState) int {
	n := L.CheckInt(1)
	b := e.s.Buffer()
	if n < 1 || n > b.NumLines() {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(b.Line(n - 1)))
	return 1
}

// lines() -> table
func (e *Engine) lines(L *lua.LState) int {
	t := L.NewTable()
	for _, l := range e.s.Buffer().Lines() {
		t.Append(lua.LString(l))
	}
	L.Push(t)
	return 1
}

// line_count() -> int
func (e *Engine) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(e.s.Buffer().NumLines()))
	return 1
}

// cursor() -> line, col
func (e *Engine) cursor(L *lua.LState) int {
	p := e.s.Buffer().Pos()
	L.Push(lua.LNumber(p.Line + 1))
	L.Push(lua.LNumber(p.Col))
	return 2
}

// set_cursor(line, col)
func (e *Engine) setCursor(L *lua.LState) int {
	line := L.CheckInt(1)
	col := L.OptInt(2, 0)
	b := e.s.Buffer()
	if line < 1 || line > b.NumLines() {
		L.ArgError(1, fmt.Sprintf("line %d out of range", line))
	}
	b.MoveTo(buffer.Point{Line: line - 1, Col: col})
	return 0
}

// print(...)
func (e *Engine) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	_, _ = io.WriteString(e.out, strings.Join(parts, "\t")+"\n")
	return 0
}
