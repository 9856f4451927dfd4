// Package ed implements a line-oriented ed/ex command interpreter over a
// line buffer.
//
// The interpreter is a two-state machine. In command mode each line is an
// optional address range, a one-character command and its arguments. The
// a, i and c commands switch to input mode, which collects text lines until
// a line holding only "." and then splices them into the buffer as one undo
// group.
//
// Line numbers in addresses are 1-based; the buffer is 0-based.
package ed

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/dshills/ctext/internal/engine/buffer"
	"github.com/dshills/ctext/internal/engine/edit"
	"github.com/dshills/ctext/internal/engine/history"
	"github.com/dshills/ctext/internal/engine/mark"
	"github.com/dshills/ctext/internal/engine/register"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Mode is the interpreter state.
type Mode uint8

const (
	ModeCommand Mode = iota
	ModeInput
)

const (
	defaultShell        = "/bin/sh"
	defaultShellTimeout = 30 * time.Second
)

// Logger receives debug output. *app.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
}

// Deps are the collaborators of an interpreter. Nil fields get private
// defaults bound to the same buffer.
type Deps struct {
	Editor    *edit.Editor
	Marks     *mark.Registry
	Registers *register.Store
	Undo      *history.Log

	// Out receives printed lines. Defaults to io.Discard.
	Out io.Writer

	// OnError receives the message of every failed command.
	OnError func(msg string)

	// OnQuit is called by q, Q and wq. The host decides whether to exit.
	OnQuit func(force bool)

	Shell        string
	ShellTimeout time.Duration

	Logger Logger
}

type inputState struct {
	cmd   byte
	start int
	end   int
	lines []string
}

// Ed is an ed command interpreter bound to one buffer.
type Ed struct {
	buf   *buffer.Buffer
	edit  *edit.Editor
	marks *mark.Registry
	regs  *register.Store
	undo  *history.Log
	deps  Deps

	mode    Mode
	cur     int // 1-based current line
	curChar int
	in      inputState

	findPattern   string
	ex            bool
	caseSensitive bool
	quit          bool
}

// New creates an interpreter for buf. The current line starts at the last
// line of the buffer.
func New(buf *buffer.Buffer, deps Deps) *Ed {
	if deps.Editor == nil {
		deps.Editor = edit.New(buf)
	}
	if deps.Marks == nil {
		deps.Marks = mark.NewRegistry(buf)
		buf.AddObserver(deps.Marks.Observer())
	}
	if deps.Registers == nil {
		deps.Registers = register.NewStore(buf)
	}
	if deps.Undo == nil {
		deps.Undo = history.New(buf)
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	if deps.Shell == "" {
		deps.Shell = defaultShell
	}
	if deps.ShellTimeout <= 0 {
		deps.ShellTimeout = defaultShellTimeout
	}
	e := &Ed{
		buf:           buf,
		edit:          deps.Editor,
		marks:         deps.Marks,
		regs:          deps.Registers,
		undo:          deps.Undo,
		deps:          deps,
		caseSensitive: true,
	}
	e.setPos(buf.NumLines()-1, 0)
	return e
}

// Mode returns the interpreter state.
func (e *Ed) Mode() Mode {
	return e.mode
}

// CurrentLine returns the 1-based current line.
func (e *Ed) CurrentLine() int {
	return e.cur
}

// SetEx selects ex behavior: bare addresses move without printing and
// searches start from the current character rather than the next line.
func (e *Ed) SetEx(ex bool) {
	e.ex = ex
}

// Ex reports whether ex behavior is selected.
func (e *Ed) Ex() bool {
	return e.ex
}

// SetCaseSensitive sets the case sensitivity of searches.
func (e *Ed) SetCaseSensitive(b bool) {
	e.caseSensitive = b
}

// FindPattern returns the last search pattern.
func (e *Ed) FindPattern() string {
	return e.findPattern
}

// SetFindPattern sets the pattern reused by empty searches.
func (e *Ed) SetFindPattern(p string) {
	e.findPattern = p
}

// Quit reports whether a quit command has run.
func (e *Ed) Quit() bool {
	return e.quit
}

// SetPos moves the buffer cursor and the current line to p.
func (e *Ed) SetPos(p Point) {
	e.setPos(p.Line, p.Col)
}

// setPos moves to 0-based line, wrapping out-of-range lines around the
// buffer.
func (e *Ed) setPos(line, col int) {
	n := e.buf.NumLines()
	if n > 0 {
		for line < 0 {
			line += n
		}
		for line >= n {
			line -= n
		}
	} else {
		line = 0
	}
	e.buf.MoveTo(Point{Line: line, Col: col})
	e.cur = line + 1
	e.curChar = col
}

// syncPos adopts the buffer cursor after an operation that moved it.
func (e *Ed) syncPos() {
	e.cur = e.buf.Row() + 1
	e.curChar = e.buf.Col()
}

func (e *Ed) debugf(msg string, args ...any) {
	if e.deps.Logger != nil {
		e.deps.Logger.Debug(msg, args...)
	}
}

func (e *Ed) report(err error) {
	e.debugf("ed: %v", err)
	if e.deps.OnError != nil {
		e.deps.OnError(err.Error())
	}
}

func (e *Ed) output(s string) {
	_, _ = io.WriteString(e.deps.Out, s+"\n")
}

// Exec runs one command line, or collects one input line in input mode.
// A failed command is also reported to OnError.
func (e *Ed) Exec(line string) error {
	e.debugf("ed: exec %q", line)
	err := e.exec(line)
	if err != nil {
		e.report(err)
	}
	return err
}

// ExecFile runs each line of a script. In command mode blank lines and
// lines starting with # are skipped. Failed lines do not stop the script;
// their errors are joined.
func (e *Ed) ExecFile(path string) error {
	lines, _, err := buffer.ReadLines(path)
	if err != nil {
		ioErr := wrapIO(err, "cannot read script")
		e.report(ioErr)
		return ioErr
	}
	var errs []error
	for _, raw := range lines {
		if e.mode == ModeCommand {
			raw = strings.TrimSpace(raw)
			if raw == "" || raw[0] == '#' {
				continue
			}
		}
		if err := e.Exec(raw); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *Ed) exec(line string) error {
	if e.mode == ModeInput {
		if line == "." {
			e.finishInput()
		} else {
			e.in.lines = append(e.in.lines, line)
		}
		return nil
	}

	sc := &scanner{s: line}
	r, err := e.parseRange(sc)
	if err != nil {
		return err
	}
	sc.skipSpace()
	return e.dispatch(sc, r)
}

// finishInput splices the collected lines into the buffer.
func (e *Ed) finishInput() {
	in := e.in
	e.mode = ModeCommand
	e.in = inputState{}

	at := in.start
	if in.cmd == 'i' || in.cmd == 'c' {
		at = in.start - 1
	}

	e.buf.StartGroup()
	if in.cmd == 'c' {
		for i := in.start; i <= in.end; i++ {
			_ = e.buf.DeleteLine(in.start - 1)
		}
	}
	at = min(max(at, 0), e.buf.NumLines())
	for k, text := range in.lines {
		e.buf.InsertLine(at+k, text)
	}
	last := at + len(in.lines) - 1
	e.setPos(max(last, 0), 0)
	e.buf.EndGroup()
}
