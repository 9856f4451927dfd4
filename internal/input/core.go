package input

import (
	"errors"
	"fmt"

	"github.com/dshills/ctext/internal/engine/buffer"
	"github.com/dshills/ctext/internal/engine/cursor"
	"github.com/dshills/ctext/internal/engine/edit"
	"github.com/dshills/ctext/internal/engine/history"
	"github.com/dshills/ctext/internal/engine/mark"
	"github.com/dshills/ctext/internal/engine/motion"
	"github.com/dshills/ctext/internal/engine/register"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Search errors.
var (
	ErrNoPattern       = errors.New("no previous regular expression")
	ErrPatternNotFound = errors.New("pattern not found")
)

const defaultTabStop = 8

// Logger receives debug output. *app.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
}

// Deps are the collaborators of a processor. Nil fields get private
// defaults bound to the same buffer.
type Deps struct {
	Editor    *edit.Editor
	Selection *cursor.Selection
	Undo      *history.Log
	Registers *register.Store
	Marks     *mark.Registry
	Notifier  Notifier

	// TabStop is the number of columns the Tab key moves or inserts.
	TabStop int

	Logger Logger
}

// Core is the state shared by the key processors.
type Core struct {
	buf    *buffer.Buffer
	edit   *edit.Editor
	sel    *cursor.Selection
	undo   *history.Log
	regs   *register.Store
	marks  *mark.Registry
	notify Notifier
	logger Logger

	overwrite     bool
	tabStop       int
	findPattern   string
	caseSensitive bool
}

// NewCore creates the shared state for a processor on buf.
func NewCore(buf *buffer.Buffer, deps Deps) *Core {
	if deps.Editor == nil {
		deps.Editor = edit.New(buf)
	}
	if deps.Selection == nil {
		deps.Selection = cursor.NewSelection(buf)
	}
	if deps.Undo == nil {
		deps.Undo = history.New(buf)
	}
	if deps.Registers == nil {
		deps.Registers = register.NewStore(buf)
	}
	if deps.Marks == nil {
		deps.Marks = mark.NewRegistry(buf)
		buf.AddObserver(deps.Marks.Observer())
	}
	if deps.TabStop <= 0 {
		deps.TabStop = defaultTabStop
	}
	return &Core{
		buf:           buf,
		edit:          deps.Editor,
		sel:           deps.Selection,
		undo:          deps.Undo,
		regs:          deps.Registers,
		marks:         deps.Marks,
		notify:        deps.Notifier,
		logger:        deps.Logger,
		tabStop:       deps.TabStop,
		caseSensitive: true,
	}
}

// Buffer returns the edited buffer.
func (c *Core) Buffer() *buffer.Buffer { return c.buf }

// Editor returns the compound edit helpers.
func (c *Core) Editor() *edit.Editor { return c.edit }

// Selection returns the selection engine.
func (c *Core) Selection() *cursor.Selection { return c.sel }

// Undo returns the undo log.
func (c *Core) Undo() *history.Log { return c.undo }

// Registers returns the register store.
func (c *Core) Registers() *register.Store { return c.regs }

// Marks returns the mark registry.
func (c *Core) Marks() *mark.Registry { return c.marks }

// Pos returns the cursor position.
func (c *Core) Pos() Point {
	return c.buf.Pos()
}

// PageLength returns the number of lines in the page window.
func (c *Core) PageLength() int {
	return c.buf.PageBottom() - c.buf.PageTop() + 1
}

// Overwrite reports whether typed characters replace existing ones.
func (c *Core) Overwrite() bool {
	return c.overwrite
}

// SetOverwrite sets the overwrite flag, notifying the host on change.
func (c *Core) SetOverwrite(on bool) {
	if c.overwrite == on {
		return
	}
	c.overwrite = on
	callBool(c.notify.Overwrite, on)
}

// TabStop returns the tab width in columns.
func (c *Core) TabStop() int {
	return c.tabStop
}

// SetTabStop sets the tab width. Values below 1 are ignored.
func (c *Core) SetTabStop(n int) {
	if n > 0 {
		c.tabStop = n
	}
}

// SetCaseSensitive controls whether searches match case.
func (c *Core) SetCaseSensitive(b bool) {
	c.caseSensitive = b
}

// FindPattern returns the last search pattern.
func (c *Core) FindPattern() string {
	return c.findPattern
}

// SetFindPattern replaces the last search pattern.
func (c *Core) SetFindPattern(p string) {
	c.findPattern = p
}

// FindNext moves the cursor to the next match of pattern after it,
// wrapping at the end of the buffer. An empty pattern repeats the last
// search.
func (c *Core) FindNext(pattern string) error {
	return c.find(pattern, true)
}

// FindPrev moves the cursor to the previous match of pattern before it,
// wrapping at the start of the buffer.
func (c *Core) FindPrev(pattern string) error {
	return c.find(pattern, false)
}

func (c *Core) find(pattern string, forward bool) error {
	if pattern == "" {
		pattern = c.findPattern
	}
	if pattern == "" {
		return ErrNoPattern
	}
	pat, err := motion.Regexp(pattern, c.caseSensitive)
	if err != nil {
		return err
	}
	c.findPattern = pattern

	p, wrapped, ok := c.search(pat, c.buf.Pos(), forward)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPatternNotFound, pattern)
	}
	if wrapped {
		if forward {
			c.Status("search hit BOTTOM, continuing at TOP")
		} else {
			c.Status("search hit TOP, continuing at BOTTOM")
		}
	}
	c.debugf("input: found %q at %d:%d", pattern, p.Line, p.Col)
	c.buf.MoveTo(p)
	return nil
}

// search looks for pat strictly after (or before) from, then wraps around
// the buffer back to from.
func (c *Core) search(pat *motion.Pattern, from Point, forward bool) (Point, bool, bool) {
	b := c.buf
	last := b.NumLines() - 1
	if last < 0 {
		return Point{}, false, false
	}
	if forward {
		if m, ok := motion.FindNext(b, pat, from.Line, from.Col+1, last, -1); ok {
			return m.Pos, false, true
		}
		if m, ok := motion.FindNext(b, pat, 0, 0, from.Line, from.Col); ok {
			return m.Pos, true, true
		}
		return Point{}, false, false
	}

	line, col := from.Line, from.Col-1
	if col < 0 {
		line, col = line-1, -1
	}
	if line >= 0 {
		if m, ok := motion.FindPrev(b, pat, line, col, 0, 0); ok {
			return m.Pos, false, true
		}
	}
	if m, ok := motion.FindPrev(b, pat, last, -1, from.Line, from.Col); ok {
		return m.Pos, true, true
	}
	return Point{}, false, false
}

// UndoLast undoes the most recent group, reporting an empty log.
func (c *Core) UndoLast() {
	if err := c.undo.Undo(); err != nil {
		c.Error(err.Error())
	}
}

// RedoLast redoes the most recently undone group.
func (c *Core) RedoLast() {
	if err := c.undo.Redo(); err != nil {
		c.Error(err.Error())
	}
}

// WriteFile saves the buffer to its file name.
func (c *Core) WriteFile() error {
	if err := c.buf.Write(""); err != nil {
		c.Error(err.Error())
		return err
	}
	c.Status(fmt.Sprintf("%q %dL written", c.buf.FileName(), c.buf.NumLines()))
	return nil
}

// FileStatus returns the file name and line count in vi's Ctrl-G form.
func (c *Core) FileStatus() string {
	return fmt.Sprintf("%q %d lines", c.buf.FileName(), c.buf.NumLines())
}

// ClearSelection drops the selection, if any.
func (c *Core) ClearSelection() {
	if c.sel.IsSelected() {
		c.sel.Clear()
	}
}

// DeleteSelection removes the selected text, leaving the cursor at its
// start. Returns false when nothing is selected.
func (c *Core) DeleteSelection() bool {
	if !c.sel.IsSelected() {
		return false
	}
	start, end := c.sel.Start(), c.sel.End()
	c.buf.StartGroup()
	for row := end.Line; row >= start.Line; row-- {
		switch {
		case c.sel.IsLineInside(row):
			_ = c.buf.DeleteLine(row)
		case c.sel.IsPartLineInside(row):
			line := c.buf.Line(row)
			col1 := 0
			for col1 < len(line) && !c.sel.IsCharInside(row, col1) {
				col1++
			}
			col2 := col1
			for col2 < len(line) && c.sel.IsCharInside(row, col2) {
				col2++
			}
			if col2 > col1 {
				c.edit.DeleteChars(row, col1, col2-col1)
			}
		}
	}
	c.buf.MoveTo(start)
	c.buf.EndGroup()
	c.sel.Clear()
	return true
}

// EnterCmdLine asks the host for a command line starting with prefix.
func (c *Core) EnterCmdLine(prefix string) { callString(c.notify.EnterCmdLine, prefix) }

// Overlay shows msg over the text.
func (c *Core) Overlay(msg string) { callString(c.notify.Overlay, msg) }

// Status shows a one-line message.
func (c *Core) Status(msg string) { callString(c.notify.Status, msg) }

// ScrollTop asks the host to put the cursor line at the top of the view.
func (c *Core) ScrollTop() { call(c.notify.ScrollTop) }

// ScrollMiddle asks the host to center the cursor line.
func (c *Core) ScrollMiddle() { call(c.notify.ScrollMiddle) }

// ScrollBottom asks the host to put the cursor line at the bottom.
func (c *Core) ScrollBottom() { call(c.notify.ScrollBottom) }

// SetNumber reports a change of the line number option.
func (c *Core) SetNumber(on bool) { callBool(c.notify.Number, on) }

// Quit asks the host to exit.
func (c *Core) Quit(force bool) { callBool(c.notify.Quit, force) }

// Error reports msg through the notifier.
func (c *Core) Error(msg string) {
	c.debugf("input: %s", msg)
	callString(c.notify.Error, msg)
}

// Errorf is Error with formatting.
func (c *Core) Errorf(format string, args ...any) {
	c.Error(fmt.Sprintf(format, args...))
}

func (c *Core) debugf(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(fmt.Sprintf(msg, args...))
	}
}
