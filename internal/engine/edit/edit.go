// Package edit implements multi-step editing operations on a line buffer:
// joining, splitting, moving and copying lines, span deletion, indentation
// shifts and case swapping. Every change goes through the buffer's
// explicit-index primitives so each step is observable and undoable.
package edit

import (
	"strings"

	"github.com/dshills/ctext/internal/engine/buffer"
	"github.com/dshills/ctext/internal/engine/motion"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

const defaultShiftWidth = 2

// Editor applies compound edits to a buffer.
type Editor struct {
	buf        *buffer.Buffer
	shiftWidth int
}

// New creates an Editor for buf.
func New(buf *buffer.Buffer) *Editor {
	return &Editor{buf: buf, shiftWidth: defaultShiftWidth}
}

// Buffer returns the edited buffer.
func (e *Editor) Buffer() *buffer.Buffer {
	return e.buf
}

// ShiftWidth returns the indent step used by ShiftLeft and ShiftRight.
func (e *Editor) ShiftWidth() int {
	return e.shiftWidth
}

// SetShiftWidth sets the indent step. Non-positive values are ignored.
func (e *Editor) SetShiftWidth(n int) {
	if n > 0 {
		e.shiftWidth = n
	}
}

// JoinLine appends line l+1 to line l and moves the cursor to the join
// point. Returns false if l is the last line.
func (e *Editor) JoinLine(l int) bool {
	b := e.buf
	if l < 0 || l+1 >= b.NumLines() {
		return false
	}
	l1, l2 := b.Line(l), b.Line(l+1)
	_ = b.DeleteLine(l + 1)
	_ = b.SetLine(l, l1+l2)
	b.MoveTo(Point{Line: l, Col: len(l1)})
	return true
}

// SplitLine breaks the line at p. The cursor stays at p.
func (e *Editor) SplitLine(p Point) {
	b := e.buf
	if b.NumLines() == 0 {
		b.InsertLine(0, "")
	}
	p = b.Clamp(p)
	line := b.Line(p.Line)
	_ = b.SetLine(p.Line, line[:p.Col])
	b.InsertLine(p.Line+1, line[p.Col:])
	b.MoveTo(p)
}

// MoveLine removes line from and reinserts it so it becomes line to of the
// resulting buffer.
func (e *Editor) MoveLine(from, to int) bool {
	b := e.buf
	if from < 0 || from >= b.NumLines() {
		return false
	}
	text := b.Line(from)
	_ = b.DeleteLine(from)
	b.InsertLine(to, text)
	return true
}

// CopyLine inserts a copy of line from so it becomes line to.
func (e *Editor) CopyLine(from, to int) bool {
	b := e.buf
	if from < 0 || from >= b.NumLines() {
		return false
	}
	b.InsertLine(to, b.Line(from))
	return true
}

// Replace substitutes the inclusive column range [c1, c2] of line with s
// and moves the cursor to c1.
func (e *Editor) Replace(line, c1, c2 int, s string) {
	b := e.buf
	text := b.Line(line)
	c1 = min(max(c1, 0), len(text))
	c2 = min(max(c2+1, c1), len(text))
	_ = b.SetLine(line, text[:c1]+s+text[c2:])
	b.MoveTo(Point{Line: line, Col: c1})
}

// DeleteChars removes n characters of line starting at col and moves the
// cursor to col.
func (e *Editor) DeleteChars(line, col, n int) {
	b := e.buf
	text := b.Line(line)
	col = min(max(col, 0), len(text))
	end := min(col+max(n, 0), len(text))
	if end > col {
		_ = b.SetLine(line, text[:col]+text[end:])
	}
	b.MoveTo(Point{Line: line, Col: col})
}

// DeleteSpan removes the text from start up to but excluding end, joining
// the boundary lines when the span crosses lines. The cursor moves to the
// start of the span.
func (e *Editor) DeleteSpan(start, end Point) {
	b := e.buf
	start, end = buffer.Order(start, end)
	if start.Line == end.Line {
		e.DeleteChars(start.Line, start.Col, end.Col-start.Col)
		return
	}
	first, last := b.Line(start.Line), b.Line(end.Line)
	head := first[:min(start.Col, len(first))]
	tail := last[min(end.Col, len(last)):]
	for l := end.Line; l > start.Line; l-- {
		_ = b.DeleteLine(l)
	}
	_ = b.SetLine(start.Line, head+tail)
	b.MoveTo(start)
}

// DeleteTo deletes between two positions in either order. On a single
// line both ends are included; across lines the later end is exclusive and
// the boundary lines are joined.
func (e *Editor) DeleteTo(p1, p2 Point) {
	a, z := buffer.Order(p1, p2)
	if a.Line == z.Line {
		z.Col++
	}
	e.DeleteSpan(a, z)
}

// DeleteLines removes n lines starting at l.
func (e *Editor) DeleteLines(l, n int) {
	b := e.buf
	for i := 0; i < n && l < b.NumLines(); i++ {
		_ = b.DeleteLine(l)
	}
}

// DeleteWord removes n words at p, including the blanks that follow them,
// without leaving the line.
func (e *Editor) DeleteWord(p Point, n int) {
	line := e.buf.Line(p.Line)
	end := motion.WordSpanEnd(line, p.Col, n, true)
	e.DeleteChars(p.Line, p.Col, end-p.Col)
}

// DeleteEOL removes everything from p to the end of its line.
func (e *Editor) DeleteEOL(p Point) {
	line := e.buf.Line(p.Line)
	e.DeleteChars(p.Line, p.Col, len(line)-p.Col)
}

// ShiftLeft removes up to one shift width of leading blanks from each line
// in [l1, l2].
func (e *Editor) ShiftLeft(l1, l2 int) {
	if l1 > l2 {
		l1, l2 = l2, l1
	}
	b := e.buf
	for l := l1; l <= l2 && l < b.NumLines(); l++ {
		line := b.Line(l)
		n := 0
		for n < e.shiftWidth && n < len(line) && motion.IsSpace(line[n]) {
			n++
		}
		if n > 0 {
			_ = b.SetLine(l, line[n:])
		}
	}
}

// ShiftRight indents each non-empty line in [l1, l2] by one shift width.
func (e *Editor) ShiftRight(l1, l2 int) {
	if l1 > l2 {
		l1, l2 = l2, l1
	}
	b := e.buf
	pad := strings.Repeat(" ", e.shiftWidth)
	for l := l1; l <= l2 && l < b.NumLines(); l++ {
		line := b.Line(l)
		if line == "" {
			continue
		}
		_ = b.SetLine(l, pad+line)
	}
}

// SwapChar toggles the case of the character at p.
func (e *Editor) SwapChar(p Point) bool {
	c, ok := e.buf.CharAt(p)
	if !ok {
		return false
	}
	switch {
	case c >= 'a' && c <= 'z':
		c -= 'a' - 'A'
	case c >= 'A' && c <= 'Z':
		c += 'a' - 'A'
	default:
		return true
	}
	_ = e.buf.SetChar(p, c)
	return true
}

// AddChars inserts s into line at col, one character at a time.
func (e *Editor) AddChars(line, col int, s string) {
	for i := 0; i < len(s); i++ {
		_ = e.buf.InsertChar(Point{Line: line, Col: col + i}, s[i])
	}
}

// MoveToFirstNonBlank moves the cursor to the first non-blank of its line.
func (e *Editor) MoveToFirstNonBlank() {
	motion.Apply(e.buf, motion.FirstNonBlankOf)
}

// MoveToFirstNonBlankUp moves up n lines, then to the first non-blank.
func (e *Editor) MoveToFirstNonBlankUp(n int) {
	e.buf.RMoveTo(-n, 0)
	e.MoveToFirstNonBlank()
}

// MoveToFirstNonBlankDown moves down n lines, then to the first non-blank.
func (e *Editor) MoveToFirstNonBlankDown(n int) {
	e.buf.RMoveTo(n, 0)
	e.MoveToFirstNonBlank()
}

// MoveToNonBlank moves the cursor right over blanks.
func (e *Editor) MoveToNonBlank() {
	p := e.buf.Pos()
	line := e.buf.Line(p.Line)
	for p.Col < len(line) && motion.IsSpace(line[p.Col]) {
		p.Col++
	}
	e.buf.MoveTo(p)
}
