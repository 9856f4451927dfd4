package buffer

import (
	"errors"
	"strings"
)

// Errors returned by buffer operations.
var (
	ErrLineOutOfRange = errors.New("line out of range")
	ErrColOutOfRange  = errors.New("column out of range")
	ErrNotRegular     = errors.New("not a regular file")
	ErrNoFileName     = errors.New("no file name")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

const defaultPageSize = 24

// Buffer is an ordered list of text lines with a cursor and a page window.
type Buffer struct {
	lines []string
	pos   Point

	pageTop  int
	pageSize int

	fileName   string
	lineEnding LineEnding

	observers  []observerEntry
	nextHandle Handle
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		pageSize:   defaultPageSize,
		lineEnding: LineEndingLF,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBufferFromLines creates a buffer holding a copy of lines.
func NewBufferFromLines(lines []string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.lines = append([]string(nil), lines...)
	return b
}

// NewBufferFromString creates a buffer from newline separated text.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	return NewBufferFromLines(SplitLines(s), opts...)
}

// SplitLines splits text into lines, normalizing CRLF and CR endings.
// A trailing line ending does not produce an extra empty line.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	return append([]string(nil), b.lines...)
}

// String returns the buffer text with lines joined by \n.
func (b *Buffer) String() string {
	return strings.Join(b.lines, "\n")
}

// NumLines returns the number of lines.
func (b *Buffer) NumLines() int {
	return len(b.lines)
}

// IsEmpty returns true if the buffer has no lines.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 0
}

// Line returns line n, or "" if n is out of range.
func (b *Buffer) Line(n int) string {
	if n < 0 || n >= len(b.lines) {
		return ""
	}
	return b.lines[n]
}

// CurrentLine returns the line under the cursor.
func (b *Buffer) CurrentLine() string {
	return b.Line(b.pos.Line)
}

// LineLength returns the length of the line under the cursor.
func (b *Buffer) LineLength() int {
	return len(b.CurrentLine())
}

// LineLen returns the length of line n, or 0 if out of range.
func (b *Buffer) LineLen(n int) int {
	return len(b.Line(n))
}

// CharAt returns the byte at p and whether p addresses a character.
func (b *Buffer) CharAt(p Point) (byte, bool) {
	line := b.Line(p.Line)
	if p.Col < 0 || p.Col >= len(line) {
		return 0, false
	}
	return line[p.Col], true
}

// Pos returns the cursor position.
func (b *Buffer) Pos() Point {
	return b.pos
}

// Row returns the cursor line.
func (b *Buffer) Row() int {
	return b.pos.Line
}

// Col returns the cursor column.
func (b *Buffer) Col() int {
	return b.pos.Col
}

// Clamp limits p to a valid cursor position.
func (b *Buffer) Clamp(p Point) Point {
	if p.Line >= len(b.lines) {
		p.Line = len(b.lines) - 1
	}
	if p.Line < 0 {
		p.Line = 0
	}
	n := b.LineLen(p.Line)
	if p.Col > n {
		p.Col = n
	}
	if p.Col < 0 {
		p.Col = 0
	}
	return p
}

// MoveTo moves the cursor to p, clamped to valid bounds.
func (b *Buffer) MoveTo(p Point) {
	b.setPos(b.Clamp(p))
}

// RMoveTo moves the cursor relative to its current position.
// The line moves first so the column is clamped against the target line.
func (b *Buffer) RMoveTo(dLine, dCol int) {
	b.MoveTo(Point{Line: b.pos.Line + dLine, Col: b.pos.Col + dCol})
}

func (b *Buffer) setPos(p Point) {
	if p == b.pos {
		return
	}
	b.pos = p
	b.notifyPositionChanged(p)
}

// reclamp re-validates the cursor after a structural change.
func (b *Buffer) reclamp() {
	b.setPos(b.Clamp(b.pos))
}

// PageTop returns the first line of the page window.
func (b *Buffer) PageTop() int {
	return b.pageTop
}

// PageBottom returns the last line of the page window.
func (b *Buffer) PageBottom() int {
	bottom := b.pageTop + b.pageSize - 1
	if bottom >= len(b.lines) {
		bottom = len(b.lines) - 1
	}
	if bottom < b.pageTop {
		bottom = b.pageTop
	}
	return bottom
}

// PageSize returns the number of lines in the page window.
func (b *Buffer) PageSize() int {
	return b.pageSize
}

// SetPage sets the page window. Hosts call this when the view resizes or
// scrolls.
func (b *Buffer) SetPage(top, size int) {
	if top < 0 {
		top = 0
	}
	b.pageTop = top
	if size > 0 {
		b.pageSize = size
	}
}

// ScrollTop scrolls so the cursor line is the first page line.
func (b *Buffer) ScrollTop() {
	b.SetPage(b.pos.Line, 0)
}

// ScrollMiddle scrolls so the cursor line is centered in the page.
func (b *Buffer) ScrollMiddle() {
	b.SetPage(b.pos.Line-b.pageSize/2, 0)
}

// ScrollBottom scrolls so the cursor line is the last page line.
func (b *Buffer) ScrollBottom() {
	b.SetPage(b.pos.Line-b.pageSize+1, 0)
}

// FileName returns the default file name.
func (b *Buffer) FileName() string {
	return b.fileName
}

// SetFileName sets the default file name.
func (b *Buffer) SetFileName(name string) {
	b.fileName = name
}

// LineEnding returns the line ending used by Write.
func (b *Buffer) LineEnding() LineEnding {
	return b.lineEnding
}

// Explicit-index primitives. Each emits one notification.

// InsertLine inserts text so it becomes line i. i is clamped to [0, n].
func (b *Buffer) InsertLine(i int, text string) {
	if i < 0 {
		i = 0
	}
	if i > len(b.lines) {
		i = len(b.lines)
	}
	b.lines = append(b.lines, "")
	copy(b.lines[i+1:], b.lines[i:])
	b.lines[i] = text
	b.notifyLineAdded(i, text)
}

// DeleteLine removes line i.
func (b *Buffer) DeleteLine(i int) error {
	if i < 0 || i >= len(b.lines) {
		return ErrLineOutOfRange
	}
	text := b.lines[i]
	b.lines = append(b.lines[:i], b.lines[i+1:]...)
	b.notifyLineDeleted(i, text)
	b.reclamp()
	return nil
}

// SetLine replaces the text of line i.
func (b *Buffer) SetLine(i int, text string) error {
	if i < 0 || i >= len(b.lines) {
		return ErrLineOutOfRange
	}
	old := b.lines[i]
	if old == text {
		return nil
	}
	b.lines[i] = text
	b.notifyLineReplaced(i, old, text)
	if i == b.pos.Line {
		b.reclamp()
	}
	return nil
}

// InsertChar inserts ch at p. Inserting into an empty buffer creates line 0.
func (b *Buffer) InsertChar(p Point, ch byte) error {
	if len(b.lines) == 0 && p.Line == 0 {
		b.InsertLine(0, "")
	}
	if p.Line < 0 || p.Line >= len(b.lines) {
		return ErrLineOutOfRange
	}
	line := b.lines[p.Line]
	if p.Col < 0 || p.Col > len(line) {
		return ErrColOutOfRange
	}
	b.lines[p.Line] = line[:p.Col] + string(ch) + line[p.Col:]
	b.notifyCharAdded(p, ch)
	return nil
}

// DeleteChar removes the character at p.
func (b *Buffer) DeleteChar(p Point) error {
	if p.Line < 0 || p.Line >= len(b.lines) {
		return ErrLineOutOfRange
	}
	line := b.lines[p.Line]
	if p.Col < 0 || p.Col >= len(line) {
		return ErrColOutOfRange
	}
	ch := line[p.Col]
	b.lines[p.Line] = line[:p.Col] + line[p.Col+1:]
	b.notifyCharDeleted(p, ch)
	if p.Line == b.pos.Line {
		b.reclamp()
	}
	return nil
}

// SetChar replaces the character at p.
func (b *Buffer) SetChar(p Point, ch byte) error {
	if p.Line < 0 || p.Line >= len(b.lines) {
		return ErrLineOutOfRange
	}
	line := b.lines[p.Line]
	if p.Col < 0 || p.Col >= len(line) {
		return ErrColOutOfRange
	}
	old := line[p.Col]
	if old == ch {
		return nil
	}
	b.lines[p.Line] = line[:p.Col] + string(ch) + line[p.Col+1:]
	b.notifyCharReplaced(p, old, ch)
	return nil
}

// Cursor-relative operations.

// AddLineBefore inserts text above the cursor line. The cursor stays at the
// same index and so addresses the new line.
func (b *Buffer) AddLineBefore(text string) {
	b.InsertLine(b.pos.Line, text)
}

// AddLineAfter inserts text below the cursor line.
func (b *Buffer) AddLineAfter(text string) {
	if len(b.lines) == 0 {
		b.InsertLine(0, text)
		return
	}
	b.InsertLine(b.pos.Line+1, text)
}

// DeleteLineAt removes the cursor line.
func (b *Buffer) DeleteLineAt() {
	_ = b.DeleteLine(b.pos.Line)
}

// DeleteLineBefore removes the line above the cursor and moves the cursor up.
func (b *Buffer) DeleteLineBefore() {
	if b.pos.Line == 0 {
		return
	}
	line := b.pos.Line - 1
	_ = b.DeleteLine(line)
	b.MoveTo(Point{Line: line, Col: b.pos.Col})
}

// ReplaceLine replaces the cursor line. An empty buffer gains the line.
func (b *Buffer) ReplaceLine(text string) {
	if len(b.lines) == 0 {
		b.InsertLine(0, text)
		return
	}
	_ = b.SetLine(b.pos.Line, text)
}

// AddCharBefore inserts ch at the cursor column. The cursor does not move.
func (b *Buffer) AddCharBefore(ch byte) {
	_ = b.InsertChar(b.Clamp(b.pos), ch)
}

// AddCharAfter inserts ch after the cursor character.
func (b *Buffer) AddCharAfter(ch byte) {
	p := b.Clamp(b.pos)
	if p.Col < b.LineLen(p.Line) {
		p.Col++
	}
	_ = b.InsertChar(p, ch)
}

// DeleteCharAt removes the character under the cursor.
func (b *Buffer) DeleteCharAt() {
	_ = b.DeleteChar(b.pos)
}

// DeleteCharBefore removes the character left of the cursor.
func (b *Buffer) DeleteCharBefore() {
	if b.pos.Col == 0 {
		return
	}
	p := Point{Line: b.pos.Line, Col: b.pos.Col - 1}
	if err := b.DeleteChar(p); err == nil {
		b.MoveTo(p)
	}
}

// ReplaceChar replaces the character under the cursor, appending when the
// cursor is at the end of the line.
func (b *Buffer) ReplaceChar(ch byte) {
	if b.pos.Col >= b.LineLength() {
		_ = b.InsertChar(b.Clamp(b.pos), ch)
		return
	}
	_ = b.SetChar(b.pos, ch)
}

// RemoveAllLines deletes every line, last first, then emits LinesCleared.
func (b *Buffer) RemoveAllLines() {
	for i := len(b.lines) - 1; i >= 0; i-- {
		_ = b.DeleteLine(i)
	}
	b.notifyLinesCleared()
}
