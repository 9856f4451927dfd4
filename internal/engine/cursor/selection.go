package cursor

import (
	"strings"

	"github.com/dshills/ctext/internal/engine/buffer"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Mode is the selection shape.
type Mode uint8

const (
	ModeRange Mode = iota // linear span in document order
	ModeRect              // rectangular column box
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeRect {
		return "rect"
	}
	return "range"
}

// Buffer is the surface a Selection reads text from and moves the cursor
// through.
type Buffer interface {
	Line(n int) string
	NumLines() int
	Pos() Point
	RMoveTo(dLine, dCol int)
}

// Selection is the active selection of a key processor.
type Selection struct {
	buf      Buffer
	mode     Mode
	selected bool
	start    Point
	end      Point

	// OnChange receives the selected text whenever the selection changes.
	OnChange func(text string)
}

// NewSelection creates an empty range selection over buf.
func NewSelection(buf Buffer) *Selection {
	return &Selection{buf: buf}
}

// Cmp orders points by line, then column. The sign of the result is the
// comparison; the magnitude is the line or column distance.
func Cmp(a, b Point) int {
	if a.Line == b.Line {
		return a.Col - b.Col
	}
	return a.Line - b.Line
}

// IsSelected reports whether a selection is active.
func (s *Selection) IsSelected() bool {
	return s.selected
}

// Mode returns the selection mode.
func (s *Selection) Mode() Mode {
	return s.mode
}

// Start returns the first endpoint.
func (s *Selection) Start() Point {
	return s.start
}

// End returns the last endpoint.
func (s *Selection) End() Point {
	return s.end
}

func (s *Selection) notify() {
	if s.OnChange != nil {
		s.OnChange(s.Text())
	}
}

// Clear deselects. Notifies only if something was selected.
func (s *Selection) Clear() {
	if s.selected {
		s.selected = false
		s.notify()
	}
}

// SetMode switches the selection mode. Notifies only on change.
func (s *Selection) SetMode(m Mode) {
	if m != s.mode {
		s.mode = m
		s.notify()
	}
}

// isValid reports whether the endpoints describe a non-empty selection.
func (s *Selection) isValid() bool {
	if s.mode == ModeRange {
		return Cmp(s.start, s.end) < 0
	}
	return true
}

// RangeSelect sets the endpoints, swapping them into document order.
// When clear is set the previous selected state is discarded first.
func (s *Selection) RangeSelect(start, end Point, clear bool) {
	if end.Before(start) {
		start, end = end, start
	}
	oldSel, oldStart, oldEnd := s.selected, s.start, s.end
	if clear {
		s.selected = false
	}
	s.start = start
	s.end = end
	s.selected = s.isValid()
	if s.selected != oldSel || s.start != oldStart || s.end != oldEnd {
		s.notify()
	}
}

// SetRange replaces the selection with start..end.
func (s *Selection) SetRange(start, end Point) {
	s.RangeSelect(start, end, true)
}

// SelectChar selects from (row, col) to the next column.
func (s *Selection) SelectChar(row, col int) {
	s.RangeSelect(Point{Line: row, Col: col}, Point{Line: row, Col: col + 1}, true)
}

// SelectLine selects the whole of row.
func (s *Selection) SelectLine(row int) {
	n := len(s.buf.Line(row))
	s.RangeSelect(Point{Line: row}, Point{Line: row, Col: max(n-1, 0)}, true)
}

// SelectAll selects the whole buffer.
func (s *Selection) SelectAll() {
	last := max(s.buf.NumLines()-1, 0)
	s.RangeSelect(Point{}, Point{Line: last, Col: max(len(s.buf.Line(last))-1, 0)}, true)
}

// Text returns the selected text with rows joined by \n.
func (s *Selection) Text() string {
	if s.mode == ModeRect {
		return s.rectText()
	}
	return s.rangeText()
}

func (s *Selection) rangeText() string {
	first := s.buf.Line(s.start.Line)
	if s.start.Line == s.end.Line {
		x1 := min(max(s.start.Col, 0), len(first))
		x2 := min(s.end.Col+1, len(first))
		if x2 <= x1 {
			return ""
		}
		return first[x1:x2]
	}

	var sb strings.Builder
	if s.start.Col < len(first) {
		sb.WriteString(first[max(s.start.Col, 0):])
	}
	for row := s.start.Line + 1; row < s.end.Line; row++ {
		sb.WriteByte('\n')
		sb.WriteString(s.buf.Line(row))
	}
	last := s.buf.Line(s.end.Line)
	sb.WriteByte('\n')
	sb.WriteString(last[:min(s.end.Col+1, len(last))])
	return sb.String()
}

func (s *Selection) rectText() string {
	x1 := max(min(s.start.Col, s.end.Col), 0)
	x2 := max(s.start.Col, s.end.Col)

	var sb strings.Builder
	for row := s.start.Line; row <= s.end.Line; row++ {
		if row > s.start.Line {
			sb.WriteByte('\n')
		}
		line := s.buf.Line(row)
		if len(line) == 0 {
			continue
		}
		a, z := x1, x2
		if a >= len(line) {
			a = len(line) - 1
			z = a
		} else if z >= len(line) {
			z = len(line) - 1
		}
		sb.WriteString(line[a : z+1])
	}
	return sb.String()
}

// IsLineInside reports whether row is an interior line of a range
// selection, and so selected in full.
func (s *Selection) IsLineInside(row int) bool {
	if !s.selected || s.mode != ModeRange {
		return false
	}
	return row > s.start.Line && row < s.end.Line
}

// IsPartLineInside reports whether any part of row is selected.
func (s *Selection) IsPartLineInside(row int) bool {
	if !s.selected {
		return false
	}
	return row >= s.start.Line && row <= s.end.Line
}

// IsCharInside reports whether the character at (row, col) is selected.
func (s *Selection) IsCharInside(row, col int) bool {
	if !s.selected {
		return false
	}
	if s.mode == ModeRect {
		x1, x2 := min(s.start.Col, s.end.Col), max(s.start.Col, s.end.Col)
		return row >= s.start.Line && row <= s.end.Line && col >= x1 && col <= x2
	}
	switch {
	case s.start.Line == s.end.Line:
		return row == s.start.Line && col >= s.start.Col && col <= s.end.Col
	case row == s.start.Line:
		return col >= s.start.Col
	case row == s.end.Line:
		return col <= s.end.Col
	default:
		return row > s.start.Line && row < s.end.Line
	}
}

// Contains reports whether p lies inside the selection.
func (s *Selection) Contains(p Point) bool {
	return s.IsCharInside(p.Line, p.Col)
}

// ExtendLeft moves the cursor left n columns, growing or shrinking the
// selection.
func (s *Selection) ExtendLeft(n int) {
	s.extend(0, -n, false)
}

// ExtendRight moves the cursor right n columns.
func (s *Selection) ExtendRight(n int) {
	s.extend(0, n, true)
}

// ExtendUp moves the cursor up n lines.
func (s *Selection) ExtendUp(n int) {
	s.extend(-n, 0, false)
}

// ExtendDown moves the cursor down n lines.
func (s *Selection) ExtendDown(n int) {
	s.extend(n, 0, true)
}

// extend moves the cursor and updates the selection. A cursor outside the
// current selection starts a new one anchored at the pre-move position.
func (s *Selection) extend(dLine, dCol int, forward bool) {
	pos1 := s.buf.Pos()
	if !s.Contains(pos1) {
		s.Clear()
	}
	s.buf.RMoveTo(dLine, dCol)
	pos2 := s.buf.Pos()

	if !s.selected {
		if forward {
			s.SetRange(pos1, pos2)
		} else {
			s.SetRange(pos2, pos1)
		}
		return
	}

	start, end := s.start, s.end
	if forward {
		if Cmp(pos2, end) > 0 {
			s.SetRange(start, pos2)
		} else if Cmp(pos2, start) > 0 {
			s.SetRange(pos2, end)
		}
		return
	}
	if Cmp(pos2, start) < 0 {
		s.SetRange(pos2, end)
	} else if Cmp(pos2, end) < 0 {
		s.SetRange(start, pos2)
	}
}
