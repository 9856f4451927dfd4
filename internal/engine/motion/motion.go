// Package motion locates word, sentence, paragraph and section boundaries
// and character or pattern matches in a line buffer.
//
// Every motion has an explicit-position form, a func(Lines, Point) returning
// the target and whether a target was found. Apply wraps any of them into
// the cursor-relative form. Motions never mutate the buffer; the result
// always satisfies 0 <= Line < NumLines and 0 <= Col <= line length.
package motion

import "github.com/dshills/ctext/internal/engine/buffer"

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Lines is the read-only buffer surface motions need.
type Lines interface {
	Line(n int) string
	NumLines() int
}

// Cursor is a buffer with a movable cursor.
type Cursor interface {
	Lines
	Pos() Point
	MoveTo(p Point)
}

// Func is an explicit-position motion.
type Func func(b Lines, p Point) (Point, bool)

// Apply runs m from the cursor position and moves the cursor to the result.
// The cursor moves even when m reports no further target, since the
// result is the closest reachable position.
func Apply(c Cursor, m Func) bool {
	p, ok := m(c, c.Pos())
	c.MoveTo(p)
	return ok
}

// Repeat composes m with itself n times, stopping early when a step finds
// nothing.
func Repeat(m Func, n int) Func {
	if n < 1 {
		n = 1
	}
	return func(b Lines, p Point) (Point, bool) {
		ok := false
		for i := 0; i < n; i++ {
			q, found := m(b, p)
			p = q
			if !found {
				return p, ok
			}
			ok = true
		}
		return p, ok
	}
}

// IsWordChar reports whether c is a word character (alnum or underscore).
func IsWordChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// IsSpace reports whether c is a blank character.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// IsBlank reports whether line has no non-blank characters.
func IsBlank(line string) bool {
	for i := 0; i < len(line); i++ {
		if !IsSpace(line[i]) {
			return false
		}
	}
	return true
}

// FirstNonBlank returns the column of the first non-blank in line, or
// len(line) when there is none.
func FirstNonBlank(line string) int {
	i := 0
	for i < len(line) && IsSpace(line[i]) {
		i++
	}
	return i
}

// clamp limits p to the buffer, allowing the one-past-end column.
func clamp(b Lines, p Point) Point {
	n := b.NumLines()
	if p.Line >= n {
		p.Line = n - 1
	}
	if p.Line < 0 {
		p.Line = 0
	}
	if l := len(b.Line(p.Line)); p.Col > l {
		p.Col = l
	}
	if p.Col < 0 {
		p.Col = 0
	}
	return p
}

// NextLine moves to column 0 of the following line. On the last line the
// column moves to the last character and false is returned.
func NextLine(b Lines, p Point) (Point, bool) {
	if p.Line >= b.NumLines()-1 {
		return Point{Line: p.Line, Col: max(len(b.Line(p.Line))-1, 0)}, false
	}
	return Point{Line: p.Line + 1}, true
}

// PrevLine moves to the last character of the preceding line. On the first
// line the column moves to 0 and false is returned.
func PrevLine(b Lines, p Point) (Point, bool) {
	if p.Line <= 0 {
		return Point{Line: 0}, false
	}
	l := p.Line - 1
	return Point{Line: l, Col: max(len(b.Line(l))-1, 0)}, true
}

// FirstNonBlankOf returns the first non-blank column of p's line.
func FirstNonBlankOf(b Lines, p Point) (Point, bool) {
	return Point{Line: p.Line, Col: FirstNonBlank(b.Line(p.Line))}, true
}

// GetWord returns the word under p, or false if p is not on a word
// character.
func GetWord(b Lines, p Point) (string, bool) {
	line := b.Line(p.Line)
	if p.Col < 0 || p.Col >= len(line) || !IsWordChar(line[p.Col]) {
		return "", false
	}
	start := p.Col
	for start > 0 && IsWordChar(line[start-1]) {
		start--
	}
	end := p.Col
	for end < len(line)-1 && IsWordChar(line[end+1]) {
		end++
	}
	return line[start : end+1], true
}
