package buffer

import "fmt"

// Point represents a line and column position.
// Both Line and Col are 0-indexed; Col is a byte offset within the line.
type Point struct {
	Line int
	Col  int
}

// NoPoint is the sentinel used for positions that are not set.
var NoPoint = Point{Line: -1, Col: -1}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Col)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Col < other.Col {
		return -1
	}
	if p.Col > other.Col {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the zero point (0:0).
func (p Point) IsZero() bool {
	return p.Line == 0 && p.Col == 0
}

// IsSet reports whether p is not the NoPoint sentinel.
func (p Point) IsSet() bool {
	return p.Line >= 0 && p.Col >= 0
}

// Order returns the two points in document order.
func Order(a, b Point) (Point, Point) {
	if b.Before(a) {
		return b, a
	}
	return a, b
}
