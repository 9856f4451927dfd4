package motion

// class partitions cells for word motions.
type class int

const (
	classNone  class = iota // past the end of the buffer
	classBlank              // whitespace
	classWord               // alnum or underscore
	classPunct              // any other non-blank
	classEmpty              // the single cell of an empty line
)

// classify returns the class of the cell at p. When big is set every
// non-blank character belongs to one class.
func classify(b Lines, p Point, big bool) class {
	if p.Line < 0 || p.Line >= b.NumLines() {
		return classNone
	}
	line := b.Line(p.Line)
	if len(line) == 0 {
		return classEmpty
	}
	if p.Col < 0 || p.Col >= len(line) {
		return classBlank
	}
	c := line[p.Col]
	switch {
	case IsSpace(c):
		return classBlank
	case big || IsWordChar(c):
		return classWord
	default:
		return classPunct
	}
}

// nextCell steps one cell forward, crossing to column 0 of the next line.
func nextCell(b Lines, p Point) (Point, bool) {
	if p.Col+1 < len(b.Line(p.Line)) {
		return Point{Line: p.Line, Col: p.Col + 1}, true
	}
	if p.Line+1 < b.NumLines() {
		return Point{Line: p.Line + 1}, true
	}
	return p, false
}

// prevCell steps one cell backward, crossing to the last cell of the
// previous line.
func prevCell(b Lines, p Point) (Point, bool) {
	if p.Col > 0 {
		return Point{Line: p.Line, Col: min(p.Col-1, max(len(b.Line(p.Line))-1, 0))}, true
	}
	if p.Line > 0 {
		l := p.Line - 1
		return Point{Line: l, Col: max(len(b.Line(l))-1, 0)}, true
	}
	return p, false
}

// endOfBuffer is where forward motions stop when no target exists.
func endOfBuffer(b Lines) Point {
	l := max(b.NumLines()-1, 0)
	return Point{Line: l, Col: len(b.Line(l))}
}

func nextWord(b Lines, p Point, big bool) (Point, bool) {
	if b.NumLines() == 0 {
		return Point{}, false
	}
	cls := classify(b, p, big)
	q := p
	ok := true

	// Skip the rest of the current token. Tokens never span lines.
	switch cls {
	case classWord, classPunct:
		for {
			n, more := nextCell(b, q)
			if !more {
				return endOfBuffer(b), false
			}
			if n.Line != q.Line || classify(b, n, big) != cls {
				q = n
				break
			}
			q = n
		}
	case classEmpty:
		q, ok = nextCell(b, q)
		if !ok {
			return endOfBuffer(b), false
		}
	case classBlank:
		if p.Col >= len(b.Line(p.Line)) {
			q, ok = nextLineStart(b, p)
			if !ok {
				return endOfBuffer(b), false
			}
		}
	}

	for {
		c := classify(b, q, big)
		if c != classBlank {
			return q, true
		}
		q, ok = nextCell(b, q)
		if !ok {
			return endOfBuffer(b), false
		}
	}
}

func nextLineStart(b Lines, p Point) (Point, bool) {
	if p.Line+1 < b.NumLines() {
		return Point{Line: p.Line + 1}, true
	}
	return p, false
}

func prevWord(b Lines, p Point, big bool) (Point, bool) {
	if b.NumLines() == 0 {
		return Point{}, false
	}
	q, ok := prevCell(b, p)
	if !ok {
		return Point{}, false
	}
	for classify(b, q, big) == classBlank {
		q, ok = prevCell(b, q)
		if !ok {
			return Point{}, true
		}
	}
	cls := classify(b, q, big)
	if cls == classEmpty {
		return q, true
	}
	for q.Col > 0 && classify(b, Point{Line: q.Line, Col: q.Col - 1}, big) == cls {
		q.Col--
	}
	return q, true
}

func endWord(b Lines, p Point, big bool) (Point, bool) {
	if b.NumLines() == 0 {
		return Point{}, false
	}
	q, ok := nextCell(b, p)
	if !ok {
		return p, false
	}
	for {
		c := classify(b, q, big)
		if c != classBlank && c != classEmpty {
			break
		}
		q, ok = nextCell(b, q)
		if !ok {
			return p, false
		}
	}
	cls := classify(b, q, big)
	line := b.Line(q.Line)
	for q.Col+1 < len(line) && classify(b, Point{Line: q.Line, Col: q.Col + 1}, big) == cls {
		q.Col++
	}
	return q, true
}

// NextWord moves to the start of the next word. An empty line counts as
// a word.
func NextWord(b Lines, p Point) (Point, bool) { return nextWord(b, p, false) }

// NextBigWord moves to the start of the next WORD.
func NextBigWord(b Lines, p Point) (Point, bool) { return nextWord(b, p, true) }

// PrevWord moves to the start of the previous word.
func PrevWord(b Lines, p Point) (Point, bool) { return prevWord(b, p, false) }

// PrevBigWord moves to the start of the previous WORD.
func PrevBigWord(b Lines, p Point) (Point, bool) { return prevWord(b, p, true) }

// EndWord moves to the end of the current or next word.
func EndWord(b Lines, p Point) (Point, bool) { return endWord(b, p, false) }

// EndBigWord moves to the end of the current or next WORD.
func EndBigWord(b Lines, p Point) (Point, bool) { return endWord(b, p, true) }

// WordSpanEnd returns the exclusive end column of the n words starting at
// col on line, including trailing blanks, without leaving the line. When
// trailing is false trailing blanks after the last word are excluded.
func WordSpanEnd(line string, col, n int, trailing bool) int {
	if n < 1 {
		n = 1
	}
	i := col
	for k := 0; k < n && i < len(line); k++ {
		c := line[i]
		switch {
		case IsWordChar(c):
			for i < len(line) && IsWordChar(line[i]) {
				i++
			}
		case !IsSpace(c):
			for i < len(line) && !IsWordChar(line[i]) && !IsSpace(line[i]) {
				i++
			}
		}
		if k == n-1 && !trailing && !IsSpace(c) {
			break
		}
		for i < len(line) && IsSpace(line[i]) {
			i++
		}
	}
	return i
}
