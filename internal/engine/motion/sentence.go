package motion

import "strings"

// SentenceEnd reports whether a sentence ends at pos in line: one of
// ".!?", then any closing ")]\"'" characters, then end of line or a blank.
// n is the number of characters making up the terminator.
func SentenceEnd(line string, pos int) (n int, ok bool) {
	if pos < 0 || pos >= len(line) || !strings.ContainsRune(".?!", rune(line[pos])) {
		return 0, false
	}
	n = 1
	for pos+n < len(line) && strings.ContainsRune(")]\"'", rune(line[pos+n])) {
		n++
	}
	if pos+n >= len(line) || IsSpace(line[pos+n]) {
		return n, true
	}
	return 0, false
}

// sentenceStarts calls yield for each sentence start at or after line
// from, in document order, until yield returns false. Scanning must begin
// at a line where a new sentence is known to start (line 0 or the line
// after a blank line).
func sentenceStarts(b Lines, from int, yield func(Point) bool) {
	pending := true
	for l := from; l < b.NumLines(); l++ {
		line := b.Line(l)
		if len(line) == 0 {
			if !yield(Point{Line: l}) {
				return
			}
			pending = true
			continue
		}
		if IsBlank(line) {
			pending = true
			continue
		}
		for c := 0; c < len(line); c++ {
			if pending && !IsSpace(line[c]) {
				if !yield(Point{Line: l, Col: c}) {
					return
				}
				pending = false
			}
			if n, ok := SentenceEnd(line, c); ok {
				c += n - 1
				pending = true
			}
		}
	}
}

// sentenceAnchor returns a line at or before l where sentence scanning can
// safely start.
func sentenceAnchor(b Lines, l int) int {
	for l > 0 {
		if IsBlank(b.Line(l - 1)) {
			return l
		}
		l--
	}
	return 0
}

// NextSentence moves to the start of the next sentence. Empty lines are
// sentences of their own. With no further sentence the position moves to
// the end of the buffer.
func NextSentence(b Lines, p Point) (Point, bool) {
	if b.NumLines() == 0 {
		return Point{}, false
	}
	var found Point
	ok := false
	sentenceStarts(b, sentenceAnchor(b, p.Line), func(s Point) bool {
		if s.After(p) {
			found, ok = s, true
			return false
		}
		return true
	})
	if !ok {
		last := endOfBuffer(b)
		last.Col = max(last.Col-1, 0)
		return last, false
	}
	return found, true
}

// PrevSentence moves to the start of the current or previous sentence.
func PrevSentence(b Lines, p Point) (Point, bool) {
	if b.NumLines() == 0 {
		return Point{}, false
	}
	var found Point
	ok := false
	anchor := sentenceAnchor(b, p.Line)
	for {
		sentenceStarts(b, anchor, func(s Point) bool {
			if !s.Before(p) {
				return false
			}
			found, ok = s, true
			return true
		})
		if ok || anchor == 0 {
			break
		}
		anchor = sentenceAnchor(b, anchor-1)
	}
	if !ok {
		return Point{}, false
	}
	return found, true
}

// NextParagraph skips empty lines, then the following non-empty lines,
// stopping on the next empty line.
func NextParagraph(b Lines, p Point) (Point, bool) {
	return scanLines(b, p, NextLine, func(s string) bool { return s == "" })
}

// PrevParagraph is the backward form of NextParagraph.
func PrevParagraph(b Lines, p Point) (Point, bool) {
	return scanLines(b, p, PrevLine, func(s string) bool { return s == "" })
}

func scanLines(b Lines, p Point, step Func, boundary func(string) bool) (Point, bool) {
	if b.NumLines() == 0 {
		return Point{}, false
	}
	ok := true
	for boundary(b.Line(p.Line)) {
		if p, ok = step(b, p); !ok {
			return p, false
		}
	}
	for !boundary(b.Line(p.Line)) {
		if p, ok = step(b, p); !ok {
			return p, false
		}
	}
	return p, true
}

// IsSection reports whether line starts a section.
func IsSection(line string) bool {
	return len(line) > 0 && line[0] == '{'
}

// NextSection moves to the next line starting with '{'.
func NextSection(b Lines, p Point) (Point, bool) {
	return scanSection(b, p, NextLine)
}

// PrevSection moves to the previous line starting with '{'.
func PrevSection(b Lines, p Point) (Point, bool) {
	return scanSection(b, p, PrevLine)
}

func scanSection(b Lines, p Point, step Func) (Point, bool) {
	if b.NumLines() == 0 {
		return Point{}, false
	}
	for {
		var ok bool
		if p, ok = step(b, p); !ok {
			return p, false
		}
		if IsSection(b.Line(p.Line)) {
			return Point{Line: p.Line}, true
		}
	}
}
