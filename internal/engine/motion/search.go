package motion

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// Pattern is a literal string or a regular expression to search for.
type Pattern struct {
	text   string
	re     *regexp.Regexp
	folded string
	fold   bool
}

var folder = cases.Fold()

// Literal returns a pattern matching text exactly, ignoring case when
// caseSensitive is false.
func Literal(text string, caseSensitive bool) *Pattern {
	p := &Pattern{text: text, fold: !caseSensitive}
	if p.fold {
		p.folded = folder.String(text)
	}
	return p
}

// Regexp compiles a regular expression pattern.
func Regexp(expr string, caseSensitive bool) (*Pattern, error) {
	src := expr
	if !caseSensitive {
		src = "(?i)" + src
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", expr, err)
	}
	return &Pattern{text: expr, re: re}, nil
}

// String returns the source text of the pattern.
func (p *Pattern) String() string {
	return p.text
}

// IsRegexp reports whether p is a regular expression.
func (p *Pattern) IsRegexp() bool {
	return p.re != nil
}

// Compiled returns the compiled expression, or nil for a literal.
func (p *Pattern) Compiled() *regexp.Regexp {
	return p.re
}

// Match is a pattern occurrence.
type Match struct {
	Pos Point
	Len int
}

// allIn returns every match start and length in s, left to right.
func (p *Pattern) allIn(s string) [][2]int {
	var out [][2]int
	if p.re != nil {
		for _, loc := range p.re.FindAllStringIndex(s, -1) {
			out = append(out, [2]int{loc[0], loc[1] - loc[0]})
		}
		return out
	}
	needle := p.text
	hay := s
	if p.fold {
		needle = p.folded
		if f := folder.String(s); len(f) == len(s) {
			hay = f
		} else {
			return p.allFoldSlow(s)
		}
	}
	if needle == "" {
		return nil
	}
	for i := 0; i+len(needle) <= len(hay); {
		j := strings.Index(hay[i:], needle)
		if j < 0 {
			break
		}
		out = append(out, [2]int{i + j, len(needle)})
		i += j + 1
	}
	return out
}

// allFoldSlow compares byte windows one at a time. It is used when
// folding s changes its byte length, since offsets into the folded string
// would then no longer be offsets into s.
func (p *Pattern) allFoldSlow(s string) [][2]int {
	var out [][2]int
	n := len(p.text)
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], p.text) {
			out = append(out, [2]int{i, n})
		}
	}
	return out
}

// inRange clamps [from, to] to the columns of line. to < 0 means the end
// of the line.
func inRange(line string, from, to int) (int, int, bool) {
	if len(line) == 0 || from >= len(line) {
		return 0, 0, false
	}
	if to < 0 || to >= len(line) {
		to = len(line) - 1
	}
	from = max(from, 0)
	return from, to, from <= to
}

// firstIn returns the first match of line starting within [from, to].
// Matching runs on the whole line so anchors and word boundaries see the
// real line edges.
func (p *Pattern) firstIn(line string, from, to int) (int, int, bool) {
	from, to, ok := inRange(line, from, to)
	if !ok {
		return 0, 0, false
	}
	for _, m := range p.allIn(line) {
		if m[0] > to {
			break
		}
		if m[0] >= from {
			return m[0], m[1], true
		}
	}
	return 0, 0, false
}

// lastIn returns the last match of line starting within [from, to].
func (p *Pattern) lastIn(line string, from, to int) (int, int, bool) {
	from, to, ok := inRange(line, from, to)
	if !ok {
		return 0, 0, false
	}
	all := p.allIn(line)
	for i := len(all) - 1; i >= 0; i-- {
		if m := all[i]; m[0] >= from && m[0] <= to {
			return m[0], m[1], true
		}
	}
	return 0, 0, false
}

// MatchLine reports whether the pattern occurs anywhere in line.
func (p *Pattern) MatchLine(line string) bool {
	_, _, ok := p.firstIn(line, 0, -1)
	return ok
}

// FindNext returns the first match starting in the range from (line1, col1) to
// (line2, col2), scanning forward. col2 == -1 means the end of line2.
// Callers wanting wrap-around split the search into two calls.
func FindNext(b Lines, pat *Pattern, line1, col1, line2, col2 int) (Match, bool) {
	if line1 > line2 || line1 < 0 || line2 >= b.NumLines() {
		return Match{}, false
	}
	if line1 == line2 {
		if c, n, ok := pat.firstIn(b.Line(line1), col1, col2); ok {
			return Match{Pos: Point{Line: line1, Col: c}, Len: n}, true
		}
		return Match{}, false
	}
	if c, n, ok := pat.firstIn(b.Line(line1), col1, -1); ok {
		return Match{Pos: Point{Line: line1, Col: c}, Len: n}, true
	}
	for l := line1 + 1; l < line2; l++ {
		if c, n, ok := pat.firstIn(b.Line(l), 0, -1); ok {
			return Match{Pos: Point{Line: l, Col: c}, Len: n}, true
		}
	}
	if c, n, ok := pat.firstIn(b.Line(line2), 0, col2); ok {
		return Match{Pos: Point{Line: line2, Col: c}, Len: n}, true
	}
	return Match{}, false
}

// FindPrev returns the last match starting in the range, scanning backward from
// (line1, col1) down to (line2, col2). col1 == -1 means the end of line1.
func FindPrev(b Lines, pat *Pattern, line1, col1, line2, col2 int) (Match, bool) {
	if line1 < line2 || line2 < 0 || line1 >= b.NumLines() {
		return Match{}, false
	}
	if line1 == line2 {
		if c, n, ok := pat.lastIn(b.Line(line1), col2, col1); ok {
			return Match{Pos: Point{Line: line1, Col: c}, Len: n}, true
		}
		return Match{}, false
	}
	if c, n, ok := pat.lastIn(b.Line(line1), 0, col1); ok {
		return Match{Pos: Point{Line: line1, Col: c}, Len: n}, true
	}
	for l := line1 - 1; l > line2; l-- {
		if c, n, ok := pat.lastIn(b.Line(l), 0, -1); ok {
			return Match{Pos: Point{Line: l, Col: c}, Len: n}, true
		}
	}
	if c, n, ok := pat.lastIn(b.Line(line2), col2, -1); ok {
		return Match{Pos: Point{Line: line2, Col: c}, Len: n}, true
	}
	return Match{}, false
}

// FindNextChar finds the next occurrence of any byte in chars strictly
// after p, optionally continuing onto following lines.
func FindNextChar(b Lines, p Point, chars string, multiline bool) (Point, bool) {
	l, c := p.Line, p.Col+1
	for l < b.NumLines() {
		line := b.Line(l)
		for i := max(c, 0); i < len(line); i++ {
			if strings.IndexByte(chars, line[i]) >= 0 {
				return Point{Line: l, Col: i}, true
			}
		}
		if !multiline {
			break
		}
		l, c = l+1, 0
	}
	return p, false
}

// FindPrevChar finds the previous occurrence of any byte in chars strictly
// before p, optionally continuing onto preceding lines.
func FindPrevChar(b Lines, p Point, chars string, multiline bool) (Point, bool) {
	l, c := p.Line, p.Col-1
	for l >= 0 && l < b.NumLines() {
		line := b.Line(l)
		for i := min(c, len(line)-1); i >= 0; i-- {
			if strings.IndexByte(chars, line[i]) >= 0 {
				return Point{Line: l, Col: i}, true
			}
		}
		if !multiline {
			break
		}
		l--
		c = len(b.Line(l)) - 1
	}
	return p, false
}

// MatchPair finds the bracket matching the one at or after p on its line.
func MatchPair(b Lines, p Point) (Point, bool) {
	const open, close = "([{", ")]}"
	q, ok := clamp(b, p), false
	line := b.Line(q.Line)
	for q.Col < len(line) && !strings.ContainsRune(open+close, rune(line[q.Col])) {
		q.Col++
	}
	if q.Col >= len(line) {
		return p, false
	}
	ch := line[q.Col]
	var want byte
	step := nextCell
	if i := strings.IndexByte(open, ch); i >= 0 {
		want = close[i]
	} else {
		want = open[strings.IndexByte(close, ch)]
		step = prevCell
	}
	depth := 0
	for {
		if c, in := b.Line(q.Line), q.Col; in < len(c) {
			switch c[in] {
			case ch:
				depth++
			case want:
				depth--
				if depth == 0 {
					return q, true
				}
			}
		}
		if q, ok = step(b, q); !ok {
			return p, false
		}
	}
}
