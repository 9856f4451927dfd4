package ed

import (
	"errors"

	"github.com/dshills/ctext/internal/engine/mark"
	"github.com/dshills/ctext/internal/engine/motion"
)

// address is one parsed address term.
type address struct {
	line int
	char int
	all  bool
}

// lineRange is the resolved range of a command. n counts the parsed terms.
type lineRange struct {
	l1, c1 int
	l2, c2 int
	n      int
}

// parseRange reads address terms separated by , or ;. With no terms both
// ends are the current line, with one term both ends are that term, and
// with more the last two terms form the range.
func (e *Ed) parseRange(sc *scanner) (lineRange, error) {
	r := lineRange{l1: e.cur, l2: e.cur}
	for {
		a, ok, err := e.parseAddress(sc)
		if err != nil {
			return r, err
		}
		if !ok {
			break
		}
		if a.all {
			r.n = 2
			r.l1, r.c1 = 1, 0
			r.l2, r.c2 = e.buf.NumLines(), 0
			break
		}
		r.n++
		r.l1, r.c1 = r.l2, r.c2
		r.l2, r.c2 = a.line, a.char

		if !sc.is(',') && !sc.is(';') {
			break
		}
		if sc.is(';') {
			e.cur = a.line
		}
		sc.skip()
	}
	if r.n == 0 {
		return r, nil
	}
	if r.n == 1 {
		r.l1, r.c1 = r.l2, r.c2
	}
	limit := e.buf.NumLines() + 1
	if r.l1 < 1 || r.l1 > limit || r.l2 < 1 || r.l2 > limit {
		return r, newError(KindAddress, "Invalid range: %d to %d", r.l1, r.l2)
	}
	return r, nil
}

// offsets applies trailing +n and -n terms to line. A sign with no digits
// counts as one.
func offsets(sc *scanner, line int) int {
	sc.skipSpace()
	for sc.is('+') || sc.is('-') {
		sign := 1
		if sc.is('-') {
			sign = -1
		}
		sc.skip()
		sc.skipSpace()
		d := 1
		if sc.isDigit() {
			d = sc.readInt()
			sc.skipSpace()
		}
		line += sign * d
	}
	return line
}

// relative reads a leading +n or -n term. Repeated signs count one each.
func relative(sc *scanner, sign byte) int {
	sc.skip()
	sc.skipSpace()
	if sc.isDigit() {
		return sc.readInt()
	}
	d := 1
	for sc.is(sign) {
		d++
		sc.skip()
		sc.skipSpace()
	}
	return d
}

// parseAddress reads one address term. The second result is false when the
// input does not start with an address.
func (e *Ed) parseAddress(sc *scanner) (address, bool, error) {
	a := address{line: e.cur}
	sc.skipSpace()

	switch c := sc.peek(); {
	case c == '+':
		a.line = offsets(sc, e.cur+relative(sc, '+'))
	case c == '-' || c == '^':
		a.line = offsets(sc, e.cur-relative(sc, '-'))
	case sc.isDigit():
		a.line = offsets(sc, sc.readInt())
	case c == '.':
		sc.skip()
		a.line = offsets(sc, e.cur)
	case c == '$':
		sc.skip()
		a.line = offsets(sc, e.buf.NumLines())
	case c == '\'':
		sc.skip()
		name, ok := sc.next()
		if !ok {
			return a, true, nil
		}
		p, err := e.marks.Lookup(string(name))
		if err != nil {
			if errors.Is(err, mark.ErrNotSet) {
				return a, false, &Error{Kind: KindMarkNotSet, Msg: "Mark not set", Err: err}
			}
			return a, false, err
		}
		a.line = offsets(sc, p.Line+1)
		a.char = p.Col
	case c == '%':
		sc.skip()
		a.line = 1
		a.all = true
	case c == '/' || c == '?':
		sc.skip()
		expr, closed := sc.readDelimited(c)
		if !closed && !e.ex {
			return a, false, newError(KindParse, "Missing terminating '%c'", c)
		}
		var (
			p     Point
			found bool
			err   error
		)
		if c == '/' {
			p, found, err = e.FindNext(expr)
		} else {
			p, found, err = e.FindPrev(expr)
		}
		if err != nil {
			return a, false, err
		}
		if !found {
			return a, false, newError(KindAddress, "Pattern not found: %s", e.findPattern)
		}
		a.line = offsets(sc, p.Line+1)
		a.char = p.Col
	default:
		return a, false, nil
	}
	return a, true, nil
}

// pattern compiles expr, falling back to and updating the stored pattern.
func (e *Ed) pattern(expr string) (*motion.Pattern, error) {
	if expr == "" {
		if e.findPattern == "" {
			return nil, newError(KindParse, "No previous regular expression")
		}
		expr = e.findPattern
	}
	e.findPattern = expr
	pat, err := motion.Regexp(expr, e.caseSensitive)
	if err != nil {
		return nil, &Error{Kind: KindParse, Msg: err.Error(), Err: err}
	}
	return pat, nil
}

// FindNext searches forward from the current position, wrapping around the
// end of the buffer. An empty expr reuses the last pattern. In ex mode the
// search starts after the current character; otherwise on the next line.
func (e *Ed) FindNext(expr string) (Point, bool, error) {
	pat, err := e.pattern(expr)
	if err != nil {
		return Point{}, false, err
	}
	n := e.buf.NumLines()
	if n == 0 {
		return Point{}, false, nil
	}
	row := min(e.cur-1, n-1)

	var (
		m  motion.Match
		ok bool
	)
	if e.ex {
		m, ok = motion.FindNext(e.buf, pat, row, e.curChar+1, n-1, -1)
	} else if row+1 < n {
		m, ok = motion.FindNext(e.buf, pat, row+1, 0, n-1, -1)
	}
	if !ok {
		m, ok = motion.FindNext(e.buf, pat, 0, 0, row, -1)
	}
	return m.Pos, ok, nil
}

// FindPrev searches backward from the current position, wrapping around
// the start of the buffer.
func (e *Ed) FindPrev(expr string) (Point, bool, error) {
	pat, err := e.pattern(expr)
	if err != nil {
		return Point{}, false, err
	}
	n := e.buf.NumLines()
	if n == 0 {
		return Point{}, false, nil
	}
	row := min(e.cur-1, n-1)

	var (
		m  motion.Match
		ok bool
	)
	switch {
	case e.ex && e.curChar > 0:
		m, ok = motion.FindPrev(e.buf, pat, row, e.curChar-1, 0, 0)
	case row > 0:
		m, ok = motion.FindPrev(e.buf, pat, row-1, -1, 0, 0)
	}
	if !ok {
		m, ok = motion.FindPrev(e.buf, pat, n-1, -1, row, 0)
	}
	return m.Pos, ok, nil
}
