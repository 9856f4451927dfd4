package ed

import "strings"

// scanner walks a command line one byte at a time.
type scanner struct {
	s string
	i int
}

func (sc *scanner) eof() bool {
	return sc.i >= len(sc.s)
}

func (sc *scanner) peek() byte {
	if sc.eof() {
		return 0
	}
	return sc.s[sc.i]
}

func (sc *scanner) is(c byte) bool {
	return !sc.eof() && sc.s[sc.i] == c
}

func (sc *scanner) isDigit() bool {
	c := sc.peek()
	return c >= '0' && c <= '9'
}

func (sc *scanner) isSpace() bool {
	c := sc.peek()
	return c == ' ' || c == '\t'
}

func (sc *scanner) skip() {
	if !sc.eof() {
		sc.i++
	}
}

func (sc *scanner) next() (byte, bool) {
	if sc.eof() {
		return 0, false
	}
	c := sc.s[sc.i]
	sc.i++
	return c, true
}

func (sc *scanner) skipSpace() {
	for sc.isSpace() {
		sc.i++
	}
}

func (sc *scanner) readInt() int {
	n := 0
	for sc.isDigit() {
		n = n*10 + int(sc.s[sc.i]-'0')
		sc.i++
	}
	return n
}

// readDelimited reads up to the next unescaped sep and consumes it.
// A backslash before sep yields sep; other escapes are kept intact.
// The second result reports whether sep was found.
func (sc *scanner) readDelimited(sep byte) (string, bool) {
	var sb strings.Builder
	for !sc.eof() {
		c := sc.s[sc.i]
		if c == sep {
			sc.i++
			return sb.String(), true
		}
		if c == '\\' && sc.i+1 < len(sc.s) {
			if sc.s[sc.i+1] == sep {
				sb.WriteByte(sep)
			} else {
				sb.WriteByte('\\')
				sb.WriteByte(sc.s[sc.i+1])
			}
			sc.i += 2
			continue
		}
		sb.WriteByte(c)
		sc.i++
	}
	return sb.String(), false
}

// rest returns the unread remainder.
func (sc *scanner) rest() string {
	r := sc.s[min(sc.i, len(sc.s)):]
	sc.i = len(sc.s)
	return r
}
