// Package register implements named yank/paste registers.
//
// A register holds an ordered list of fragments. A fragment is either a
// whole line (LineUnit) pasted as a new line, or inline text spliced into
// an existing line. Each yank replaces the register contents wholesale.
package register

import (
	"strings"

	"github.com/samber/mo"

	"github.com/dshills/ctext/internal/engine/buffer"
	"github.com/dshills/ctext/internal/engine/motion"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Unnamed is the default register.
const Unnamed byte = '"'

// BlackHole discards everything written to it.
const BlackHole byte = '_'

// Type categorizes registers by their behavior.
type Type uint8

const (
	// TypeUnnamed is the default register (").
	TypeUnnamed Type = iota

	// TypeNamed is a named register (a-z, A-Z).
	TypeNamed

	// TypeNumbered is a numbered register (0-9).
	TypeNumbered

	// TypeBlackHole is the black hole register (_).
	TypeBlackHole

	// TypeSearch is the last search pattern register (/).
	TypeSearch

	// TypeAlternate is the alternate register (#).
	TypeAlternate

	// TypeInvalid is any other name.
	TypeInvalid
)

// TypeOf returns the type of register for a given name.
func TypeOf(name byte) Type {
	switch {
	case name == Unnamed:
		return TypeUnnamed
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return TypeNamed
	case name >= '0' && name <= '9':
		return TypeNumbered
	case name == BlackHole:
		return TypeBlackHole
	case name == '/':
		return TypeSearch
	case name == '#':
		return TypeAlternate
	default:
		return TypeInvalid
	}
}

// IsValid returns true if the register name is valid.
func IsValid(name byte) bool {
	return TypeOf(name) != TypeInvalid
}

// normalize maps uppercase named registers onto their lowercase slot.
func normalize(name byte) byte {
	if name >= 'A' && name <= 'Z' {
		return name + ('a' - 'A')
	}
	return name
}

// Fragment is one piece of register text.
type Fragment struct {
	Text     string
	LineUnit bool
}

// Register is a snapshot of one register.
type Register struct {
	Name      byte
	Fragments []Fragment
}

// Text joins the fragments with newlines. Line units end with a newline.
func (r Register) Text() string {
	var sb strings.Builder
	for i, f := range r.Fragments {
		if i > 0 && !r.Fragments[i-1].LineUnit {
			sb.WriteByte('\n')
		}
		sb.WriteString(f.Text)
		if f.LineUnit {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Store holds every register of an editing session.
type Store struct {
	buf       *buffer.Buffer
	registers map[byte][]Fragment
}

// NewStore creates a register store over buf.
func NewStore(buf *buffer.Buffer) *Store {
	return &Store{buf: buf, registers: make(map[byte][]Fragment)}
}

// Get returns a copy of register name, if it holds anything.
func (s *Store) Get(name byte) mo.Option[Register] {
	frags := s.registers[normalize(name)]
	if len(frags) == 0 {
		return mo.None[Register]()
	}
	return mo.Some(Register{Name: normalize(name), Fragments: append([]Fragment(nil), frags...)})
}

// Fragments returns the fragments of register name.
func (s *Store) Fragments(name byte) []Fragment {
	return s.registers[normalize(name)]
}

// Names returns the names of non-empty registers.
func (s *Store) Names() []byte {
	var names []byte
	for name, frags := range s.registers {
		if len(frags) > 0 {
			names = append(names, name)
		}
	}
	return names
}

// Set replaces register name with frags. Writes to a named register are
// mirrored into the unnamed register.
func (s *Store) Set(name byte, frags []Fragment) {
	name = normalize(name)
	if name == BlackHole || !IsValid(name) {
		return
	}
	s.registers[name] = append([]Fragment(nil), frags...)
	if name != Unnamed {
		s.registers[Unnamed] = append([]Fragment(nil), frags...)
	}
}

// SetText stores text in register name, split into fragments at newlines.
func (s *Store) SetText(name byte, text string, lineUnit bool) {
	if lineUnit {
		text = strings.TrimSuffix(text, "\n")
	}
	var frags []Fragment
	for _, t := range strings.Split(text, "\n") {
		frags = append(frags, Fragment{Text: t, LineUnit: lineUnit})
	}
	s.Set(name, frags)
}

// YankClear empties register name ahead of a yank.
func (s *Store) YankClear(name byte) {
	delete(s.registers, normalize(name))
}

// SubYankTo appends the text between start and end to register name.
// On one line the span includes both ends. Across lines it is the suffix
// of the start line from start.Col, the interior lines, and the prefix of
// the end line up to end.Col. Reversed endpoints are swapped.
func (s *Store) SubYankTo(name byte, start, end Point, lineUnit bool) {
	start, end = buffer.Order(start, end)
	b := s.buf
	var frags []Fragment
	if start.Line == end.Line {
		line := b.Line(start.Line)
		c1 := min(max(start.Col, 0), len(line))
		c2 := min(end.Col+1, len(line))
		if c2 < c1 {
			c2 = c1
		}
		frags = append(frags, Fragment{Text: line[c1:c2], LineUnit: lineUnit})
	} else {
		first := b.Line(start.Line)
		frags = append(frags, Fragment{Text: first[min(start.Col, len(first)):], LineUnit: lineUnit})
		for l := start.Line + 1; l < end.Line; l++ {
			frags = append(frags, Fragment{Text: b.Line(l), LineUnit: lineUnit})
		}
		last := b.Line(end.Line)
		frags = append(frags, Fragment{Text: last[:min(end.Col, len(last))], LineUnit: lineUnit})
	}
	s.Set(name, append(s.registers[normalize(name)], frags...))
}

// YankTo replaces register name with the span between start and end.
func (s *Store) YankTo(name byte, start, end Point, lineUnit bool) {
	s.YankClear(name)
	s.SubYankTo(name, start, end, lineUnit)
}

// YankSpan replaces register name with the text from start up to but
// excluding end.
func (s *Store) YankSpan(name byte, start, end Point) {
	start, end = buffer.Order(start, end)
	s.YankClear(name)
	if start.Line == end.Line {
		if end.Col <= start.Col {
			s.Set(name, []Fragment{{Text: ""}})
			return
		}
		end.Col--
	}
	s.SubYankTo(name, start, end, false)
}

// YankLines replaces register name with n whole lines starting at line.
func (s *Store) YankLines(name byte, line, n int) {
	s.YankClear(name)
	var frags []Fragment
	for i := 0; i < max(n, 1) && line+i < s.buf.NumLines(); i++ {
		frags = append(frags, Fragment{Text: s.buf.Line(line + i), LineUnit: true})
	}
	s.Set(name, frags)
}

// YankWords replaces register name with the text from p to the end of the
// n-th word.
func (s *Store) YankWords(name byte, p Point, n int) {
	end, _ := motion.Repeat(motion.EndWord, n)(s.buf, p)
	s.YankTo(name, p, end, false)
}

// YankChars replaces register name with n characters starting at p.
func (s *Store) YankChars(name byte, p Point, n int) {
	end := Point{Line: p.Line, Col: p.Col + max(n, 1) - 1}
	s.YankTo(name, p, end, false)
}

// PasteAfter inserts register name after p. Returns false when the
// register is empty.
func (s *Store) PasteAfter(name byte, p Point) bool {
	return s.paste(name, p, true)
}

// PasteBefore inserts register name before p.
func (s *Store) PasteBefore(name byte, p Point) bool {
	return s.paste(name, p, false)
}

func (s *Store) paste(name byte, p Point, after bool) bool {
	frags := s.Fragments(name)
	if len(frags) == 0 {
		return false
	}
	b := s.buf

	if frags[0].LineUnit {
		at := 0
		if b.NumLines() > 0 {
			at = b.Clamp(p).Line
			if after {
				at++
			}
		}
		first := at
		for i, f := range frags {
			if i > 0 && i == len(frags)-1 && !f.LineUnit && at < b.NumLines() {
				_ = b.SetLine(at, f.Text+b.Line(at))
				break
			}
			b.InsertLine(at, f.Text)
			at++
		}
		b.MoveTo(Point{Line: first})
		return true
	}

	if b.NumLines() == 0 {
		b.InsertLine(0, "")
	}
	p = b.Clamp(p)
	line := b.Line(p.Line)
	col := p.Col
	if after && col < len(line) {
		col++
	}
	head, tail := line[:col], line[col:]

	if len(frags) == 1 {
		_ = b.SetLine(p.Line, head+frags[0].Text+tail)
		b.MoveTo(Point{Line: p.Line, Col: col})
		return true
	}

	_ = b.SetLine(p.Line, head+frags[0].Text)
	at := p.Line + 1
	for _, f := range frags[1 : len(frags)-1] {
		b.InsertLine(at, f.Text)
		at++
	}
	last := frags[len(frags)-1]
	if last.LineUnit {
		b.InsertLine(at, last.Text)
		if tail != "" {
			b.InsertLine(at+1, tail)
		}
	} else {
		b.InsertLine(at, last.Text+tail)
	}
	b.MoveTo(Point{Line: p.Line, Col: col})
	return true
}
