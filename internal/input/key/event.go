package key

import (
	"strings"
	"unicode"
)

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// Rune returns the event for character r.
func Rune(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// Special returns the event for the named key k with modifiers mods.
func Special(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// Ctrl returns the event for Control plus r.
func Ctrl(r rune) Event {
	return Event{Key: KeyRune, Rune: unicode.ToLower(r), Modifiers: ModCtrl}
}

// IsRune reports whether e is a character key.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar reports whether e types a printable character, that is a rune
// with no modifier other than Shift.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.Modifiers.HasCtrl() && !e.Modifiers.HasAlt() && unicode.IsPrint(e.Rune)
}

// Char returns the byte typed by e. It fails for named keys, modified
// keys and characters outside ASCII.
func (e Event) Char() (byte, bool) {
	if !e.IsChar() || e.Rune > unicode.MaxASCII {
		return 0, false
	}
	return byte(e.Rune), true
}

// IsCtrl reports whether e is Control plus r.
func (e Event) IsCtrl(r rune) bool {
	return e.IsRune() && e.Modifiers.HasCtrl() && unicode.ToLower(e.Rune) == unicode.ToLower(r)
}

// Is reports whether e is the named key k, ignoring modifiers.
func (e Event) Is(k Key) bool {
	return e.Key == k
}

// Equals reports whether e and other are the same key press.
func (e Event) Equals(other Event) bool {
	return e == other
}

// String returns e in vi notation: a printable character stands for
// itself and everything else is bracketed, as in "<C-s>" or "<S-Up>".
func (e Event) String() string {
	if e.IsChar() {
		switch e.Rune {
		case '<':
			return "<lt>"
		case ' ':
			return "<Space>"
		}
		return string(e.Rune)
	}

	mods := e.Modifiers
	var name string
	if e.Key == KeyRune {
		// Shift is part of the character.
		mods = mods.Without(ModShift)
		name = string(e.Rune)
		if e.Rune == ' ' {
			name = "Space"
		}
	} else {
		name = e.Key.String()
	}
	return "<" + mods.String() + name + ">"
}

// Sequence is an ordered list of key presses.
type Sequence []Event

// String returns the sequence in vi notation.
func (s Sequence) String() string {
	var sb strings.Builder
	for _, e := range s {
		sb.WriteString(e.String())
	}
	return sb.String()
}

// Clone returns a copy of s.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	return append(Sequence(nil), s...)
}
