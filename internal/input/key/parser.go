package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a single key specification.
//
// Supported forms:
//   - a single character: "a", "A", "@"
//   - a key name: "Enter", "Esc", "PageUp", "F5"
//   - modifier+key: "Ctrl+S", "Shift+Right"
//   - vi notation: "<C-s>", "<S-Up>", "<CR>", "<lt>"
func Parse(spec string) (Event, error) {
	if strings.TrimSpace(spec) == "" {
		if spec == " " {
			return Rune(' '), nil
		}
		return Event{}, ErrEmptySpec
	}
	if utf8.RuneCountInString(spec) == 1 {
		r, _ := utf8.DecodeRuneInString(spec)
		return Rune(r), nil
	}

	spec = strings.TrimSpace(spec)
	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseBracketed(spec[1 : len(spec)-1])
	}
	if strings.Contains(spec, "+") {
		parts := strings.Split(spec, "+")
		return parseParts(parts[:len(parts)-1], parts[len(parts)-1])
	}
	return parseParts(nil, spec)
}

// MustParse is Parse for specs known to be valid.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic("key: " + err.Error())
	}
	return e
}

// parseBracketed parses the inside of "<...>", such as "C-S-Up". A lone
// "-" is the minus key.
func parseBracketed(inner string) (Event, error) {
	if inner == "" {
		return Event{}, ErrInvalidSpec
	}
	parts := strings.Split(inner, "-")
	last := parts[len(parts)-1]
	mods := parts[:len(parts)-1]
	if last == "" && len(parts) > 1 {
		// "<C-->" is Control plus minus.
		last = "-"
		mods = parts[:len(parts)-2]
	}
	return parseParts(mods, last)
}

func parseParts(modNames []string, name string) (Event, error) {
	var mods Modifier
	for _, m := range modNames {
		mod := modifierFromName(m)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, m)
		}
		mods = mods.With(mod)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, ErrInvalidSpec
	}
	if k := FromName(name); k != KeyNone {
		return Special(k, mods), nil
	}
	if r, ok := runeNames[strings.ToLower(name)]; ok {
		return Event{Key: KeyRune, Rune: r, Modifiers: mods.Without(ModShift)}, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		switch {
		case mods.HasCtrl():
			r = unicode.ToLower(r)
		case mods.HasShift():
			r = unicode.ToUpper(r)
			mods = mods.Without(ModShift)
		}
		return Event{Key: KeyRune, Rune: r, Modifiers: mods}, nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
}

// ParseSequence parses a string of keys in vi notation. Characters stand
// for themselves; "<...>" groups name a key. A "<" with no closing ">" is a
// literal character.
func ParseSequence(s string) (Sequence, error) {
	var seq Sequence
	for i := 0; i < len(s); {
		if s[i] == '<' {
			if end := strings.IndexByte(s[i+1:], '>'); end > 0 {
				e, err := parseBracketed(s[i+1 : i+1+end])
				if err != nil {
					return nil, fmt.Errorf("at offset %d: %w", i, err)
				}
				seq = append(seq, e)
				i += end + 2
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		seq = append(seq, Rune(r))
		i += size
	}
	return seq, nil
}

// MustParseSequence is ParseSequence for sequences known to be valid.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("key: " + err.Error())
	}
	return seq
}
