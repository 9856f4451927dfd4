package key

import (
	"errors"
	"testing"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyEscape, "Esc"},
		{KeyEnter, "CR"},
		{KeyBackspace, "BS"},
		{KeyPageDown, "PageDown"},
		{KeyLeft, "Left"},
		{KeyF1, "F1"},
		{KeyF12, "F12"},
		{Key(200), "Key(200)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"Esc", KeyEscape},
		{"escape", KeyEscape},
		{"RETURN", KeyEnter},
		{"pgdn", KeyPageDown},
		{"f5", KeyF5},
		{"F12", KeyF12},
		{"f13", KeyNone},
		{"f", KeyNone},
		{"bogus", KeyNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromName(tt.name); got != tt.want {
				t.Errorf("FromName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mods Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "C-"},
		{ModCtrl | ModShift, "C-S-"},
		{ModAlt | ModShift, "A-S-"},
	}
	for _, tt := range tests {
		if got := tt.mods.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mods, got, tt.want)
		}
	}
}

func TestEventChar(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  byte
		ok    bool
	}{
		{"letter", Rune('a'), 'a', true},
		{"shifted", Event{Key: KeyRune, Rune: 'A', Modifiers: ModShift}, 'A', true},
		{"space", Rune(' '), ' ', true},
		{"ctrl", Ctrl('a'), 0, false},
		{"special", Special(KeyEnter, ModNone), 0, false},
		{"non ascii", Rune('é'), 0, false},
		{"zero rune", Event{Key: KeyRune}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.event.Char()
			if got != tt.want || ok != tt.ok {
				t.Errorf("Char() = %q, %v, want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestEventIsCtrl(t *testing.T) {
	e := Ctrl('S')
	if !e.IsCtrl('s') || !e.IsCtrl('S') {
		t.Errorf("Ctrl('S').IsCtrl('s') = false")
	}
	if Rune('s').IsCtrl('s') {
		t.Errorf("Rune('s').IsCtrl('s') = true")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Rune('x'), "x"},
		{Rune('<'), "<lt>"},
		{Rune(' '), "<Space>"},
		{Ctrl('v'), "<C-v>"},
		{Special(KeyEscape, ModNone), "<Esc>"},
		{Special(KeyRight, ModShift), "<S-Right>"},
		{Event{Key: KeyRune, Rune: 'A', Modifiers: ModShift | ModCtrl}, "<C-A>"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.event.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", Rune('a')},
		{"A", Rune('A')},
		{" ", Rune(' ')},
		{"Enter", Special(KeyEnter, ModNone)},
		{"<CR>", Special(KeyEnter, ModNone)},
		{"<Esc>", Special(KeyEscape, ModNone)},
		{"<C-s>", Ctrl('s')},
		{"<C-S>", Ctrl('s')},
		{"Ctrl+Q", Ctrl('q')},
		{"Shift+Right", Special(KeyRight, ModShift)},
		{"<S-Up>", Special(KeyUp, ModShift)},
		{"<S-a>", Rune('A')},
		{"<lt>", Rune('<')},
		{"<Space>", Rune(' ')},
		{"<C-->", Ctrl('-')},
		{"<F5>", Special(KeyF5, ModNone)},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"<>", ErrInvalidSpec},
		{"<X-a>", ErrInvalidSpec},
		{"Hyper+a", ErrInvalidSpec},
		{"bogus", ErrInvalidSpec},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			if _, err := Parse(tt.spec); !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		in   string
		want Sequence
	}{
		{"", nil},
		{"dw", Sequence{Rune('d'), Rune('w')}},
		{"ix<Esc>", Sequence{Rune('i'), Rune('x'), Special(KeyEscape, ModNone)}},
		{"<C-v><S-Right>", Sequence{Ctrl('v'), Special(KeyRight, ModShift)}},
		{"a<b", Sequence{Rune('a'), Rune('<'), Rune('b')}},
		{"<>", Sequence{Rune('<'), Rune('>')}},
		{":wq<CR>", Sequence{Rune(':'), Rune('w'), Rune('q'), Special(KeyEnter, ModNone)}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSequence(tt.in)
			if err != nil {
				t.Fatalf("ParseSequence(%q) error = %v", tt.in, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSequence(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSequence(%q)[%d] = %#v, want %#v", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}

	if _, err := ParseSequence("x<Bogus>"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("ParseSequence(x<Bogus>) error = %v, want ErrInvalidSpec", err)
	}
}

func TestSequenceRoundTrip(t *testing.T) {
	for _, in := range []string{"dw", "ix<Esc>", "<C-v><S-Right>", "a<lt>b", "3<Space>"} {
		seq := MustParseSequence(in)
		if got := seq.String(); got != in {
			t.Errorf("ParseSequence(%q).String() = %q", in, got)
		}
	}
}
