package input

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/ctext/internal/engine/buffer"
	"github.com/dshills/ctext/internal/engine/cursor"
)

func newCore(lines ...string) (*Core, *buffer.Buffer, *[]string) {
	b := buffer.NewBufferFromLines(lines)
	var status []string
	c := NewCore(b, Deps{Notifier: Notifier{
		Status: func(msg string) { status = append(status, msg) },
	}})
	return c, b, &status
}

func TestFind(t *testing.T) {
	c, b, status := newCore("abc", "xbx", "b")

	if err := c.FindNext("b"); err != nil {
		t.Fatalf("FindNext() error = %v", err)
	}
	if got := b.Pos(); got != (Point{Line: 0, Col: 1}) {
		t.Errorf("Pos() = %v, want 0:1", got)
	}
	_ = c.FindNext("")
	_ = c.FindNext("")
	if got := b.Pos(); got != (Point{Line: 2, Col: 0}) {
		t.Errorf("Pos() = %v, want 2:0", got)
	}
	_ = c.FindNext("")
	if got := b.Pos(); got != (Point{Line: 0, Col: 1}) {
		t.Errorf("Pos() after wrap = %v, want 0:1", got)
	}
	if len(*status) != 1 || (*status)[0] != "search hit BOTTOM, continuing at TOP" {
		t.Errorf("status = %q", *status)
	}

	if err := c.FindPrev(""); err != nil {
		t.Fatalf("FindPrev() error = %v", err)
	}
	if got := b.Pos(); got != (Point{Line: 2, Col: 0}) {
		t.Errorf("FindPrev wrapped to %v, want 2:0", got)
	}
}

func TestFindErrors(t *testing.T) {
	c, _, _ := newCore("abc")
	if err := c.FindNext(""); !errors.Is(err, ErrNoPattern) {
		t.Errorf("FindNext(\"\") error = %v, want ErrNoPattern", err)
	}
	if err := c.FindNext("zzz"); !errors.Is(err, ErrPatternNotFound) {
		t.Errorf("FindNext(zzz) error = %v, want ErrPatternNotFound", err)
	}
	if err := c.FindNext("("); err == nil {
		t.Error("FindNext(\"(\") error = nil")
	}
}

func TestFindAnchorsAndWrap(t *testing.T) {
	c, b, _ := newCore("xab", "zzz")
	if err := c.FindNext("^a"); !errors.Is(err, ErrPatternNotFound) {
		t.Errorf("FindNext(^a) error = %v, want ErrPatternNotFound", err)
	}
	if got := b.Pos(); got != (Point{}) {
		t.Errorf("Pos() = %v, want 0:0", got)
	}

	c, b, status := newCore("foo bar baz")
	b.MoveTo(Point{Col: 4})
	if err := c.FindNext("bar"); err != nil {
		t.Fatalf("FindNext(bar) error = %v", err)
	}
	if got := b.Pos(); got != (Point{Col: 4}) {
		t.Errorf("Pos() = %v, want 0:4", got)
	}
	if len(*status) != 1 {
		t.Errorf("status = %q, want a wrap message", *status)
	}
	if err := c.FindPrev("bar"); err != nil {
		t.Fatalf("FindPrev(bar) error = %v", err)
	}
	if got := b.Pos(); got != (Point{Col: 4}) {
		t.Errorf("Pos() after FindPrev = %v, want 0:4", got)
	}
}

func TestFindCaseInsensitive(t *testing.T) {
	c, b, _ := newCore("x", "ABC")
	if err := c.FindNext("abc"); err == nil {
		t.Error("case sensitive FindNext(abc) found ABC")
	}
	c.SetCaseSensitive(false)
	if err := c.FindNext("abc"); err != nil {
		t.Fatalf("FindNext() error = %v", err)
	}
	if got := b.Pos(); got != (Point{Line: 1}) {
		t.Errorf("Pos() = %v, want 1:0", got)
	}
}

func TestDeleteSelection(t *testing.T) {
	tests := []struct {
		name       string
		start, end Point
		mode       cursor.Mode
		want       []string
	}{
		{"within line", Point{Col: 1}, Point{Col: 2}, cursor.ModeRange, []string{"ad", "efgh", "ijkl"}},
		{"across lines", Point{Col: 2}, Point{Line: 2, Col: 1}, cursor.ModeRange, []string{"ab", "kl"}},
		{"rect", Point{Col: 1}, Point{Line: 1, Col: 2}, cursor.ModeRect, []string{"ad", "eh", "ijkl"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, b, _ := newCore("abcd", "efgh", "ijkl")
			c.Selection().SetMode(tt.mode)
			c.Selection().SetRange(tt.start, tt.end)
			if !c.DeleteSelection() {
				t.Fatal("DeleteSelection() = false")
			}
			if diff := cmp.Diff(tt.want, b.Lines()); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
			if got := b.Pos(); got != tt.start {
				t.Errorf("Pos() = %v, want %v", got, tt.start)
			}
			if c.Selection().IsSelected() {
				t.Error("selection still active")
			}
			c.UndoLast()
			if diff := cmp.Diff([]string{"abcd", "efgh", "ijkl"}, b.Lines()); diff != "" {
				t.Errorf("undo mismatch (-want +got):\n%s", diff)
			}
		})
	}

	c, _, _ := newCore("abc")
	if c.DeleteSelection() {
		t.Error("DeleteSelection() with nothing selected = true")
	}
}

func TestOverwriteNotifies(t *testing.T) {
	b := buffer.NewBufferFromLines([]string{"x"})
	var got []bool
	c := NewCore(b, Deps{Notifier: Notifier{Overwrite: func(on bool) { got = append(got, on) }}})
	c.SetOverwrite(true)
	c.SetOverwrite(true)
	c.SetOverwrite(false)
	if diff := cmp.Diff([]bool{true, false}, got); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestNilNotifier(t *testing.T) {
	c, _, _ := newCore("x")
	c.EnterCmdLine(":")
	c.Overlay("x")
	c.ScrollTop()
	c.Quit(true)
	c.Errorf("boom %d", 1)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"", KindVi, false},
		{"vi", KindVi, false},
		{"VIM", KindVi, false},
		{"normal", KindNormal, false},
		{" plain ", KindNormal, false},
		{"emacs", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	var k Kind
	if err := k.UnmarshalText([]byte("normal")); err != nil || k != KindNormal {
		t.Errorf("UnmarshalText(normal) = %v, %v", k, err)
	}
	if text, _ := KindVi.MarshalText(); string(text) != "vi" {
		t.Errorf("MarshalText() = %q, want vi", text)
	}
}
