package normal

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/ctext/internal/engine/buffer"
	"github.com/dshills/ctext/internal/input"
	"github.com/dshills/ctext/internal/input/key"
)

type harness struct {
	p    *Processor
	b    *buffer.Buffer
	errs []string
	quit []bool
}

func newNormal(lines ...string) *harness {
	h := &harness{b: buffer.NewBufferFromLines(lines)}
	core := input.NewCore(h.b, input.Deps{
		TabStop: 4,
		Notifier: input.Notifier{
			Error: func(msg string) { h.errs = append(h.errs, msg) },
			Quit:  func(force bool) { h.quit = append(h.quit, force) },
		},
	})
	h.p = New(core)
	return h
}

func (h *harness) keys(s string) *harness {
	h.p.ProcessKeys(key.MustParseSequence(s))
	return h
}

func (h *harness) check(t *testing.T, want ...string) {
	t.Helper()
	if diff := cmp.Diff(want, h.b.Lines()); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		keys      string
		want      []string
		line, col int
	}{
		{"type", []string{""}, "hi!", []string{"hi!"}, 0, 3},
		{"type mid line", []string{"ac"}, "<Right>b", []string{"abc"}, 0, 2},
		{"enter", []string{"ab"}, "<Right><CR>", []string{"a", "b"}, 1, 0},
		{"backspace", []string{"abc"}, "<End><BS>", []string{"ab"}, 0, 2},
		{"backspace joins", []string{"a", "b"}, "<Down><BS>", []string{"ab"}, 0, 1},
		{"delete", []string{"abc"}, "<Del>", []string{"bc"}, 0, 0},
		{"delete joins", []string{"a", "b"}, "<End><Del>", []string{"ab"}, 0, 1},
		{"left wraps", []string{"ab", "c"}, "<Down><Left>", []string{"ab", "c"}, 0, 2},
		{"right wraps", []string{"a", "b"}, "<Right><Right>", []string{"a", "b"}, 1, 0},
		{"tab", []string{"x"}, "<Tab>", []string{"    x"}, 0, 4},
		{"overwrite", []string{"abc"}, "<Insert>xy", []string{"xyc"}, 0, 2},
		{"home", []string{"abc"}, "<End><Home>", []string{"abc"}, 0, 0},
		{"delete line", []string{"a", "b"}, "<C-d>", []string{"b"}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newNormal(tt.lines...)
			h.keys(tt.keys)
			h.check(t, tt.want...)
			if got := h.b.Pos(); got != (Point{Line: tt.line, Col: tt.col}) {
				t.Errorf("Pos() = %v, want %d:%d", got, tt.line, tt.col)
			}
			if len(h.errs) > 0 {
				t.Errorf("errors = %q", h.errs)
			}
		})
	}
}

func TestSelection(t *testing.T) {
	h := newNormal("hello world")
	h.keys("<S-Right><S-Right><S-Right>")
	sel := h.p.Selection()
	if !sel.IsSelected() {
		t.Fatal("Shift-Right selected nothing")
	}
	h.keys("<C-c>")
	if got := h.p.Registers().Fragments('"'); len(got) != 1 || got[0].Text != sel.Text() {
		t.Errorf("copied %v, want %q", got, sel.Text())
	}

	h.keys("<Home>X")
	if sel.IsSelected() {
		t.Error("typing left the selection active")
	}
	h.check(t, "Xo world")
}

func TestCutPaste(t *testing.T) {
	h := newNormal("abc")
	h.p.Selection().SetRange(Point{Col: 0}, Point{Col: 1})
	h.keys("<C-x>")
	h.check(t, "c")
	h.keys("<End><C-v>")
	h.check(t, "cab")
}

func TestUndoRedo(t *testing.T) {
	h := newNormal("abc")
	h.keys("<Del>")
	h.check(t, "bc")
	h.keys("<C-z>")
	h.check(t, "abc")
	h.keys("<C-y>")
	h.check(t, "bc")
	h.keys("<C-z><C-z>")
	if len(h.errs) != 1 {
		t.Errorf("errors = %q, want one for the empty undo log", h.errs)
	}
}

func TestSelectAllDelete(t *testing.T) {
	h := newNormal("ab", "cd", "ef")
	h.keys("<C-a><BS>")
	h.check(t, "", "")
}

func TestControl(t *testing.T) {
	h := newNormal("x")
	h.keys("<C-q>")
	if diff := cmp.Diff([]bool{false}, h.quit); diff != "" {
		t.Errorf("quit mismatch (-want +got):\n%s", diff)
	}
	h.keys("<C-s>")
	if len(h.errs) != 1 {
		t.Errorf("save without a file name: errors = %q", h.errs)
	}
	h.keys("<C-k>")
	if len(h.errs) != 2 {
		t.Errorf("errors = %q, want an unsupported key", h.errs)
	}
}

func TestExecCmd(t *testing.T) {
	h := newNormal("one", "two", "one")
	h.p.ExecCmd("/one")
	if got := h.b.Pos(); got != (Point{Line: 2}) {
		t.Errorf("Pos() = %v, want 2:0", got)
	}
	h.p.ExecCmd("?two")
	if got := h.b.Pos(); got != (Point{Line: 1}) {
		t.Errorf("Pos() = %v, want 1:0", got)
	}
	h.p.ExecCmd("/zzz")
	h.p.ExecCmd("s/a/b/")
	if len(h.errs) != 2 {
		t.Errorf("errors = %q, want two", h.errs)
	}
}
