package vim

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/ctext/internal/ed"
	"github.com/dshills/ctext/internal/engine/buffer"
	"github.com/dshills/ctext/internal/engine/register"
	"github.com/dshills/ctext/internal/input"
	"github.com/dshills/ctext/internal/input/key"
)

type harness struct {
	p       *Processor
	b       *buffer.Buffer
	errs    []string
	status  []string
	cmdline []string
}

func newVi(lines ...string) *harness {
	h := &harness{b: buffer.NewBufferFromLines(lines)}
	core := input.NewCore(h.b, input.Deps{
		Notifier: input.Notifier{
			Error:        func(msg string) { h.errs = append(h.errs, msg) },
			Status:       func(msg string) { h.status = append(h.status, msg) },
			EnterCmdLine: func(prefix string) { h.cmdline = append(h.cmdline, prefix) },
		},
	})
	interp := ed.New(h.b, ed.Deps{
		Editor:    core.Editor(),
		Marks:     core.Marks(),
		Registers: core.Registers(),
		Undo:      core.Undo(),
		OnError:   core.Error,
	})
	h.b.MoveTo(Point{})
	h.p = New(core, interp)
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

func (h *harness) checkPos(t *testing.T, line, col int) {
	t.Helper()
	if got := h.b.Pos(); got != (Point{Line: line, Col: col}) {
		t.Errorf("Pos() = %v, want %d:%d", got, line, col)
	}
}

func TestEdits(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		keys  string
		want  []string
	}{
		{"dw", []string{"abc", "def"}, "dw", []string{"", "def"}},
		{"dw keeps next word", []string{"foo bar"}, "dw", []string{"bar"}},
		{"cw", []string{"foo bar"}, "cwx<Esc>", []string{"x bar"}},
		{"count x", []string{"abcdef"}, "3x", []string{"def"}},
		{"X", []string{"abcdef"}, "$2X", []string{"abcf"}},
		{"dd with count", []string{"a", "b", "c"}, "2dd", []string{"c"}},
		{"d count j", []string{"a", "b", "c", "d"}, "d2j", []string{"d"}},
		{"dd last line", []string{"only"}, "dd", []string{""}},
		{"D", []string{"hello world"}, "wD", []string{"hello "}},
		{"d$", []string{"hello world"}, "ld$", []string{"h"}},
		{"dt", []string{"abc,def"}, "dt,", []string{",def"}},
		{"df", []string{"abc,def"}, "df,", []string{"def"}},
		{"dF", []string{"abc,def"}, "$dF,", []string{"abcf"}},
		{"J", []string{"a", "b"}, "J", []string{"ab"}},
		{"tilde", []string{"abC"}, "3~", []string{"ABc"}},
		{"r", []string{"abc"}, "2rx", []string{"xxc"}},
		{"o", []string{"a", "c"}, "ob<Esc>", []string{"a", "b", "c"}},
		{"O", []string{"b"}, "Oa<Esc>", []string{"a", "b"}},
		{"A", []string{"ab"}, "Acd<Esc>", []string{"abcd"}},
		{"I", []string{"  ab"}, "$Ix<Esc>", []string{"  xab"}},
		{"a", []string{"ac"}, "ab<Esc>", []string{"abc"}},
		{"insert enter", []string{"ab"}, "li<CR><Esc>", []string{"a", "b"}},
		{"insert backspace joins", []string{"a", "b"}, "ji<BS><Esc>", []string{"ab"}},
		{"S", []string{"a", "b", "c"}, "jSx<Esc>", []string{"a", "x", "c"}},
		{"cc", []string{"a", "b"}, "2ccx<Esc>", []string{"x"}},
		{"C", []string{"abc"}, "lCx<Esc>", []string{"ax"}},
		{"s", []string{"abc"}, "2sx<Esc>", []string{"xc"}},
		{"R", []string{"abc"}, "Rxy<Esc>", []string{"xyc"}},
		{"shift right", []string{"x", "y"}, "2>>", []string{"  x", "  y"}},
		{"shift left", []string{"    x"}, "<<", []string{"  x"}},
		{"yank put line", []string{"a", "b"}, "yyjp", []string{"a", "b", "a"}},
		{"delete put", []string{"a", "b", "c"}, "2ddp", []string{"c", "a", "b"}},
		{"put before", []string{"a", "b"}, "jddP", []string{"b", "a"}},
		{"named register", []string{"a", "b"}, "\"xyyj\"xp", []string{"a", "b", "a"}},
		{"escape cancels", []string{"abc"}, "d<Esc>x", []string{"bc"}},
		{"dot", []string{"abcdef"}, "x..", []string{"def"}},
		{"dot with count", []string{"abcdefg"}, "x3.", []string{"efg"}},
		{"dot after change", []string{"foo bar baz"}, "cwxx<Esc>w.", []string{"xx xx baz"}},
		{"undo", []string{"a", "b"}, "ddu", []string{"a", "b"}},
		{"undo insert", []string{"x"}, "ihello<CR>world<Esc>u", []string{"x"}},
		{"redo", []string{"a", "b"}, "ddu<C-r>", []string{"b"}},
		{"visual delete", []string{"abcdef"}, "vlld", []string{"def"}},
		{"visual line delete", []string{"a", "b", "c"}, "Vjd", []string{"c"}},
		{"visual change", []string{"abcdef"}, "lvlcX<Esc>", []string{"aXdef"}},
		{"visual tilde", []string{"abcd"}, "vl~", []string{"ABcd"}},
		{"visual shift", []string{"a", "b"}, "Vj>", []string{"  a", "  b"}},
		{"visual block delete", []string{"abcd", "efgh"}, "l<C-v>jld", []string{"ad", "eh"}},
		{"visual o", []string{"abcdef"}, "llvlohd", []string{"aef"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newVi(tt.lines...)
			h.keys(tt.keys)
			h.check(t, tt.want...)
			if len(h.errs) > 0 {
				t.Errorf("errors = %q", h.errs)
			}
		})
	}
}

func TestMotions(t *testing.T) {
	lines := []string{"one two three", "  four", "", "five six"}
	tests := []struct {
		keys      string
		line, col int
	}{
		{"w", 0, 4},
		{"2w", 0, 8},
		{"e", 0, 2},
		{"$", 0, 12},
		{"$0", 0, 0},
		{"j^", 1, 2},
		{"+", 1, 2},
		{"G", 3, 7},
		{"2G", 1, 0},
		{"Ggg", 0, 0},
		{"3gg", 2, 0},
		{"}", 2, 0},
		{"fe", 0, 2},
		{"2fe", 0, 11},
		{"te", 0, 1},
		{"fe;", 0, 11},
		{"fe;;", 0, 12},
		{"$2Fo,", 0, 6},
		{"5|", 0, 4},
		{"20l", 0, 12},
		{"jjj$b", 3, 5},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			h := newVi(lines...)
			h.keys(tt.keys)
			h.checkPos(t, tt.line, tt.col)
		})
	}
}

func TestMarks(t *testing.T) {
	h := newVi("aaa", "  bbbb", "c")
	h.keys("jllma").keys("gg").keys("`a")
	h.checkPos(t, 1, 2)

	h.keys("gg'a")
	h.checkPos(t, 1, 2)

	h.keys("$''")
	h.checkPos(t, 0, 0)

	h.keys("`z")
	if len(h.errs) != 1 || h.errs[0] != "Mark not set" {
		t.Errorf("errors = %q, want [Mark not set]", h.errs)
	}
}

func TestMacro(t *testing.T) {
	h := newVi("1", "2", "3")
	h.keys("qaA!<Esc>jq")
	if got := h.p.Recorder().Get('a').String(); got != "A!<Esc>j" {
		t.Errorf("macro a = %q, want %q", got, "A!<Esc>j")
	}
	h.keys("2@a")
	h.check(t, "1!", "2!", "3!")

	h.keys("ggx@@")
	h.check(t, "!!", "2!", "3!")
}

func TestModes(t *testing.T) {
	h := newVi("abc")
	if h.p.Mode() != ModeCommand {
		t.Errorf("Mode() = %v, want COMMAND", h.p.Mode())
	}
	h.keys("i")
	if h.p.Mode() != ModeInsert {
		t.Errorf("Mode() = %v, want INSERT", h.p.Mode())
	}
	h.keys("<Esc>V")
	if h.p.Mode() != ModeVisualLine {
		t.Errorf("Mode() = %v, want VISUAL LINE", h.p.Mode())
	}
	if !h.p.Selection().IsSelected() {
		t.Error("visual line mode has no selection")
	}
	h.keys("<Esc>")
	if h.p.Mode() != ModeCommand || h.p.Selection().IsSelected() {
		t.Errorf("after Escape Mode() = %v, selected = %v", h.p.Mode(), h.p.Selection().IsSelected())
	}

	h.keys("2d")
	if got := h.p.Pending(); got != "2d" {
		t.Errorf("Pending() = %q, want %q", got, "2d")
	}
}

func TestSearch(t *testing.T) {
	h := newVi("foo", "bar", "foo bar")
	h.p.ExecCmd("/bar")
	h.checkPos(t, 1, 0)
	h.keys("n")
	h.checkPos(t, 2, 4)
	h.keys("n")
	h.checkPos(t, 1, 0)
	if len(h.status) == 0 || h.status[len(h.status)-1] != "search hit BOTTOM, continuing at TOP" {
		t.Errorf("status = %q", h.status)
	}
	h.keys("``")
	h.checkPos(t, 2, 4)

	h.p.ExecCmd("?foo")
	h.checkPos(t, 2, 0)
	h.keys("n")
	h.checkPos(t, 0, 0)

	h.p.ExecCmd("/nothere")
	if len(h.errs) == 0 {
		t.Error("search for a missing pattern reported no error")
	}
}

func TestStarSearch(t *testing.T) {
	h := newVi("foo food", "x foo")
	h.keys("*")
	h.checkPos(t, 1, 2)
	h.keys("#")
	h.checkPos(t, 0, 0)
}

func TestExCommands(t *testing.T) {
	h := newVi("a", "b", "c")
	h.p.ExecCmd(":2d")
	h.check(t, "a", "c")

	h.p.ExecCmd(":%s/a/x/")
	h.check(t, "x", "c")

	h.keys("u")
	h.check(t, "a", "c")

	h.p.ExecCmd(":bogus")
	if len(h.errs) == 0 {
		t.Error(":bogus reported no error")
	}
}

func TestVisualColon(t *testing.T) {
	h := newVi("a", "b", "c")
	h.keys("Vj:")
	if len(h.cmdline) != 1 || h.cmdline[0] != ":'<,'>" {
		t.Fatalf("cmdline = %q", h.cmdline)
	}
	h.p.ExecCmd(":'<,'>d")
	h.check(t, "c")
}

func TestSetOptions(t *testing.T) {
	h := newVi("x")
	h.p.ExecCmd(":set sw=4 ic")
	if v, _ := h.p.Options().Get("shiftwidth"); v != "4" {
		t.Errorf("shiftwidth = %q, want 4", v)
	}
	if !h.p.Options().Bool("ic") {
		t.Error("ignorecase not set")
	}
	h.keys(">>")
	h.check(t, "    x")

	h.p.ExecCmd(":set noic ts?")
	if h.p.Options().Bool("ignorecase") {
		t.Error("noic left ignorecase set")
	}
	if got := h.status[len(h.status)-1]; got != "tabstop=8" {
		t.Errorf("status = %q, want tabstop=8", got)
	}

	h.p.ExecCmd(":set bogus")
	if len(h.errs) != 1 || h.errs[0] != "unknown option: bogus" {
		t.Errorf("errors = %q", h.errs)
	}
	h.p.ExecCmd(":set tabstop=zero")
	if len(h.errs) != 2 {
		t.Errorf("errors = %q, want two", h.errs)
	}
}

func TestIgnoreCaseSearch(t *testing.T) {
	h := newVi("x", "FOO")
	h.p.ExecCmd(":set ic")
	h.p.ExecCmd("/foo")
	h.checkPos(t, 1, 0)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"\"!", "Invalid register name '!'"},
		{"m1", "Invalid mark name '1'"},
		{"p", "Nothing in register \""},
		{"K", "Unimplemented command K"},
		{"gx", "Unsupported command gx"},
		{"@b", "empty register: b"},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			h := newVi("abc")
			h.keys(tt.keys)
			if len(h.errs) != 1 || h.errs[0] != tt.want {
				t.Errorf("errors = %q, want [%q]", h.errs, tt.want)
			}
		})
	}
}

func TestWithCount(t *testing.T) {
	tests := []struct {
		seq   string
		count int
		want  string
	}{
		{"x", 0, "x"},
		{"x", 3, "3x"},
		{"12dw", 4, "4dw"},
		{"0", 2, "20"},
	}
	for _, tt := range tests {
		got := withCount(key.MustParseSequence(tt.seq), tt.count).String()
		if got != tt.want {
			t.Errorf("withCount(%q, %d) = %q, want %q", tt.seq, tt.count, got, tt.want)
		}
	}
}

func TestParseOption(t *testing.T) {
	tests := []struct {
		arg         string
		name, value string
	}{
		{"ic", "ignorecase", "1"},
		{"noic", "ignorecase", "0"},
		{"number", "number", "1"},
		{"nonumber", "number", "0"},
		{"sw=4", "shiftwidth", "4"},
		{"TS=2", "tabstop", "2"},
	}
	for _, tt := range tests {
		name, value := parseOption(tt.arg)
		if name != tt.name || value != tt.value {
			t.Errorf("parseOption(%q) = (%q, %q), want (%q, %q)", tt.arg, name, value, tt.name, tt.value)
		}
	}
}

func TestCounts(t *testing.T) {
	var c CountState
	if c.AccumulateDigit('0') {
		t.Error("AccumulateDigit('0') with no count = true")
	}
	for _, r := range "205" {
		if !c.AccumulateDigit(r) {
			t.Fatalf("AccumulateDigit(%q) = false", r)
		}
	}
	if c.Get() != 205 {
		t.Errorf("Get() = %d, want 205", c.Get())
	}
	if got := CombineCounts(2, 3); got != 6 {
		t.Errorf("CombineCounts(2, 3) = %d, want 6", got)
	}
	if got := CombineCounts(0, 0); got != 1 {
		t.Errorf("CombineCounts(0, 0) = %d, want 1", got)
	}
	if got := CombineCounts(maxCount, 2); got != maxCount {
		t.Errorf("CombineCounts overflow = %d", got)
	}
}

func TestRegisterPrefixLastsOneCommand(t *testing.T) {
	h := newVi("one", "two", "three").keys(`j"ayyjx`)
	h.check(t, "one", "two", "hree")
	if diff := cmp.Diff([]register.Fragment{{Text: "two", LineUnit: true}}, h.p.regs.Fragments('a')); diff != "" {
		t.Errorf("register a mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]register.Fragment{{Text: "t"}}, h.p.regs.Fragments('"')); diff != "" {
		t.Errorf("unnamed register mismatch (-want +got):\n%s", diff)
	}
	if got := h.p.Pending(); got != "" {
		t.Errorf("Pending() = %q, want empty", got)
	}

	h = newVi("abcdef", "ghijkl").keys(`"ayy2lx`)
	h.check(t, "abdef", "ghijkl")
	if got := h.p.Pending(); got != "" {
		t.Errorf("Pending() = %q, want empty", got)
	}

	h = newVi("abc").keys(`"a<Esc>x`)
	h.check(t, "bc")
	if got := h.p.regs.Fragments('a'); len(got) != 0 {
		t.Errorf("register a = %v after a cancelled prefix", got)
	}
}

func TestDotAfterRegisterCommand(t *testing.T) {
	h := newVi("abcdef").keys(`"axl.`)
	h.check(t, "bdef")
	if got := h.p.LastChange().String(); got != `"ax` {
		t.Errorf("LastChange() = %q, want %q", got, `"ax`)
	}
	if diff := cmp.Diff([]register.Fragment{{Text: "c"}}, h.p.regs.Fragments('a')); diff != "" {
		t.Errorf("register a mismatch (-want +got):\n%s", diff)
	}
}

func TestRedoRestoresCursor(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		keys      string
		line, col int
	}{
		{"insert", []string{"x"}, "ihello<Esc>", 0, 4},
		{"shift right", []string{"x"}, ">>", 0, 2},
		{"delete line", []string{"a", "  b"}, "dd", 0, 2},
		{"replace", []string{"abc"}, "2rx", 0, 1},
		{"visual shift", []string{"a", "b"}, "Vj>", 0, 2},
		{"visual tilde", []string{"abcd"}, "lvl~", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newVi(tt.lines...).keys(tt.keys)
			want := h.b.Lines()
			h.checkPos(t, tt.line, tt.col)

			h.keys("u<C-r>")
			h.check(t, want...)
			h.checkPos(t, tt.line, tt.col)
		})
	}
}

func TestSearchAnchors(t *testing.T) {
	h := newVi("xab", "zzz")
	h.p.ExecCmd("/^a")
	if len(h.errs) == 0 {
		t.Error("/^a matched mid-line")
	}
	h.checkPos(t, 0, 0)

	h = newVi("foo bar baz")
	h.keys("w")
	h.p.ExecCmd("/bar")
	if len(h.errs) > 0 {
		t.Errorf("errors = %q", h.errs)
	}
	h.checkPos(t, 0, 4)
}

func TestStarSearchSingleWord(t *testing.T) {
	h := newVi("alpha beta").keys("w*")
	if len(h.errs) > 0 {
		t.Errorf("errors = %q", h.errs)
	}
	h.checkPos(t, 0, 6)
}
