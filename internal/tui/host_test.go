package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/dshills/ctext/internal/config"
	"github.com/dshills/ctext/internal/input/key"
)

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), key.Rune('x')},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModShift), key.Rune('X')},
		{"ctrl key", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), key.Ctrl('r')},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.Special(key.KeyEnter, 0)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), key.Special(key.KeyEscape, 0)},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), key.Special(key.KeyBackspace, 0)},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), key.Special(key.KeyTab, key.ModShift)},
		{"shift right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift), key.Special(key.KeyRight, key.ModShift)},
		{"function", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), key.Special(key.KeyF5, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := convertKey(tt.ev)
			if !ok {
				t.Fatal("convertKey() ok = false")
			}
			if got != tt.want {
				t.Errorf("convertKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertMod(t *testing.T) {
	got := convertMod(tcell.ModMeta | tcell.ModShift)
	if want := key.ModAlt | key.ModShift; got != want {
		t.Errorf("convertMod() = %v, want %v", got, want)
	}
}

func newTestHost(t *testing.T, cfg *config.Config, lines ...string) (*Host, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 8)

	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := New(screen, Options{Config: cfg})
	if err := h.Session().Open(path); err != nil {
		t.Fatal(err)
	}
	return h, screen
}

func typeKeys(h *Host, s string) {
	for _, r := range s {
		h.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func press(h *Host, k tcell.Key) {
	h.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func row(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		if r == 0 {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestHost_EditAndDraw(t *testing.T) {
	h, screen := newTestHost(t, nil, "one", "two")
	typeKeys(h, "x")
	h.Draw()

	if got := row(screen, 0); got != "ne" {
		t.Errorf("row 0 = %q, want %q", got, "ne")
	}
	if got := row(screen, 2); got != "~" {
		t.Errorf("row 2 = %q, want ~", got)
	}
	status := row(screen, 6)
	if !strings.HasPrefix(status, " f.txt [+]") || !strings.HasSuffix(status, "1,1") {
		t.Errorf("status = %q", status)
	}

	typeKeys(h, "i")
	h.Draw()
	if status := row(screen, 6); !strings.Contains(status, "-- INSERT --") {
		t.Errorf("status = %q, want INSERT mode", status)
	}
}

func TestHost_CmdLine(t *testing.T) {
	h, screen := newTestHost(t, nil, "one", "two")
	typeKeys(h, ":2d")
	h.Draw()
	if got := row(screen, 7); got != ":2d" {
		t.Errorf("command line = %q, want :2d", got)
	}
	press(h, tcell.KeyEnter)

	if diff := cmp.Diff([]string{"one"}, h.Session().Buffer().Lines()); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if h.cmd.active {
		t.Error("command line still active after Enter")
	}

	typeKeys(h, ":")
	press(h, tcell.KeyUp)
	if got := h.cmd.String(); got != ":2d" {
		t.Errorf("after Up command line = %q, want :2d", got)
	}
	press(h, tcell.KeyDown)
	if got := h.cmd.String(); got != ":" {
		t.Errorf("after Down command line = %q, want :", got)
	}
	press(h, tcell.KeyEscape)
	if h.cmd.active {
		t.Error("command line still active after Esc")
	}
}

func TestHost_CmdLineBackspace(t *testing.T) {
	h, _ := newTestHost(t, nil, "one")
	typeKeys(h, ":ab")
	press(h, tcell.KeyBackspace2)
	if got := h.cmd.String(); got != ":a" {
		t.Errorf("command line = %q, want :a", got)
	}
	press(h, tcell.KeyBackspace2)
	press(h, tcell.KeyBackspace2)
	if h.cmd.active {
		t.Error("Backspace on an empty command line did not close it")
	}
}

func TestHost_Overlay(t *testing.T) {
	h, screen := newTestHost(t, nil, "one", "two")
	typeKeys(h, ":2p")
	press(h, tcell.KeyEnter)
	if diff := cmp.Diff([]string{"two"}, h.overlay); diff != "" {
		t.Errorf("overlay mismatch (-want +got):\n%s", diff)
	}
	h.Draw()
	if got := row(screen, 0); got != "two" {
		t.Errorf("row 0 = %q, want overlay text", got)
	}

	// The key that dismisses the overlay is not processed.
	typeKeys(h, "x")
	if h.overlay != nil {
		t.Error("overlay not dismissed")
	}
	if diff := cmp.Diff([]string{"one", "two"}, h.Session().Buffer().Lines()); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestHost_Error(t *testing.T) {
	h, screen := newTestHost(t, nil, "one")
	typeKeys(h, ":q")
	typeKeys(h, "x")
	press(h, tcell.KeyBackspace2)
	press(h, tcell.KeyEnter)
	if h.msg != "" {
		t.Errorf("msg = %q after :q on a clean buffer", h.msg)
	}
	if !h.Session().Quitting() {
		t.Fatal("Quitting() = false after :q")
	}

	h, screen = newTestHost(t, nil, "one")
	typeKeys(h, "x:q")
	press(h, tcell.KeyEnter)
	if !h.msgErr || h.msg == "" {
		t.Errorf("msg = %q, msgErr = %v, want an error", h.msg, h.msgErr)
	}
	h.Draw()
	if got := row(screen, 7); got == "" || !strings.HasPrefix(h.msg, got) {
		t.Errorf("bottom row = %q, want %q", got, h.msg)
	}
	if h.Session().Quitting() {
		t.Error("quit with unsaved changes")
	}
}

func TestHost_Number(t *testing.T) {
	cfg := config.Default()
	cfg.Number = true
	h, screen := newTestHost(t, cfg, "one", "\ttab")
	h.Draw()
	if got := row(screen, 0); got != "  1 one" {
		t.Errorf("row 0 = %q, want %q", got, "  1 one")
	}
	if got, want := row(screen, 1), "  2 "+strings.Repeat(" ", 8)+"tab"; got != want {
		t.Errorf("row 1 = %q, want %q", got, want)
	}
}

func TestHost_Follow(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = strings.Repeat("x", i+1)
	}
	h, screen := newTestHost(t, nil, lines...)
	typeKeys(h, "G")
	h.Draw()
	if got, want := h.Session().Buffer().PageTop(), 14; got != want {
		t.Errorf("PageTop() = %d, want %d", got, want)
	}
	if got := row(screen, 5); got != lines[19] {
		t.Errorf("row 5 = %q, want last line", got)
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		in   string
		want string
		col  int
		x    int
	}{
		{"abc", "abc", 2, 2},
		{"\tx", strings.Repeat(" ", 8) + "x", 1, 8},
		{"ab\tc", "ab" + strings.Repeat(" ", 6) + "c", 3, 8},
		{"a\t\tb", "a" + strings.Repeat(" ", 15) + "b", 3, 16},
	}
	for _, tt := range tests {
		if got := expandTabs(tt.in, 8); got != tt.want {
			t.Errorf("expandTabs(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if got := displayCol(tt.in, tt.col, 8); got != tt.x {
			t.Errorf("displayCol(%q, %d) = %d, want %d", tt.in, tt.col, got, tt.x)
		}
	}
}
