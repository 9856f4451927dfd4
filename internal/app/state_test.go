package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"

	"github.com/dshills/ctext/internal/config"
	"github.com/dshills/ctext/internal/engine/register"
)

func stateConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.StateFile = filepath.Join(t.TempDir(), "state", "state.json")
	return cfg
}

func TestState_RoundTrip(t *testing.T) {
	cfg := stateConfig(t)
	s1, path, _ := newTestSession(t, cfg, "one", "two", "three")
	_ = s1.Keys(`jma"ayy`)
	s1.ExecCmd("/thr")
	_ = s1.Keys("qbxq")
	if err := s1.SaveState(context.Background()); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}

	data, err := os.ReadFile(cfg.StateFile)
	if err != nil {
		t.Fatal(err)
	}
	if v := gjson.GetBytes(data, "version").Int(); v != stateVersion {
		t.Errorf("version = %d, want %d", v, stateVersion)
	}

	s2 := NewSession(Options{Config: cfg})
	if err := s2.Open(path); err != nil {
		t.Fatal(err)
	}
	if err := s2.LoadState(context.Background()); err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}

	want := []register.Fragment{{Text: "two", LineUnit: true}}
	if diff := cmp.Diff(want, s2.regs.Fragments('a')); diff != "" {
		t.Errorf("register a mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(s1.regs.Fragments('"'), s2.regs.Fragments('"')); diff != "" {
		t.Errorf("unnamed register mismatch (-want +got):\n%s", diff)
	}
	if p, ok := s2.marks.Get("a").Get(); !ok || p != (Point{Line: 1}) {
		t.Errorf("mark a = %v, %v, want 1:0", p, ok)
	}
	if got := s2.core.FindPattern(); got != "thr" {
		t.Errorf("FindPattern() = %q, want thr", got)
	}
	if got, want := s2.Macros().Get('b').String(), s1.Macros().Get('b').String(); got != want || got == "" {
		t.Errorf("macro b = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{"/thr"}, s2.History().Recent(0)); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestState_KeepsOtherFiles(t *testing.T) {
	cfg := stateConfig(t)
	s1, _, _ := newTestSession(t, cfg, "a", "b")
	_ = s1.Keys("jmx")
	if err := s1.SaveState(context.Background()); err != nil {
		t.Fatal(err)
	}

	s2, _, _ := newTestSession(t, cfg, "c")
	_ = s2.Keys("my")
	if err := s2.SaveState(context.Background()); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(cfg.StateFile)
	files := gjson.GetBytes(data, "files").Map()
	if len(files) != 2 {
		t.Errorf("files = %v, want two entries", files)
	}
}

func TestState_MarkBeyondBuffer(t *testing.T) {
	cfg := stateConfig(t)
	s1, path, _ := newTestSession(t, cfg, "a", "b", "c")
	_ = s1.Keys("Gmz")
	if err := s1.SaveState(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s2 := NewSession(Options{Config: cfg})
	_ = s2.Open(path)
	if err := s2.LoadState(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, ok := s2.marks.Get("z").Get(); ok {
		t.Error("mark past the end of the file was restored")
	}
}

func TestState_Disabled(t *testing.T) {
	s, _, _ := newTestSession(t, nil, "a")
	if err := s.SaveState(context.Background()); err != nil {
		t.Errorf("SaveState() error = %v", err)
	}
	if err := s.LoadState(context.Background()); err != nil {
		t.Errorf("LoadState() error = %v", err)
	}
}

func TestState_MissingFile(t *testing.T) {
	s, _, _ := newTestSession(t, stateConfig(t), "a")
	if err := s.LoadState(context.Background()); err != nil {
		t.Errorf("LoadState() error = %v", err)
	}
}

func TestState_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"newer version", `{"version":99}`, ErrStateVersion},
		{"bad json", `{"version":`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := stateConfig(t)
			if err := os.MkdirAll(filepath.Dir(cfg.StateFile), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(cfg.StateFile, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			s, _, _ := newTestSession(t, cfg, "a")
			err := s.LoadState(context.Background())
			if err == nil {
				t.Fatal("LoadState() error = nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("LoadState() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestState_Locked(t *testing.T) {
	cfg := stateConfig(t)
	if err := os.MkdirAll(filepath.Dir(cfg.StateFile), 0o755); err != nil {
		t.Fatal(err)
	}
	held := flock.New(cfg.StateFile + ".lock")
	if err := held.Lock(); err != nil {
		t.Fatal(err)
	}
	defer held.Unlock()

	s, _, _ := newTestSession(t, cfg, "a")
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := s.SaveState(ctx); !errors.Is(err, ErrStateLocked) {
		t.Errorf("SaveState() = %v, want ErrStateLocked", err)
	}
}
