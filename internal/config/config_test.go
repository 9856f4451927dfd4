package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/ctext/internal/input"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		key    string
	}{
		{"zero shiftwidth", func(c *Config) { c.ShiftWidth = 0 }, "shiftwidth"},
		{"negative tabstop", func(c *Config) { c.TabStop = -1 }, "tabstop"},
		{"zero max_undo", func(c *Config) { c.MaxUndo = 0 }, "max_undo"},
		{"negative timeout", func(c *Config) { c.ShellTimeout = Duration(-time.Second) }, "shell_timeout"},
		{"empty shell", func(c *Config) { c.Shell = " " }, "shell"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)
			err := c.Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, want a ValidationError", err)
			}
			if ve.Key != tt.key {
				t.Errorf("Key = %q, want %q", ve.Key, tt.key)
			}
		})
	}
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()
	tomlPath := writeFile(t, dir, "config.toml", `
shiftwidth = 4
tabstop = 4
ignorecase = true
shell_timeout = "5s"
log_level = "debug"
mode = "normal"
`)
	yamlPath := writeFile(t, dir, "config.yaml", `
shiftwidth: 4
tabstop: 4
ignorecase: true
shell_timeout: 5s
log_level: debug
mode: normal
`)

	want := Default()
	want.ShiftWidth = 4
	want.TabStop = 4
	want.IgnoreCase = true
	want.ShellTimeout = Duration(5 * time.Second)
	want.LogLevel = "debug"
	want.Mode = input.KindNormal

	for _, path := range []string{tomlPath, yamlPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"empty.toml", "empty.yml"} {
		got, err := Load(writeFile(t, dir, name, ""))
		if err != nil {
			t.Fatalf("Load(%s) error = %v", name, err)
		}
		if diff := cmp.Diff(Default(), got); diff != "" {
			t.Errorf("Load(%s) mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Load(missing) = %v, want ErrFileNotFound", err)
	}
	if _, err := Load(writeFile(t, dir, "config.ini", "x=1")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Load(ini) = %v, want ErrUnknownFormat", err)
	}

	tests := []struct {
		name, content string
	}{
		{"unknown.toml", "tabsize = 2\n"},
		{"syntax.toml", "tabstop = \n"},
		{"unknown.yaml", "tabsize: 2\n"},
		{"type.yaml", "tabstop: wide\n"},
		{"duration.toml", "shell_timeout = \"soon\"\n"},
		{"mode.yaml", "mode: emacs\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name, tt.content)
			_, err := Load(path)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Load() = %v, want a ParseError", err)
			}
			if pe.Path != path {
				t.Errorf("Path = %q, want %q", pe.Path, path)
			}
		})
	}

	_, err := Load(writeFile(t, dir, "invalid.toml", "tabstop = 0\n"))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("Load(tabstop=0) = %v, want a ValidationError", err)
	}
}

func TestParseErrorPosition(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pos.toml", "shiftwidth = 2\ntabstop = = 3\n")
	_, err := Load(path)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Load() = %v, want a ParseError", err)
	}
	if pe.Line != 2 {
		t.Errorf("Line = %d, want 2", pe.Line)
	}
}

func TestDuration(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if d.Std() != 90*time.Second {
		t.Errorf("Std() = %v, want 1m30s", d.Std())
	}
	if text, _ := d.MarshalText(); string(text) != "1m30s" {
		t.Errorf("MarshalText() = %q, want 1m30s", text)
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "tabstop = 8\n")

	w, err := NewWatcher(path, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	writeFile(t, dir, "other.toml", "tabstop = 1\n")
	writeFile(t, dir, "config.toml", "tabstop = 4\n")
	select {
	case cfg := <-w.Changes():
		if cfg.TabStop != 4 {
			t.Errorf("TabStop = %d, want 4", cfg.TabStop)
		}
	case err := <-w.Errors():
		t.Fatalf("reload error = %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}

	writeFile(t, dir, "config.toml", "tabstop = 0\n")
	select {
	case cfg := <-w.Changes():
		t.Errorf("invalid file reloaded: %+v", cfg)
	case err := <-w.Errors():
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("reload error = %v, want a ValidationError", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no error after invalid write")
	}
}

func TestWatcherClose(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "tabstop: 8\n")
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("second Close() = %v, want ErrWatcherClosed", err)
	}
	if _, ok := <-w.Changes(); ok {
		t.Error("Changes() still open after Close")
	}
}
