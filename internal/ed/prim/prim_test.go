package prim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/ctext/internal/engine/buffer"
)

func TestExec(t *testing.T) {
	tests := []struct {
		name    string
		start   buffer.Point
		cmd     string
		ok      bool
		want    []string
		wantPos buffer.Point
	}{
		{"empty", buffer.Point{}, "", true, []string{"abc", "def"}, buffer.Point{}},
		{"blank", buffer.Point{}, "   ", true, []string{"abc", "def"}, buffer.Point{}},
		{"unknown", buffer.Point{}, "zz", false, []string{"abc", "def"}, buffer.Point{}},
		{"move", buffer.Point{}, "m 1 1", true, []string{"abc", "def"}, buffer.Point{Line: 1, Col: 1}},
		{"move clamped", buffer.Point{}, "m 9 9", true, []string{"abc", "def"}, buffer.Point{Line: 1, Col: 3}},
		{"move bad args", buffer.Point{}, "m 1", false, []string{"abc", "def"}, buffer.Point{}},
		{"move not int", buffer.Point{}, "m a b", false, []string{"abc", "def"}, buffer.Point{}},
		{"relative move", buffer.Point{Line: 1, Col: 1}, "M 1 -1", true, []string{"abc", "def"}, buffer.Point{Line: 0, Col: 2}},
		{"add after", buffer.Point{}, "a Z", true, []string{"aZbc", "def"}, buffer.Point{}},
		{"add before", buffer.Point{}, "A Z", true, []string{"Zabc", "def"}, buffer.Point{}},
		{"add two chars", buffer.Point{}, "a ZZ", false, []string{"abc", "def"}, buffer.Point{}},
		{"line after", buffer.Point{}, "l new", true, []string{"abc", "new", "def"}, buffer.Point{}},
		{"line before", buffer.Point{}, "L new", true, []string{"new", "abc", "def"}, buffer.Point{}},
		{"line missing", buffer.Point{}, "l", false, []string{"abc", "def"}, buffer.Point{}},
		{"delete char", buffer.Point{}, "x", true, []string{"bc", "def"}, buffer.Point{}},
		{"delete char before", buffer.Point{Col: 1}, "X", true, []string{"bc", "def"}, buffer.Point{}},
		{"delete line", buffer.Point{}, "d", true, []string{"def"}, buffer.Point{}},
		{"delete line before", buffer.Point{Line: 1}, "D", true, []string{"def"}, buffer.Point{}},
		{"replace line", buffer.Point{}, "R hello world", true, []string{"hello world", "def"}, buffer.Point{}},
		{"tab separated", buffer.Point{}, "R\tx", true, []string{"x", "def"}, buffer.Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buffer.NewBufferFromLines([]string{"abc", "def"})
			b.MoveTo(tt.start)
			tab := New(b)

			if got := tab.Exec(tt.cmd); got != tt.ok {
				t.Errorf("Exec(%q) = %v, want %v", tt.cmd, got, tt.ok)
			}
			if diff := cmp.Diff(tt.want, b.Lines()); diff != "" {
				t.Errorf("lines (-want +got):\n%s", diff)
			}
			if b.Pos() != tt.wantPos {
				t.Errorf("Pos() = %v, want %v", b.Pos(), tt.wantPos)
			}
		})
	}
}

func TestReadWrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(src, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := buffer.NewBuffer()
	tab := New(b)
	if !tab.Exec("r " + src) {
		t.Fatalf("Exec(r) = false")
	}
	if diff := cmp.Diff([]string{"one", "two"}, b.Lines()); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}

	dst := filepath.Join(dir, "out.txt")
	if !tab.Exec("w " + dst) {
		t.Fatalf("Exec(w) = false")
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "one\ntwo\n" {
		t.Errorf("written = %q, want %q", data, "one\ntwo\n")
	}

	if tab.Exec("r " + filepath.Join(dir, "missing")) {
		t.Error("Exec(r missing) = true, want false")
	}
}

func TestRegister(t *testing.T) {
	b := buffer.NewBufferFromLines([]string{"abc"})
	tab := New(b)
	tab.Register("u", func(b *buffer.Buffer, args string) bool {
		b.ReplaceLine(args + args)
		return true
	})
	if !tab.Exec("u ab") {
		t.Fatal("Exec(u) = false")
	}
	if got := b.Line(0); got != "abab" {
		t.Errorf("line = %q, want %q", got, "abab")
	}

	want := []string{"A", "D", "L", "M", "R", "X", "a", "d", "l", "m", "r", "u", "w", "x"}
	if diff := cmp.Diff(want, tab.Names()); diff != "" {
		t.Errorf("Names() (-want +got):\n%s", diff)
	}
}
