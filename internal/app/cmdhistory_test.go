package app

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCmdHistory_Add(t *testing.T) {
	h := NewCmdHistory(3)
	for _, l := range []string{":w", "/foo", ":", ":q", ":w", ":s/a/b/"} {
		h.Add(l)
	}
	if diff := cmp.Diff([]string{":s/a/b/", ":w", ":q"}, h.Recent(0)); diff != "" {
		t.Errorf("Recent(0) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{":s/a/b/"}, h.Recent(1)); diff != "" {
		t.Errorf("Recent(1) mismatch (-want +got):\n%s", diff)
	}
	if got := h.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}

func TestCmdHistory_Browse(t *testing.T) {
	h := NewCmdHistory(0)
	for _, l := range []string{":1", "/a", ":2", "/b", ":3"} {
		h.Add(l)
	}

	var got []string
	for {
		l, ok := h.Prev(":")
		if !ok {
			break
		}
		got = append(got, l)
	}
	if diff := cmp.Diff([]string{":3", ":2", ":1"}, got); diff != "" {
		t.Errorf("Prev mismatch (-want +got):\n%s", diff)
	}

	if l, ok := h.Next(":"); !ok || l != ":2" {
		t.Errorf("Next() = %q, %v, want :2", l, ok)
	}
	if l, ok := h.Next(":"); !ok || l != ":3" {
		t.Errorf("Next() = %q, %v, want :3", l, ok)
	}
	if _, ok := h.Next(":"); ok {
		t.Error("Next() past the newest line = true")
	}

	if l, ok := h.Prev("/"); !ok || l != "/b" {
		t.Errorf("Prev(/) = %q, %v, want /b", l, ok)
	}
	h.Add("/c")
	if l, _ := h.Prev("/"); l != "/c" {
		t.Errorf("Prev(/) after Add = %q, want /c", l)
	}
}

func TestCmdHistory_Load(t *testing.T) {
	h := NewCmdHistory(2)
	h.Load([]string{":a", ":b", ":c"})
	if diff := cmp.Diff([]string{":a", ":b"}, h.Recent(0)); diff != "" {
		t.Errorf("Recent(0) mismatch (-want +got):\n%s", diff)
	}
}
