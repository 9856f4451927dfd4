package app

import "strings"

const defaultHistorySize = 100

// CmdHistory keeps command lines in most-recently-used order. Each entry
// keeps its prefix (":", "/" or "?"), so : and / lines are browsed
// separately.
type CmdHistory struct {
	items    []string
	maxItems int

	// browse state for Prev/Next
	prefix string
	at     int
}

// NewCmdHistory creates a history holding up to maxItems lines.
func NewCmdHistory(maxItems int) *CmdHistory {
	if maxItems <= 0 {
		maxItems = defaultHistorySize
	}
	return &CmdHistory{
		items:    make([]string, 0, maxItems),
		maxItems: maxItems,
		at:       -1,
	}
}

// Add records a line. A line already present moves to the front. Lines
// holding nothing but a prefix are ignored.
func (h *CmdHistory) Add(line string) {
	h.Reset()
	if len(strings.TrimSpace(line)) <= 1 {
		return
	}
	for i, item := range h.items {
		if item == line {
			h.items = append(h.items[:i], h.items[i+1:]...)
			break
		}
	}
	h.items = append([]string{line}, h.items...)
	if len(h.items) > h.maxItems {
		h.items = h.items[:h.maxItems]
	}
}

// Recent returns up to limit lines, newest first. A limit of 0 returns
// everything.
func (h *CmdHistory) Recent(limit int) []string {
	if limit <= 0 || limit > len(h.items) {
		limit = len(h.items)
	}
	out := make([]string, limit)
	copy(out, h.items[:limit])
	return out
}

// Len returns the number of lines held.
func (h *CmdHistory) Len() int {
	return len(h.items)
}

// Prev steps to the next older line starting with prefix. ok is false at
// the oldest match.
func (h *CmdHistory) Prev(prefix string) (string, bool) {
	if prefix != h.prefix {
		h.prefix = prefix
		h.at = -1
	}
	for i := h.at + 1; i < len(h.items); i++ {
		if strings.HasPrefix(h.items[i], prefix) {
			h.at = i
			return h.items[i], true
		}
	}
	return "", false
}

// Next steps back toward newer lines. ok is false once past the newest
// match, where the host shows the bare prefix again.
func (h *CmdHistory) Next(prefix string) (string, bool) {
	if prefix != h.prefix {
		h.Reset()
		return "", false
	}
	for i := h.at - 1; i >= 0; i-- {
		if strings.HasPrefix(h.items[i], prefix) {
			h.at = i
			return h.items[i], true
		}
	}
	h.at = -1
	return "", false
}

// Reset ends browsing.
func (h *CmdHistory) Reset() {
	h.prefix = ""
	h.at = -1
}

// Load replaces the history with lines, newest first.
func (h *CmdHistory) Load(lines []string) {
	h.Reset()
	h.items = h.items[:0]
	for _, l := range lines {
		if len(h.items) == h.maxItems {
			break
		}
		h.items = append(h.items, l)
	}
}
