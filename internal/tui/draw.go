package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var (
	styleText   = tcell.StyleDefault
	styleGutter = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStatus = tcell.StyleDefault.Reverse(true)
	styleError  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleTilde  = tcell.StyleDefault.Foreground(tcell.ColorBlue)
)

// Draw renders the page, status line and command line.
func (h *Host) Draw() {
	w, ht := h.screen.Size()
	h.screen.Clear()
	if w <= 0 || ht < 3 {
		h.screen.Show()
		return
	}
	rows := ht - 2
	b := h.session.Buffer()
	tabStop := h.session.Core().TabStop()

	h.follow(rows)
	top := b.PageTop()

	gutter := 0
	if h.number {
		gutter = len(fmt.Sprint(b.NumLines())) + 1
		gutter = max(gutter, 4)
	}

	for y := 0; y < rows; y++ {
		n := top + y
		if n >= b.NumLines() {
			if n > 0 {
				h.puts(0, y, w, "~", styleTilde)
			}
			continue
		}
		if gutter > 0 {
			h.puts(0, y, gutter, fmt.Sprintf("%*d ", gutter-1, n+1), styleGutter)
		}
		h.puts(gutter, y, w-gutter, expandTabs(b.Line(n), tabStop), styleText)
	}

	for i, line := range h.overlay {
		if i >= rows {
			break
		}
		h.fill(0, i, w, styleText)
		h.puts(0, i, w, expandTabs(line, tabStop), styleText)
	}

	h.drawStatus(w, rows)
	h.drawBottom(w, ht-1)

	if h.cmd.active {
		h.screen.ShowCursor(min(len([]rune(h.cmd.String())), w-1), ht-1)
	} else {
		p := b.Pos()
		x := gutter + displayCol(b.Line(p.Line), p.Col, tabStop)
		h.screen.ShowCursor(min(x, w-1), p.Line-top)
	}
	h.screen.Show()
}

// follow scrolls the page so the cursor line is visible.
func (h *Host) follow(rows int) {
	b := h.session.Buffer()
	top := b.PageTop()
	line := b.Pos().Line
	switch {
	case line < top:
		top = line
	case line >= top+rows:
		top = line - rows + 1
	}
	b.SetPage(top, rows)
}

func (h *Host) drawStatus(w, y int) {
	h.fill(0, y, w, styleStatus)
	b := h.session.Buffer()

	name := b.FileName()
	if name == "" {
		name = "[No Name]"
	} else {
		name = filepath.Base(name)
	}
	if h.session.Modified() {
		name += " [+]"
	}
	left := " " + name
	if mode := h.session.ModeName(); mode != "" {
		left += "  -- " + mode + " --"
	}
	p := b.Pos()
	right := fmt.Sprintf("%d,%d ", p.Line+1, p.Col+1)

	h.puts(0, y, w, left, styleStatus)
	if x := w - len(right); x > len(left) {
		h.puts(x, y, len(right), right, styleStatus)
	}
}

func (h *Host) drawBottom(w, y int) {
	switch {
	case h.cmd.active:
		h.puts(0, y, w, h.cmd.String(), styleText)
	case h.msgErr:
		h.puts(0, y, w, h.msg, styleError)
	default:
		h.puts(0, y, w, h.msg, styleText)
	}
}

// puts writes s at x, y, clipped to width cells.
func (h *Host) puts(x, y, width int, s string, style tcell.Style) {
	i := 0
	for _, r := range s {
		if i >= width {
			return
		}
		h.screen.SetContent(x+i, y, r, nil, style)
		i++
	}
}

func (h *Host) fill(x, y, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		h.screen.SetContent(x+i, y, ' ', nil, style)
	}
}

// expandTabs replaces tabs with spaces up to the next tab stop.
func expandTabs(s string, tabStop int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabStop - col%tabStop
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col++
	}
	return sb.String()
}

// displayCol returns the screen column of byte offset col in s.
func displayCol(s string, col, tabStop int) int {
	x := 0
	for i, r := range s {
		if i >= col {
			break
		}
		if r == '\t' {
			x += tabStop - x%tabStop
			continue
		}
		x++
	}
	return x
}
