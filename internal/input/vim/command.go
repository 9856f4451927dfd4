package vim

import (
	"regexp"
	"strings"

	"github.com/dshills/ctext/internal/engine/mark"
	"github.com/dshills/ctext/internal/engine/motion"
	"github.com/dshills/ctext/internal/input/key"
)

// commandKey runs a key typed in command mode.
func (p *Processor) commandKey(ev key.Event) {
	if c, ok := ev.Char(); ok {
		p.command(c, ev)
		return
	}

	n := p.n()
	shift := ev.Modifiers.HasShift()
	switch ev.Key {
	case key.KeyBackspace:
		p.command('h', ev)
	case key.KeyLeft:
		if shift {
			p.move(motion.PrevWord, n)
		} else {
			p.command('h', ev)
		}
	case key.KeyRight:
		if shift {
			p.move(motion.NextWord, n)
		} else {
			p.command('l', ev)
		}
	case key.KeyUp:
		if shift {
			p.pageUp(n)
		} else {
			p.command('k', ev)
		}
	case key.KeyDown:
		if shift {
			p.pageDown(n)
		} else {
			p.command('j', ev)
		}
	case key.KeyEnter:
		p.command('+', ev)
	case key.KeyDelete:
		p.command('x', ev)
	case key.KeyTab:
		p.buf.RMoveTo(0, p.TabStop())
	case key.KeyInsert:
		p.SetOverwrite(!p.Overwrite())
	case key.KeyHome:
		p.buf.MoveTo(Point{})
	case key.KeyEnd:
		p.buf.MoveTo(Point{Line: p.buf.NumLines() - 1})
	case key.KeyPageDown:
		p.pageDown(n)
	case key.KeyPageUp:
		p.pageUp(n)
	case key.KeyEscape:
	default:
		p.Errorf("Unsupported key %s", ev)
	}
}

// command runs the command for character c.
func (p *Processor) command(c byte, ev key.Event) {
	if strings.IndexByte(pendingKeys, c) >= 0 {
		if c == 'q' && p.recorder.Recording() {
			p.stopRecording()
			return
		}
		p.pending = c
		return
	}

	b := p.buf
	pos := b.Pos()
	n := p.n()

	switch c {
	// Cursor movement.
	case 'h':
		b.RMoveTo(0, -n)
	case 'l', ' ':
		b.RMoveTo(0, n)
	case 'j':
		b.RMoveTo(n, 0)
	case 'k':
		b.RMoveTo(-n, 0)
	case '0':
		b.MoveTo(Point{Line: pos.Line})
	case '$':
		b.RMoveTo(n-1, 0)
		b.MoveTo(Point{Line: b.Row(), Col: b.LineLen(b.Row()) - 1})
	case '^':
		p.edit.MoveToFirstNonBlank()
	case '_':
		p.edit.MoveToFirstNonBlankDown(n - 1)
	case '-':
		p.edit.MoveToFirstNonBlankUp(n)
	case '+':
		p.edit.MoveToFirstNonBlankDown(n)
	case '|':
		b.MoveTo(Point{Line: pos.Line, Col: n - 1})
	case 'w':
		p.move(motion.NextWord, n)
	case 'W':
		p.move(motion.NextBigWord, n)
	case 'b':
		p.move(motion.PrevWord, n)
	case 'B':
		p.move(motion.PrevBigWord, n)
	case 'e':
		p.move(motion.EndWord, n)
	case 'E':
		p.move(motion.EndBigWord, n)
	case '(':
		p.move(motion.PrevSentence, n)
	case ')':
		p.move(motion.NextSentence, n)
	case '{':
		p.move(motion.PrevParagraph, n)
	case '}':
		p.move(motion.NextParagraph, n)
	case 'G':
		p.marks.MarkReturn()
		if raw := p.rawCount(); raw > 0 {
			b.MoveTo(Point{Line: raw - 1})
		} else {
			last := b.NumLines() - 1
			b.MoveTo(Point{Line: last, Col: b.LineLen(last) - 1})
		}
	case 'H':
		p.firstNonBlank(min(b.PageTop()+n-1, b.PageBottom()))
	case 'M':
		p.firstNonBlank((b.PageTop() + b.PageBottom()) / 2)
	case 'L':
		p.firstNonBlank(max(b.PageBottom()-n+1, b.PageTop()))
	case '%':
		if raw := p.rawCount(); raw > 0 {
			if raw <= 100 {
				p.marks.MarkReturn()
				p.firstNonBlank((raw*b.NumLines()+99)/100 - 1)
			}
		} else if t, ok := motion.MatchPair(b, pos); ok {
			p.marks.MarkReturn()
			b.MoveTo(t)
		}
	case ';', ',':
		f := p.lastFind
		if f.ch == 0 {
			return
		}
		if c == ',' {
			f.forward = !f.forward
		}
		if t, ok := p.findChar(f, n, true); ok {
			b.MoveTo(t)
		}

	// Search and command line.
	case ':':
		p.EnterCmdLine(":")
	case '/', '?':
		p.EnterCmdLine(string(c))
	case 'n':
		p.jump("", p.searchForward)
	case 'N':
		p.jump("", !p.searchForward)
	case '*', '#':
		p.searchWord(c == '*')

	// Insert mode.
	case 'i':
		p.startInsert()
	case 'a':
		p.startInsert()
		if b.LineLen(pos.Line) > 0 {
			b.RMoveTo(0, 1)
		}
	case 'I':
		p.startInsert()
		p.edit.MoveToFirstNonBlank()
	case 'A':
		p.startInsert()
		b.MoveTo(Point{Line: pos.Line, Col: b.LineLen(pos.Line)})
	case 'o':
		p.startInsert()
		p.ensureLine()
		b.AddLineAfter("")
		b.MoveTo(Point{Line: pos.Line + 1})
	case 'O':
		p.startInsert()
		b.AddLineBefore("")
		b.MoveTo(Point{Line: pos.Line})
	case 'R':
		p.startInsert()
		p.SetOverwrite(true)
	case 's':
		p.startInsert()
		p.regs.YankChars(p.reg(), pos, n)
		p.edit.DeleteChars(pos.Line, pos.Col, n)
	case 'S':
		p.startInsert()
		p.changeLines(pos.Line, min(pos.Line+n, b.NumLines())-1)
	case 'C':
		p.startInsert()
		p.regs.YankSpan(p.reg(), pos, Point{Line: pos.Line, Col: b.LineLen(pos.Line)})
		p.edit.DeleteEOL(pos)

	// Changes.
	case 'x':
		if b.LineLen(pos.Line) == 0 {
			return
		}
		p.remember()
		p.group(func() {
			p.regs.YankChars(p.reg(), pos, n)
			p.edit.DeleteChars(pos.Line, pos.Col, n)
		})
	case 'X':
		k := min(n, pos.Col)
		if k == 0 {
			return
		}
		p.remember()
		start := Point{Line: pos.Line, Col: pos.Col - k}
		p.group(func() {
			p.regs.YankSpan(p.reg(), start, pos)
			p.edit.DeleteChars(pos.Line, start.Col, k)
		})
	case 'D':
		p.remember()
		p.group(func() {
			p.regs.YankSpan(p.reg(), pos, Point{Line: pos.Line, Col: b.LineLen(pos.Line)})
			p.edit.DeleteEOL(pos)
		})
	case 'J':
		p.remember()
		p.group(func() {
			for i, n := 0, max(n-1, 1); i < n; i++ {
				if !p.edit.JoinLine(b.Row()) {
					break
				}
			}
		})
	case '~':
		p.remember()
		p.group(func() {
			for i := 0; i < n; i++ {
				if !p.edit.SwapChar(b.Pos()) {
					break
				}
				b.RMoveTo(0, 1)
			}
		})
	case 'p', 'P':
		p.remember()
		p.paste(c == 'p', n)
	case 'Y':
		p.regs.YankLines(p.reg(), pos.Line, n)
	case 'u':
		for i := 0; i < n; i++ {
			p.UndoLast()
		}
	case '.':
		p.repeat(p.rawCount())

	// Visual mode.
	case 'v':
		p.toggleVisual(ModeVisual)
	case 'V':
		p.toggleVisual(ModeVisualLine)

	case '&', '=', 'Q', 'K', 'U', '\\':
		p.Errorf("Unimplemented command %c", c)
	default:
		p.Errorf("Unsupported key %s", ev)
	}
}

// move applies motion m n times from the cursor.
func (p *Processor) move(m motion.Func, n int) {
	motion.Apply(p.buf, motion.Repeat(m, n))
}

// pageDown moves n pages forward and scrolls the cursor line to the top.
func (p *Processor) pageDown(n int) {
	b := p.buf
	dist := min(p.PageLength()*n, b.NumLines()-1-b.Row())
	if dist <= 0 {
		return
	}
	b.RMoveTo(dist, 0)
	b.ScrollTop()
	p.ScrollTop()
}

// pageUp moves n pages back and scrolls the cursor line to the bottom.
func (p *Processor) pageUp(n int) {
	b := p.buf
	dist := min(p.PageLength()*n, b.Row())
	if dist <= 0 {
		return
	}
	b.RMoveTo(-dist, 0)
	b.ScrollBottom()
	p.ScrollBottom()
}

// scroll moves the page window by d lines, dragging the cursor along when
// it would leave the window.
func (p *Processor) scroll(d int) {
	b := p.buf
	top := min(max(b.PageTop()+d, 0), max(b.NumLines()-1, 0))
	b.SetPage(top, 0)
	switch row := b.Row(); {
	case row < b.PageTop():
		b.MoveTo(Point{Line: b.PageTop(), Col: b.Col()})
	case row > b.PageBottom():
		b.MoveTo(Point{Line: b.PageBottom(), Col: b.Col()})
	}
}

// paste puts the register after or before the cursor n times.
func (p *Processor) paste(after bool, n int) {
	reg := p.reg()
	if len(p.regs.Fragments(reg)) == 0 {
		p.Errorf("Nothing in register %c", reg)
		return
	}
	p.group(func() {
		for i := 0; i < n; i++ {
			if after {
				p.regs.PasteAfter(reg, p.buf.Pos())
			} else {
				p.regs.PasteBefore(reg, p.buf.Pos())
			}
		}
	})
}

// searchWord searches for the word under the cursor.
func (p *Processor) searchWord(forward bool) {
	b := p.buf
	pos := b.Pos()
	word, ok := motion.GetWord(b, pos)
	if !ok {
		p.Error("No string under cursor")
		return
	}
	if !forward {
		line := b.Line(pos.Line)
		for pos.Col > 0 && motion.IsWordChar(line[pos.Col-1]) {
			pos.Col--
		}
		b.MoveTo(pos)
	}
	p.searchForward = forward
	p.jump(`\b`+regexp.QuoteMeta(word)+`\b`, forward)
}

// controlKey runs a Control or Alt modified key.
func (p *Processor) controlKey(ev key.Event) {
	n := p.n()
	half := max(p.PageLength()/2, 1)
	switch {
	case ev.IsCtrl('f'):
		p.pageDown(n)
	case ev.IsCtrl('b'):
		p.pageUp(n)
	case ev.IsCtrl('d'):
		p.scroll(half)
		p.buf.RMoveTo(half, 0)
	case ev.IsCtrl('u'):
		p.scroll(-half)
		p.buf.RMoveTo(-half, 0)
	case ev.IsCtrl('e'):
		p.scroll(n)
	case ev.IsCtrl('y'):
		p.scroll(-n)
	case ev.IsCtrl('g'):
		p.Status(p.FileStatus())
	case ev.IsCtrl('h'):
		p.buf.RMoveTo(0, -n)
	case ev.IsCtrl('r'):
		for i := 0; i < n; i++ {
			p.RedoLast()
		}
	case ev.IsCtrl('l'):
	case ev.IsCtrl('v'):
		p.toggleVisual(ModeVisualBlock)
	default:
		p.Errorf("Unsupported key %s", ev)
	}
}

// markJump moves to mark c. With exact it goes to the marked column,
// otherwise to the first non-blank of the marked line.
func (p *Processor) markJump(c byte, exact bool) {
	name := string(c)
	if c == '`' || c == '\'' {
		name = mark.Return
	}
	t, err := p.marks.Lookup(name)
	if err != nil {
		p.Error("Mark not set")
		return
	}
	p.marks.MarkReturn()
	if exact {
		p.buf.MoveTo(t)
		return
	}
	p.firstNonBlank(t.Line)
}
