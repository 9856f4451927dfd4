package vim

import (
	"fmt"

	"github.com/dshills/ctext/internal/engine/buffer"
	"github.com/dshills/ctext/internal/engine/motion"
	"github.com/dshills/ctext/internal/engine/register"
	"github.com/dshills/ctext/internal/input/key"
)

// motionKind says how an operator treats the span up to a motion target.
type motionKind uint8

const (
	exclusive motionKind = iota // the target character is not included
	inclusive                   // the target character is included
	linewise                    // whole lines from cursor to target
)

func isOperator(c byte) bool {
	switch c {
	case 'c', 'd', 'y', '<', '>', '!':
		return true
	}
	return false
}

// pendingKey completes a command that was waiting for ev.
func (p *Processor) pendingKey(ev key.Event) {
	cmd := p.pending
	p.pending = 0

	if isOperator(cmd) {
		p.operatorKey(cmd, ev)
		return
	}
	switch cmd {
	case 'f', 'F', 't', 'T':
		p.findKey(cmd, ev)
		return
	case 'z':
		p.scrollKey(ev)
		return
	}

	c, ok := ev.Char()
	if !ok {
		p.Errorf("Unsupported key %s", ev)
		return
	}
	b := p.buf
	pos := b.Pos()
	n := p.n()

	switch cmd {
	case '"':
		if !register.IsValid(c) {
			p.Errorf("Invalid register name '%c'", c)
			return
		}
		p.register = c
		p.prefixed = true
	case 'm':
		if !isLetter(c) {
			p.Errorf("Invalid mark name '%c'", c)
			return
		}
		p.marks.Set(string(c), pos)
	case '`':
		p.markJump(c, true)
	case '\'':
		p.markJump(c, false)
	case 'r':
		if pos.Col+n > b.LineLen(pos.Line) {
			return
		}
		p.remember()
		p.group(func() {
			for i := 0; i < n; i++ {
				_ = b.SetChar(Point{Line: pos.Line, Col: pos.Col + i}, c)
			}
			b.MoveTo(Point{Line: pos.Line, Col: pos.Col + n - 1})
		})
	case 'Z':
		switch c {
		case 'Z':
			if p.WriteFile() == nil {
				p.Quit(false)
			}
		case 'Q':
			p.Quit(true)
		default:
			p.Errorf("Unsupported command Z%c", c)
		}
	case '[':
		if c == '[' {
			p.move(motion.PrevSection, n)
		}
	case ']':
		if c == ']' {
			p.move(motion.NextSection, n)
		}
	case 'g':
		if c != 'g' {
			p.Errorf("Unsupported command g%c", c)
			return
		}
		p.marks.MarkReturn()
		line := 0
		if raw := p.rawCount(); raw > 0 {
			line = raw - 1
		}
		p.firstNonBlank(line)
	case 'q':
		p.startRecording(c)
	case '@':
		p.playMacro(c, n)
	}
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// scrollKey completes z: the cursor line goes to the top, middle or bottom
// of the page.
func (p *Processor) scrollKey(ev key.Event) {
	c, _ := ev.Char()
	if ev.Is(key.KeyEnter) {
		c = '\r'
	}
	switch c {
	case '\r', '+':
		p.edit.MoveToFirstNonBlank()
		fallthrough
	case 't':
		p.buf.ScrollTop()
		p.ScrollTop()
	case '.':
		p.edit.MoveToFirstNonBlank()
		fallthrough
	case 'z':
		p.buf.ScrollMiddle()
		p.ScrollMiddle()
	case '-':
		p.edit.MoveToFirstNonBlank()
		fallthrough
	case 'b':
		p.buf.ScrollBottom()
		p.ScrollBottom()
	default:
		p.Errorf("Unsupported command z%s", ev)
	}
}

// operatorKey handles the key after an operator: a count digit, the
// doubled operator, or a motion.
func (p *Processor) operatorKey(op byte, ev key.Event) {
	c, isChar := ev.Char()
	if isChar {
		if p.opCount.AccumulateDigit(rune(c)) {
			p.pending = op
			return
		}
		switch {
		case c == op:
			p.doubledOperator(op)
			return
		case c == 'w' && (op == 'c' || op == 'd' || op == 'y'):
			p.wordOperator(op)
			return
		case c == 'f' || c == 'F' || c == 't' || c == 'T':
			p.operator = op
			p.pending = c
			return
		}
	}
	t, kind, ok := p.operatorMotion(ev, p.n())
	if !ok {
		return
	}
	p.applyOperator(op, t, kind)
}

// doubledOperator runs dd, cc, yy, <<, >> and !! over count lines.
func (p *Processor) doubledOperator(op byte) {
	b := p.buf
	l1 := b.Row()
	l2 := min(l1+p.n(), b.NumLines()) - 1
	p.lineOperator(op, l1, max(l2, l1))
}

// wordOperator runs cw, dw and yw, which stay on the cursor line. cw
// leaves the blanks after the last word alone.
func (p *Processor) wordOperator(op byte) {
	pos := p.buf.Pos()
	end := motion.WordSpanEnd(p.buf.Line(pos.Line), pos.Col, p.n(), op != 'c')
	if end <= pos.Col && op != 'c' {
		return
	}
	p.applyOperator(op, Point{Line: pos.Line, Col: end}, exclusive)
}

// operatorMotion resolves the motion key after an operator to a target.
func (p *Processor) operatorMotion(ev key.Event, n int) (Point, motionKind, bool) {
	b := p.buf
	pos := b.Pos()
	last := b.NumLines() - 1

	c, ok := ev.Char()
	if !ok {
		switch ev.Key {
		case key.KeyLeft, key.KeyBackspace:
			c = 'h'
		case key.KeyRight:
			c = 'l'
		case key.KeyUp:
			c = 'k'
		case key.KeyDown:
			c = 'j'
		case key.KeyEnter:
			c = '+'
		case key.KeyHome:
			c = '0'
		case key.KeyEnd:
			c = '$'
		default:
			return pos, exclusive, false
		}
	}

	step := func(m motion.Func, kind motionKind) (Point, motionKind, bool) {
		t, ok := motion.Repeat(m, n)(b, pos)
		return t, kind, ok
	}

	switch c {
	case 'h':
		if pos.Col == 0 {
			return pos, exclusive, false
		}
		return Point{Line: pos.Line, Col: max(pos.Col-n, 0)}, exclusive, true
	case 'l', ' ':
		l := b.LineLen(pos.Line)
		if pos.Col >= l {
			return pos, exclusive, false
		}
		return Point{Line: pos.Line, Col: min(pos.Col+n, l)}, exclusive, true
	case 'j', '+':
		if pos.Line+n > last {
			return pos, linewise, false
		}
		return Point{Line: pos.Line + n}, linewise, true
	case 'k', '-':
		if pos.Line-n < 0 {
			return pos, linewise, false
		}
		return Point{Line: pos.Line - n}, linewise, true
	case '_':
		return Point{Line: min(pos.Line+n-1, last)}, linewise, true
	case 'G':
		line := last
		if raw := p.rawCount(); raw > 0 {
			line = min(raw-1, last)
		}
		return Point{Line: line}, linewise, true
	case 'H':
		return Point{Line: min(b.PageTop()+n-1, b.PageBottom())}, linewise, true
	case 'L':
		return Point{Line: max(b.PageBottom()-n+1, b.PageTop())}, linewise, true
	case '0':
		return Point{Line: pos.Line}, exclusive, true
	case '^':
		return step(motion.FirstNonBlankOf, exclusive)
	case '$':
		line := min(pos.Line+n-1, last)
		return Point{Line: line, Col: max(b.LineLen(line)-1, 0)}, inclusive, true
	case 'w':
		return step(motion.NextWord, exclusive)
	case 'W':
		return step(motion.NextBigWord, exclusive)
	case 'b':
		return step(motion.PrevWord, exclusive)
	case 'B':
		return step(motion.PrevBigWord, exclusive)
	case 'e':
		return step(motion.EndWord, inclusive)
	case 'E':
		return step(motion.EndBigWord, inclusive)
	case '(':
		return step(motion.PrevSentence, exclusive)
	case ')':
		return step(motion.NextSentence, exclusive)
	case '{':
		return step(motion.PrevParagraph, exclusive)
	case '}':
		return step(motion.NextParagraph, exclusive)
	case '%':
		t, ok := motion.MatchPair(b, pos)
		return t, inclusive, ok
	}
	return pos, exclusive, false
}

// applyOperator runs op over the span from the cursor to t.
func (p *Processor) applyOperator(op byte, t Point, kind motionKind) {
	pos := p.buf.Pos()
	if kind == linewise {
		p.lineOperator(op, min(pos.Line, t.Line), max(pos.Line, t.Line))
		return
	}

	a, z := buffer.Order(pos, t)
	if kind == inclusive {
		z.Col++
	}
	reg := p.reg()
	switch op {
	case 'd':
		p.remember()
		p.group(func() {
			p.regs.YankSpan(reg, a, z)
			p.edit.DeleteSpan(a, z)
		})
	case 'c':
		p.startInsert()
		p.regs.YankSpan(reg, a, z)
		p.edit.DeleteSpan(a, z)
	case 'y':
		p.regs.YankSpan(reg, a, z)
		p.buf.MoveTo(a)
	case '<', '>':
		p.lineOperator(op, a.Line, z.Line)
	case '!':
		p.filter(a.Line, z.Line)
	}
}

// lineOperator runs op over the whole lines l1 to l2.
func (p *Processor) lineOperator(op byte, l1, l2 int) {
	b := p.buf
	reg := p.reg()
	count := l2 - l1 + 1
	switch op {
	case 'd':
		p.remember()
		p.group(func() {
			p.regs.YankLines(reg, l1, count)
			p.edit.DeleteLines(l1, count)
			p.ensureLine()
			p.firstNonBlank(min(l1, b.NumLines()-1))
		})
	case 'c':
		p.startInsert()
		p.changeLines(l1, l2)
	case 'y':
		p.regs.YankLines(reg, l1, count)
		if l1 < b.Row() {
			b.MoveTo(Point{Line: l1, Col: b.Col()})
		}
	case '<':
		p.remember()
		p.group(func() {
			p.edit.ShiftLeft(l1, l2)
			p.firstNonBlank(l1)
		})
	case '>':
		p.remember()
		p.group(func() {
			p.edit.ShiftRight(l1, l2)
			p.firstNonBlank(l1)
		})
	case '!':
		p.filter(l1, l2)
	}
}

// changeLines yanks lines l1 to l2 and replaces them with one empty line,
// leaving the cursor on it. Insert mode must already be on.
func (p *Processor) changeLines(l1, l2 int) {
	p.regs.YankLines(p.reg(), l1, l2-l1+1)
	p.edit.DeleteLines(l1+1, l2-l1)
	p.ensureLine()
	_ = p.buf.SetLine(l1, "")
	p.buf.MoveTo(Point{Line: l1})
}

// filter opens the command line with a shell filter over lines l1 to l2.
func (p *Processor) filter(l1, l2 int) {
	p.buf.MoveTo(Point{Line: l1, Col: p.buf.Col()})
	if l2 > l1 {
		p.EnterCmdLine(fmt.Sprintf(":.,.+%d!", l2-l1))
		return
	}
	p.EnterCmdLine(":.!")
}

// findKey completes f, F, t and T, either as a motion or as the target of
// a pending operator.
func (p *Processor) findKey(cmd byte, ev key.Event) {
	c, ok := ev.Char()
	if !ok {
		return
	}
	f := charFind{ch: c, forward: cmd == 'f' || cmd == 't', till: cmd == 't' || cmd == 'T'}
	p.lastFind = f
	t, found := p.findChar(f, p.n(), false)
	if !found {
		return
	}
	if op := p.operator; op != 0 {
		kind := exclusive
		if f.forward {
			kind = inclusive
		}
		p.applyOperator(op, t, kind)
		return
	}
	p.buf.MoveTo(t)
}

// findChar returns the target of a character search on the cursor line.
// When repeating a till search the character next to the cursor is
// skipped, or ; would never move.
func (p *Processor) findChar(f charFind, n int, repeat bool) (Point, bool) {
	b := p.buf
	q := b.Pos()
	s := string(f.ch)
	if repeat && f.till {
		if f.forward {
			q.Col++
		} else {
			q.Col--
		}
	}
	for i := 0; i < n; i++ {
		var ok bool
		if f.forward {
			q, ok = motion.FindNextChar(b, q, s, false)
		} else {
			q, ok = motion.FindPrevChar(b, q, s, false)
		}
		if !ok {
			return Point{}, false
		}
	}
	if f.till {
		if f.forward {
			q.Col--
		} else {
			q.Col++
		}
	}
	return q, true
}
