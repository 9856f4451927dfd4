package vim

import (
	"github.com/dshills/ctext/internal/engine/buffer"
	"github.com/dshills/ctext/internal/engine/cursor"
	"github.com/dshills/ctext/internal/input/key"
)

// toggleVisual enters visual mode m, anchored at the cursor. Typing the
// same mode again leaves it; another visual mode switches shape.
func (p *Processor) toggleVisual(m Mode) {
	switch p.visual {
	case m:
		p.exitVisual()
		return
	case ModeCommand:
		p.anchor = p.buf.Pos()
	}
	p.visual = m
	p.updateVisual()
}

func (p *Processor) exitVisual() {
	if p.visual == ModeCommand {
		return
	}
	p.visual = ModeCommand
	p.sel.Clear()
}

// updateVisual shows the span between the anchor and the cursor as the
// selection.
func (p *Processor) updateVisual() {
	pos := p.buf.Pos()
	switch p.visual {
	case ModeVisualBlock:
		p.sel.SetMode(cursor.ModeRect)
		p.sel.SetRange(p.anchor, pos)
	case ModeVisualLine:
		a, z := buffer.Order(p.anchor, pos)
		p.sel.SetMode(cursor.ModeRange)
		p.sel.SetRange(Point{Line: a.Line}, Point{Line: z.Line, Col: max(p.buf.LineLen(z.Line)-1, 0)})
	default:
		p.sel.SetMode(cursor.ModeRange)
		p.sel.SetRange(p.anchor, pos)
	}
}

// visualRange returns the visual span with an exclusive end. In line mode
// the span covers whole lines.
func (p *Processor) visualRange() (Point, Point) {
	a, z := buffer.Order(p.anchor, p.buf.Pos())
	if p.visual == ModeVisualLine {
		return Point{Line: a.Line}, Point{Line: z.Line, Col: p.buf.LineLen(z.Line)}
	}
	z.Col = min(z.Col+1, p.buf.LineLen(z.Line))
	return a, z
}

// blockCols returns the column range of a block selection, end exclusive.
func (p *Processor) blockCols() (int, int) {
	c1, c2 := p.anchor.Col, p.buf.Col()
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	return c1, c2 + 1
}

// visualKey runs an operator on the visual span. It returns false for keys
// that are not visual operators, which then run as commands and move the
// cursor.
func (p *Processor) visualKey(ev key.Event) bool {
	if ev.Is(key.KeyEscape) {
		p.exitVisual()
		return true
	}
	c, ok := ev.Char()
	if !ok {
		return false
	}

	b := p.buf
	reg := p.reg()
	a, z := p.visualRange()
	lines := p.visual == ModeVisualLine
	block := p.visual == ModeVisualBlock

	switch c {
	case 'd', 'x', 'X', 'D':
		p.group(func() { p.visualDelete(reg, a, z, lines || c == 'X' || c == 'D', block) })
		p.exitVisual()
	case 'y', 'Y':
		p.visualYank(reg, a, z, lines || c == 'Y', block)
		switch {
		case block:
			c1, _ := p.blockCols()
			b.MoveTo(Point{Line: a.Line, Col: c1})
		case lines || c == 'Y':
			b.MoveTo(Point{Line: a.Line, Col: b.Col()})
		default:
			b.MoveTo(a)
		}
		p.exitVisual()
	case 'c', 's':
		if lines {
			p.startInsert()
			p.changeLines(a.Line, z.Line)
			break
		}
		p.visualYank(reg, a, z, false, block)
		c1, c2 := p.blockCols()
		p.startInsert()
		p.visualRemove(a, z, false, block, c1, c2)
		// The span depends on the selection, so there is nothing for . to repeat.
		p.recording = false
		p.last = nil
	case '<':
		p.group(func() {
			p.edit.ShiftLeft(a.Line, z.Line)
			p.firstNonBlank(a.Line)
		})
		p.exitVisual()
	case '>':
		p.group(func() {
			p.edit.ShiftRight(a.Line, z.Line)
			p.firstNonBlank(a.Line)
		})
		p.exitVisual()
	case '~':
		p.group(func() {
			p.visualSwapCase(a, z, block)
			b.MoveTo(a)
		})
		p.exitVisual()
	case 'J':
		p.group(func() {
			for i, n := 0, max(z.Line-a.Line, 1); i < n; i++ {
				if !p.edit.JoinLine(a.Line) {
					break
				}
			}
		})
		p.exitVisual()
	case 'o':
		pos := b.Pos()
		b.MoveTo(p.anchor)
		p.anchor = pos
	case ':':
		p.marks.Set("<", a)
		p.marks.Set(">", Point{Line: z.Line, Col: max(z.Col-1, 0)})
		p.exitVisual()
		p.EnterCmdLine(":'<,'>")
	default:
		return false
	}
	return true
}

func (p *Processor) visualYank(reg byte, a, z Point, lines, block bool) {
	switch {
	case block:
		p.regs.SetText(reg, p.sel.Text(), false)
	case lines:
		p.regs.YankLines(reg, a.Line, z.Line-a.Line+1)
	default:
		p.regs.YankSpan(reg, a, z)
	}
}

// visualDelete yanks the visual span into reg and removes it.
func (p *Processor) visualDelete(reg byte, a, z Point, lines, block bool) {
	p.visualYank(reg, a, z, lines, block)
	c1, c2 := p.blockCols()
	p.visualRemove(a, z, lines, block, c1, c2)
}

// visualRemove deletes the span a to z, or columns c1 to c2 of each line
// in block mode.
func (p *Processor) visualRemove(a, z Point, lines, block bool, c1, c2 int) {
	switch {
	case block:
		for l := a.Line; l <= z.Line; l++ {
			if n := min(c2, p.buf.LineLen(l)) - c1; n > 0 {
				p.edit.DeleteChars(l, c1, n)
			}
		}
		p.buf.MoveTo(Point{Line: a.Line, Col: c1})
	case lines:
		p.edit.DeleteLines(a.Line, z.Line-a.Line+1)
		p.ensureLine()
		p.firstNonBlank(min(a.Line, p.buf.NumLines()-1))
	default:
		p.edit.DeleteSpan(a, z)
		p.buf.MoveTo(a)
	}
}

func (p *Processor) visualSwapCase(a, z Point, block bool) {
	c1, c2 := 0, 0
	if block {
		c1, c2 = p.blockCols()
	}
	for l := a.Line; l <= z.Line; l++ {
		from, to := 0, p.buf.LineLen(l)
		switch {
		case block:
			from, to = c1, min(c2, to)
		case l == a.Line && l == z.Line:
			from, to = a.Col, z.Col
		case l == a.Line:
			from = a.Col
		case l == z.Line:
			to = z.Col
		}
		for col := from; col < to; col++ {
			p.edit.SwapChar(Point{Line: l, Col: col})
		}
	}
}
