package vim

import (
	"strings"

	"github.com/dshills/ctext/internal/input/key"
)

// startInsert enters insert mode for the command being run. The keys
// typed until Escape are appended to the command so "." replays them.
func (p *Processor) startInsert() {
	p.setInsert(true)
	if !p.replaying {
		p.last = p.keys.Clone()
		p.recording = true
	}
}

// setInsert switches insert mode. The whole insert session is one undo
// group.
func (p *Processor) setInsert(on bool) {
	if p.insert == on {
		return
	}
	p.SetOverwrite(false)
	p.insert = on
	if on {
		p.exitVisual()
		p.buf.StartGroup()
		return
	}
	p.buf.EndGroup()
}

// insertKey runs a key typed in insert mode.
func (p *Processor) insertKey(ev key.Event) {
	if p.recording && !p.replaying {
		p.last = append(p.last, ev)
	}
	b := p.buf
	pos := b.Pos()

	switch {
	case ev.Is(key.KeyEscape):
		p.recording = false
		b.RMoveTo(0, -1)
		p.clampCursor()
		p.setInsert(false)
	case ev.Is(key.KeyEnter):
		p.ensureLine()
		p.edit.SplitLine(pos)
		b.MoveTo(Point{Line: pos.Line + 1})
	case ev.Is(key.KeyBackspace), ev.IsCtrl('h'):
		if pos.Col > 0 {
			b.DeleteCharBefore()
		} else if pos.Line > 0 {
			p.edit.JoinLine(pos.Line - 1)
		}
	case ev.Is(key.KeyDelete):
		if pos.Col < b.LineLen(pos.Line) {
			b.DeleteCharAt()
		} else {
			p.edit.JoinLine(pos.Line)
		}
	case ev.Is(key.KeyLeft):
		b.RMoveTo(0, -1)
	case ev.Is(key.KeyRight):
		b.RMoveTo(0, 1)
	case ev.Is(key.KeyUp):
		b.RMoveTo(-1, 0)
	case ev.Is(key.KeyDown):
		b.RMoveTo(1, 0)
	case ev.Is(key.KeyHome):
		b.MoveTo(Point{Line: pos.Line})
	case ev.Is(key.KeyEnd):
		b.MoveTo(Point{Line: pos.Line, Col: b.LineLen(pos.Line)})
	case ev.Is(key.KeyTab):
		p.ensureLine()
		n := p.TabStop()
		p.edit.AddChars(pos.Line, pos.Col, strings.Repeat(" ", n))
		b.MoveTo(Point{Line: pos.Line, Col: pos.Col + n})
	case ev.Is(key.KeyInsert):
		p.SetOverwrite(!p.Overwrite())
	default:
		c, ok := ev.Char()
		if !ok {
			p.Errorf("Unsupported key %s", ev)
			return
		}
		p.typeChar(c)
	}
}

// typeChar inserts c at the cursor, or replaces the character under it in
// overwrite mode, and moves past it.
func (p *Processor) typeChar(c byte) {
	b := p.buf
	p.ensureLine()
	pos := b.Pos()
	if p.Overwrite() && pos.Col < b.LineLen(pos.Line) {
		b.ReplaceChar(c)
	} else {
		b.AddCharBefore(c)
	}
	b.MoveTo(Point{Line: pos.Line, Col: pos.Col + 1})
}
