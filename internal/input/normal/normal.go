package normal

import (
	"strings"

	"github.com/dshills/ctext/internal/engine/buffer"
	"github.com/dshills/ctext/internal/engine/register"
	"github.com/dshills/ctext/internal/input"
	"github.com/dshills/ctext/internal/input/key"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Processor is the non-modal key processor.
type Processor struct {
	*input.Core

	buf *buffer.Buffer
}

// New creates a normal processor over the state in core.
func New(core *input.Core) *Processor {
	return &Processor{Core: core, buf: core.Buffer()}
}

// ProcessKey handles one key press.
func (p *Processor) ProcessKey(ev key.Event) {
	if ev.Modifiers.HasCtrl() || ev.Modifiers.HasAlt() {
		p.controlKey(ev)
		return
	}
	p.normalKey(ev)
}

// ProcessKeys handles each key of seq in turn.
func (p *Processor) ProcessKeys(seq key.Sequence) {
	for _, ev := range seq {
		p.ProcessKey(ev)
	}
}

// ExecCmd runs a line entered on the command line. Only searches are
// supported: "/pattern" forward and "?pattern" backward.
func (p *Processor) ExecCmd(line string) {
	var err error
	switch {
	case strings.HasPrefix(line, "/"):
		err = p.FindNext(line[1:])
	case strings.HasPrefix(line, "?"):
		err = p.FindPrev(line[1:])
	case line == "":
		return
	default:
		p.Errorf("Unsupported command %s", line)
		return
	}
	if err != nil {
		p.Error(err.Error())
	}
}

func (p *Processor) controlKey(ev key.Event) {
	b := p.buf
	sel := p.Selection()
	switch {
	case ev.IsCtrl('a'):
		sel.SelectAll()
	case ev.IsCtrl('c'):
		p.copySelection()
	case ev.IsCtrl('x'):
		if p.copySelection() {
			p.DeleteSelection()
		}
	case ev.IsCtrl('v'):
		p.DeleteSelection()
		if !p.Registers().PasteBefore(register.Unnamed, b.Pos()) {
			p.Error("Nothing to paste")
		}
	case ev.IsCtrl('d'):
		if b.NumLines() > 0 {
			p.ClearSelection()
			b.DeleteLineAt()
		}
	case ev.IsCtrl('f'):
		p.EnterCmdLine("/")
	case ev.IsCtrl('q'):
		p.Quit(false)
	case ev.IsCtrl('s'):
		_ = p.WriteFile()
	case ev.IsCtrl('y'):
		p.RedoLast()
	case ev.IsCtrl('z'):
		p.UndoLast()
	default:
		p.Errorf("Unsupported key %s", ev)
	}
}

// copySelection yanks the selected text into the unnamed register.
func (p *Processor) copySelection() bool {
	sel := p.Selection()
	if !sel.IsSelected() {
		return false
	}
	p.Registers().SetText(register.Unnamed, sel.Text(), false)
	return true
}

func (p *Processor) normalKey(ev key.Event) {
	if c, ok := ev.Char(); ok {
		p.typeChar(c)
		return
	}

	b := p.buf
	sel := p.Selection()
	pos := b.Pos()
	shift := ev.Modifiers.HasShift()

	switch ev.Key {
	case key.KeyEscape:
		p.ClearSelection()
	case key.KeyBackspace:
		switch {
		case sel.Contains(pos):
			p.DeleteSelection()
		case pos.Col > 0:
			b.DeleteCharBefore()
		case pos.Line > 0:
			p.Editor().JoinLine(pos.Line - 1)
		}
	case key.KeyDelete:
		switch {
		case sel.Contains(pos):
			p.DeleteSelection()
		case pos.Col < b.LineLen(pos.Line):
			b.DeleteCharAt()
		default:
			p.Editor().JoinLine(pos.Line)
		}
	case key.KeyEnter:
		p.Editor().SplitLine(pos)
		b.MoveTo(Point{Line: pos.Line + 1})
	case key.KeyLeft:
		switch {
		case pos.Col > 0 && shift:
			sel.ExtendLeft(1)
		case pos.Col > 0:
			b.RMoveTo(0, -1)
		case pos.Line > 0:
			b.MoveTo(Point{Line: pos.Line - 1, Col: b.LineLen(pos.Line - 1)})
		}
	case key.KeyRight:
		switch {
		case pos.Col < b.LineLen(pos.Line) && shift:
			sel.ExtendRight(1)
		case pos.Col < b.LineLen(pos.Line):
			b.RMoveTo(0, 1)
		case pos.Line < b.NumLines()-1:
			b.MoveTo(Point{Line: pos.Line + 1})
		}
	case key.KeyUp:
		if shift {
			sel.ExtendUp(1)
		} else {
			b.RMoveTo(-1, 0)
		}
	case key.KeyDown:
		if shift {
			sel.ExtendDown(1)
		} else {
			b.RMoveTo(1, 0)
		}
	case key.KeyPageDown:
		b.RMoveTo(p.PageLength(), 0)
		b.ScrollTop()
		p.ScrollTop()
	case key.KeyPageUp:
		b.RMoveTo(-p.PageLength(), 0)
		b.ScrollBottom()
		p.ScrollBottom()
	case key.KeyHome:
		b.MoveTo(Point{Line: pos.Line})
		p.ScrollTop()
	case key.KeyEnd:
		b.MoveTo(Point{Line: pos.Line, Col: b.LineLen(pos.Line)})
		p.ScrollBottom()
	case key.KeyInsert:
		p.SetOverwrite(!p.Overwrite())
	case key.KeyTab:
		n := p.TabStop()
		if b.NumLines() == 0 {
			b.InsertLine(0, "")
		}
		p.Editor().AddChars(pos.Line, pos.Col, strings.Repeat(" ", n))
		b.MoveTo(Point{Line: pos.Line, Col: pos.Col + n})
	default:
		p.Errorf("Unsupported key %s", ev)
	}
}

// typeChar types c at the cursor. In overwrite mode it replaces the
// character under the cursor; otherwise a selection is deleted first.
func (p *Processor) typeChar(c byte) {
	b := p.buf
	if p.Overwrite() {
		b.ReplaceChar(c)
	} else {
		p.DeleteSelection()
		b.AddCharBefore(c)
	}
	pos := b.Pos()
	b.MoveTo(Point{Line: pos.Line, Col: pos.Col + 1})
}
