package vim

import (
	"fmt"
	"strconv"

	"github.com/dshills/ctext/internal/ed"
	"github.com/dshills/ctext/internal/engine/buffer"
	"github.com/dshills/ctext/internal/engine/cursor"
	"github.com/dshills/ctext/internal/engine/edit"
	"github.com/dshills/ctext/internal/engine/mark"
	"github.com/dshills/ctext/internal/engine/register"
	"github.com/dshills/ctext/internal/input"
	"github.com/dshills/ctext/internal/input/key"
	"github.com/dshills/ctext/internal/input/macro"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Mode is the processor state shown to the user.
type Mode uint8

const (
	ModeCommand Mode = iota
	ModeInsert
	ModeVisual
	ModeVisualLine
	ModeVisualBlock
)

// String returns the mode name as vi shows it.
func (m Mode) String() string {
	switch m {
	case ModeCommand:
		return "COMMAND"
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	case ModeVisualLine:
		return "VISUAL LINE"
	case ModeVisualBlock:
		return "VISUAL BLOCK"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// pendingKeys are the commands that wait for another key.
const pendingKeys = "cdfFgmrtTyzZ`\"'<>[]!q@"

// charFind is an f, F, t or T search, kept for ; and ,.
type charFind struct {
	ch      byte
	forward bool
	till    bool
}

// Option configures a Processor.
type Option func(*Processor)

// WithRecorder keeps macros in r, so the host can persist them.
func WithRecorder(r *macro.Recorder) Option {
	return func(p *Processor) {
		p.recorder = r
	}
}

// Processor is the vi key processor.
type Processor struct {
	*input.Core

	buf   *buffer.Buffer
	edit  *edit.Editor
	sel   *cursor.Selection
	regs  *register.Store
	marks *mark.Registry
	ed    *ed.Ed

	count    CountState
	opCount  CountState
	pending  byte
	operator byte
	register byte
	prefixed bool
	keys     key.Sequence

	insert bool
	visual Mode
	anchor Point

	lastFind      charFind
	searchForward bool

	last      key.Sequence
	recording bool
	replaying bool

	options  *Options
	recorder *macro.Recorder
	player   *macro.Player
}

// New creates a vi processor over the state in core. Ex commands go to
// interp, which is switched to ex mode.
func New(core *input.Core, interp *ed.Ed, opts ...Option) *Processor {
	p := &Processor{
		Core:          core,
		buf:           core.Buffer(),
		edit:          core.Editor(),
		sel:           core.Selection(),
		regs:          core.Registers(),
		marks:         core.Marks(),
		ed:            interp,
		visual:        ModeCommand,
		searchForward: true,
		options:       NewOptions(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.recorder == nil {
		p.recorder = macro.NewRecorder()
	}
	p.player = macro.NewPlayer(p.recorder)
	interp.SetEx(true)

	p.options.Set("ignorecase", "0")
	p.options.Set("number", "0")
	p.options.Set("shiftwidth", strconv.Itoa(p.edit.ShiftWidth()))
	p.options.Set("tabstop", strconv.Itoa(core.TabStop()))
	return p
}

// Mode returns the current mode.
func (p *Processor) Mode() Mode {
	if p.insert {
		return ModeInsert
	}
	return p.visual
}

// Pending returns the keys of the command being typed, in vi notation.
func (p *Processor) Pending() string {
	return p.keys.String()
}

// LastChange returns the key sequence that "." replays.
func (p *Processor) LastChange() key.Sequence {
	return p.last.Clone()
}

// Options returns the :set option values.
func (p *Processor) Options() *Options {
	return p.options
}

// Recorder returns the macro registers.
func (p *Processor) Recorder() *macro.Recorder {
	return p.recorder
}

// ProcessKey handles one key press.
func (p *Processor) ProcessKey(ev key.Event) {
	record := p.recorder.Recording() && !p.player.Playing()
	p.handle(ev)
	// The q that ends a recording is not part of it.
	if record && p.recorder.Recording() {
		p.recorder.Record(ev)
	}
}

// ProcessKeys handles each key of seq in turn.
func (p *Processor) ProcessKeys(seq key.Sequence) {
	for _, ev := range seq {
		p.ProcessKey(ev)
	}
}

func (p *Processor) handle(ev key.Event) {
	if p.insert {
		p.insertKey(ev)
		return
	}
	p.keys = append(p.keys, ev)

	// A register prefix holds the command state open until the next
	// command resolves.
	prefix := false
	switch {
	case ev.Is(key.KeyEscape) && (p.pending != 0 || p.prefixed || p.count.Active):
		p.pending = 0
		p.prefixed = false
	case p.pending != 0:
		prefix = p.pending == '"'
		p.pendingKey(ev)
		prefix = prefix && p.prefixed
	case p.countDigit(ev):
		return
	case ev.Modifiers.HasCtrl() || ev.Modifiers.HasAlt():
		p.controlKey(ev)
	case p.visual != ModeCommand && p.visualKey(ev):
	default:
		p.commandKey(ev)
	}
	if p.pending == 0 && !prefix {
		p.done()
	}
}

func (p *Processor) countDigit(ev key.Event) bool {
	c, ok := ev.Char()
	return ok && p.count.AccumulateDigit(rune(c))
}

// done clears the state of a finished command.
func (p *Processor) done() {
	p.count.Reset()
	p.opCount.Reset()
	p.pending = 0
	p.operator = 0
	p.register = 0
	p.prefixed = false
	p.keys = nil
	if p.insert {
		return
	}
	p.clampCursor()
	if p.visual != ModeCommand {
		p.updateVisual()
	}
}

// n returns the effective count of the command being run.
func (p *Processor) n() int {
	return CombineCounts(p.count.Value, p.opCount.Value)
}

// rawCount returns the typed count, or 0 if none.
func (p *Processor) rawCount() int {
	if p.count.Value == 0 && p.opCount.Value == 0 {
		return 0
	}
	return p.n()
}

// reg returns the register named for the command.
func (p *Processor) reg() byte {
	if p.register == 0 {
		return register.Unnamed
	}
	return p.register
}

// remember records the command being run as the one "." replays.
func (p *Processor) remember() {
	if !p.replaying {
		p.last = p.keys.Clone()
	}
}

// clampCursor keeps the cursor on a character outside insert mode.
func (p *Processor) clampCursor() {
	pos := p.buf.Pos()
	if n := p.buf.LineLen(pos.Line); n > 0 && pos.Col >= n {
		p.buf.MoveTo(Point{Line: pos.Line, Col: n - 1})
	}
}

// group runs fn as one undo group.
func (p *Processor) group(fn func()) {
	p.buf.StartGroup()
	defer p.buf.EndGroup()
	fn()
}

// ensureLine keeps at least one line in the buffer.
func (p *Processor) ensureLine() {
	if p.buf.NumLines() == 0 {
		p.buf.InsertLine(0, "")
	}
}

// firstNonBlank moves to the first non-blank of line.
func (p *Processor) firstNonBlank(line int) {
	p.buf.MoveTo(Point{Line: line})
	p.edit.MoveToFirstNonBlank()
}

// repeat replays the last change, with count replacing its own count.
func (p *Processor) repeat(count int) {
	if len(p.last) == 0 {
		return
	}
	seq := withCount(p.last, count)
	p.done()
	p.replaying = true
	defer func() { p.replaying = false }()
	for _, ev := range seq {
		p.handle(ev)
	}
}

// withCount replaces the leading count of seq with count, if count > 0.
func withCount(seq key.Sequence, count int) key.Sequence {
	seq = seq.Clone()
	if count <= 0 {
		return seq
	}
	i := 0
	for i < len(seq) {
		c, ok := seq[i].Char()
		if !ok || c < '0' || c > '9' || (i == 0 && c == '0') {
			break
		}
		i++
	}
	var out key.Sequence
	for _, r := range strconv.Itoa(count) {
		out = append(out, key.Rune(r))
	}
	return append(out, seq[i:]...)
}

// startRecording begins a macro into register c.
func (p *Processor) startRecording(c byte) {
	if err := p.recorder.Start(rune(c)); err != nil {
		p.Error(err.Error())
		return
	}
	p.Status("recording @" + string(c))
}

func (p *Processor) stopRecording() {
	name := p.recorder.Register()
	seq := p.recorder.Stop()
	p.Status(fmt.Sprintf("recorded @%c, %d keys", name, len(seq)))
}

// playMacro replays register c count times.
func (p *Processor) playMacro(c byte, count int) {
	p.done()
	if err := p.player.Play(rune(c), count, p.handle); err != nil {
		p.Error(err.Error())
	}
}
