package app

import (
	"errors"
	"io"
	"io/fs"
	"slices"
	"strconv"

	"github.com/dshills/ctext/internal/config"
	"github.com/dshills/ctext/internal/ed"
	"github.com/dshills/ctext/internal/ed/prim"
	"github.com/dshills/ctext/internal/engine/buffer"
	"github.com/dshills/ctext/internal/engine/history"
	"github.com/dshills/ctext/internal/engine/mark"
	"github.com/dshills/ctext/internal/engine/register"
	"github.com/dshills/ctext/internal/input"
	"github.com/dshills/ctext/internal/input/key"
	"github.com/dshills/ctext/internal/input/macro"
	"github.com/dshills/ctext/internal/input/normal"
	"github.com/dshills/ctext/internal/input/vim"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Processor is a key processor as seen by the host.
type Processor interface {
	ProcessKey(ev key.Event)
	ProcessKeys(seq key.Sequence)
	ExecCmd(line string)
}

// Options configures a Session.
type Options struct {
	// Config supplies the settings. Defaults to config.Default().
	Config *config.Config

	// Logger receives session logs. Defaults to a disabled logger.
	Logger *Logger

	// Out receives lines printed by ed commands.
	Out io.Writer

	// Notifier carries the host callbacks. Quit is only called once the
	// session has agreed to quit.
	Notifier input.Notifier
}

// Session is one buffer with its undo log, marks, registers, ed
// interpreter and key processor, wired together.
type Session struct {
	cfg    *config.Config
	logger *Logger

	buf     *buffer.Buffer
	undo    *history.Log
	marks   *mark.Registry
	regs    *register.Store
	core    *input.Core
	ed      *ed.Ed
	prims   *prim.Table
	proc    Processor
	vi      *vim.Processor
	macros  *macro.Recorder
	history *CmdHistory

	hostQuit  func(force bool)
	hostError func(msg string)

	dirty    bool
	quit     bool
	lastErr  string
	errCount int
}

// NewSession builds a session on an empty buffer.
func NewSession(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = NewLogger(LoggerConfig{Output: io.Discard})
		logger.Disable()
	}

	s := &Session{
		cfg:       cfg,
		logger:    logger,
		buf:       buffer.NewBuffer(),
		macros:    macro.NewRecorder(),
		history:   NewCmdHistory(defaultHistorySize),
		hostQuit:  opts.Notifier.Quit,
		hostError: opts.Notifier.Error,
	}
	s.undo = history.New(s.buf,
		history.WithMaxGroups(cfg.MaxUndo),
		history.WithDebug(cfg.UndoDebug, logger.WithComponent("history")),
	)
	s.marks = mark.NewRegistry(s.buf)
	s.buf.AddObserver(s.marks.Observer())
	s.regs = register.NewStore(s.buf)
	s.buf.AddObserver(s.observer())

	n := opts.Notifier
	n.Quit = s.requestQuit
	n.Error = s.reportError
	s.core = input.NewCore(s.buf, input.Deps{
		Undo:      s.undo,
		Registers: s.regs,
		Marks:     s.marks,
		Notifier:  n,
		TabStop:   cfg.TabStop,
		Logger:    logger.WithComponent("input"),
	})
	s.ed = ed.New(s.buf, ed.Deps{
		Editor:       s.core.Editor(),
		Marks:        s.marks,
		Registers:    s.regs,
		Undo:         s.undo,
		Out:          opts.Out,
		OnError:      s.core.Error,
		OnQuit:       s.requestQuit,
		Shell:        cfg.Shell,
		ShellTimeout: cfg.ShellTimeout.Std(),
		Logger:       logger.WithComponent("ed"),
	})

	s.prims = prim.New(s.buf)

	switch cfg.Mode {
	case input.KindNormal:
		s.proc = normal.New(s.core)
	default:
		s.vi = vim.New(s.core, s.ed, vim.WithRecorder(s.macros))
		s.proc = s.vi
	}
	s.buf.MoveTo(Point{})
	s.Apply(cfg)
	logger.Debug("session started with %s key processor", cfg.Mode)
	return s
}

func (s *Session) observer() buffer.Observer {
	touch := func() { s.dirty = true }
	return buffer.Observer{
		LineAdded:    func(int, string) { touch() },
		LineDeleted:  func(int, string) { touch() },
		LineReplaced: func(int, string, string) { touch() },
		CharAdded:    func(Point, byte) { touch() },
		CharDeleted:  func(Point, byte) { touch() },
		CharReplaced: func(Point, byte, byte) { touch() },
		LinesCleared: touch,
		FileOpened:   func(string) { s.dirty = false },
	}
}

// Apply adopts the editing settings of cfg. Shell settings only apply to
// new sessions.
func (s *Session) Apply(cfg *config.Config) {
	s.cfg = cfg
	s.logger.SetLevel(ParseLogLevel(cfg.LogLevel))
	if s.vi != nil {
		opts := [][2]string{
			{"tabstop", strconv.Itoa(cfg.TabStop)},
			{"shiftwidth", strconv.Itoa(cfg.ShiftWidth)},
			{"ignorecase", strconv.FormatBool(cfg.IgnoreCase)},
			{"number", strconv.FormatBool(cfg.Number)},
		}
		for _, o := range opts {
			if err := s.vi.SetOption(o[0], o[1]); err != nil {
				s.logger.Warn("config: %v", err)
			}
		}
		return
	}
	s.core.SetTabStop(cfg.TabStop)
	s.core.Editor().SetShiftWidth(cfg.ShiftWidth)
	s.core.SetCaseSensitive(!cfg.IgnoreCase)
	s.ed.SetCaseSensitive(!cfg.IgnoreCase)
	s.core.SetNumber(cfg.Number)
}

// Open loads path into the buffer. A missing file starts an empty buffer
// that will be written to path.
func (s *Session) Open(path string) error {
	err := s.buf.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.buf.SetFileName(path)
		s.logger.Info("new file %s", path)
		return nil
	}
	if err != nil {
		return &OperationError{Op: "open", Target: path, Err: err}
	}
	s.ed.SetPos(Point{Line: s.buf.NumLines() - 1})
	s.buf.MoveTo(Point{})
	s.logger.Info("opened %s (%d lines)", path, s.buf.NumLines())
	return nil
}

// ExecEd runs one ed command line outside ex mode, as the ed program
// would, and restores the previous mode afterwards.
func (s *Session) ExecEd(line string) error {
	ex := s.ed.Ex()
	s.ed.SetEx(false)
	defer s.ed.SetEx(ex)
	return s.ed.Exec(line)
}

// RunScript runs an ed script file line by line.
func (s *Session) RunScript(path string) error {
	ex := s.ed.Ex()
	s.ed.SetEx(false)
	defer s.ed.SetEx(ex)
	return s.ed.ExecFile(path)
}

// ExecPrim runs one primitive buffer command such as "m 3 0" or "l text".
// It reports whether the command was known and succeeded.
func (s *Session) ExecPrim(line string) bool {
	ok := s.prims.Exec(line)
	if !ok {
		s.logger.Debug("primitive failed: %q", line)
	}
	return ok
}

// Keys feeds a key string such as "dw<Esc>" to the key processor.
func (s *Session) Keys(keys string) error {
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return err
	}
	s.proc.ProcessKeys(seq)
	return nil
}

// ProcessKey feeds one key to the key processor.
func (s *Session) ProcessKey(ev key.Event) {
	s.proc.ProcessKey(ev)
}

// ExecCmd runs a command line entered by the user, prefix included, and
// remembers it.
func (s *Session) ExecCmd(line string) {
	s.history.Add(line)
	s.proc.ExecCmd(line)
}

// ModeName is the mode shown on the status line.
func (s *Session) ModeName() string {
	var name string
	switch {
	case s.vi != nil && s.vi.Mode() != vim.ModeCommand:
		name = s.vi.Mode().String()
	case s.vi == nil && s.core.Overwrite():
		name = "OVERWRITE"
	}
	if s.macros.Recording() {
		if name != "" {
			name += " "
		}
		name += "recording @" + string(s.macros.Register())
	}
	return name
}

// Modified reports whether the buffer differs from its file.
func (s *Session) Modified() bool {
	if !s.dirty {
		return false
	}
	name := s.buf.FileName()
	if name == "" {
		return s.buf.NumLines() > 0
	}
	lines, _, err := buffer.ReadLines(name)
	if err != nil {
		return true
	}
	return !slices.Equal(lines, s.buf.Lines())
}

func (s *Session) requestQuit(force bool) {
	if !force && s.Modified() {
		s.core.Error(ErrUnsavedChanges.Error())
		return
	}
	s.quit = true
	s.logger.Debug("quit (force=%t)", force)
	if s.hostQuit != nil {
		s.hostQuit(force)
	}
}

func (s *Session) reportError(msg string) {
	s.lastErr = msg
	s.errCount++
	if s.hostError != nil {
		s.hostError(msg)
	}
}

// Quitting reports whether a quit was accepted.
func (s *Session) Quitting() bool { return s.quit }

// LastError returns the most recent error message and the number of
// errors reported so far.
func (s *Session) LastError() (string, int) { return s.lastErr, s.errCount }

// Buffer returns the edited buffer.
func (s *Session) Buffer() *buffer.Buffer { return s.buf }

// Core returns the state shared by the key processors.
func (s *Session) Core() *input.Core { return s.core }

// Ed returns the ed interpreter.
func (s *Session) Ed() *ed.Ed { return s.ed }

// Processor returns the key processor.
func (s *Session) Processor() Processor { return s.proc }

// Macros returns the vi macro registers.
func (s *Session) Macros() *macro.Recorder { return s.macros }

// History returns the command-line history.
func (s *Session) History() *CmdHistory { return s.history }

// Config returns the settings in effect.
func (s *Session) Config() *config.Config { return s.cfg }

// Logger returns the session logger.
func (s *Session) Logger() *Logger { return s.logger }
