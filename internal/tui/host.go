// Package tui is the interactive terminal host for a session. It draws the
// buffer page, a status line and a command line with tcell, and feeds key
// presses to the session's key processor.
package tui

import (
	"context"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/ctext/internal/app"
	"github.com/dshills/ctext/internal/config"
	"github.com/dshills/ctext/internal/input"
	"github.com/dshills/ctext/internal/input/key"
)

// Options configures a Host.
type Options struct {
	Config *config.Config
	Logger *app.Logger

	// Watcher, when set, delivers edited config files. Each reload is
	// applied to the session.
	Watcher *config.Watcher
}

// cmdLine is the state of the bottom command line.
type cmdLine struct {
	active bool
	prefix string
	text   []rune

	// history browsing
	browsing bool
	typed    string
}

func (c *cmdLine) String() string {
	return c.prefix + string(c.text)
}

// Host runs a session on a tcell screen.
type Host struct {
	screen  tcell.Screen
	session *app.Session
	logger  *app.Logger
	watcher *config.Watcher

	cmd     cmdLine
	msg     string
	msgErr  bool
	overlay []string
	number  bool
}

// New creates a host drawing to screen. The screen must already be
// initialized.
func New(screen tcell.Screen, opts Options) *Host {
	h := &Host{
		screen:  screen,
		logger:  opts.Logger,
		watcher: opts.Watcher,
	}
	if opts.Config != nil {
		h.number = opts.Config.Number
	}
	h.session = app.NewSession(app.Options{
		Config:   opts.Config,
		Logger:   h.logger,
		Out:      &overlayWriter{h: h},
		Notifier: h.notifier(),
	})
	h.logger = h.session.Logger()
	return h
}

func (h *Host) notifier() input.Notifier {
	return input.Notifier{
		EnterCmdLine: h.enterCmdLine,
		Overlay: func(msg string) {
			h.overlay = append(h.overlay, strings.Split(strings.TrimRight(msg, "\n"), "\n")...)
		},
		Status: func(msg string) {
			h.msg, h.msgErr = msg, false
		},
		Error: func(msg string) {
			h.msg, h.msgErr = msg, true
			_ = h.screen.Beep()
		},
		Number: func(on bool) {
			h.number = on
		},
	}
}

// overlayWriter collects ed output for the overlay.
type overlayWriter struct {
	h *Host
}

func (w *overlayWriter) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")
	w.h.overlay = append(w.h.overlay, strings.Split(text, "\n")...)
	return len(p), nil
}

// Session returns the hosted session.
func (h *Host) Session() *app.Session {
	return h.session
}

// Run draws and handles events until the session quits or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	var changes <-chan *config.Config
	var errs <-chan error
	if h.watcher != nil {
		changes = h.watcher.Changes()
		errs = h.watcher.Errors()
	}

	h.Draw()
	for !h.session.Quitting() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			h.HandleEvent(ev)
		case cfg := <-changes:
			h.session.Apply(cfg)
			h.number = cfg.Number
			h.msg, h.msgErr = "config reloaded", false
			h.logger.Info("config reloaded")
		case err := <-errs:
			h.msg, h.msgErr = err.Error(), true
			h.logger.Warn("config reload: %v", err)
		}
		h.Draw()
	}
	return nil
}

// HandleEvent processes one terminal event.
func (h *Host) HandleEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
	case *tcell.EventKey:
		ke, ok := convertKey(e)
		if !ok {
			return
		}
		if h.overlay != nil {
			h.overlay = nil
			if !h.cmd.active {
				return
			}
		}
		if h.cmd.active {
			h.cmdKey(ke)
			return
		}
		h.msg = ""
		h.session.ProcessKey(ke)
	}
}

func (h *Host) enterCmdLine(prefix string) {
	h.cmd = cmdLine{active: true}
	// A prefix such as ":'<,'>" carries a range after the command char.
	h.cmd.prefix = prefix[:1]
	h.cmd.text = []rune(prefix[1:])
	h.msg = ""
}

func (h *Host) cmdKey(ev key.Event) {
	c := &h.cmd
	switch {
	case ev.Is(key.KeyEscape), ev.IsCtrl('c'):
		h.cmd = cmdLine{}
		h.session.History().Reset()
	case ev.Is(key.KeyEnter):
		line := c.String()
		h.cmd = cmdLine{}
		h.session.ExecCmd(line)
	case ev.Is(key.KeyBackspace):
		if len(c.text) == 0 {
			h.cmd = cmdLine{}
			return
		}
		c.text = c.text[:len(c.text)-1]
		c.browsing = false
	case ev.IsCtrl('u'):
		c.text = nil
		c.browsing = false
	case ev.Is(key.KeyUp):
		if !c.browsing {
			c.browsing = true
			c.typed = c.String()
		}
		if line, ok := h.session.History().Prev(c.typed); ok {
			c.text = []rune(line[len(c.prefix):])
		}
	case ev.Is(key.KeyDown):
		if !c.browsing {
			return
		}
		line, ok := h.session.History().Next(c.typed)
		if !ok {
			line = c.typed
			c.browsing = false
		}
		c.text = []rune(line[len(c.prefix):])
	case ev.IsRune() && !ev.Modifiers.HasCtrl():
		c.text = append(c.text, ev.Rune)
		c.browsing = false
	}
}
