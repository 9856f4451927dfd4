package macro

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/dshills/ctext/internal/input/key"
)

// Player errors.
var (
	ErrEmptyRegister = errors.New("empty register")
	ErrPlaying       = errors.New("already playing a macro")
	ErrNoLastMacro   = errors.New("no previously used register")
)

// Handler processes one replayed key.
type Handler func(e key.Event)

// Player replays recorded macros through a handler.
type Player struct {
	recorder *Recorder
	playing  atomic.Bool
}

// NewPlayer creates a player over the registers of recorder.
func NewPlayer(recorder *Recorder) *Player {
	return &Player{recorder: recorder}
}

// Play feeds the macro in register to handler count times. Register '@'
// replays the last played register. A macro may not play another macro,
// since the handler runs synchronously and would recurse.
func (p *Player) Play(register rune, count int, handler Handler) error {
	if register == '@' {
		register = p.recorder.LastPlayed()
		if register == 0 {
			return ErrNoLastMacro
		}
	}
	name := NormalizeRegister(register)
	if name == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, register)
	}
	seq := p.recorder.Get(name)
	if len(seq) == 0 {
		return fmt.Errorf("%w: %c", ErrEmptyRegister, name)
	}
	if !p.playing.CompareAndSwap(false, true) {
		return ErrPlaying
	}
	defer p.playing.Store(false)

	p.recorder.SetLastPlayed(name)
	for i, n := 0, max(count, 1); i < n; i++ {
		for _, e := range seq {
			handler(e)
		}
	}
	return nil
}

// Playing reports whether a macro is being replayed.
func (p *Player) Playing() bool {
	return p.playing.Load()
}
