package macro

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dshills/ctext/internal/input/key"
)

// Recorder errors.
var (
	ErrInvalidRegister = errors.New("invalid register")
	ErrRecording       = errors.New("already recording")
)

// Recorder captures key sequences into registers.
type Recorder struct {
	mu         sync.Mutex
	recording  bool
	register   rune
	appending  bool
	events     key.Sequence
	registers  map[rune]key.Sequence
	lastPlayed rune
}

// NewRecorder creates a recorder with empty registers.
func NewRecorder() *Recorder {
	return &Recorder{registers: make(map[rune]key.Sequence)}
}

// Start begins recording into register. An uppercase register appends to
// its lowercase form when recording stops.
func (r *Recorder) Start(register rune) error {
	name := NormalizeRegister(register)
	if name == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, register)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return fmt.Errorf("%w @%c", ErrRecording, r.register)
	}
	r.recording = true
	r.register = name
	r.appending = IsAppendRegister(register)
	r.events = nil
	return nil
}

// Stop ends the recording and stores it. It returns the stored sequence,
// or nil if nothing was being recorded.
func (r *Recorder) Stop() key.Sequence {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return nil
	}
	r.recording = false
	seq := r.events
	if r.appending {
		seq = append(r.registers[r.register].Clone(), seq...)
	}
	r.registers[r.register] = seq
	r.events = nil
	return seq.Clone()
}

// Recording reports whether a recording is in progress.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Register returns the register being recorded, or 0.
func (r *Recorder) Register() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return 0
	}
	return r.register
}

// Record appends e to the recording in progress.
func (r *Recorder) Record(e key.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		r.events = append(r.events, e)
	}
}

// Get returns a copy of the sequence in register.
func (r *Recorder) Get(register rune) key.Sequence {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registers[NormalizeRegister(register)].Clone()
}

// Set replaces the sequence in register. An empty sequence clears it.
func (r *Recorder) Set(register rune, seq key.Sequence) error {
	name := NormalizeRegister(register)
	if name == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, register)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(seq) == 0 {
		delete(r.registers, name)
		return nil
	}
	r.registers[name] = seq.Clone()
	return nil
}

// Registers returns the names of the non-empty registers, sorted.
func (r *Recorder) Registers() []rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]rune, 0, len(r.registers))
	for name, seq := range r.registers {
		if len(seq) > 0 {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// SetLastPlayed records register as the target of "@@".
func (r *Recorder) SetLastPlayed(register rune) {
	r.mu.Lock()
	r.lastPlayed = register
	r.mu.Unlock()
}

// LastPlayed returns the register last played, or 0.
func (r *Recorder) LastPlayed() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastPlayed
}
