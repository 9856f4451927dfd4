package history

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/ctext/internal/engine/buffer"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrGroupOpen     = errors.New("undo group already open")
)

const defaultMaxGroups = 1000

// Logger receives debug output. *app.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
}

// Group is one undo unit.
type Group struct {
	ID        uuid.UUID
	Entries   []Entry
	Before    Point
	After     Point
	Timestamp time.Time
}

// Log manages undo/redo state for a buffer.
type Log struct {
	mu sync.Mutex

	buf    *buffer.Buffer
	handle buffer.Handle

	undoStack []*Group
	redoStack []*Group

	// Grouping state
	open     *Group
	absorbed int

	replaying bool

	// Configuration
	maxGroups int
	debug     bool
	logger    Logger
}

// Option configures a Log.
type Option func(*Log)

// WithMaxGroups limits the number of undoable groups.
func WithMaxGroups(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.maxGroups = n
		}
	}
}

// WithDebug logs every recorded and replayed entry to logger.
func WithDebug(enabled bool, logger Logger) Option {
	return func(l *Log) {
		l.debug = enabled
		l.logger = logger
	}
}

// New creates a Log and subscribes it to buf.
func New(buf *buffer.Buffer, opts ...Option) *Log {
	l := &Log{
		buf:       buf,
		maxGroups: defaultMaxGroups,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.handle = buf.AddObserver(l.observer())
	return l
}

// Detach unsubscribes the Log from its buffer.
func (l *Log) Detach() {
	l.buf.RemoveObserver(l.handle)
}

func (l *Log) debugf(msg string, args ...any) {
	if l.debug && l.logger != nil {
		l.logger.Debug(msg, args...)
	}
}

func (l *Log) observer() buffer.Observer {
	return buffer.Observer{
		LineAdded: func(line int, text string) {
			l.record(newLineEntry(AddLine, line, "", text))
		},
		LineDeleted: func(line int, text string) {
			l.record(newLineEntry(DeleteLine, line, text, ""))
		},
		LineReplaced: func(line int, oldText, newText string) {
			l.record(newLineEntry(ReplaceLine, line, oldText, newText))
		},
		CharAdded: func(p Point, ch byte) {
			l.record(newCharEntry(AddChar, p, 0, ch))
		},
		CharDeleted: func(p Point, ch byte) {
			l.record(newCharEntry(DeleteChar, p, ch, 0))
		},
		CharReplaced: func(p Point, oldCh, newCh byte) {
			l.record(newCharEntry(ReplaceChar, p, oldCh, newCh))
		},
		FileOpened: func(string) {
			l.Clear()
		},
		GroupStarted: func() {
			if err := l.StartGroup(); err != nil {
				l.debugf("undo: %v", err)
			}
		},
		GroupEnded: func() {
			l.EndGroup()
		},
	}
}

// record appends e to the open group, or pushes it as a group of its own.
func (l *Log) record(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.replaying {
		return
	}
	l.debugf("undo: record %s", e)

	if l.open != nil {
		l.open.Entries = append(l.open.Entries, e)
		return
	}
	before := l.buf.Pos()
	l.pushLocked(&Group{
		ID:        uuid.New(),
		Entries:   []Entry{e},
		Before:    before,
		After:     e.Pos,
		Timestamp: time.Now(),
	})
}

// pushLocked adds a group without acquiring the lock.
// Clears the redo stack.
func (l *Log) pushLocked(g *Group) {
	l.undoStack = append(l.undoStack, g)
	l.redoStack = nil

	if len(l.undoStack) > l.maxGroups {
		excess := len(l.undoStack) - l.maxGroups
		l.undoStack = l.undoStack[excess:]
	}
}

// StartGroup opens a group. Every mutation until EndGroup joins it.
func (l *Log) StartGroup() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.open != nil {
		l.absorbed++
		return ErrGroupOpen
	}
	l.open = &Group{
		ID:        uuid.New(),
		Before:    l.buf.Pos(),
		Timestamp: time.Now(),
	}
	l.debugf("undo: start group %s", l.open.ID)
	return nil
}

// EndGroup closes the open group. An empty group is discarded.
func (l *Log) EndGroup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.absorbed > 0 {
		l.absorbed--
		return
	}
	g := l.open
	if g == nil {
		return
	}
	l.open = nil
	if len(g.Entries) == 0 {
		return
	}
	g.After = l.buf.Pos()
	l.debugf("undo: end group %s (%d entries)", g.ID, len(g.Entries))
	l.pushLocked(g)
}

// CancelGroup closes the open group and reverts the mutations it recorded.
func (l *Log) CancelGroup() error {
	l.mu.Lock()
	g := l.open
	l.open = nil
	l.absorbed = 0
	if g == nil {
		l.mu.Unlock()
		return nil
	}
	l.replaying = true
	l.mu.Unlock()

	err := l.replayUndo(g)

	l.mu.Lock()
	l.replaying = false
	l.mu.Unlock()
	return err
}

// IsGrouping returns true if a group is open.
func (l *Log) IsGrouping() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.open != nil
}

func (l *Log) replayUndo(g *Group) error {
	for i := len(g.Entries) - 1; i >= 0; i-- {
		l.debugf("undo: replay %s", g.Entries[i])
		if err := g.Entries[i].Undo(l.buf); err != nil {
			return err
		}
	}
	l.buf.MoveTo(g.Before)
	return nil
}

func (l *Log) replayRedo(g *Group) error {
	for _, e := range g.Entries {
		l.debugf("redo: replay %s", e)
		if err := e.Redo(l.buf); err != nil {
			return err
		}
	}
	l.buf.MoveTo(g.After)
	return nil
}

// Undo reverts the most recent group.
// The lock is released during replay so the buffer notifications it
// produces can reach the Log.
func (l *Log) Undo() error {
	l.mu.Lock()
	if len(l.undoStack) == 0 {
		l.mu.Unlock()
		return ErrNothingToUndo
	}

	g := l.undoStack[len(l.undoStack)-1]
	l.undoStack = l.undoStack[:len(l.undoStack)-1]
	l.replaying = true
	l.mu.Unlock()

	err := l.replayUndo(g)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.replaying = false
	if err != nil {
		l.undoStack = append(l.undoStack, g)
		return err
	}
	l.redoStack = append(l.redoStack, g)
	return nil
}

// Redo replays the most recently undone group.
func (l *Log) Redo() error {
	l.mu.Lock()
	if len(l.redoStack) == 0 {
		l.mu.Unlock()
		return ErrNothingToRedo
	}

	g := l.redoStack[len(l.redoStack)-1]
	l.redoStack = l.redoStack[:len(l.redoStack)-1]
	l.replaying = true
	l.mu.Unlock()

	err := l.replayRedo(g)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.replaying = false
	if err != nil {
		l.redoStack = append(l.redoStack, g)
		return err
	}
	l.undoStack = append(l.undoStack, g)
	return nil
}

// CanUndo returns true if undo is available.
func (l *Log) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (l *Log) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.redoStack) > 0
}

// UndoCount returns the number of undoable groups.
func (l *Log) UndoCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undoStack)
}

// RedoCount returns the number of redoable groups.
func (l *Log) RedoCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.redoStack)
}

// PeekUndo returns the next group Undo would revert.
func (l *Log) PeekUndo() (Group, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.undoStack) == 0 {
		return Group{}, false
	}
	return *l.undoStack[len(l.undoStack)-1], true
}

// Clear removes all undo/redo history.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.undoStack = nil
	l.redoStack = nil
	l.open = nil
	l.absorbed = 0
}

// SetMaxGroups changes the maximum number of undoable groups.
// If the current stack is larger, oldest groups are removed.
func (l *Log) SetMaxGroups(n int) {
	if n <= 0 {
		n = defaultMaxGroups
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.maxGroups = n
	if len(l.undoStack) > n {
		l.undoStack = l.undoStack[len(l.undoStack)-n:]
	}
}

// MaxGroups returns the maximum number of undoable groups.
func (l *Log) MaxGroups() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.maxGroups
}
