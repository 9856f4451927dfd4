package buffer

// Observer holds the callbacks invoked for buffer notifications.
// Nil fields are skipped. Positions are captured at the time of the
// mutation, before any later edit can shift them.
type Observer struct {
	LineAdded       func(line int, text string)
	LineDeleted     func(line int, text string)
	LineReplaced    func(line int, oldText, newText string)
	CharAdded       func(p Point, ch byte)
	CharDeleted     func(p Point, ch byte)
	CharReplaced    func(p Point, oldCh, newCh byte)
	LinesCleared    func()
	FileOpened      func(name string)
	PositionChanged func(p Point)

	// GroupStarted and GroupEnded bracket a batch of mutations that form
	// one undo unit.
	GroupStarted func()
	GroupEnded   func()
}

// Handle identifies a registered observer.
type Handle uint64

type observerEntry struct {
	handle Handle
	obs    Observer
}

// AddObserver registers callbacks and returns a handle for removal.
func (b *Buffer) AddObserver(obs Observer) Handle {
	b.nextHandle++
	b.observers = append(b.observers, observerEntry{handle: b.nextHandle, obs: obs})
	return b.nextHandle
}

// RemoveObserver unregisters the observer with the given handle.
// Returns false if no such observer exists.
func (b *Buffer) RemoveObserver(h Handle) bool {
	for i, e := range b.observers {
		if e.handle == h {
			b.observers = append(b.observers[:i], b.observers[i+1:]...)
			return true
		}
	}
	return false
}

func (b *Buffer) each(fn func(o *Observer)) {
	// Copy so callbacks may unregister themselves.
	entries := make([]observerEntry, len(b.observers))
	copy(entries, b.observers)
	for i := range entries {
		fn(&entries[i].obs)
	}
}

func (b *Buffer) notifyLineAdded(line int, text string) {
	b.each(func(o *Observer) {
		if o.LineAdded != nil {
			o.LineAdded(line, text)
		}
	})
}

func (b *Buffer) notifyLineDeleted(line int, text string) {
	b.each(func(o *Observer) {
		if o.LineDeleted != nil {
			o.LineDeleted(line, text)
		}
	})
}

func (b *Buffer) notifyLineReplaced(line int, oldText, newText string) {
	b.each(func(o *Observer) {
		if o.LineReplaced != nil {
			o.LineReplaced(line, oldText, newText)
		}
	})
}

func (b *Buffer) notifyCharAdded(p Point, ch byte) {
	b.each(func(o *Observer) {
		if o.CharAdded != nil {
			o.CharAdded(p, ch)
		}
	})
}

func (b *Buffer) notifyCharDeleted(p Point, ch byte) {
	b.each(func(o *Observer) {
		if o.CharDeleted != nil {
			o.CharDeleted(p, ch)
		}
	})
}

func (b *Buffer) notifyCharReplaced(p Point, oldCh, newCh byte) {
	b.each(func(o *Observer) {
		if o.CharReplaced != nil {
			o.CharReplaced(p, oldCh, newCh)
		}
	})
}

func (b *Buffer) notifyLinesCleared() {
	b.each(func(o *Observer) {
		if o.LinesCleared != nil {
			o.LinesCleared()
		}
	})
}

func (b *Buffer) notifyFileOpened(name string) {
	b.each(func(o *Observer) {
		if o.FileOpened != nil {
			o.FileOpened(name)
		}
	})
}

func (b *Buffer) notifyPositionChanged(p Point) {
	b.each(func(o *Observer) {
		if o.PositionChanged != nil {
			o.PositionChanged(p)
		}
	})
}

// StartGroup notifies observers that a batch of mutations begins.
func (b *Buffer) StartGroup() {
	b.each(func(o *Observer) {
		if o.GroupStarted != nil {
			o.GroupStarted()
		}
	})
}

// EndGroup notifies observers that the current batch of mutations ended.
func (b *Buffer) EndGroup() {
	b.each(func(o *Observer) {
		if o.GroupEnded != nil {
			o.GroupEnded()
		}
	})
}
