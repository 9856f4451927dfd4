package history

// GroupScope provides a convenient way to group edits using defer.
// Usage:
//
//	func doComplexEdit(l *Log) {
//	    defer l.GroupScope().End()
//	    // ... multiple edits ...
//	}
type GroupScope struct {
	log    *Log
	active bool
}

// GroupScope opens a group and returns its scope. If a group is already
// open the edits join it.
func (l *Log) GroupScope() *GroupScope {
	_ = l.StartGroup()
	return &GroupScope{log: l, active: true}
}

// End closes the group scope.
// Safe to call multiple times; only the first call has effect.
func (g *GroupScope) End() {
	if g.active {
		g.log.EndGroup()
		g.active = false
	}
}

// Transaction runs fn inside a group. If fn returns an error the mutations
// it made are reverted and the error is returned. Inside an already open
// group fn simply joins it and nothing is reverted.
func (l *Log) Transaction(fn func() error) error {
	if err := l.StartGroup(); err != nil {
		err = fn()
		l.EndGroup()
		return err
	}
	if err := fn(); err != nil {
		if cerr := l.CancelGroup(); cerr != nil {
			return cerr
		}
		return err
	}
	l.EndGroup()
	return nil
}
