// Package mark implements named position bookmarks.
//
// Marks are keyed by a single character name; the empty name holds the
// position before the last jump. Unsetting a mark keeps its key and stores
// the NoPoint sentinel, so a mark that was once set stays listed.
package mark

import (
	"errors"
	"sort"

	"github.com/samber/mo"

	"github.com/dshills/ctext/internal/engine/buffer"
)

// ErrNotSet is returned when a mark has no position.
var ErrNotSet = errors.New("mark not set")

// Return is the name of the previous-position mark.
const Return = ""

// Registry holds the marks of one buffer.
type Registry struct {
	buf   *buffer.Buffer
	marks map[string]buffer.Point
}

// NewRegistry creates a registry for buf.
func NewRegistry(buf *buffer.Buffer) *Registry {
	return &Registry{buf: buf, marks: make(map[string]buffer.Point)}
}

// Set records p under name.
func (r *Registry) Set(name string, p buffer.Point) {
	r.marks[name] = p
}

// SetHere records the cursor position under name.
func (r *Registry) SetHere(name string) {
	r.marks[name] = r.buf.Pos()
}

// Get returns the position of name, if set.
func (r *Registry) Get(name string) mo.Option[buffer.Point] {
	p, ok := r.marks[name]
	if !ok || !p.IsSet() {
		return mo.None[buffer.Point]()
	}
	return mo.Some(p)
}

// Lookup is Get in error form.
func (r *Registry) Lookup(name string) (buffer.Point, error) {
	p, ok := r.Get(name).Get()
	if !ok {
		return buffer.NoPoint, ErrNotSet
	}
	return p, nil
}

// Unset clears name, keeping its key.
func (r *Registry) Unset(name string) {
	r.marks[name] = buffer.NoPoint
}

// ClearLineMarks unsets every mark on line.
func (r *Registry) ClearLineMarks(line int) {
	for name, p := range r.marks {
		if p.Line == line {
			r.marks[name] = buffer.NoPoint
		}
	}
}

// MarkReturn records the cursor as the previous-position mark.
func (r *Registry) MarkReturn() {
	r.SetHere(Return)
}

// Names returns every known mark name, set or not, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.marks))
	for name := range r.marks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Observer returns buffer callbacks that keep the registry consistent
// with line deletions.
func (r *Registry) Observer() buffer.Observer {
	return buffer.Observer{
		LineDeleted: func(line int, _ string) {
			r.ClearLineMarks(line)
		},
		FileOpened: func(string) {
			r.marks = make(map[string]buffer.Point)
		},
	}
}
