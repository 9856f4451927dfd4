package history

import (
	"fmt"

	"github.com/dshills/ctext/internal/engine/buffer"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Kind identifies the mutation an Entry recorded.
type Kind uint8

const (
	AddLine Kind = iota
	DeleteLine
	ReplaceLine
	AddChar
	DeleteChar
	ReplaceChar
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case AddLine:
		return "AddLine"
	case DeleteLine:
		return "DeleteLine"
	case ReplaceLine:
		return "ReplaceLine"
	case AddChar:
		return "AddChar"
	case DeleteChar:
		return "DeleteChar"
	case ReplaceChar:
		return "ReplaceChar"
	default:
		return "Unknown"
	}
}

// Entry is one recorded mutation. Line entries use Pos.Line only.
type Entry struct {
	Kind    Kind
	Pos     Point
	OldText string
	NewText string
	OldChar byte
	NewChar byte
}

func newLineEntry(kind Kind, line int, oldText, newText string) Entry {
	return Entry{Kind: kind, Pos: Point{Line: line}, OldText: oldText, NewText: newText}
}

func newCharEntry(kind Kind, p Point, oldCh, newCh byte) Entry {
	return Entry{Kind: kind, Pos: p, OldChar: oldCh, NewChar: newCh}
}

// String describes the entry for debug output.
func (e Entry) String() string {
	switch e.Kind {
	case AddLine:
		return fmt.Sprintf("%s %d %q", e.Kind, e.Pos.Line, e.NewText)
	case DeleteLine:
		return fmt.Sprintf("%s %d %q", e.Kind, e.Pos.Line, e.OldText)
	case ReplaceLine:
		return fmt.Sprintf("%s %d %q -> %q", e.Kind, e.Pos.Line, e.OldText, e.NewText)
	case AddChar:
		return fmt.Sprintf("%s %s %q", e.Kind, e.Pos, e.NewChar)
	case DeleteChar:
		return fmt.Sprintf("%s %s %q", e.Kind, e.Pos, e.OldChar)
	default:
		return fmt.Sprintf("%s %s %q -> %q", e.Kind, e.Pos, e.OldChar, e.NewChar)
	}
}

// Undo applies the inverse of the entry to b.
func (e Entry) Undo(b *buffer.Buffer) error {
	var err error
	switch e.Kind {
	case AddLine:
		err = b.DeleteLine(e.Pos.Line)
	case DeleteLine:
		b.InsertLine(e.Pos.Line, e.OldText)
	case ReplaceLine:
		err = b.SetLine(e.Pos.Line, e.OldText)
	case AddChar:
		err = b.DeleteChar(e.Pos)
	case DeleteChar:
		err = b.InsertChar(e.Pos, e.OldChar)
	case ReplaceChar:
		err = b.SetChar(e.Pos, e.OldChar)
	}
	if err != nil {
		return fmt.Errorf("undo %s: %w", e.Kind, err)
	}
	return nil
}

// Redo applies the entry to b again.
func (e Entry) Redo(b *buffer.Buffer) error {
	var err error
	switch e.Kind {
	case AddLine:
		b.InsertLine(e.Pos.Line, e.NewText)
	case DeleteLine:
		err = b.DeleteLine(e.Pos.Line)
	case ReplaceLine:
		err = b.SetLine(e.Pos.Line, e.NewText)
	case AddChar:
		err = b.InsertChar(e.Pos, e.NewChar)
	case DeleteChar:
		err = b.DeleteChar(e.Pos)
	case ReplaceChar:
		err = b.SetChar(e.Pos, e.NewChar)
	}
	if err != nil {
		return fmt.Errorf("redo %s: %w", e.Kind, err)
	}
	return nil
}
