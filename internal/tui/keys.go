package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/ctext/internal/input/key"
)

// convertKey converts a tcell key event to a key.Event. ok is false for
// keys the processors have no use for.
func convertKey(ev *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	switch k {
	case tcell.KeyRune:
		r := ev.Rune()
		if mods.HasCtrl() {
			e := key.Ctrl(r)
			e.Modifiers = e.Modifiers.With(mods.Without(key.ModShift))
			return e, true
		}
		return key.Event{Key: key.KeyRune, Rune: r, Modifiers: mods.Without(key.ModShift)}, true
	case tcell.KeyEscape:
		return key.Special(key.KeyEscape, 0), true
	case tcell.KeyEnter:
		return key.Special(key.KeyEnter, 0), true
	case tcell.KeyTab:
		return key.Special(key.KeyTab, 0), true
	case tcell.KeyBacktab:
		return key.Special(key.KeyTab, key.ModShift), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.Special(key.KeyBackspace, 0), true
	case tcell.KeyDelete:
		return key.Special(key.KeyDelete, mods), true
	case tcell.KeyInsert:
		return key.Special(key.KeyInsert, mods), true
	case tcell.KeyHome:
		return key.Special(key.KeyHome, mods), true
	case tcell.KeyEnd:
		return key.Special(key.KeyEnd, mods), true
	case tcell.KeyPgUp:
		return key.Special(key.KeyPageUp, mods), true
	case tcell.KeyPgDn:
		return key.Special(key.KeyPageDown, mods), true
	case tcell.KeyUp:
		return key.Special(key.KeyUp, mods), true
	case tcell.KeyDown:
		return key.Special(key.KeyDown, mods), true
	case tcell.KeyLeft:
		return key.Special(key.KeyLeft, mods), true
	case tcell.KeyRight:
		return key.Special(key.KeyRight, mods), true
	}

	switch {
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return key.Ctrl(rune('a' + k - tcell.KeyCtrlA)), true
	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		return key.Special(key.KeyF1+key.Key(k-tcell.KeyF1), mods), true
	}
	return key.Event{}, false
}

// convertMod converts a tcell modifier mask. Meta counts as Alt.
func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mods = mods.With(key.ModAlt)
	}
	return mods
}
