package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kokizzu/kakoune/internal/input/key"
)

// TranslateKey converts a tcell key event into the input core's key
// type. ok is false for events the dispatch core has no use for.
func TranslateKey(ev *tcell.EventKey) (k key.Event, ok bool) {
	mods := translateMods(ev.Modifiers())

	switch tk := ev.Key(); {
	case tk == tcell.KeyRune:
		return key.Event{Code: key.CodeRune, Rune: ev.Rune(), Mods: mods}, true

	case tk == tcell.KeyEscape:
		return key.Event{Code: key.CodeEscape, Mods: mods}, true
	case tk == tcell.KeyEnter:
		return key.Event{Code: key.CodeEnter, Mods: mods}, true
	case tk == tcell.KeyTab:
		return key.Event{Code: key.CodeTab, Mods: mods}, true
	case tk == tcell.KeyBackspace || tk == tcell.KeyBackspace2:
		return key.Event{Code: key.CodeBackspace, Mods: mods}, true
	case tk == tcell.KeyDelete:
		return key.Event{Code: key.CodeDelete, Mods: mods}, true
	case tk == tcell.KeyHome:
		return key.Event{Code: key.CodeHome, Mods: mods}, true
	case tk == tcell.KeyEnd:
		return key.Event{Code: key.CodeEnd, Mods: mods}, true
	case tk == tcell.KeyPgUp:
		return key.Event{Code: key.CodePageUp, Mods: mods}, true
	case tk == tcell.KeyPgDn:
		return key.Event{Code: key.CodePageDown, Mods: mods}, true
	case tk == tcell.KeyUp:
		return key.Event{Code: key.CodeUp, Mods: mods}, true
	case tk == tcell.KeyDown:
		return key.Event{Code: key.CodeDown, Mods: mods}, true
	case tk == tcell.KeyLeft:
		return key.Event{Code: key.CodeLeft, Mods: mods}, true
	case tk == tcell.KeyRight:
		return key.Event{Code: key.CodeRight, Mods: mods}, true

	case tk >= tcell.KeyF1 && tk <= tcell.KeyF12:
		return key.Event{Code: key.CodeF1 + key.Code(tk-tcell.KeyF1), Mods: mods}, true

	case tk >= tcell.KeyCtrlA && tk <= tcell.KeyCtrlZ:
		// tcell folds ctrl-letter chords into dedicated key values.
		// Enter, tab and backspace alias into this range and were
		// matched above.
		r := rune('a' + tk - tcell.KeyCtrlA)
		return key.Event{Code: key.CodeRune, Rune: r, Mods: mods.With(key.ModCtrl)}, true
	}
	return key.Event{}, false
}

func translateMods(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	return mods
}
