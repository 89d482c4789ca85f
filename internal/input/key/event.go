package key

import "unicode"

// Event represents a single keystroke. Events are plain values and
// compare with ==, which is what the mode dispatch and the macro
// machinery rely on.
type Event struct {
	// Code identifies the key pressed.
	Code Code

	// Rune is the character for CodeRune events.
	Rune rune

	// Mods contains the active modifier keys.
	Mods Modifier
}

// FromRune creates an event for a literal character.
func FromRune(r rune) Event {
	return Event{Code: CodeRune, Rune: r}
}

// Ctrl creates an event for a control chord, e.g. Ctrl('u') for <c-u>.
func Ctrl(r rune) Event {
	return Event{Code: CodeRune, Rune: r, Mods: ModCtrl}
}

// Alt creates an event for an alt chord.
func Alt(r rune) Event {
	return Event{Code: CodeRune, Rune: r, Mods: ModAlt}
}

// Special creates an event for a control key.
func Special(c Code) Event {
	return Event{Code: c}
}

// Escape is the unmodified escape key.
func Escape() Event { return Event{Code: CodeEscape} }

// Enter is the unmodified enter key.
func Enter() Event { return Event{Code: CodeEnter} }

// Backspace is the unmodified backspace key.
func Backspace() Event { return Event{Code: CodeBackspace} }

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Code == CodeRune && e.Rune != 0
}

// IsChar returns true for an unmodified printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && e.Mods == ModNone && unicode.IsPrint(e.Rune)
}

// IsControl returns true for control/function keys or modified chords.
func (e Event) IsControl() bool {
	return e.Code.IsControl() || e.Mods != ModNone
}

// IsEscape returns true for the unmodified escape key.
func (e Event) IsEscape() bool {
	return e.Code == CodeEscape && e.Mods == ModNone
}

// IsEnter returns true for the unmodified enter key.
func (e Event) IsEnter() bool {
	return e.Code == CodeEnter && e.Mods == ModNone
}

// IsBackspace returns true for the unmodified backspace key.
func (e Event) IsBackspace() bool {
	return e.Code == CodeBackspace && e.Mods == ModNone
}

// String returns the event in key notation: "a", "<esc>", "<c-u>".
func (e Event) String() string {
	if e.IsChar() {
		if e.Rune == ' ' {
			return "<space>"
		}
		if e.Rune == '<' {
			return "<lt>"
		}
		return string(e.Rune)
	}

	var name string
	if e.Code == CodeRune {
		name = string(e.Rune)
	} else {
		name = e.Code.String()
	}
	return "<" + e.Mods.String() + name + ">"
}
