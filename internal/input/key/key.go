package key

import "strconv"

// Code identifies a keyboard key.
// Character keys use CodeRune with the Rune field of Event set.
type Code uint16

const (
	// CodeNone represents no key.
	CodeNone Code = iota

	// CodeRune is a literal character key.
	CodeRune

	// Control keys
	CodeEscape
	CodeEnter
	CodeTab
	CodeBackspace
	CodeDelete
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown

	// Arrow keys
	CodeUp
	CodeDown
	CodeLeft
	CodeRight

	// Function keys
	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12
)

// IsFunction returns true for F1-F12.
func (c Code) IsFunction() bool {
	return c >= CodeF1 && c <= CodeF12
}

// IsControl returns true for every key that is not a literal character.
func (c Code) IsControl() bool {
	return c != CodeRune && c != CodeNone
}

// String returns the canonical name used in key notation.
func (c Code) String() string {
	switch c {
	case CodeRune:
		return "rune"
	case CodeEscape:
		return "esc"
	case CodeEnter:
		return "ret"
	case CodeTab:
		return "tab"
	case CodeBackspace:
		return "backspace"
	case CodeDelete:
		return "del"
	case CodeHome:
		return "home"
	case CodeEnd:
		return "end"
	case CodePageUp:
		return "pageup"
	case CodePageDown:
		return "pagedown"
	case CodeUp:
		return "up"
	case CodeDown:
		return "down"
	case CodeLeft:
		return "left"
	case CodeRight:
		return "right"
	case CodeF1, CodeF2, CodeF3, CodeF4, CodeF5, CodeF6,
		CodeF7, CodeF8, CodeF9, CodeF10, CodeF11, CodeF12:
		return "F" + strconv.Itoa(int(c-CodeF1)+1)
	default:
		return "none"
	}
}
