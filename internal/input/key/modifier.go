package key

import "strings"

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key. Only meaningful on control
	// keys; for character keys Shift is part of the rune itself.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key.
	ModAlt
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// String returns the notation prefix for the modifiers, e.g. "c-a-".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var b strings.Builder
	if m.Has(ModCtrl) {
		b.WriteString("c-")
	}
	if m.Has(ModAlt) {
		b.WriteString("a-")
	}
	if m.Has(ModShift) {
		b.WriteString("s-")
	}
	return b.String()
}
