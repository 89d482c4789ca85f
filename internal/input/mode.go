package input

import (
	"github.com/kokizzu/kakoune/internal/editor"
	"github.com/kokizzu/kakoune/internal/input/key"
)

// inputMode is a keystroke-interpretation strategy active while on the
// mode stack. Modes are concrete types in this package; dispatch is a
// single method call on the stack top.
type inputMode interface {
	// name identifies the mode in mode lines and logs.
	name() string

	// handleKey interprets one key. It may push or pop modes and
	// dispatch further keys recursively before returning.
	handleKey(k key.Event) error

	// onEnabled fires when the mode becomes the stack top, both on
	// push and when a mode above it is popped.
	onEnabled()

	// onDisabled fires when the mode stops being the stack top.
	onDisabled()

	// modeLine is the mode's contribution to the status display.
	modeLine() editor.StatusLine

	// cursorInfo reports where the cursor belongs while this mode is
	// active.
	cursorInfo() (CursorMode, editor.Coord)
}

// CursorMode tells the rendering layer which area owns the cursor.
type CursorMode uint8

const (
	// CursorBuffer places the cursor in the text area.
	CursorBuffer CursorMode = iota
	// CursorPrompt places the cursor on the prompt line.
	CursorPrompt
)

// String returns the cursor mode name.
func (c CursorMode) String() string {
	if c == CursorPrompt {
		return "prompt"
	}
	return "buffer"
}

// NormalParams are the repeat parameters a normal-mode command runs
// with: the accumulated count and the selected register.
type NormalParams struct {
	Count    int
	Register rune
}

// EffectiveCount returns the count with the usual default of one.
func (p NormalParams) EffectiveCount() int {
	if p.Count < 1 {
		return 1
	}
	return p.Count
}

// ModeInfo is a read-only snapshot for rendering: the mode line and,
// for normal mode, the pending repeat parameters.
type ModeInfo struct {
	Display editor.StatusLine
	Normal  *NormalParams
}

// KeymapMode selects which keymap scope a mode resolves keys in. The
// input core carries it; keymap resolution itself lives with the
// normal-command layer.
type KeymapMode uint8

const (
	KeymapNormal KeymapMode = iota
	KeymapInsert
	KeymapPrompt
	KeymapGoto
	KeymapView
	KeymapUser
	KeymapObject
)

// String returns the keymap scope name.
func (m KeymapMode) String() string {
	switch m {
	case KeymapInsert:
		return "insert"
	case KeymapPrompt:
		return "prompt"
	case KeymapGoto:
		return "goto"
	case KeymapView:
		return "view"
	case KeymapUser:
		return "user"
	case KeymapObject:
		return "object"
	default:
		return "normal"
	}
}
