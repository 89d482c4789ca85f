package input

import (
	"errors"

	"github.com/kokizzu/kakoune/internal/editor"
	"github.com/kokizzu/kakoune/internal/input/key"
)

// InsertFlavor selects how insert mode positions the cursors before
// text entry begins.
type InsertFlavor uint8

const (
	// FlavorInsert types before each cursor.
	FlavorInsert InsertFlavor = iota
	// FlavorAppend types after each cursor.
	FlavorAppend
	// FlavorReplace erases the selections first.
	FlavorReplace
	// FlavorInsertAtLineBegin types at the start of each line.
	FlavorInsertAtLineBegin
	// FlavorAppendAtLineEnd types at the end of each line.
	FlavorAppendAtLineEnd
	// FlavorOpenLineBelow opens a new line under each cursor.
	FlavorOpenLineBelow
	// FlavorOpenLineAbove opens a new line above each cursor.
	FlavorOpenLineAbove
)

// String returns the flavor name.
func (f InsertFlavor) String() string {
	switch f {
	case FlavorAppend:
		return "append"
	case FlavorReplace:
		return "replace"
	case FlavorInsertAtLineBegin:
		return "insert-at-line-begin"
	case FlavorAppendAtLineEnd:
		return "append-at-line-end"
	case FlavorOpenLineBelow:
		return "open-line-below"
	case FlavorOpenLineAbove:
		return "open-line-above"
	default:
		return "insert"
	}
}

// insertion is the frozen record of the last insert session, the input
// to insert repetition. suppress is set while a repeat is in flight so
// the replayed session does not overwrite its own source.
type insertion struct {
	flavor       InsertFlavor
	count        int
	keys         []key.Event
	suppress     editor.NestedBool
	disableHooks bool
}

// Insert enters insert mode with the given flavor. The flavor's cursor
// placement is applied immediately; subsequent keys type text until
// escape leaves the mode. Starting an insert session resets the
// last-insert record unless a repeat is replaying.
func (h *Handler) Insert(flavor InsertFlavor, count int) {
	if count < 1 {
		count = 1
	}
	if !h.lastInsert.suppress.Get() {
		h.lastInsert.flavor = flavor
		h.lastInsert.count = count
		h.lastInsert.keys = nil
		h.lastInsert.disableHooks = h.ctx.HooksDisabled().Get()
	}
	h.pushMode(newInsertMode(h, flavor, count))
}

// RepeatLastInsert replays the frozen insert session: same flavor,
// same count, same keys, ending with a synthesized escape. It fails
// when no session has been recorded or insert mode is already active.
func (h *Handler) RepeatLastInsert() error {
	if len(h.lastInsert.keys) == 0 {
		return errors.New("no previous insert session")
	}
	if _, ok := h.currentMode().(*insertMode); ok {
		return errors.New("insert mode is already active")
	}

	keys := make([]key.Event, len(h.lastInsert.keys))
	copy(keys, h.lastInsert.keys)

	defer h.lastInsert.suppress.Set()()
	if h.lastInsert.disableHooks {
		defer h.ctx.HooksDisabled().Set()()
	}

	h.Insert(h.lastInsert.flavor, h.lastInsert.count)
	for _, k := range keys {
		if err := h.HandleKey(k, true); err != nil {
			return err
		}
	}
	if _, ok := h.currentMode().(*insertMode); ok {
		return h.HandleKey(key.Escape(), true)
	}
	return nil
}

// Paste inserts external content directly into the buffer. It bypasses
// key dispatch entirely, so pasted text never lands in macro
// recordings or the last-insert record.
func (h *Handler) Paste(content string) {
	if content == "" {
		return
	}
	h.ctx.InsertTextAtCursors(content)
}

type insertMode struct {
	handler *Handler
	flavor  InsertFlavor
	count   int
}

func newInsertMode(h *Handler, flavor InsertFlavor, count int) *insertMode {
	m := &insertMode{handler: h, flavor: flavor, count: count}
	m.applyFlavor()
	return m
}

// applyFlavor positions the cursors according to the flavor, once, on
// entry.
func (m *insertMode) applyFlavor() {
	ctx := m.handler.ctx
	switch m.flavor {
	case FlavorAppend:
		ctx.MoveCursors(0, 1)
	case FlavorReplace:
		ctx.EraseSelections()
	case FlavorInsertAtLineBegin:
		ctx.MoveCursorsLineBegin()
	case FlavorAppendAtLineEnd:
		ctx.MoveCursorsLineEnd()
	case FlavorOpenLineBelow:
		ctx.OpenLineBelowCursors()
	case FlavorOpenLineAbove:
		ctx.OpenLineAboveCursors()
	default:
		ctx.Selections().CollapseTo()
	}
}

func (m *insertMode) name() string { return "insert" }

func (m *insertMode) handleKey(k key.Event) error {
	h := m.handler

	// Keys that reach the buffer are also captured in the last-insert
	// record, escape excluded: the terminator is synthesized again on
	// repeat.
	record := func() {
		if !h.lastInsert.suppress.Get() {
			h.lastInsert.keys = append(h.lastInsert.keys, k)
		}
	}

	switch {
	case k.IsEscape():
		h.popMode(m)
	case k.IsEnter():
		record()
		h.ctx.BreakAtCursors()
	case k.IsBackspace():
		record()
		h.ctx.DeleteBackAtCursors()
	case k == key.Special(key.CodeDelete):
		record()
		h.ctx.DeleteForwardAtCursors()
	case k == key.Special(key.CodeTab):
		record()
		h.ctx.InsertRuneAtCursors('\t')
	case k == key.Special(key.CodeLeft):
		record()
		h.ctx.MoveCursors(0, -1)
	case k == key.Special(key.CodeRight):
		record()
		h.ctx.MoveCursors(0, 1)
	case k == key.Special(key.CodeUp):
		record()
		h.ctx.MoveCursors(-1, 0)
	case k == key.Special(key.CodeDown):
		record()
		h.ctx.MoveCursors(1, 0)
	case k.IsChar():
		record()
		h.ctx.InsertRuneAtCursors(k.Rune)
	default:
		// Unhandled chords are dropped and stay out of the record.
		h.logger.Debugf("ignored key %s in insert mode", k)
	}
	return nil
}

func (m *insertMode) onEnabled()  {}
func (m *insertMode) onDisabled() {}

func (m *insertMode) modeLine() editor.StatusLine {
	return editor.StatusLine{Text: "insert", Face: editor.FacePrompt}
}

func (m *insertMode) cursorInfo() (CursorMode, editor.Coord) {
	return CursorBuffer, m.handler.ctx.Selections().Main().Cursor
}
