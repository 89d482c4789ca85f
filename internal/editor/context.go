package editor

import (
	"github.com/google/uuid"

	"github.com/kokizzu/kakoune/internal/input/key"
)

// InputHandler is the slice of the input dispatch core reachable
// through the context back-reference. Collaborators use it to feed
// synthetic keys or to bail out to normal mode.
type InputHandler interface {
	HandleKey(k key.Event, synthesized bool) error
	ResetNormalMode()
	IsRecording() bool
}

// Context bundles the state passed by reference into every input
// callback: the buffer and selections being edited, register storage,
// the display client, and a back-reference to the input handler.
type Context struct {
	buffer     *Buffer
	selections *SelectionList
	registers  *Registers
	client     Client
	handler    InputHandler

	hooksDisabled   NestedBool
	historyDisabled NestedBool

	sessionID string
	name      string
}

// NewContext creates a context for one editing client. The selection
// list is set for the life of the context.
func NewContext(buf *Buffer, sels *SelectionList) *Context {
	if buf == nil {
		buf = NewBuffer("")
	}
	if sels == nil {
		sels = NewSelectionList()
	}
	return &Context{
		buffer:     buf,
		selections: sels,
		registers:  NewRegisters(),
		sessionID:  uuid.NewString(),
	}
}

// Buffer returns the buffer being edited.
func (c *Context) Buffer() *Buffer { return c.buffer }

// Selections returns the active selections.
func (c *Context) Selections() *SelectionList { return c.selections }

// Registers returns the register storage.
func (c *Context) Registers() *Registers { return c.registers }

// Client returns the attached display client, or nil.
func (c *Context) Client() Client { return c.client }

// SetClient attaches a display client.
func (c *Context) SetClient(cl Client) { c.client = cl }

// InputHandler returns the handler back-reference.
func (c *Context) InputHandler() InputHandler { return c.handler }

// SetInputHandler installs the handler back-reference. Called once by
// the handler's constructor.
func (c *Context) SetInputHandler(h InputHandler) { c.handler = h }

// HooksDisabled is the nested flag suppressing editing hooks.
func (c *Context) HooksDisabled() *NestedBool { return &c.hooksDisabled }

// HistoryDisabled is the nested flag suppressing prompt history.
func (c *Context) HistoryDisabled() *NestedBool { return &c.historyDisabled }

// SessionID identifies this editing client.
func (c *Context) SessionID() string { return c.sessionID }

// Name returns the context name shown in diagnostics.
func (c *Context) Name() string { return c.name }

// SetName sets the context name.
func (c *Context) SetName(name string) { c.name = name }

// Echo displays a status message when a client is attached.
func (c *Context) Echo(text string, face Face) {
	if c.client != nil {
		c.client.Echo(StatusLine{Text: text, Face: face})
	}
}

// The cursor mutation operations below are the contract the input core
// edits through. Selections are applied last-in-document first so that
// earlier coordinates stay valid, then collapsed onto their cursors.

// InsertRuneAtCursors inserts r before every selection cursor.
func (c *Context) InsertRuneAtCursors(r rune) {
	for _, i := range c.selections.indicesByCursorDesc() {
		cur := c.buffer.InsertRune(c.selections.Get(i).Cursor, r)
		c.selections.Set(i, At(cur))
	}
}

// InsertTextAtCursors inserts literal text before every selection
// cursor; the text may contain newlines.
func (c *Context) InsertTextAtCursors(text string) {
	for _, i := range c.selections.indicesByCursorDesc() {
		cur := c.buffer.InsertText(c.selections.Get(i).Cursor, text)
		c.selections.Set(i, At(cur))
	}
}

// BreakAtCursors splits the line at every selection cursor.
func (c *Context) BreakAtCursors() {
	for _, i := range c.selections.indicesByCursorDesc() {
		cur := c.buffer.Break(c.selections.Get(i).Cursor)
		c.selections.Set(i, At(cur))
	}
}

// DeleteBackAtCursors removes the rune before every selection cursor.
func (c *Context) DeleteBackAtCursors() {
	for _, i := range c.selections.indicesByCursorDesc() {
		cur := c.buffer.DeleteBack(c.selections.Get(i).Cursor)
		c.selections.Set(i, At(cur))
	}
}

// DeleteForwardAtCursors removes the rune at every selection cursor.
func (c *Context) DeleteForwardAtCursors() {
	for _, i := range c.selections.indicesByCursorDesc() {
		c.buffer.DeleteForward(c.selections.Get(i).Cursor)
		c.selections.Set(i, At(c.buffer.Clamp(c.selections.Get(i).Cursor)))
	}
}

// ReplaceRuneAtCursors overwrites the rune under every selection cursor.
func (c *Context) ReplaceRuneAtCursors(r rune) {
	for _, i := range c.selections.indicesByCursorDesc() {
		c.buffer.ReplaceRune(c.selections.Get(i).Cursor, r)
	}
}

// EraseSelections deletes the selected ranges and collapses each
// selection to its start.
func (c *Context) EraseSelections() {
	for _, i := range c.selections.indicesByCursorDesc() {
		sel := c.selections.Get(i)
		c.buffer.DeleteRange(sel.Min(), sel.Max())
		c.selections.Set(i, At(c.buffer.Clamp(sel.Min())))
	}
}

// MoveCursorsLineBegin places every selection cursor at column zero.
func (c *Context) MoveCursorsLineBegin() {
	for i := 0; i < c.selections.Len(); i++ {
		cur := c.selections.Get(i).Cursor
		c.selections.Set(i, At(Coord{Line: cur.Line}))
	}
}

// MoveCursorsLineEnd places every selection cursor past the last
// character of its line.
func (c *Context) MoveCursorsLineEnd() {
	for i := 0; i < c.selections.Len(); i++ {
		cur := c.selections.Get(i).Cursor
		c.selections.Set(i, At(Coord{Line: cur.Line, Col: c.buffer.LineLen(cur.Line)}))
	}
}

// OpenLineBelowCursors inserts an empty line under every selection
// cursor and moves the cursor onto it.
func (c *Context) OpenLineBelowCursors() {
	for _, i := range c.selections.indicesByCursorDesc() {
		cur := c.buffer.InsertLine(c.selections.Get(i).Cursor.Line + 1)
		c.selections.Set(i, At(cur))
	}
}

// OpenLineAboveCursors inserts an empty line above every selection
// cursor and moves the cursor onto it.
func (c *Context) OpenLineAboveCursors() {
	for _, i := range c.selections.indicesByCursorDesc() {
		cur := c.buffer.InsertLine(c.selections.Get(i).Cursor.Line)
		c.selections.Set(i, At(cur))
	}
}

// MoveCursors shifts every selection cursor by the given line and
// column deltas, clamped to the buffer.
func (c *Context) MoveCursors(dLine, dCol int) {
	for i := 0; i < c.selections.Len(); i++ {
		cur := c.selections.Get(i).Cursor
		cur.Line += dLine
		cur.Col += dCol
		c.selections.Set(i, At(c.buffer.Clamp(cur)))
	}
}
