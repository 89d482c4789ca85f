package input

import (
	"github.com/kokizzu/kakoune/internal/editor"
	"github.com/kokizzu/kakoune/internal/input/key"
	"github.com/kokizzu/kakoune/internal/sched"
)

// KeyCallback consumes the single key an on-next-key mode captures.
type KeyCallback func(k key.Event, ctx *editor.Context) error

// IdleCallback fires once if the captured key does not arrive before
// the idle timeout. Typically it shows a hint box.
type IdleCallback func(ctx *editor.Context)

// OnNextKey pushes a one-shot mode that hands the next key, whatever
// it is, to cb and pops itself first. idle, when non-nil, fires after
// the idle timeout unless a key arrives or the mode is removed; its
// registration dies with the mode.
func (h *Handler) OnNextKey(name string, keymapMode KeymapMode, cb KeyCallback, idle IdleCallback) {
	h.pushMode(&onNextKeyMode{
		handler:      h,
		modeName:     name,
		keymapMode:   keymapMode,
		callback:     cb,
		idleCallback: idle,
	})
}

// OnNextKeyWithAutoInfo is OnNextKey with a hint box wired to the
// on-key auto-info category: shown from the idle callback, hidden
// before the captured key is handled.
func (h *Handler) OnNextKeyWithAutoInfo(name string, keymapMode KeymapMode,
	cb KeyCallback, title, content string) {
	h.OnNextKey(name, keymapMode,
		func(k key.Event, ctx *editor.Context) error {
			HideAutoInfoIfn(ctx, ShouldShowInfo(AutoInfoOnKey, h.autoInfo, ctx))
			if cb == nil {
				return nil
			}
			return cb(k, ctx)
		},
		func(ctx *editor.Context) {
			ShowAutoInfoIfn(title, content, AutoInfoOnKey, h.autoInfo, ctx)
		})
}

type onNextKeyMode struct {
	handler      *Handler
	modeName     string
	keymapMode   KeymapMode
	callback     KeyCallback
	idleCallback IdleCallback
	idleTok      *sched.Token
}

func (m *onNextKeyMode) name() string { return m.modeName }

func (m *onNextKeyMode) handleKey(k key.Event) error {
	h := m.handler
	// Pop first: the callback runs with the previous mode active and
	// may push modes of its own.
	h.popMode(m)
	if m.callback == nil {
		return nil
	}
	return m.callback(k, h.ctx)
}

// onEnabled arms the idle timer. It re-arms when a mode pushed above
// is popped and this mode surfaces again.
func (m *onNextKeyMode) onEnabled() {
	if m.idleCallback == nil {
		return
	}
	tok := sched.NewToken()
	m.idleTok = tok
	h := m.handler
	h.scheduler.After(h.idleTimeout, tok, func() {
		m.idleCallback(h.ctx)
	})
}

// onDisabled revokes the idle timer, so removal from the stack always
// cancels a pending idle callback before anything else runs.
func (m *onNextKeyMode) onDisabled() {
	if m.idleTok != nil {
		m.idleTok.Revoke()
		m.idleTok = nil
	}
}

func (m *onNextKeyMode) modeLine() editor.StatusLine {
	return editor.StatusLine{Text: m.modeName, Face: editor.FacePrompt}
}

func (m *onNextKeyMode) cursorInfo() (CursorMode, editor.Coord) {
	return CursorBuffer, m.handler.ctx.Selections().Main().Cursor
}
