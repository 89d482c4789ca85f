package input

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/kokizzu/kakoune/internal/editor"
	"github.com/kokizzu/kakoune/internal/input/key"
)

// NormalCommand is a normal-mode command bound to a key.
type NormalCommand func(h *Handler, params NormalParams) error

// normalMode interprets keys as commands. The transient variant backs
// WithForcedNormal and never accumulates counts of its own.
type normalMode struct {
	handler      *Handler
	params       NormalParams
	transient    bool
	pendingCount int
}

func newNormalMode(h *Handler, params NormalParams, transient bool) *normalMode {
	return &normalMode{handler: h, params: params, transient: transient}
}

func (m *normalMode) name() string { return "normal" }

func (m *normalMode) handleKey(k key.Event) error {
	h := m.handler

	// Digits accumulate the count; a leading zero is a command key.
	if !m.transient && k.IsChar() && unicode.IsDigit(k.Rune) &&
		!(k.Rune == '0' && m.pendingCount == 0) {
		m.pendingCount = m.pendingCount*10 + int(k.Rune-'0')
		return nil
	}

	params := NormalParams{Count: m.pendingCount, Register: m.params.Register}
	if m.transient {
		params = m.params
	}
	m.pendingCount = 0

	if k.IsEscape() {
		// Escape drops pending parameters and any lingering info box.
		HideAutoInfoIfn(h.ctx, h.ctx.Client() != nil)
		return nil
	}

	if cmd, ok := h.commands[k]; ok {
		return cmd(h, params)
	}
	h.logger.Debugf("unbound key %s in normal mode", k)
	return nil
}

// currentParams exposes pending parameters for the mode line snapshot.
func (m *normalMode) currentParams() *NormalParams {
	if m.transient {
		p := m.params
		return &p
	}
	if m.pendingCount > 0 {
		return &NormalParams{Count: m.pendingCount, Register: m.params.Register}
	}
	return nil
}

func (m *normalMode) onEnabled()  {}
func (m *normalMode) onDisabled() {}

func (m *normalMode) modeLine() editor.StatusLine {
	text := "normal"
	if m.pendingCount > 0 {
		text = fmt.Sprintf("normal %d", m.pendingCount)
	}
	return editor.StatusLine{Text: text, Face: editor.FaceDefault}
}

func (m *normalMode) cursorInfo() (CursorMode, editor.Coord) {
	return CursorBuffer, m.handler.ctx.Selections().Main().Cursor
}

// defaultCommands is the built-in normal-mode key table. Callers extend
// or override it through Config.Commands.
func defaultCommands() map[key.Event]NormalCommand {
	cmds := map[key.Event]NormalCommand{
		key.FromRune('i'): cmdEnterInsert(FlavorInsert),
		key.FromRune('a'): cmdEnterInsert(FlavorAppend),
		key.FromRune('I'): cmdEnterInsert(FlavorInsertAtLineBegin),
		key.FromRune('A'): cmdEnterInsert(FlavorAppendAtLineEnd),
		key.FromRune('o'): cmdEnterInsert(FlavorOpenLineBelow),
		key.FromRune('O'): cmdEnterInsert(FlavorOpenLineAbove),
		key.FromRune('c'): cmdEnterInsert(FlavorReplace),

		key.FromRune('.'): cmdRepeatInsert,
		key.FromRune(':'): cmdCommandPrompt,
		key.FromRune('/'): cmdSearchPrompt,
		key.FromRune('Q'): cmdToggleRecording,
		key.FromRune('q'): cmdPlayMacro,
		key.FromRune('r'): cmdReplaceChar,

		key.FromRune('h'):          cmdMove(0, -1),
		key.FromRune('j'):          cmdMove(1, 0),
		key.FromRune('k'):          cmdMove(-1, 0),
		key.FromRune('l'):          cmdMove(0, 1),
		key.Special(key.CodeLeft):  cmdMove(0, -1),
		key.Special(key.CodeDown):  cmdMove(1, 0),
		key.Special(key.CodeUp):    cmdMove(-1, 0),
		key.Special(key.CodeRight): cmdMove(0, 1),
	}
	return cmds
}

func cmdEnterInsert(flavor InsertFlavor) NormalCommand {
	return func(h *Handler, params NormalParams) error {
		h.Insert(flavor, params.EffectiveCount())
		return nil
	}
}

func cmdRepeatInsert(h *Handler, params NormalParams) error {
	if err := h.RepeatLastInsert(); err != nil {
		h.ctx.Echo(err.Error(), editor.FaceError)
		return err
	}
	return nil
}

func cmdMove(dLine, dCol int) NormalCommand {
	return func(h *Handler, params NormalParams) error {
		n := params.EffectiveCount()
		h.ctx.MoveCursors(dLine*n, dCol*n)
		return nil
	}
}

func cmdCommandPrompt(h *Handler, params NormalParams) error {
	h.Prompt(":", "", "", editor.FacePrompt,
		PromptDropBlankPrefixedHistory, ':', h.commandCompleter,
		func(text string, ev PromptEvent, ctx *editor.Context) error {
			if ev != PromptValidate || text == "" {
				return nil
			}
			if h.commandRunner == nil {
				return errors.New("no command runner configured")
			}
			return h.commandRunner(text, ctx)
		})
	return nil
}

func cmdSearchPrompt(h *Handler, params NormalParams) error {
	h.Prompt("/", "", "", editor.FacePrompt,
		PromptSearch, '/', nil,
		func(text string, ev PromptEvent, ctx *editor.Context) error {
			if ev != PromptValidate || text == "" {
				return nil
			}
			if h.searchRunner == nil {
				return errors.New("no search runner configured")
			}
			return h.searchRunner(text, ctx)
		})
	return nil
}

// cmdToggleRecording stops an active recording, or asks for a target
// register and starts one. The register key is consumed by the
// one-shot mode, so neither toggle key ends up in the macro.
func cmdToggleRecording(h *Handler, params NormalParams) error {
	if h.IsRecording() {
		reg := h.RecordingRegister()
		h.StopRecording()
		h.ctx.Echo(fmt.Sprintf("recorded to register '%c'", reg), editor.FaceDefault)
		return nil
	}
	h.OnNextKeyWithAutoInfo("record-macro", KeymapNormal,
		func(k key.Event, ctx *editor.Context) error {
			if !k.IsRune() {
				return nil
			}
			if err := h.StartRecording(k.Rune); err != nil {
				ctx.Echo(err.Error(), editor.FaceError)
				return err
			}
			return nil
		},
		"record macro", "enter target register (a-z, 0-9; A-Z appends)")
	return nil
}

// cmdPlayMacro asks for a source register and replays it count times.
func cmdPlayMacro(h *Handler, params NormalParams) error {
	count := params.EffectiveCount()
	h.OnNextKeyWithAutoInfo("play-macro", KeymapNormal,
		func(k key.Event, ctx *editor.Context) error {
			if !k.IsRune() {
				return nil
			}
			if err := h.ReplayRegister(k.Rune, count); err != nil {
				ctx.Echo(err.Error(), editor.FaceError)
				return err
			}
			return nil
		},
		"play macro", "enter source register (a-z, 0-9)")
	return nil
}

func cmdReplaceChar(h *Handler, params NormalParams) error {
	h.OnNextKeyWithAutoInfo("replace-char", KeymapNormal,
		func(k key.Event, ctx *editor.Context) error {
			if k.IsChar() {
				ctx.ReplaceRuneAtCursors(k.Rune)
			}
			return nil
		},
		"replace", "enter the replacement character")
	return nil
}
