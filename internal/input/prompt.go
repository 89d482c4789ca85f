package input

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/kokizzu/kakoune/internal/editor"
	"github.com/kokizzu/kakoune/internal/input/history"
	"github.com/kokizzu/kakoune/internal/input/key"
)

// PromptEvent tells a prompt callback why it is being invoked.
type PromptEvent uint8

const (
	// PromptChange fires after every edit to the prompt content.
	PromptChange PromptEvent = iota
	// PromptAbort fires when the prompt is dismissed with escape.
	PromptAbort
	// PromptValidate fires when the prompt is accepted with enter.
	PromptValidate
)

// String returns the event name.
func (e PromptEvent) String() string {
	switch e {
	case PromptAbort:
		return "abort"
	case PromptValidate:
		return "validate"
	default:
		return "change"
	}
}

// PromptFlags tune prompt behavior.
type PromptFlags uint8

const (
	PromptNone PromptFlags = 0
	// PromptPassword masks the input and keeps it out of history.
	PromptPassword PromptFlags = 1 << 0
	// PromptDropBlankPrefixedHistory skips history entries whose text
	// starts with blank space.
	PromptDropBlankPrefixedHistory PromptFlags = 1 << 1
	// PromptSearch stores history in the search partition.
	PromptSearch PromptFlags = 1 << 2
)

// PromptCallback observes the prompt's life cycle. It fires on every
// change while the prompt is active, and exactly once with abort or
// validate after the prompt has left the stack.
type PromptCallback func(text string, event PromptEvent, ctx *editor.Context) error

// Completions is a candidate set replacing the prompt text from Start
// (a byte offset) to the cursor.
type Completions struct {
	Start      int
	Candidates []string
}

// PromptCompleter produces candidates for the current prompt content.
// cursor is a byte offset into text.
type PromptCompleter func(ctx *editor.Context, text string, cursor int) Completions

// Prompt opens a one-line prompt on top of the current mode. initial
// seeds the content; placeholder shows while the content is empty.
// historyReg selects the history slot, 0 disables history for this
// prompt.
func (h *Handler) Prompt(label, initial, placeholder string, face editor.Face,
	flags PromptFlags, historyReg rune, completer PromptCompleter, cb PromptCallback) {
	content := []rune(initial)
	m := &promptMode{
		handler:     h,
		label:       label,
		placeholder: placeholder,
		face:        face,
		flags:       flags,
		historyReg:  historyReg,
		completer:   completer,
		callback:    cb,
		content:     content,
		cursor:      len(content),
		histIdx:     -1,
	}
	h.pushMode(m)
}

// SetPromptFace restyles the active prompt. Callbacks use it to flag
// invalid input as they validate it incrementally. A no-op when no
// prompt is active.
func (h *Handler) SetPromptFace(face editor.Face) {
	if m, ok := h.currentMode().(*promptMode); ok {
		m.face = face
		return
	}
	h.logger.Debugf("prompt face change with no active prompt")
}

// PromptCompleter returns the active prompt's completer, or nil when
// no prompt is active or it has none.
func (h *Handler) PromptCompleter() PromptCompleter {
	if m, ok := h.currentMode().(*promptMode); ok {
		return m.completer
	}
	return nil
}

// PromptText returns the active prompt's content and the cursor's byte
// offset into it. ok is false when no prompt is active.
func (h *Handler) PromptText() (text string, cursor int, ok bool) {
	m, ok := h.currentMode().(*promptMode)
	if !ok {
		return "", 0, false
	}
	return string(m.content), len(string(m.content[:m.cursor])), true
}

// HistoryEnabled reports whether validated prompt lines are currently
// stored in history.
func (h *Handler) HistoryEnabled() bool {
	return !h.ctx.HistoryDisabled().Get()
}

type promptMode struct {
	handler     *Handler
	label       string
	placeholder string
	face        editor.Face
	flags       PromptFlags
	historyReg  rune
	completer   PromptCompleter
	callback    PromptCallback

	content []rune
	cursor  int

	// History navigation state. histIdx is -1 while editing the live
	// line; otherwise it indexes matches, the entries filtered by the
	// prefix typed before navigation started.
	histIdx int
	matches []string
	saved   []rune
}

func (m *promptMode) name() string { return "prompt" }

func (m *promptMode) handleKey(k key.Event) error {
	h := m.handler

	switch {
	case k.IsEscape():
		text := string(m.content)
		h.popMode(m)
		return m.fire(text, PromptAbort)

	case k.IsEnter():
		text := string(m.content)
		h.popMode(m)
		m.pushHistory(text)
		return m.fire(text, PromptValidate)

	case k.IsBackspace():
		if m.cursor == 0 {
			return nil
		}
		m.content = append(m.content[:m.cursor-1], m.content[m.cursor:]...)
		m.cursor--
		return m.changed()

	case k == key.Special(key.CodeDelete):
		if m.cursor >= len(m.content) {
			return nil
		}
		m.content = append(m.content[:m.cursor], m.content[m.cursor+1:]...)
		return m.changed()

	case k == key.Special(key.CodeLeft) || k == key.Ctrl('b'):
		if m.cursor > 0 {
			m.cursor--
		}
		return nil

	case k == key.Special(key.CodeRight) || k == key.Ctrl('f'):
		if m.cursor < len(m.content) {
			m.cursor++
		}
		return nil

	case k == key.Special(key.CodeHome) || k == key.Ctrl('a'):
		m.cursor = 0
		return nil

	case k == key.Special(key.CodeEnd) || k == key.Ctrl('e'):
		m.cursor = len(m.content)
		return nil

	case k == key.Ctrl('u'):
		if m.cursor == 0 {
			return nil
		}
		m.content = append([]rune(nil), m.content[m.cursor:]...)
		m.cursor = 0
		return m.changed()

	case k == key.Ctrl('k'):
		if m.cursor >= len(m.content) {
			return nil
		}
		m.content = m.content[:m.cursor:m.cursor]
		return m.changed()

	case k == key.Special(key.CodeUp) || k == key.Ctrl('p'):
		return m.historyPrev()

	case k == key.Special(key.CodeDown) || k == key.Ctrl('n'):
		return m.historyNext()

	case k.IsChar():
		m.content = append(m.content[:m.cursor:m.cursor],
			append([]rune{k.Rune}, m.content[m.cursor:]...)...)
		m.cursor++
		return m.changed()

	default:
		h.logger.Debugf("ignored key %s in prompt", k)
		return nil
	}
}

func (m *promptMode) fire(text string, ev PromptEvent) error {
	if m.callback == nil {
		return nil
	}
	return m.callback(text, ev, m.handler.ctx)
}

// changed resets history navigation and fires the change callback.
func (m *promptMode) changed() error {
	m.histIdx = -1
	m.matches = nil
	m.saved = nil
	return m.fire(string(m.content), PromptChange)
}

func (m *promptMode) setContent(text string) error {
	m.content = []rune(text)
	m.cursor = len(m.content)
	return m.fire(text, PromptChange)
}

func (m *promptMode) historyPrev() error {
	if m.histIdx == -1 {
		entries := m.handler.histories.Entries(m.partition(), m.historyReg)
		prefix := string(m.content)
		m.matches = m.matches[:0]
		for _, e := range entries {
			if strings.HasPrefix(e, prefix) && e != prefix {
				m.matches = append(m.matches, e)
			}
		}
		if len(m.matches) == 0 {
			return nil
		}
		m.saved = append([]rune(nil), m.content...)
		m.histIdx = len(m.matches) - 1
		return m.setContent(m.matches[m.histIdx])
	}
	if m.histIdx == 0 {
		return nil
	}
	m.histIdx--
	return m.setContent(m.matches[m.histIdx])
}

func (m *promptMode) historyNext() error {
	if m.histIdx == -1 {
		return nil
	}
	m.histIdx++
	if m.histIdx >= len(m.matches) {
		saved := string(m.saved)
		m.histIdx = -1
		m.matches = nil
		m.saved = nil
		return m.setContent(saved)
	}
	return m.setContent(m.matches[m.histIdx])
}

// pushHistory stores a validated line, honoring the password flag, the
// blank-prefix flag, and the context's history suppression.
func (m *promptMode) pushHistory(text string) {
	if m.historyReg == 0 || text == "" {
		return
	}
	if m.flags&PromptPassword != 0 {
		return
	}
	if m.handler.ctx.HistoryDisabled().Get() {
		return
	}
	if m.flags&PromptDropBlankPrefixedHistory != 0 && hasBlankPrefix(text) {
		return
	}
	m.handler.histories.Add(m.partition(), m.historyReg, text)
}

func (m *promptMode) partition() history.Partition {
	if m.flags&PromptSearch != 0 {
		return history.PartitionSearch
	}
	return history.PartitionDefault
}

func hasBlankPrefix(text string) bool {
	for _, r := range text {
		return unicode.IsSpace(r)
	}
	return false
}

func (m *promptMode) onEnabled()  {}
func (m *promptMode) onDisabled() {}

// displayText is what the prompt line shows: the placeholder while
// empty, mask characters for password prompts, the content otherwise.
func (m *promptMode) displayText() string {
	if len(m.content) == 0 {
		return m.placeholder
	}
	if m.flags&PromptPassword != 0 {
		return strings.Repeat("*", len(m.content))
	}
	return string(m.content)
}

func (m *promptMode) modeLine() editor.StatusLine {
	return editor.StatusLine{Text: m.label + m.displayText(), Face: m.face}
}

func (m *promptMode) cursorInfo() (CursorMode, editor.Coord) {
	col := runewidth.StringWidth(m.label)
	if m.flags&PromptPassword != 0 {
		col += m.cursor
	} else {
		col += runewidth.StringWidth(string(m.content[:m.cursor]))
	}
	return CursorPrompt, editor.Coord{Line: 0, Col: col}
}
