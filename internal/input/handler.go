package input

import (
	"errors"
	"fmt"
	"time"

	"github.com/kokizzu/kakoune/internal/editor"
	"github.com/kokizzu/kakoune/internal/input/history"
	"github.com/kokizzu/kakoune/internal/input/key"
	"github.com/kokizzu/kakoune/internal/log"
	"github.com/kokizzu/kakoune/internal/sched"
)

// Recording errors.
var (
	ErrAlreadyRecording = errors.New("already recording")
	ErrInvalidRegister  = errors.New("invalid register")
	ErrRecursiveMacro   = errors.New("recursive macro invocation")
)

// CommandRunner executes a validated prompt line.
type CommandRunner func(cmd string, ctx *editor.Context) error

// Config carries the handler's collaborators and tuning. Zero fields
// are filled from DefaultConfig.
type Config struct {
	// Scheduler delivers idle callbacks. Defaults to direct timers.
	Scheduler sched.Scheduler

	// Logger receives dispatch diagnostics. Defaults to a discard
	// logger.
	Logger *log.Logger

	// AutoInfo selects which situations show info boxes.
	AutoInfo AutoInfo

	// AutoComplete selects where completion engages automatically.
	AutoComplete AutoComplete

	// IdleTimeout is the delay before on-next-key idle callbacks fire.
	IdleTimeout time.Duration

	// HistoryLimit caps each prompt history slot.
	HistoryLimit int

	// Commands overrides or extends the built-in normal-mode bindings.
	Commands map[key.Event]NormalCommand

	// CommandRunner executes ':' prompt lines.
	CommandRunner CommandRunner

	// SearchRunner executes '/' prompt lines.
	SearchRunner CommandRunner

	// CommandCompleter completes ':' prompt input.
	CommandCompleter PromptCompleter
}

// DefaultConfig returns the handler defaults: command and on-key info
// boxes, insert and prompt completion, a 50ms idle timeout.
func DefaultConfig() Config {
	return Config{
		Scheduler:    sched.NewTimers(nil),
		Logger:       log.Discard(),
		AutoInfo:     AutoInfoCommand | AutoInfoOnKey,
		AutoComplete: AutoCompleteInsert | AutoCompletePrompt,
		IdleTimeout:  50 * time.Millisecond,
		HistoryLimit: 100,
	}
}

// Handler is the input dispatch core for one editing context. It owns
// the mode stack, the macro recorder, and the last-insert record.
//
// The bottom of the stack is always a normal mode; the top interprets
// keys. Handler is not safe for concurrent use; all calls must come
// from the dispatch thread.
type Handler struct {
	ctx       *editor.Context
	scheduler sched.Scheduler
	logger    *log.Logger

	autoInfo     AutoInfo
	autoComplete AutoComplete
	idleTimeout  time.Duration

	histories *history.Store

	commands         map[key.Event]NormalCommand
	commandRunner    CommandRunner
	searchRunner     CommandRunner
	commandCompleter PromptCompleter

	modeStack      []inputMode
	handleKeyLevel int

	recordingReg    rune
	recordingAppend bool
	recordingLevel  int
	recordedKeys    []key.Event
	replaying       map[rune]bool

	lastInsert insertion

	closed bool
}

// NewHandler creates a handler bound to ctx and installs itself as the
// context's input handler. The stack starts with a single normal mode.
func NewHandler(ctx *editor.Context, cfg Config) *Handler {
	def := DefaultConfig()
	if cfg.Scheduler == nil {
		cfg.Scheduler = def.Scheduler
	}
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = def.IdleTimeout
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = def.HistoryLimit
	}

	h := &Handler{
		ctx:              ctx,
		scheduler:        cfg.Scheduler,
		logger:           cfg.Logger.WithPrefix("input"),
		autoInfo:         cfg.AutoInfo,
		autoComplete:     cfg.AutoComplete,
		idleTimeout:      cfg.IdleTimeout,
		histories:        history.NewStore(cfg.HistoryLimit),
		commandRunner:    cfg.CommandRunner,
		searchRunner:     cfg.SearchRunner,
		commandCompleter: cfg.CommandCompleter,
		replaying:        make(map[rune]bool),
	}

	h.commands = defaultCommands()
	for k, cmd := range cfg.Commands {
		h.commands[k] = cmd
	}

	bottom := newNormalMode(h, NormalParams{}, false)
	h.modeStack = []inputMode{bottom}
	bottom.onEnabled()

	ctx.SetInputHandler(h)
	return h
}

// Context returns the editing context this handler drives.
func (h *Handler) Context() *editor.Context { return h.ctx }

// Histories returns the prompt history store.
func (h *Handler) Histories() *history.Store { return h.histories }

// HandleKey dispatches one key to the current mode. synthesized marks
// keys that did not come from the user (macro replay, insert repeat);
// observers may treat them differently, the dispatch itself does not.
//
// Macro capture happens here, after dispatch: a key is recorded only
// when recording was active before and after it ran, and only at the
// dispatch depth recording started at. That excludes the keys that
// start or stop recording and everything replayed from deeper frames.
func (h *Handler) HandleKey(k key.Event, synthesized bool) error {
	if h.closed {
		return errors.New("input handler is closed")
	}

	h.handleKeyLevel++
	defer func() { h.handleKeyLevel-- }()

	h.logger.Debugf("key %s mode=%s depth=%d synthesized=%t",
		k, h.currentMode().name(), h.handleKeyLevel, synthesized)

	wasRecording := h.IsRecording()
	err := h.currentMode().handleKey(k)

	if wasRecording && h.IsRecording() && h.handleKeyLevel == h.recordingLevel {
		h.recordedKeys = append(h.recordedKeys, k)
	}
	return err
}

func (h *Handler) currentMode() inputMode {
	return h.modeStack[len(h.modeStack)-1]
}

// pushMode makes m the new stack top.
func (h *Handler) pushMode(m inputMode) {
	h.currentMode().onDisabled()
	h.modeStack = append(h.modeStack, m)
	m.onEnabled()
}

// popMode removes m from the stack top. Popping a mode that is not the
// top, or the bottom normal mode, is a protocol violation and panics.
func (h *Handler) popMode(m inputMode) {
	if len(h.modeStack) <= 1 {
		panic("input: popping the bottom normal mode")
	}
	if h.currentMode() != m {
		panic(fmt.Sprintf("input: popping %q which is not the current mode %q",
			m.name(), h.currentMode().name()))
	}
	m.onDisabled()
	h.modeStack = h.modeStack[:len(h.modeStack)-1]
	h.currentMode().onEnabled()
}

// ResetNormalMode discards every mode above the bottom normal mode.
// Pending state of the discarded modes is dropped without callbacks
// other than their onDisabled notification.
func (h *Handler) ResetNormalMode() {
	for len(h.modeStack) > 1 {
		top := h.currentMode()
		top.onDisabled()
		h.modeStack = h.modeStack[:len(h.modeStack)-1]
	}
	h.currentMode().onEnabled()
}

// WithForcedNormal runs fn with a transient normal mode pushed on top
// of the stack, unless normal mode is already active. The pushed mode
// is removed when fn returns, even on error or panic, wherever it sits
// in the stack by then. Nested guards unwind in reverse order.
func (h *Handler) WithForcedNormal(params NormalParams, fn func() error) error {
	if _, ok := h.currentMode().(*normalMode); ok {
		return fn()
	}
	forced := newNormalMode(h, params, true)
	h.pushMode(forced)
	defer h.removeMode(forced)
	return fn()
}

// removeMode erases m wherever it sits in the stack, tolerating the
// non-top position WithForcedNormal can end in.
func (h *Handler) removeMode(m inputMode) {
	for i, cur := range h.modeStack {
		if cur != m {
			continue
		}
		wasTop := i == len(h.modeStack)-1
		if wasTop {
			m.onDisabled()
		}
		h.modeStack = append(h.modeStack[:i], h.modeStack[i+1:]...)
		if wasTop {
			h.currentMode().onEnabled()
		}
		return
	}
}

// StartRecording begins capturing keys for a register. Uppercase
// registers append to their lowercase slot on commit.
func (h *Handler) StartRecording(reg rune) error {
	norm := editor.NormalizeRegister(reg)
	if norm == 0 {
		return fmt.Errorf("%w %q", ErrInvalidRegister, reg)
	}
	if h.recordingReg != 0 {
		return fmt.Errorf("%w (register '%c')", ErrAlreadyRecording, h.recordingReg)
	}

	h.recordingReg = norm
	h.recordingAppend = editor.IsAppendRegister(reg)
	h.recordedKeys = nil

	// Capture keys at the depth of the dispatch that started us. When
	// recording starts outside any dispatch, capture top-level keys.
	h.recordingLevel = h.handleKeyLevel
	if h.recordingLevel == 0 {
		h.recordingLevel = 1
	}

	h.logger.Infof("recording into register '%c'", norm)
	return nil
}

// StopRecording commits the captured sequence to the register and ends
// recording. An empty capture still overwrites the register. Calling
// without an active recording does nothing.
func (h *Handler) StopRecording() {
	if h.recordingReg == 0 {
		return
	}
	var err error
	if h.recordingAppend {
		err = h.ctx.Registers().Append(h.recordingReg, h.recordedKeys)
	} else {
		err = h.ctx.Registers().Set(h.recordingReg, h.recordedKeys)
	}
	if err != nil {
		h.logger.Errorf("committing recording: %v", err)
	}
	h.logger.Infof("recorded %d keys into register '%c'", len(h.recordedKeys), h.recordingReg)

	h.recordingReg = 0
	h.recordingAppend = false
	h.recordedKeys = nil
	h.recordingLevel = 0
}

// IsRecording reports whether a macro recording is active.
func (h *Handler) IsRecording() bool { return h.recordingReg != 0 }

// RecordingRegister returns the active recording register, or 0.
func (h *Handler) RecordingRegister() rune { return h.recordingReg }

// DropLastRecordedKey removes the most recently captured key. Commands
// use it to keep their own trigger out of the macro.
func (h *Handler) DropLastRecordedKey() {
	if h.recordingReg != 0 && len(h.recordedKeys) > 0 {
		h.recordedKeys = h.recordedKeys[:len(h.recordedKeys)-1]
	}
}

// ReplayRegister feeds the register's key sequence through dispatch
// count times. Replayed keys are synthesized and never re-captured by
// an outer recording. Replaying a register already being replayed is
// an error.
func (h *Handler) ReplayRegister(reg rune, count int) error {
	norm := editor.NormalizeRegister(reg)
	if norm == 0 {
		return fmt.Errorf("%w %q", ErrInvalidRegister, reg)
	}
	if h.replaying[norm] {
		return fmt.Errorf("%w (register '%c')", ErrRecursiveMacro, norm)
	}
	seq := h.ctx.Registers().Get(norm)
	if len(seq) == 0 {
		return fmt.Errorf("register '%c' is empty", norm)
	}
	if count < 1 {
		count = 1
	}

	h.replaying[norm] = true
	defer delete(h.replaying, norm)

	for i := 0; i < count; i++ {
		for _, k := range seq {
			if err := h.HandleKey(k, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// ModeInfo returns the rendering snapshot for the current mode. The
// mode line carries a recording indicator while a macro is captured.
func (h *Handler) ModeInfo() ModeInfo {
	top := h.currentMode()
	info := ModeInfo{Display: top.modeLine()}
	if h.IsRecording() {
		info.Display.Text += fmt.Sprintf(" (recording: %c)", h.recordingReg)
	}
	if n, ok := top.(*normalMode); ok {
		info.Normal = n.currentParams()
	}
	return info
}

// CursorInfo reports which display area owns the cursor and where.
func (h *Handler) CursorInfo() (CursorMode, editor.Coord) {
	return h.currentMode().cursorInfo()
}

// CurrentModeName returns the name of the active mode.
func (h *Handler) CurrentModeName() string {
	return h.currentMode().name()
}

// AutoCompleteEnabled reports whether completion should engage for the
// given category.
func (h *Handler) AutoCompleteEnabled(mask AutoComplete) bool {
	return h.autoComplete&mask != 0
}

// SetAutoInfo applies a new auto-info mask, typically on config reload.
func (h *Handler) SetAutoInfo(mask AutoInfo) { h.autoInfo = mask }

// SetAutoComplete applies a new auto-complete mask.
func (h *Handler) SetAutoComplete(mask AutoComplete) { h.autoComplete = mask }

// SetIdleTimeout applies a new idle delay for on-next-key callbacks.
func (h *Handler) SetIdleTimeout(d time.Duration) {
	if d > 0 {
		h.idleTimeout = d
	}
}

// Close tears the handler down: every mode is disabled, an active
// recording is discarded uncommitted, and further dispatch fails.
func (h *Handler) Close() {
	if h.closed {
		return
	}
	// Only the stack top is enabled; the modes under it were disabled
	// when they were covered.
	if len(h.modeStack) > 0 {
		h.currentMode().onDisabled()
	}
	h.modeStack = nil
	h.recordingReg = 0
	h.recordedKeys = nil
	h.closed = true
}
