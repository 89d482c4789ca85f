// Package app wires the editor subsystems into a runnable terminal
// session: configuration, logging, the input handler, and the tcell
// UI.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/kokizzu/kakoune/internal/config"
	"github.com/kokizzu/kakoune/internal/editor"
	"github.com/kokizzu/kakoune/internal/input"
	"github.com/kokizzu/kakoune/internal/input/complete"
	"github.com/kokizzu/kakoune/internal/input/key"
	"github.com/kokizzu/kakoune/internal/log"
	"github.com/kokizzu/kakoune/internal/sched"
	"github.com/kokizzu/kakoune/internal/term"
)

// ErrQuit signals a normal, user-requested exit.
var ErrQuit = errors.New("quit")

// Options are the command-line level knobs.
type Options struct {
	ConfigPath string
	LogPath    string
	LogLevel   string
	File       string
}

// App is one editing session.
type App struct {
	opts    Options
	cfg     config.Config
	logger  *log.Logger
	logFile *os.File

	ctx     *editor.Context
	handler *input.Handler
	ui      *term.UI
	watcher *config.Watcher

	post     chan func()
	quitting bool

	pasting  bool
	pasteBuf []rune
}

// New loads configuration, opens the log sink, and prepares the
// editing context. The terminal is not touched until Run.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}

	// Logging to stderr would fight the terminal UI for the screen, so
	// without an explicit log file everything is dropped.
	var out io.Writer = io.Discard
	var logFile *os.File
	if opts.LogPath != "" {
		logFile, err = os.OpenFile(opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		out = logFile
	}
	logger := log.New(out, log.ParseLevel(level))

	text := ""
	name := "*scratch*"
	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", opts.File, err)
		}
		text = strings.TrimSuffix(string(data), "\n")
		name = filepath.Base(opts.File)
	}

	ctx := editor.NewContext(editor.NewBuffer(text), nil)
	ctx.SetName(name)

	return &App{
		opts:    opts,
		cfg:     cfg,
		logger:  logger,
		logFile: logFile,
		ctx:     ctx,
		post:    make(chan func(), 64),
	}, nil
}

// Shutdown releases resources. Safe to call more than once.
func (a *App) Shutdown() {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	if a.ui != nil {
		a.ui.Close()
		a.ui = nil
	}
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

// Run initializes the terminal and drives the event loop until the
// user quits.
func (a *App) Run() error {
	autoInfo, err := input.ParseAutoInfo(a.cfg.AutoInfo)
	if err != nil {
		return err
	}
	autoComplete, err := input.ParseAutoComplete(a.cfg.AutoComplete)
	if err != nil {
		return err
	}

	ui, err := term.New(a.logger)
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	a.ui = ui
	defer a.Shutdown()
	a.ctx.SetClient(ui)

	h := input.NewHandler(a.ctx, input.Config{
		Scheduler:        sched.NewTimers(func(fn func()) { a.post <- fn }),
		Logger:           a.logger,
		AutoInfo:         autoInfo,
		AutoComplete:     autoComplete,
		IdleTimeout:      a.cfg.IdleTimeout(),
		HistoryLimit:     a.cfg.HistoryMaxEntries,
		CommandRunner:    a.runCommand,
		SearchRunner:     a.runSearch,
		CommandCompleter: complete.Words(commandNames()),
	})
	a.handler = h
	defer h.Close()

	if a.opts.ConfigPath != "" {
		w, err := config.Watch(a.opts.ConfigPath, a.logger, func(cfg config.Config) {
			a.post <- func() { a.applyConfig(cfg) }
		})
		if err != nil {
			a.logger.Warnf("config watcher unavailable: %v", err)
		} else {
			a.watcher = w
		}
	}

	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := ui.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	a.ctx.Echo(fmt.Sprintf("%s  <c-q> quits", a.ctx.Name()), editor.FaceDefault)
	ui.Draw(a.ctx, h)

	for {
		select {
		case fn := <-a.post:
			fn()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := a.handleEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				a.ctx.Echo(err.Error(), editor.FaceError)
			}
		}
		if a.quitting {
			return nil
		}
		ui.Draw(a.ctx, a.handler)
	}
}

func (a *App) handleEvent(ev tcell.Event) error {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, ok := term.TranslateKey(e)
		if !ok {
			return nil
		}
		if a.pasting {
			a.collectPasteKey(k)
			return nil
		}
		if k == key.Ctrl('q') {
			return ErrQuit
		}
		return a.handler.HandleKey(k, false)

	case *tcell.EventPaste:
		if e.Start() {
			a.pasting = true
			a.pasteBuf = a.pasteBuf[:0]
			return nil
		}
		a.pasting = false
		a.handler.Paste(string(a.pasteBuf))
		return nil

	case *tcell.EventResize:
		// The redraw after dispatch picks the new size up.
		return nil
	}
	return nil
}

// collectPasteKey accumulates the keys tcell delivers between the
// bracketed paste markers.
func (a *App) collectPasteKey(k key.Event) {
	switch {
	case k.IsRune():
		a.pasteBuf = append(a.pasteBuf, k.Rune)
	case k.IsEnter():
		a.pasteBuf = append(a.pasteBuf, '\n')
	case k.Code == key.CodeTab:
		a.pasteBuf = append(a.pasteBuf, '\t')
	}
}

// applyConfig applies a live config reload to the running handler.
func (a *App) applyConfig(cfg config.Config) {
	a.cfg = cfg
	a.logger.SetLevel(log.ParseLevel(cfg.LogLevel))
	if mask, err := input.ParseAutoInfo(cfg.AutoInfo); err == nil {
		a.handler.SetAutoInfo(mask)
	} else {
		a.logger.Warnf("reload: %v", err)
	}
	if mask, err := input.ParseAutoComplete(cfg.AutoComplete); err == nil {
		a.handler.SetAutoComplete(mask)
	} else {
		a.logger.Warnf("reload: %v", err)
	}
	a.handler.SetIdleTimeout(cfg.IdleTimeout())
	a.ctx.Echo("configuration reloaded", editor.FaceDefault)
}

func commandNames() []string {
	return []string{"write", "wq", "quit"}
}

// runCommand executes a validated ':' prompt line.
func (a *App) runCommand(cmd string, ctx *editor.Context) error {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "q", "quit":
		a.quitting = true
		return nil
	case "w", "write":
		return a.writeBuffer(fields[1:], ctx)
	case "wq":
		if err := a.writeBuffer(fields[1:], ctx); err != nil {
			return err
		}
		a.quitting = true
		return nil
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func (a *App) writeBuffer(args []string, ctx *editor.Context) error {
	path := a.opts.File
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return errors.New("no file name")
	}
	data := []byte(ctx.Buffer().String() + "\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	a.opts.File = path
	ctx.Echo(fmt.Sprintf("wrote %s", path), editor.FaceDefault)
	return nil
}

// runSearch moves the cursor to the next literal occurrence of the
// pattern, wrapping at the end of the buffer.
func (a *App) runSearch(pattern string, ctx *editor.Context) error {
	at, ok := findForward(ctx.Buffer(), ctx.Selections().Main().Cursor, pattern)
	if !ok {
		return fmt.Errorf("pattern %q not found", pattern)
	}
	ctx.Selections().Replace([]editor.Selection{editor.At(at)})
	return nil
}

// findForward searches for pattern after from, wrapping once.
func findForward(buf *editor.Buffer, from editor.Coord, pattern string) (editor.Coord, bool) {
	if pattern == "" {
		return editor.Coord{}, false
	}
	lines := buf.LineCount()
	for i := 0; i <= lines; i++ {
		lineIdx := (from.Line + i) % lines
		line := buf.Line(lineIdx)

		start := 0
		if i == 0 {
			// Skip past the cursor on the starting line.
			start = byteOffset(line, from.Col+1)
		} else if i == lines && lineIdx == from.Line {
			// Wrapped around: search the part before the cursor.
			if idx := strings.Index(line[:byteOffset(line, from.Col+1)], pattern); idx >= 0 {
				return editor.Coord{Line: lineIdx, Col: utf8.RuneCountInString(line[:idx])}, true
			}
			break
		}
		if start > len(line) {
			continue
		}
		if idx := strings.Index(line[start:], pattern); idx >= 0 {
			prefix := line[:start+idx]
			return editor.Coord{Line: lineIdx, Col: utf8.RuneCountInString(prefix)}, true
		}
	}
	return editor.Coord{}, false
}

// byteOffset converts a rune column into a byte offset, clamped to the
// line.
func byteOffset(line string, runeCol int) int {
	if runeCol <= 0 {
		return 0
	}
	count := 0
	for i := range line {
		if count == runeCol {
			return i
		}
		count++
	}
	return len(line)
}
