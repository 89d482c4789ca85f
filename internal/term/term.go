// Package term renders the editor to a terminal through tcell and
// translates terminal key events into the input core's key type.
package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kokizzu/kakoune/internal/editor"
	"github.com/kokizzu/kakoune/internal/input"
	"github.com/kokizzu/kakoune/internal/log"
)

// UI owns the tcell screen. It doubles as the editor.Client attached
// to the context: Echo and the info box calls store display state that
// the next Draw paints.
type UI struct {
	mu     sync.Mutex
	screen tcell.Screen
	logger *log.Logger

	status      editor.StatusLine
	infoTitle   string
	infoContent string
	infoVisible bool
}

// New initializes a terminal UI. Callers must Close it to restore the
// terminal.
func New(logger *log.Logger) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnablePaste()
	if logger == nil {
		logger = log.Discard()
	}
	return &UI{screen: screen, logger: logger.WithPrefix("term")}, nil
}

// Close restores the terminal.
func (u *UI) Close() {
	u.screen.Fini()
}

// Size returns the terminal dimensions.
func (u *UI) Size() (int, int) {
	return u.screen.Size()
}

// PollEvent blocks for the next terminal event. Returns nil after the
// screen is finalized.
func (u *UI) PollEvent() tcell.Event {
	return u.screen.PollEvent()
}

// Echo implements editor.Client.
func (u *UI) Echo(line editor.StatusLine) {
	u.mu.Lock()
	u.status = line
	u.mu.Unlock()
}

// InfoShow implements editor.Client; a new box replaces the old one.
func (u *UI) InfoShow(title, content string) {
	u.mu.Lock()
	u.infoTitle, u.infoContent = title, content
	u.infoVisible = true
	u.mu.Unlock()
}

// InfoHide implements editor.Client.
func (u *UI) InfoHide() {
	u.mu.Lock()
	u.infoVisible = false
	u.mu.Unlock()
}

func styleFor(face editor.Face) tcell.Style {
	switch face {
	case editor.FacePrompt:
		return tcell.StyleDefault.Bold(true)
	case editor.FaceError:
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	default:
		return tcell.StyleDefault
	}
}

// Draw paints the buffer, the mode line, and any info box, and places
// the cursor where the handler says it belongs.
func (u *UI) Draw(ctx *editor.Context, h *input.Handler) {
	width, height := u.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}
	u.screen.Clear()

	textRows := height - 1
	buf := ctx.Buffer()
	for row := 0; row < textRows && row < buf.LineCount(); row++ {
		drawText(u.screen, 0, row, width, buf.Line(row), tcell.StyleDefault)
	}

	u.drawStatus(h, width, height-1)
	u.drawInfo(width, textRows)

	mode, cur := h.CursorInfo()
	switch mode {
	case input.CursorPrompt:
		u.screen.ShowCursor(cur.Col, height-1)
	default:
		if cur.Line < textRows {
			col := displayCol(buf.Line(cur.Line), cur.Col)
			u.screen.ShowCursor(col, cur.Line)
		} else {
			u.screen.HideCursor()
		}
	}

	u.screen.Show()
}

// drawStatus paints the bottom row: a prompt-owned line fills the row,
// otherwise the last echo shows left and the mode line right.
func (u *UI) drawStatus(h *input.Handler, width, row int) {
	u.mu.Lock()
	status := u.status
	u.mu.Unlock()

	info := h.ModeInfo()
	mode, _ := h.CursorInfo()
	if mode == input.CursorPrompt {
		drawText(u.screen, 0, row, width, info.Display.Text, styleFor(info.Display.Face))
		return
	}

	drawText(u.screen, 0, row, width, status.Text, styleFor(status.Face))
	modeText := info.Display.Text
	start := width - runewidth.StringWidth(modeText)
	if start > 0 {
		drawText(u.screen, start, row, width-start, modeText, styleFor(info.Display.Face))
	}
}

// drawInfo paints the info box in the top-right corner.
func (u *UI) drawInfo(width, textRows int) {
	u.mu.Lock()
	visible, title, content := u.infoVisible, u.infoTitle, u.infoContent
	u.mu.Unlock()
	if !visible || textRows < 2 {
		return
	}

	boxWidth := runewidth.StringWidth(title)
	if w := runewidth.StringWidth(content); w > boxWidth {
		boxWidth = w
	}
	boxWidth += 2
	if boxWidth > width {
		boxWidth = width
	}
	start := width - boxWidth
	style := tcell.StyleDefault.Reverse(true)
	drawText(u.screen, start, 0, boxWidth, " "+title, style)
	drawText(u.screen, start, 1, boxWidth, " "+content, style)
}

// drawText writes a run of text, padding the region with spaces.
func drawText(s tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if r == '\t' {
			next := x + ((col-x)/8+1)*8
			for ; col < next && col < x+maxWidth; col++ {
				s.SetContent(col, y, ' ', nil, style)
			}
			continue
		}
		w := runewidth.RuneWidth(r)
		if col+w > x+maxWidth {
			break
		}
		s.SetContent(col, y, r, nil, style)
		col += w
	}
	for ; col < x+maxWidth; col++ {
		s.SetContent(col, y, ' ', nil, style)
	}
}

// displayCol converts a rune column into a screen column, accounting
// for wide runes and tabs.
func displayCol(line string, runeCol int) int {
	col := 0
	for i, r := range []rune(line) {
		if i >= runeCol {
			break
		}
		if r == '\t' {
			col += 8 - col%8
			continue
		}
		col += runewidth.RuneWidth(r)
	}
	return col
}
