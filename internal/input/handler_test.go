package input

import (
	"errors"
	"strings"
	"testing"

	"github.com/kokizzu/kakoune/internal/editor"
	"github.com/kokizzu/kakoune/internal/input/key"
	"github.com/kokizzu/kakoune/internal/sched"
)

// fakeClient records display calls for assertions.
type fakeClient struct {
	echoes      []editor.StatusLine
	infoTitle   string
	infoContent string
	infoVisible bool
	shows       int
	hides       int
}

func (c *fakeClient) Echo(line editor.StatusLine) {
	c.echoes = append(c.echoes, line)
}

func (c *fakeClient) InfoShow(title, content string) {
	c.infoTitle, c.infoContent = title, content
	c.infoVisible = true
	c.shows++
}

func (c *fakeClient) InfoHide() {
	c.infoVisible = false
	c.hides++
}

func (c *fakeClient) lastEcho() string {
	if len(c.echoes) == 0 {
		return ""
	}
	return c.echoes[len(c.echoes)-1].Text
}

func newTestHandler(t *testing.T, text string) (*Handler, *editor.Context, *fakeClient, *sched.Manual) {
	t.Helper()
	ctx := editor.NewContext(editor.NewBuffer(text), nil)
	client := &fakeClient{}
	ctx.SetClient(client)
	ms := sched.NewManual()
	cfg := DefaultConfig()
	cfg.Scheduler = ms
	return NewHandler(ctx, cfg), ctx, client, ms
}

// feed dispatches a key-notation sequence, failing the test on error.
func feed(t *testing.T, h *Handler, seq string) {
	t.Helper()
	for _, k := range key.MustParseSequence(seq) {
		if err := h.HandleKey(k, false); err != nil {
			t.Fatalf("HandleKey(%s): %v", k, err)
		}
	}
}

func TestNewHandlerStartsInNormalMode(t *testing.T) {
	h, ctx, _, _ := newTestHandler(t, "")
	if got := h.CurrentModeName(); got != "normal" {
		t.Errorf("mode = %q, want normal", got)
	}
	if ctx.InputHandler() != editor.InputHandler(h) {
		t.Error("handler not installed on the context")
	}
}

func TestPopBottomModePanics(t *testing.T) {
	h, _, _, _ := newTestHandler(t, "")
	defer func() {
		if recover() == nil {
			t.Error("expected panic when popping the bottom mode")
		}
	}()
	h.popMode(h.currentMode())
}

func TestPopNonTopModePanics(t *testing.T) {
	h, _, _, _ := newTestHandler(t, "")
	bottom := h.currentMode()
	feed(t, h, "i")
	defer func() {
		if recover() == nil {
			t.Error("expected panic when popping a covered mode")
		}
	}()
	h.popMode(bottom)
}

func TestResetNormalMode(t *testing.T) {
	h, _, _, _ := newTestHandler(t, "")
	feed(t, h, "i") // insert mode
	h.Prompt(">", "", "", editor.FacePrompt, PromptNone, 0, nil, nil)
	if got := h.CurrentModeName(); got != "prompt" {
		t.Fatalf("mode = %q, want prompt", got)
	}

	h.ResetNormalMode()
	if got := h.CurrentModeName(); got != "normal" {
		t.Errorf("mode = %q, want normal", got)
	}
	if len(h.modeStack) != 1 {
		t.Errorf("stack depth = %d, want 1", len(h.modeStack))
	}
}

func TestNormalCountAccumulates(t *testing.T) {
	h, ctx, _, _ := newTestHandler(t, "abcdefgh")
	feed(t, h, "3l")
	if cur := ctx.Selections().Main().Cursor; cur.Col != 3 {
		t.Errorf("cursor col = %d, want 3", cur.Col)
	}

	// Multi-digit counts.
	feed(t, h, "12")
	info := h.ModeInfo()
	if info.Normal == nil || info.Normal.Count != 12 {
		t.Fatalf("pending params = %+v, want count 12", info.Normal)
	}
	if !strings.Contains(info.Display.Text, "12") {
		t.Errorf("mode line %q does not show the count", info.Display.Text)
	}

	// Escape discards the pending count.
	feed(t, h, "<esc>l")
	if cur := ctx.Selections().Main().Cursor; cur.Col != 4 {
		t.Errorf("cursor col = %d, want 4 after discarded count", cur.Col)
	}
}

func TestModeInfoShowsRecordingIndicator(t *testing.T) {
	h, _, _, _ := newTestHandler(t, "")
	if err := h.StartRecording('m'); err != nil {
		t.Fatal(err)
	}
	if got := h.ModeInfo().Display.Text; !strings.Contains(got, "recording: m") {
		t.Errorf("mode line = %q, want recording indicator", got)
	}
	h.StopRecording()
	if got := h.ModeInfo().Display.Text; strings.Contains(got, "recording") {
		t.Errorf("mode line = %q still shows recording", got)
	}
}

func TestWithForcedNormal(t *testing.T) {
	h, ctx, _, _ := newTestHandler(t, "abc")
	feed(t, h, "i") // the forced mode must cover insert

	err := h.WithForcedNormal(NormalParams{Count: 2}, func() error {
		if got := h.CurrentModeName(); got != "normal" {
			t.Errorf("mode inside fn = %q, want normal", got)
		}
		// Commands run with the forced params.
		return h.HandleKey(key.FromRune('l'), true)
	})
	if err != nil {
		t.Fatalf("WithForcedNormal: %v", err)
	}
	if cur := ctx.Selections().Main().Cursor; cur.Col != 2 {
		t.Errorf("cursor col = %d, want 2 (forced count)", cur.Col)
	}
	if got := h.CurrentModeName(); got != "insert" {
		t.Errorf("mode after fn = %q, want insert restored", got)
	}
}

func TestWithForcedNormalErrorStillRemoves(t *testing.T) {
	h, _, _, _ := newTestHandler(t, "")
	want := errors.New("boom")
	err := h.WithForcedNormal(NormalParams{}, func() error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
	if got := len(h.modeStack); got != 1 {
		t.Errorf("stack depth = %d, want 1 after error", got)
	}
}

func TestWithForcedNormalSkipsWhenAlreadyNormal(t *testing.T) {
	h, _, _, _ := newTestHandler(t, "")
	err := h.WithForcedNormal(NormalParams{}, func() error {
		if got := len(h.modeStack); got != 1 {
			t.Errorf("stack depth = %d, want 1 (no overlay needed)", got)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestWithForcedNormalMidStackRemoval(t *testing.T) {
	h, _, _, _ := newTestHandler(t, "")
	err := h.WithForcedNormal(NormalParams{}, func() error {
		// A mode pushed inside fn outlives the forced normal mode.
		h.Prompt(">", "", "", editor.FacePrompt, PromptNone, 0, nil, nil)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := h.CurrentModeName(); got != "prompt" {
		t.Errorf("mode = %q, want prompt to survive", got)
	}
	if got := len(h.modeStack); got != 2 {
		t.Errorf("stack depth = %d, want 2", got)
	}
}

func TestCustomCommandOverride(t *testing.T) {
	ctx := editor.NewContext(editor.NewBuffer(""), nil)
	cfg := DefaultConfig()
	ran := false
	cfg.Commands = map[key.Event]NormalCommand{
		key.FromRune('x'): func(h *Handler, params NormalParams) error {
			ran = true
			return nil
		},
	}
	h := NewHandler(ctx, cfg)
	feed(t, h, "x")
	if !ran {
		t.Error("custom command did not run")
	}
}

func TestCloseStopsDispatch(t *testing.T) {
	h, _, _, _ := newTestHandler(t, "")
	h.Close()
	if err := h.HandleKey(key.FromRune('i'), false); err == nil {
		t.Error("expected error dispatching after Close")
	}
	h.Close() // idempotent
}
