package input

import (
	"errors"
	"testing"

	"github.com/kokizzu/kakoune/internal/input/key"
)

func TestRecordingCapturesDispatchedKeys(t *testing.T) {
	h, ctx, _, _ := newTestHandler(t, "")

	feed(t, h, "Qw")       // start recording into register w
	feed(t, h, "ihi<esc>") // the recorded session
	feed(t, h, "Q")        // stop

	got := ctx.Registers().Get('w')
	want := key.MustParseSequence("ihi<esc>")
	if key.FormatSequence(got) != key.FormatSequence(want) {
		t.Errorf("register w = %s, want %s",
			key.FormatSequence(got), key.FormatSequence(want))
	}
	if h.IsRecording() {
		t.Error("still recording after stop")
	}
}

func TestRecordingTogglesAreNotCaptured(t *testing.T) {
	h, ctx, _, _ := newTestHandler(t, "")

	feed(t, h, "QwQ")
	// Start key, register pick, and stop key must all stay out.
	if got := ctx.Registers().Get('w'); got != nil {
		t.Errorf("register w = %s, want empty", key.FormatSequence(got))
	}
}

func TestEmptyRecordingOverwrites(t *testing.T) {
	h, ctx, _, _ := newTestHandler(t, "")
	if err := ctx.Registers().Set('w', key.MustParseSequence("old")); err != nil {
		t.Fatal(err)
	}

	feed(t, h, "QwQ")
	if got := ctx.Registers().Get('w'); got != nil {
		t.Errorf("register w = %s, want overwritten empty", key.FormatSequence(got))
	}
}

func TestAppendRegisterRecording(t *testing.T) {
	h, ctx, _, _ := newTestHandler(t, "abc")
	if err := ctx.Registers().Set('w', key.MustParseSequence("l")); err != nil {
		t.Fatal(err)
	}

	feed(t, h, "QW") // uppercase target appends
	feed(t, h, "l")
	feed(t, h, "Q")

	got := key.FormatSequence(ctx.Registers().Get('w'))
	if got != "ll" {
		t.Errorf("register w = %q, want ll", got)
	}
}

func TestReplayedKeysAreNotReRecorded(t *testing.T) {
	h, ctx, _, _ := newTestHandler(t, "abcdef")
	if err := ctx.Registers().Set('a', key.MustParseSequence("ll")); err != nil {
		t.Fatal(err)
	}

	feed(t, h, "Qb")
	feed(t, h, "qa") // replay register a while recording into b
	feed(t, h, "Q")

	// The macro contains the keys the user pressed, not the expansion.
	if got := key.FormatSequence(ctx.Registers().Get('b')); got != "qa" {
		t.Errorf("register b = %q, want qa", got)
	}
	if cur := ctx.Selections().Main().Cursor; cur.Col != 2 {
		t.Errorf("cursor col = %d, want 2 after replay", cur.Col)
	}
}

func TestReplayCount(t *testing.T) {
	h, ctx, _, _ := newTestHandler(t, "abcdefgh")
	if err := ctx.Registers().Set('a', key.MustParseSequence("l")); err != nil {
		t.Fatal(err)
	}

	feed(t, h, "3qa")
	if cur := ctx.Selections().Main().Cursor; cur.Col != 3 {
		t.Errorf("cursor col = %d, want 3", cur.Col)
	}
}

func TestRecursiveReplayFails(t *testing.T) {
	h, ctx, _, _ := newTestHandler(t, "")
	if err := ctx.Registers().Set('a', key.MustParseSequence("qa")); err != nil {
		t.Fatal(err)
	}

	feed(t, h, "q")
	err := h.HandleKey(key.FromRune('a'), false)
	if !errors.Is(err, ErrRecursiveMacro) {
		t.Errorf("err = %v, want ErrRecursiveMacro", err)
	}
}

func TestReplayEmptyRegisterFails(t *testing.T) {
	h, _, _, _ := newTestHandler(t, "")
	if err := h.ReplayRegister('z', 1); err == nil {
		t.Error("expected error replaying an empty register")
	}
}

func TestStartRecordingErrors(t *testing.T) {
	h, _, _, _ := newTestHandler(t, "")

	if err := h.StartRecording('!'); !errors.Is(err, ErrInvalidRegister) {
		t.Errorf("err = %v, want ErrInvalidRegister", err)
	}
	if err := h.StartRecording('a'); err != nil {
		t.Fatal(err)
	}
	if err := h.StartRecording('b'); !errors.Is(err, ErrAlreadyRecording) {
		t.Errorf("err = %v, want ErrAlreadyRecording", err)
	}
}

func TestStopRecordingWithoutStartIsNoop(t *testing.T) {
	h, ctx, _, _ := newTestHandler(t, "")
	h.StopRecording()
	if regs := ctx.Registers().Names(); len(regs) != 0 {
		t.Errorf("registers touched: %q", regs)
	}
}

func TestDropLastRecordedKey(t *testing.T) {
	h, ctx, _, _ := newTestHandler(t, "abc")

	feed(t, h, "Qw")
	feed(t, h, "ll")
	h.DropLastRecordedKey()
	feed(t, h, "Q")

	if got := key.FormatSequence(ctx.Registers().Get('w')); got != "l" {
		t.Errorf("register w = %q, want l", got)
	}
}

func TestRecordingRegister(t *testing.T) {
	h, _, _, _ := newTestHandler(t, "")
	if h.RecordingRegister() != 0 {
		t.Error("unexpected recording register before start")
	}
	if err := h.StartRecording('C'); err != nil {
		t.Fatal(err)
	}
	// Uppercase targets report their lowercase storage slot.
	if got := h.RecordingRegister(); got != 'c' {
		t.Errorf("recording register = %c, want c", got)
	}
}
