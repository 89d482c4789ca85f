package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kokizzu/kakoune/internal/input/key"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Event
	}{
		{
			name: "plain rune",
			ev:   tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone),
			want: key.FromRune('a'),
		},
		{
			name: "alt rune",
			ev:   tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt),
			want: key.Alt('x'),
		},
		{
			name: "escape",
			ev:   tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
			want: key.Escape(),
		},
		{
			name: "enter is not ctrl-m",
			ev:   tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
			want: key.Enter(),
		},
		{
			name: "tab is not ctrl-i",
			ev:   tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone),
			want: key.Special(key.CodeTab),
		},
		{
			name: "backspace2",
			ev:   tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone),
			want: key.Backspace(),
		},
		{
			name: "ctrl chord",
			ev:   tcell.NewEventKey(tcell.KeyCtrlU, 0, tcell.ModCtrl),
			want: key.Ctrl('u'),
		},
		{
			name: "arrow",
			ev:   tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone),
			want: key.Special(key.CodeLeft),
		},
		{
			name: "function key",
			ev:   tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone),
			want: key.Special(key.CodeF5),
		},
		{
			name: "shifted arrow",
			ev:   tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift),
			want: key.Event{Code: key.CodeUp, Mods: key.ModShift},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TranslateKey(tt.ev)
			if !ok {
				t.Fatal("event not translated")
			}
			if got != tt.want {
				t.Errorf("TranslateKey = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDisplayCol(t *testing.T) {
	if got := displayCol("ab", 2); got != 2 {
		t.Errorf("displayCol = %d, want 2", got)
	}
	if got := displayCol("\tx", 1); got != 8 {
		t.Errorf("displayCol after tab = %d, want 8", got)
	}
}
