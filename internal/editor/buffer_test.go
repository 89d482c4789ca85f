package editor

import "testing"

func TestBufferInsertRune(t *testing.T) {
	b := NewBuffer("hello")
	cur := b.InsertRune(Coord{0, 5}, '!')
	if got := b.String(); got != "hello!" {
		t.Errorf("buffer = %q, want %q", got, "hello!")
	}
	if cur != (Coord{0, 6}) {
		t.Errorf("cursor = %v, want {0 6}", cur)
	}

	b.InsertRune(Coord{0, 0}, '>')
	if got := b.String(); got != ">hello!" {
		t.Errorf("buffer = %q, want %q", got, ">hello!")
	}
}

func TestBufferBreak(t *testing.T) {
	b := NewBuffer("hello world")
	cur := b.Break(Coord{0, 5})
	if got := b.String(); got != "hello\n world" {
		t.Errorf("buffer = %q, want %q", got, "hello\n world")
	}
	if cur != (Coord{1, 0}) {
		t.Errorf("cursor = %v, want {1 0}", cur)
	}
}

func TestBufferDeleteBack(t *testing.T) {
	b := NewBuffer("ab\ncd")

	cur := b.DeleteBack(Coord{1, 1})
	if got := b.String(); got != "ab\nd" {
		t.Errorf("buffer = %q, want %q", got, "ab\nd")
	}
	if cur != (Coord{1, 0}) {
		t.Errorf("cursor = %v, want {1 0}", cur)
	}

	// Deleting at a line start joins with the previous line.
	cur = b.DeleteBack(Coord{1, 0})
	if got := b.String(); got != "abd" {
		t.Errorf("buffer = %q, want %q", got, "abd")
	}
	if cur != (Coord{0, 2}) {
		t.Errorf("cursor = %v, want {0 2}", cur)
	}

	// At the buffer start it is a no-op.
	if cur = b.DeleteBack(Coord{0, 0}); cur != (Coord{0, 0}) {
		t.Errorf("cursor = %v, want {0 0}", cur)
	}
}

func TestBufferDeleteForward(t *testing.T) {
	b := NewBuffer("ab\ncd")
	b.DeleteForward(Coord{0, 0})
	if got := b.String(); got != "b\ncd" {
		t.Errorf("buffer = %q, want %q", got, "b\ncd")
	}
	b.DeleteForward(Coord{0, 1})
	if got := b.String(); got != "bcd" {
		t.Errorf("buffer = %q, want %q", got, "bcd")
	}
}

func TestBufferDeleteRange(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		from, to Coord
		want     string
	}{
		{"same line", "hello", Coord{0, 1}, Coord{0, 4}, "ho"},
		{"across lines", "abc\ndef\nghi", Coord{0, 2}, Coord{2, 1}, "abhi"},
		{"reversed args", "hello", Coord{0, 4}, Coord{0, 1}, "ho"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(tt.text)
			b.DeleteRange(tt.from, tt.to)
			if got := b.String(); got != tt.want {
				t.Errorf("buffer = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBufferInsertText(t *testing.T) {
	b := NewBuffer("xy")
	cur := b.InsertText(Coord{0, 1}, "a\nb")
	if got := b.String(); got != "xa\nby" {
		t.Errorf("buffer = %q, want %q", got, "xa\nby")
	}
	if cur != (Coord{1, 1}) {
		t.Errorf("cursor = %v, want {1 1}", cur)
	}
}

func TestBufferReplaceRune(t *testing.T) {
	b := NewBuffer("abc")
	b.ReplaceRune(Coord{0, 1}, 'X')
	if got := b.String(); got != "aXc" {
		t.Errorf("buffer = %q, want %q", got, "aXc")
	}
	// Past the line end it inserts.
	b.ReplaceRune(Coord{0, 3}, '!')
	if got := b.String(); got != "aXc!" {
		t.Errorf("buffer = %q, want %q", got, "aXc!")
	}
}

func TestBufferClamp(t *testing.T) {
	b := NewBuffer("ab\ncdef")
	tests := []struct {
		in, want Coord
	}{
		{Coord{-1, 0}, Coord{0, 0}},
		{Coord{0, 99}, Coord{0, 2}},
		{Coord{9, 1}, Coord{1, 1}},
		{Coord{1, -3}, Coord{1, 0}},
	}
	for _, tt := range tests {
		if got := b.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
