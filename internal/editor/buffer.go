package editor

import "strings"

// Coord is a position in the buffer. Lines and columns are 0-indexed;
// Col counts runes, not bytes.
type Coord struct {
	Line int
	Col  int
}

// Before reports document order.
func (c Coord) Before(o Coord) bool {
	return c.Line < o.Line || (c.Line == o.Line && c.Col < o.Col)
}

// Buffer is a minimal line-based text buffer. It exists so the input
// core has something concrete to drive in tests and the demo binary;
// real buffer algorithms live outside this repository's scope.
type Buffer struct {
	lines [][]rune
}

// NewBuffer creates a buffer from text. An empty string yields a
// single empty line; a buffer always has at least one line.
func NewBuffer(text string) *Buffer {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return &Buffer{lines: lines}
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of line i, or "" when out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return string(b.lines[i])
}

// LineLen returns the rune length of line i.
func (b *Buffer) LineLen(i int) int {
	if i < 0 || i >= len(b.lines) {
		return 0
	}
	return len(b.lines[i])
}

// String returns the full buffer content.
func (b *Buffer) String() string {
	parts := make([]string, len(b.lines))
	for i, l := range b.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// Clamp confines a coordinate to valid buffer positions. The column
// may equal the line length (cursor past the last character).
func (b *Buffer) Clamp(at Coord) Coord {
	if at.Line < 0 {
		at.Line = 0
	}
	if at.Line >= len(b.lines) {
		at.Line = len(b.lines) - 1
	}
	if at.Col < 0 {
		at.Col = 0
	}
	if at.Col > len(b.lines[at.Line]) {
		at.Col = len(b.lines[at.Line])
	}
	return at
}

// InsertRune inserts r before at and returns the position after it.
func (b *Buffer) InsertRune(at Coord, r rune) Coord {
	at = b.Clamp(at)
	line := b.lines[at.Line]
	line = append(line[:at.Col:at.Col], append([]rune{r}, line[at.Col:]...)...)
	b.lines[at.Line] = line
	return Coord{Line: at.Line, Col: at.Col + 1}
}

// InsertText inserts text (which may contain newlines) before at and
// returns the position just past the inserted content.
func (b *Buffer) InsertText(at Coord, text string) Coord {
	at = b.Clamp(at)
	for _, r := range text {
		if r == '\n' {
			at = b.Break(at)
		} else {
			at = b.InsertRune(at, r)
		}
	}
	return at
}

// Break splits the line at the given position and returns the start of
// the new line.
func (b *Buffer) Break(at Coord) Coord {
	at = b.Clamp(at)
	line := b.lines[at.Line]
	tail := append([]rune(nil), line[at.Col:]...)
	b.lines[at.Line] = line[:at.Col:at.Col]
	b.lines = append(b.lines[:at.Line+1:at.Line+1],
		append([][]rune{tail}, b.lines[at.Line+1:]...)...)
	return Coord{Line: at.Line + 1, Col: 0}
}

// InsertLine inserts an empty line at index i and returns its start.
func (b *Buffer) InsertLine(i int) Coord {
	if i < 0 {
		i = 0
	}
	if i > len(b.lines) {
		i = len(b.lines)
	}
	b.lines = append(b.lines[:i:i], append([][]rune{nil}, b.lines[i:]...)...)
	return Coord{Line: i}
}

// DeleteBack removes the rune before at, joining lines across a line
// start, and returns the resulting position.
func (b *Buffer) DeleteBack(at Coord) Coord {
	at = b.Clamp(at)
	if at.Col > 0 {
		line := b.lines[at.Line]
		b.lines[at.Line] = append(line[:at.Col-1:at.Col-1], line[at.Col:]...)
		return Coord{Line: at.Line, Col: at.Col - 1}
	}
	if at.Line == 0 {
		return at
	}
	prev := b.lines[at.Line-1]
	col := len(prev)
	b.lines[at.Line-1] = append(prev, b.lines[at.Line]...)
	b.lines = append(b.lines[:at.Line], b.lines[at.Line+1:]...)
	return Coord{Line: at.Line - 1, Col: col}
}

// DeleteForward removes the rune at the given position, joining lines
// at a line end.
func (b *Buffer) DeleteForward(at Coord) {
	at = b.Clamp(at)
	line := b.lines[at.Line]
	if at.Col < len(line) {
		b.lines[at.Line] = append(line[:at.Col:at.Col], line[at.Col+1:]...)
		return
	}
	if at.Line+1 < len(b.lines) {
		b.lines[at.Line] = append(line, b.lines[at.Line+1]...)
		b.lines = append(b.lines[:at.Line+1], b.lines[at.Line+2:]...)
	}
}

// DeleteRange removes the content between from (inclusive) and to
// (exclusive), which may span lines.
func (b *Buffer) DeleteRange(from, to Coord) {
	from, to = b.Clamp(from), b.Clamp(to)
	if to.Before(from) {
		from, to = to, from
	}
	if from.Line == to.Line {
		line := b.lines[from.Line]
		b.lines[from.Line] = append(line[:from.Col:from.Col], line[to.Col:]...)
		return
	}
	head := b.lines[from.Line][:from.Col:from.Col]
	tail := b.lines[to.Line][to.Col:]
	b.lines[from.Line] = append(head, tail...)
	b.lines = append(b.lines[:from.Line+1], b.lines[to.Line+1:]...)
}

// ReplaceRune overwrites the rune at the given position. Positions at
// or past the line end insert instead.
func (b *Buffer) ReplaceRune(at Coord, r rune) {
	at = b.Clamp(at)
	if at.Col < len(b.lines[at.Line]) {
		b.lines[at.Line][at.Col] = r
		return
	}
	b.InsertRune(at, r)
}
