package editor

import "sort"

// Selection is an anchor/cursor pair. A bare cursor has Anchor equal
// to Cursor.
type Selection struct {
	Anchor Coord
	Cursor Coord
}

// At creates a collapsed selection at the given position.
func At(c Coord) Selection {
	return Selection{Anchor: c, Cursor: c}
}

// Min returns the selection end that comes first in document order.
func (s Selection) Min() Coord {
	if s.Cursor.Before(s.Anchor) {
		return s.Cursor
	}
	return s.Anchor
}

// Max returns the selection end that comes last in document order.
func (s Selection) Max() Coord {
	if s.Cursor.Before(s.Anchor) {
		return s.Anchor
	}
	return s.Cursor
}

// SelectionList holds the active selections. It is never empty; the
// main selection is the one cursor operations report.
type SelectionList struct {
	sels []Selection
	main int
}

// NewSelectionList creates a selection list. With no arguments a
// single collapsed selection at the origin is used.
func NewSelectionList(sels ...Selection) *SelectionList {
	if len(sels) == 0 {
		sels = []Selection{At(Coord{})}
	}
	return &SelectionList{sels: sels, main: len(sels) - 1}
}

// Len returns the number of selections.
func (l *SelectionList) Len() int {
	return len(l.sels)
}

// Main returns the main selection.
func (l *SelectionList) Main() Selection {
	return l.sels[l.main]
}

// All returns the selections in document order of their cursors.
func (l *SelectionList) All() []Selection {
	out := make([]Selection, len(l.sels))
	copy(out, l.sels)
	sort.Slice(out, func(i, j int) bool { return out[i].Cursor.Before(out[j].Cursor) })
	return out
}

// Get returns selection i in internal order.
func (l *SelectionList) Get(i int) Selection {
	return l.sels[i]
}

// Set replaces selection i.
func (l *SelectionList) Set(i int, s Selection) {
	l.sels[i] = s
}

// Replace swaps in a new set of selections, keeping the last one main.
func (l *SelectionList) Replace(sels []Selection) {
	if len(sels) == 0 {
		return
	}
	l.sels = sels
	l.main = len(sels) - 1
}

// CollapseTo collapses every selection onto its cursor.
func (l *SelectionList) CollapseTo() {
	for i, s := range l.sels {
		l.sels[i] = At(s.Cursor)
	}
}

// indicesByCursorDesc returns selection indices ordered by cursor
// position, last in the document first. Mutations applied in this
// order leave earlier coordinates valid.
func (l *SelectionList) indicesByCursorDesc() []int {
	idx := make([]int, len(l.sels))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return l.sels[idx[b]].Cursor.Before(l.sels[idx[a]].Cursor)
	})
	return idx
}
