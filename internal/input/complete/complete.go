// Package complete provides prompt completers backed by fuzzy
// matching.
package complete

import (
	"unicode"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"github.com/kokizzu/kakoune/internal/editor"
	"github.com/kokizzu/kakoune/internal/input"
	"github.com/kokizzu/kakoune/internal/input/history"
)

// Words builds a completer matching the word under the cursor against
// a fixed candidate list. With an empty pattern every candidate is
// offered in the given order; otherwise candidates come back ranked by
// match quality.
func Words(candidates []string) input.PromptCompleter {
	return func(ctx *editor.Context, text string, cursor int) input.Completions {
		cursor = clampCursor(text, cursor)
		start := wordStart(text, cursor)
		return match(text[start:cursor], start, candidates)
	}
}

// History builds a completer drawing candidates from a history slot,
// most recent first. The whole prompt line up to the cursor is the
// pattern.
func History(store *history.Store, p history.Partition, register rune) input.PromptCompleter {
	return func(ctx *editor.Context, text string, cursor int) input.Completions {
		cursor = clampCursor(text, cursor)
		entries := store.Entries(p, register)
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
		return match(text[:cursor], 0, entries)
	}
}

func match(pattern string, start int, candidates []string) input.Completions {
	if pattern == "" {
		out := make([]string, len(candidates))
		copy(out, candidates)
		return input.Completions{Start: start, Candidates: out}
	}
	matches := fuzzy.Find(pattern, candidates)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return input.Completions{Start: start, Candidates: out}
}

func clampCursor(text string, cursor int) int {
	if cursor < 0 {
		return 0
	}
	if cursor > len(text) {
		return len(text)
	}
	return cursor
}

// wordStart returns the byte offset where the word containing the
// cursor begins.
func wordStart(text string, cursor int) int {
	start := cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsSpace(r) {
			break
		}
		start -= size
	}
	return start
}
