package key

import (
	"fmt"
	"strings"
)

// codeNames maps notation names to key codes.
var codeNames = map[string]Code{
	"esc":       CodeEscape,
	"ret":       CodeEnter,
	"tab":       CodeTab,
	"backspace": CodeBackspace,
	"del":       CodeDelete,
	"home":      CodeHome,
	"end":       CodeEnd,
	"pageup":    CodePageUp,
	"pagedown":  CodePageDown,
	"up":        CodeUp,
	"down":      CodeDown,
	"left":      CodeLeft,
	"right":     CodeRight,
}

func init() {
	for i := 0; i < 12; i++ {
		codeNames[fmt.Sprintf("f%d", i+1)] = CodeF1 + Code(i)
	}
}

// Parse parses a single key in notation form: "a", "<esc>", "<c-u>",
// "<a-ret>". Bare specs must be a single character.
func Parse(spec string) (Event, error) {
	if spec == "" {
		return Event{}, fmt.Errorf("empty key spec")
	}

	if !strings.HasPrefix(spec, "<") {
		runes := []rune(spec)
		if len(runes) != 1 {
			return Event{}, fmt.Errorf("invalid key spec %q", spec)
		}
		return FromRune(runes[0]), nil
	}

	if !strings.HasSuffix(spec, ">") {
		return Event{}, fmt.Errorf("unterminated key spec %q", spec)
	}

	body := spec[1 : len(spec)-1]
	var mods Modifier
	for done := false; !done; {
		switch {
		case strings.HasPrefix(body, "c-"):
			mods = mods.With(ModCtrl)
			body = body[2:]
		case strings.HasPrefix(body, "a-"):
			mods = mods.With(ModAlt)
			body = body[2:]
		case strings.HasPrefix(body, "s-"):
			mods = mods.With(ModShift)
			body = body[2:]
		default:
			done = true
		}
	}

	switch body {
	case "":
		return Event{}, fmt.Errorf("missing key name in %q", spec)
	case "space":
		return Event{Code: CodeRune, Rune: ' ', Mods: mods}, nil
	case "lt":
		return Event{Code: CodeRune, Rune: '<', Mods: mods}, nil
	case "gt":
		return Event{Code: CodeRune, Rune: '>', Mods: mods}, nil
	}
	if code, ok := codeNames[strings.ToLower(body)]; ok {
		return Event{Code: code, Mods: mods}, nil
	}
	runes := []rune(body)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("unknown key name %q", body)
	}
	return Event{Code: CodeRune, Rune: runes[0], Mods: mods}, nil
}

// ParseSequence parses a string of keys in notation form, e.g.
// "ihello<esc>". Returns the parsed events in order.
func ParseSequence(s string) ([]Event, error) {
	var events []Event
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '<' {
			events = append(events, FromRune(runes[i]))
			continue
		}
		end := -1
		for j := i + 1; j < len(runes); j++ {
			if runes[j] == '>' {
				end = j
				break
			}
		}
		if end < 0 {
			return nil, fmt.Errorf("unterminated key spec at offset %d in %q", i, s)
		}
		ev, err := Parse(string(runes[i : end+1]))
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
		i = end
	}
	return events, nil
}

// MustParseSequence is ParseSequence that panics on malformed input.
// Intended for static key tables and tests.
func MustParseSequence(s string) []Event {
	events, err := ParseSequence(s)
	if err != nil {
		panic(err)
	}
	return events
}

// FormatSequence renders events back into key notation.
func FormatSequence(events []Event) string {
	var b strings.Builder
	for _, ev := range events {
		b.WriteString(ev.String())
	}
	return b.String()
}
