package input

import (
	"fmt"
	"strings"

	"github.com/kokizzu/kakoune/internal/editor"
)

// AutoInfo is a bitmask selecting which situations show contextual
// info boxes automatically.
type AutoInfo uint8

const (
	AutoInfoNone    AutoInfo = 0
	AutoInfoCommand AutoInfo = 1 << 0
	AutoInfoOnKey   AutoInfo = 1 << 1
	AutoInfoNormal  AutoInfo = 1 << 2
)

// String returns the enabled categories, comma separated.
func (a AutoInfo) String() string {
	var names []string
	if a&AutoInfoCommand != 0 {
		names = append(names, "command")
	}
	if a&AutoInfoOnKey != 0 {
		names = append(names, "onkey")
	}
	if a&AutoInfoNormal != 0 {
		names = append(names, "normal")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// ParseAutoInfo builds a mask from category names.
func ParseAutoInfo(names []string) (AutoInfo, error) {
	var mask AutoInfo
	for _, n := range names {
		switch strings.TrimSpace(strings.ToLower(n)) {
		case "", "none":
		case "command":
			mask |= AutoInfoCommand
		case "onkey":
			mask |= AutoInfoOnKey
		case "normal":
			mask |= AutoInfoNormal
		default:
			return AutoInfoNone, fmt.Errorf("unknown autoinfo category %q", n)
		}
	}
	return mask, nil
}

// AutoComplete is a bitmask selecting where completion engages
// automatically.
type AutoComplete uint8

const (
	AutoCompleteNone   AutoComplete = 0
	AutoCompleteInsert AutoComplete = 1 << 0
	AutoCompletePrompt AutoComplete = 1 << 1
)

// String returns the enabled categories, comma separated.
func (a AutoComplete) String() string {
	var names []string
	if a&AutoCompleteInsert != 0 {
		names = append(names, "insert")
	}
	if a&AutoCompletePrompt != 0 {
		names = append(names, "prompt")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// ParseAutoComplete builds a mask from category names.
func ParseAutoComplete(names []string) (AutoComplete, error) {
	var mask AutoComplete
	for _, n := range names {
		switch strings.TrimSpace(strings.ToLower(n)) {
		case "", "none":
		case "insert":
			mask |= AutoCompleteInsert
		case "prompt":
			mask |= AutoCompletePrompt
		default:
			return AutoCompleteNone, fmt.Errorf("unknown autocomplete category %q", n)
		}
	}
	return mask, nil
}

// ShouldShowInfo reports whether an info box in the mask's category
// may show: the category must be enabled and a client attached.
func ShouldShowInfo(mask, enabled AutoInfo, ctx *editor.Context) bool {
	return mask&enabled != 0 && ctx.Client() != nil
}

// ShowAutoInfoIfn displays an info box when the category is enabled.
// Returns true when the box was shown.
func ShowAutoInfoIfn(title, content string, mask, enabled AutoInfo, ctx *editor.Context) bool {
	if !ShouldShowInfo(mask, enabled, ctx) {
		return false
	}
	ctx.Client().InfoShow(title, content)
	return true
}

// HideAutoInfoIfn removes the info box when hide is set and a client
// is attached.
func HideAutoInfoIfn(ctx *editor.Context, hide bool) {
	if hide && ctx.Client() != nil {
		ctx.Client().InfoHide()
	}
}
