// Package key defines keystroke values and their textual notation.
//
// Events are immutable, equality-comparable values distinguishing
// literal characters from control and function keys. The notation
// ("a", "<esc>", "<c-u>") is used for key tables, macros shown to the
// user, and tests.
package key
