// Package input is the keystroke dispatch core of the editor.
//
// A Handler owns a stack of modes; the top mode interprets every key.
// Dispatch is re-entrant: a mode handler may push or pop modes, open a
// prompt, or feed further synthetic keys before returning, and the
// recorder relies on dispatch depth to tell live keys from replayed
// ones. Everything runs on one logical thread; there is no locking
// around the mode stack or the recording state.
package input
