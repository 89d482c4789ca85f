// Package editor provides the collaborator surface the input dispatch
// core is built against: a line-based text buffer, selections, key
// registers, the client used for status and info display, and the
// Context value threaded through every callback.
//
// The buffer and selection model here is deliberately minimal; the
// input core consumes it only through the Context operations.
package editor
