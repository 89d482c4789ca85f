package editor

// NestedBool is a boolean that stays set while any of its nested
// acquisitions is live. It replaces scoped boolean toggling across
// recursive frames: each Set returns a release function, and the value
// reads true until every release has run.
type NestedBool struct {
	depth int
}

// Set marks the flag and returns the matching release function.
// Releases must be called exactly once, normally via defer.
func (b *NestedBool) Set() func() {
	b.depth++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		b.depth--
	}
}

// Get reports whether any acquisition is live.
func (b *NestedBool) Get() bool {
	return b.depth > 0
}
