package editor

import (
	"fmt"
	"sync"
	"unicode"

	"github.com/kokizzu/kakoune/internal/input/key"
)

// Valid register names are lowercase letters and digits. Uppercase
// letters address the corresponding lowercase register in append mode.
const (
	minLetterRegister = 'a'
	maxLetterRegister = 'z'
	minDigitRegister  = '0'
	maxDigitRegister  = '9'
)

// IsValidRegister returns true if r names a register (a-z, 0-9).
func IsValidRegister(r rune) bool {
	return (r >= minLetterRegister && r <= maxLetterRegister) ||
		(r >= minDigitRegister && r <= maxDigitRegister)
}

// IsAppendRegister returns true for uppercase letters, which append to
// their lowercase counterpart.
func IsAppendRegister(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// NormalizeRegister maps a register name to its storage slot.
// Uppercase letters fold to lowercase; invalid names return 0.
func NormalizeRegister(r rune) rune {
	if IsAppendRegister(r) {
		return unicode.ToLower(r)
	}
	if IsValidRegister(r) {
		return r
	}
	return 0
}

// Registers stores ordered key sequences keyed by a single character.
// It is the external storage the macro recorder commits into.
type Registers struct {
	mu   sync.Mutex
	seqs map[rune][]key.Event
}

// NewRegisters creates empty register storage.
func NewRegisters() *Registers {
	return &Registers{seqs: make(map[rune][]key.Event)}
}

// Get returns a copy of the sequence stored in a register. An empty or
// invalid register yields nil.
func (r *Registers) Get(reg rune) []key.Event {
	reg = NormalizeRegister(reg)
	r.mu.Lock()
	defer r.mu.Unlock()
	seq := r.seqs[reg]
	if len(seq) == 0 {
		return nil
	}
	out := make([]key.Event, len(seq))
	copy(out, seq)
	return out
}

// Set replaces the content of a register. An empty sequence is stored
// as empty, not removed: overwriting with nothing is meaningful for
// macro recording.
func (r *Registers) Set(reg rune, seq []key.Event) error {
	reg = NormalizeRegister(reg)
	if reg == 0 {
		return fmt.Errorf("invalid register %q", reg)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]key.Event, len(seq))
	copy(stored, seq)
	r.seqs[reg] = stored
	return nil
}

// Append adds a sequence to the end of a register.
func (r *Registers) Append(reg rune, seq []key.Event) error {
	reg = NormalizeRegister(reg)
	if reg == 0 {
		return fmt.Errorf("invalid register %q", reg)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seqs[reg] = append(r.seqs[reg], seq...)
	return nil
}

// Clear removes the content of a register.
func (r *Registers) Clear(reg rune) {
	reg = NormalizeRegister(reg)
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.seqs, reg)
}

// Names returns the registers that currently hold a sequence.
func (r *Registers) Names() []rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]rune, 0, len(r.seqs))
	for reg, seq := range r.seqs {
		if len(seq) > 0 {
			out = append(out, reg)
		}
	}
	return out
}
