package editor

import (
	"testing"

	"github.com/kokizzu/kakoune/internal/input/key"
)

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		reg  rune
		want rune
	}{
		{'a', 'a'},
		{'z', 'z'},
		{'5', '5'},
		{'A', 'a'},
		{'Z', 'z'},
		{'!', 0},
		{' ', 0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := NormalizeRegister(tt.reg); got != tt.want {
			t.Errorf("NormalizeRegister(%q) = %q, want %q", tt.reg, got, tt.want)
		}
	}
	if !IsAppendRegister('A') || IsAppendRegister('a') {
		t.Error("IsAppendRegister misclassified")
	}
}

func TestRegistersSetGet(t *testing.T) {
	r := NewRegisters()
	seq := key.MustParseSequence("abc")
	if err := r.Set('q', seq); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got := r.Get('q')
	if key.FormatSequence(got) != "abc" {
		t.Errorf("Get = %q, want %q", key.FormatSequence(got), "abc")
	}

	// Stored copy is independent of the caller's slice.
	seq[0] = key.FromRune('z')
	if key.FormatSequence(r.Get('q')) != "abc" {
		t.Error("register content aliased the input slice")
	}

	// Overwriting with empty clears the content.
	if err := r.Set('q', nil); err != nil {
		t.Fatalf("Set empty: %v", err)
	}
	if r.Get('q') != nil {
		t.Error("expected empty register after overwrite")
	}

	if err := r.Set('!', seq); err == nil {
		t.Error("expected error for invalid register")
	}
}

func TestRegistersAppendFoldsCase(t *testing.T) {
	r := NewRegisters()
	if err := r.Set('m', key.MustParseSequence("ab")); err != nil {
		t.Fatal(err)
	}
	if err := r.Append('M', key.MustParseSequence("cd")); err != nil {
		t.Fatal(err)
	}
	if got := key.FormatSequence(r.Get('m')); got != "abcd" {
		t.Errorf("register m = %q, want %q", got, "abcd")
	}
}

func TestNestedBool(t *testing.T) {
	var b NestedBool
	if b.Get() {
		t.Fatal("fresh NestedBool should be unset")
	}
	r1 := b.Set()
	r2 := b.Set()
	if !b.Get() {
		t.Fatal("should be set while acquisitions live")
	}
	r1()
	if !b.Get() {
		t.Fatal("should stay set while one acquisition lives")
	}
	r2()
	r2() // double release is ignored
	if b.Get() {
		t.Fatal("should be unset after all releases")
	}
}
