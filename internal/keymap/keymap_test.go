package keymap

import "testing"

func TestKeyReserved(t *testing.T) {
	tests := []struct {
		in   rune
		want string
	}{
		{' ', "space"},
		{'\n', "Return"},
		{'\r', "Return"},
		{'\t', "Tab"},
		{'"', "quotedbl"},
		{'\'', "apostrophe"},
		{'\\', "backslash"},
		{'~', "asciitilde"},
		{'#', "numbersign"},
		{'_', "underscore"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Key(tt.in); got != tt.want {
				t.Errorf("Key(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestKeyIdentity checks every printable ASCII character outside the
// reserved table maps to itself.
func TestKeyIdentity(t *testing.T) {
	for r := rune(0x21); r < 0x7f; r++ {
		if IsReserved(r) {
			continue
		}
		if got := Key(r); got != string(r) {
			t.Errorf("Key(%q) = %q, want identity", r, got)
		}
	}
}

// TestKeyStable checks the reserved table is deterministic and never yields
// an empty keysym.
func TestKeyStable(t *testing.T) {
	for r, name := range reserved {
		if name == "" {
			t.Errorf("reserved[%q] is empty", r)
		}
		for i := 0; i < 3; i++ {
			if got := Key(r); got != name {
				t.Fatalf("Key(%q) = %q on call %d, want %q", r, got, i, name)
			}
		}
	}
}

func TestKeyNonASCII(t *testing.T) {
	if got := Key('é'); got != "é" {
		t.Errorf("Key('é') = %q, want %q", got, "é")
	}
}
