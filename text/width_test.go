package text

import "testing"

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"hello", 5},
		{"a\u0301", 1},
		{"界", 2},
		{"🙂", 2},
		{"A🙂B", 4},
		{"╭──╮", 4},
		{"", 0},
	}
	for _, tt := range tests {
		if got := DisplayWidth(tt.in); got != tt.want {
			t.Errorf("DisplayWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// Width must be additive unless the suffix starts with a combining mark.
func TestDisplayWidthAdditive(t *testing.T) {
	parts := []string{"abc", "界界", "🙂", " ", "\u00e9", "╔═╗", "x\u0301y", "\t"}
	for _, a := range parts {
		for _, b := range parts {
			if got, want := DisplayWidth(a+b), DisplayWidth(a)+DisplayWidth(b); got != want {
				t.Errorf("DisplayWidth(%q+%q) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestCellsExpandsWideRunes(t *testing.T) {
	cells := Cells("a界b")
	want := []rune{'a', '界', '界', 'b'}
	if len(cells) != len(want) {
		t.Fatalf("got %d cells, want %d", len(cells), len(want))
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("cell %d = %q, want %q", i, cells[i], want[i])
		}
	}
}

func TestStripANSI(t *testing.T) {
	if got := StripANSI("\x1b[31mred\x1b[0m box"); got != "red box" {
		t.Errorf("StripANSI = %q", got)
	}
}

func TestLines(t *testing.T) {
	if got := Lines("a\nb\n"); len(got) != 2 {
		t.Errorf("Lines with trailing newline = %q", got)
	}
	if got := Lines(""); len(got) != 1 || got[0] != "" {
		t.Errorf("Lines(\"\") = %q", got)
	}
}
