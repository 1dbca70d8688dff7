package text

import "github.com/mattn/go-runewidth"

// cond pins East Asian ambiguous runes to narrow so widths never depend on
// the process locale. Every width computation in glyphbox goes through it.
var cond = &runewidth.Condition{EastAsianWidth: false}

// RuneWidth returns the number of terminal cells r occupies:
// 0 for combining marks, 2 for wide CJK and emoji, 1 otherwise.
func RuneWidth(r rune) int {
	w := cond.RuneWidth(r)
	if w == 0 && r < 0x300 {
		// C0/C1 controls and the soft hyphen still take a cell in art.
		return 1
	}
	return w
}

// DisplayWidth sums RuneWidth over every codepoint of s, so
// DisplayWidth(a+b) == DisplayWidth(a)+DisplayWidth(b).
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		n += RuneWidth(r)
	}
	return n
}

// Cells expands a line into one entry per display column. Wide runes
// occupy consecutive cells holding the same rune; zero-width runes are
// dropped.
func Cells(line string) []rune {
	cells := make([]rune, 0, len(line))
	for _, r := range line {
		for i := 0; i < RuneWidth(r); i++ {
			cells = append(cells, r)
		}
	}
	return cells
}
