package boxes

import "github.com/drake/glyphbox/text"

// Measure returns the grid size of rendered art: the widest line in
// display cells (escape codes ignored) by the number of lines.
func Measure(boxText string) Size {
	lines := text.Lines(boxText)
	cols := 0
	for _, line := range lines {
		cols = max(cols, text.DisplayWidth(text.StripANSI(line)))
	}
	return Size{Cols: cols, Rows: len(lines)}
}
