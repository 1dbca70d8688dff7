// Package frame recovers the border rectangle and the content rectangle of
// rendered box art without knowing the design's glyph set.
package frame

import (
	"math"
	"strings"

	"github.com/drake/glyphbox/text"
)

// MinConfidence is the score below which Detect reports no frame.
const MinConfidence = 0.35

// Frame is the outer border rectangle, in rows and display columns, both
// inclusive.
type Frame struct {
	Top        int
	Bottom     int
	Left       int
	Right      int
	Confidence float64
}

// Width returns the frame width in cells.
func (f Frame) Width() int { return f.Right - f.Left + 1 }

// Height returns the frame height in rows.
func (f Frame) Height() int { return f.Bottom - f.Top + 1 }

type rowSpan struct {
	min, max int
	ink      bool
}

func (r rowSpan) span() int { return r.max - r.min + 1 }

// Detect locates the border rectangle in art. It returns nil when the art
// has no ink or no convincing rectangle.
func Detect(art string) *Frame {
	grid := cellGrid(text.Lines(art))
	if len(grid) == 0 {
		return nil
	}

	rows := make([]rowSpan, len(grid))
	maxCols, maxSpan := 0, 0
	for i, cells := range grid {
		maxCols = max(maxCols, len(cells))
		r := rowSpan{min: -1, max: -1}
		for col, c := range cells {
			if c == ' ' {
				continue
			}
			if !r.ink {
				r.min, r.ink = col, true
			}
			r.max = col
		}
		rows[i] = r
		if r.ink {
			maxSpan = max(maxSpan, r.span())
		}
	}
	if maxSpan == 0 {
		return nil
	}

	spanThreshold := max(2, int(math.Round(float64(maxSpan)*0.6)))
	top, bottom := -1, -1
	for i, r := range rows {
		if r.ink && r.span() >= spanThreshold {
			if top == -1 {
				top = i
			}
			bottom = i
		}
	}
	if top == -1 || bottom <= top {
		top, bottom = -1, -1
		for i, r := range rows {
			if r.ink {
				if top == -1 {
					top = i
				}
				bottom = i
			}
		}
	}
	if top == -1 || bottom <= top {
		return nil
	}

	counts := make([]int, maxCols)
	for _, cells := range grid[top : bottom+1] {
		for col, c := range cells {
			if c != ' ' {
				counts[col]++
			}
		}
	}
	rowCount := bottom - top + 1
	colThreshold := max(1, int(math.Round(float64(rowCount)*0.6)))

	left, right := -1, -1
	for col, n := range counts {
		if n >= colThreshold {
			if left == -1 {
				left = col
			}
			right = col
		}
	}
	if left == -1 || right <= left {
		left, right = maxCols, -1
		for _, r := range rows {
			if r.ink {
				left = min(left, r.min)
				right = max(right, r.max)
			}
		}
	}

	widthScore := math.Min(1, float64(right-left+1)/float64(maxSpan))
	sideScore := math.Min(1, float64(counts[left]+counts[right])/float64(2*rowCount))
	confidence := (widthScore + sideScore) / 2
	if confidence < MinConfidence {
		return nil
	}
	return &Frame{Top: top, Bottom: bottom, Left: left, Right: right, Confidence: confidence}
}

// Mask blanks every glyph that lies entirely outside the frame's columns,
// keeping the art's shape so column positions are unchanged.
func Mask(art string, f Frame) string {
	lines := strings.Split(art, "\n")
	for i, line := range lines {
		var b strings.Builder
		col := 0
		for _, r := range line {
			w := text.RuneWidth(r)
			if col+w-1 >= f.Left && col <= f.Right {
				b.WriteRune(r)
			} else {
				b.WriteString(strings.Repeat(" ", w))
			}
			col += w
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

func cellGrid(lines []string) [][]rune {
	grid := make([][]rune, len(lines))
	for i, line := range lines {
		grid[i] = text.Cells(line)
	}
	return grid
}
