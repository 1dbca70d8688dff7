package frame

import (
	"math"
	"strings"

	"github.com/drake/glyphbox/text"
)

// Bounds is the content rectangle inside a Frame, rows and columns
// inclusive.
type Bounds struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// edgeBand is how many cells inside each inner edge are checked for design
// glyphs when choosing the first and last content rows.
const edgeBand = 2

// candidate is the border geometry of one interior row.
type candidate struct {
	row              int
	innerLeft        int
	innerRight       int
	leftBorderEnd    int
	rightBorderEnd   int
	leftBorderWidth  int
	rightBorderWidth int
}

func (c candidate) innerWidth() int { return c.innerRight - c.innerLeft + 1 }

// DetectInner finds the content rectangle of art inside f. glyphs is the
// design's border glyph set and may be empty; when present, rows whose
// inner edges hold border glyphs (ornamental title rows) are not taken as
// the first or last content row. It returns nil when no interior row has
// recognizable borders.
func DetectInner(art string, f Frame, glyphs string) *Bounds {
	grid := cellGrid(text.Lines(art))
	if len(grid) == 0 {
		return nil
	}
	maxCols := 0
	for _, cells := range grid {
		maxCols = max(maxCols, len(cells))
	}
	maxCols = max(maxCols, f.Right+1)
	for i, cells := range grid {
		for len(cells) < maxCols {
			cells = append(cells, ' ')
		}
		grid[i] = cells
	}

	var candidates []candidate
	for row := f.Top + 1; row <= f.Bottom-1 && row < len(grid); row++ {
		if c, ok := scanRow(grid[row], row, f); ok {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	widths := make([]int, len(candidates))
	for i, c := range candidates {
		widths[i] = c.innerWidth()
	}
	threshold := math.Max(1, float64(Median(widths))*0.6)
	var active []candidate
	for _, c := range candidates {
		if float64(c.innerWidth()) >= threshold {
			active = append(active, c)
		}
	}
	if len(active) == 0 {
		active = candidates
	}

	maxInnerLeft, minInnerRight := active[0].innerLeft, active[0].innerRight
	for _, c := range active[1:] {
		maxInnerLeft = max(maxInnerLeft, c.innerLeft)
		minInnerRight = min(minInnerRight, c.innerRight)
	}
	innerLeft := max(f.Left+1, min(maxInnerLeft, f.Right-1))
	innerRight := max(innerLeft, min(minInnerRight, f.Right-1))

	pick := func(get func(candidate) int) int {
		vals := make([]int, len(active))
		for i, c := range active {
			vals[i] = get(c)
		}
		return Mode(vals)
	}
	want := candidate{
		innerLeft:        innerLeft,
		innerRight:       innerRight,
		leftBorderEnd:    pick(func(c candidate) int { return c.leftBorderEnd }),
		rightBorderEnd:   pick(func(c candidate) int { return c.rightBorderEnd }),
		leftBorderWidth:  pick(func(c candidate) int { return c.leftBorderWidth }),
		rightBorderWidth: pick(func(c candidate) int { return c.rightBorderWidth }),
	}

	byRow := make(map[int]candidate, len(active))
	for _, c := range active {
		byRow[c.row] = c
	}
	glyphSet := make(map[rune]bool)
	for _, r := range glyphs {
		if r != ' ' {
			glyphSet[r] = true
		}
	}
	edgeGlyphs := func(row int) bool {
		if len(glyphSet) == 0 {
			return false
		}
		cells := grid[row]
		for col := innerLeft; col <= min(innerRight, innerLeft+edgeBand); col++ {
			if glyphSet[cells[col]] {
				return true
			}
		}
		for col := max(innerLeft, innerRight-edgeBand); col <= innerRight; col++ {
			if glyphSet[cells[col]] {
				return true
			}
		}
		return false
	}
	matching := func(row int, checkGlyphs bool) bool {
		c, ok := byRow[row]
		if !ok || !c.matches(want) {
			return false
		}
		return !checkGlyphs || !edgeGlyphs(row)
	}

	top, bottom := findRows(f, func(row int) bool { return matching(row, true) })
	if top == -1 || bottom == -1 {
		top, bottom = findRows(f, func(row int) bool { return matching(row, false) })
	}
	if top == -1 || bottom == -1 || bottom <= top {
		top = min(f.Bottom-1, f.Top+1)
		bottom = max(top, f.Bottom-1)
	}
	return &Bounds{Top: top, Bottom: bottom, Left: innerLeft, Right: innerRight}
}

// scanRow measures the left and right border runs of one interior row. A
// run extends over repeats of its outermost glyph across gaps of at most
// one space. Rows whose interior is a single repeated glyph are border
// fill and are rejected.
func scanRow(cells []rune, row int, f Frame) (candidate, bool) {
	leftStart, rightStart := -1, -1
	for col := f.Left; col <= f.Right; col++ {
		if cells[col] != ' ' {
			leftStart = col
			break
		}
	}
	for col := f.Right; col >= f.Left; col-- {
		if cells[col] != ' ' {
			rightStart = col
			break
		}
	}
	if leftStart == -1 || rightStart <= leftStart {
		return candidate{}, false
	}

	leftEnd := leftStart
	for leftEnd+1 <= f.Right && cells[leftEnd+1] != ' ' {
		leftEnd++
	}
	rightEnd := rightStart
	for rightEnd-1 >= f.Left && cells[rightEnd-1] != ' ' {
		rightEnd--
	}
	leftEnd = extendRun(cells, f, cells[leftStart], leftEnd, 1)
	rightEnd = extendRun(cells, f, cells[rightStart], rightEnd, -1)

	c := candidate{
		row:              row,
		innerLeft:        leftEnd + 1,
		innerRight:       rightEnd - 1,
		leftBorderEnd:    leftEnd,
		rightBorderEnd:   rightEnd,
		leftBorderWidth:  leftEnd - leftStart + 1,
		rightBorderWidth: rightStart - rightEnd + 1,
	}
	if c.innerRight < c.innerLeft {
		return candidate{}, false
	}
	interior := string(cells[c.innerLeft : c.innerRight+1])
	if !strings.ContainsRune(interior, ' ') && uniqueRunes(interior) == 1 {
		return candidate{}, false
	}
	return c, true
}

func extendRun(cells []rune, f Frame, glyph rune, end, dir int) int {
	if glyph == ' ' {
		return end
	}
	gap := 0
	for cursor := end + dir; cursor >= f.Left && cursor <= f.Right; cursor += dir {
		switch cells[cursor] {
		case ' ':
			gap++
			if gap > 1 {
				return end
			}
		case glyph:
			end = cursor
		default:
			return end
		}
	}
	return end
}

func (c candidate) matches(want candidate) bool {
	near := func(a, b int) bool { return abs(a-b) <= 1 }
	return near(c.leftBorderEnd, want.leftBorderEnd) &&
		near(c.rightBorderEnd, want.rightBorderEnd) &&
		near(c.leftBorderWidth, want.leftBorderWidth) &&
		near(c.rightBorderWidth, want.rightBorderWidth) &&
		near(c.innerLeft, want.innerLeft) &&
		near(c.innerRight, want.innerRight)
}

// findRows returns the first and last interior rows of f accepted by ok,
// or -1 for each side that has none.
func findRows(f Frame, ok func(row int) bool) (top, bottom int) {
	top, bottom = -1, -1
	for row := f.Top + 1; row <= f.Bottom-1; row++ {
		if ok(row) {
			top = row
			break
		}
	}
	for row := f.Bottom - 1; row >= f.Top+1; row-- {
		if ok(row) {
			bottom = row
			break
		}
	}
	return top, bottom
}

func uniqueRunes(s string) int {
	seen := make(map[rune]bool)
	for _, r := range s {
		if r != ' ' {
			seen[r] = true
		}
	}
	return len(seen)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
