package layout

import (
	"fmt"
	"math"
)

// fractionalTolerance is how far, in cells, a resolved length may sit from
// a whole number of cells before a snap warning is emitted.
const fractionalTolerance = 0.25

// CellMetrics describes the pixel size of one character cell of the active
// font. Recompute it when the font or container changes.
type CellMetrics struct {
	CharWidthPx     float64
	LineHeightPx    float64
	LetterSpacingPx float64
	FontPx          float64 // element font size, for em
	RootFontPx      float64 // root font size, for rem
}

// DefaultMetrics returns the metrics used when nothing was measured.
func DefaultMetrics() CellMetrics {
	return CellMetrics{CharWidthPx: 8, LineHeightPx: 16, FontPx: 16, RootFontPx: 16}
}

// Advance is the horizontal distance between consecutive cell origins.
func (m CellMetrics) Advance() float64 {
	return m.CharWidthPx + m.LetterSpacingPx
}

// ColsToPx returns the pixel width of n columns. Letter spacing applies
// between cells only.
func (m CellMetrics) ColsToPx(n int) float64 {
	return float64(n)*m.CharWidthPx + float64(max(0, n-1))*m.LetterSpacingPx
}

// RowsToPx returns the pixel height of n rows.
func (m CellMetrics) RowsToPx(n int) float64 {
	return float64(n) * m.LineHeightPx
}

// Resolve converts l to pixels. ok is false for unset lengths and unknown
// units, which impose no constraint.
func (m CellMetrics) Resolve(l Length) (px float64, ok bool) {
	if !l.Set {
		return 0, false
	}
	switch l.Unit {
	case UnitPx:
		return l.Value, true
	case UnitRem:
		return l.Value * orDefault(m.RootFontPx, 16), true
	case UnitEm:
		return l.Value * orDefault(m.FontPx, 16), true
	case UnitCh:
		return l.Value * m.CharWidthPx, true
	case UnitLh:
		return l.Value * m.LineHeightPx, true
	}
	return 0, false
}

// SnapCols converts a pixel width to a column count of at least one.
func (m CellMetrics) SnapCols(px float64) int {
	return max(1, int(math.Round(px/m.CharWidthPx)))
}

// SnapRows converts a pixel height to a row count of at least one.
func (m CellMetrics) SnapRows(px float64) int {
	return max(1, int(math.Round(px/m.LineHeightPx)))
}

// Insets is padding measured in cells.
type Insets struct {
	Top, Right, Bottom, Left int
}

// SnapPadding resolves and snaps each side independently: top and bottom
// by line height, left and right by character width. Unset or unresolved
// sides are zero.
func (m CellMetrics) SnapPadding(p Padding) Insets {
	snap := func(l Length, unit float64) int {
		px, ok := m.Resolve(l)
		if !ok {
			return 0
		}
		return max(0, int(math.Round(px/unit)))
	}
	return Insets{
		Top:    snap(p.Top, m.LineHeightPx),
		Right:  snap(p.Right, m.CharWidthPx),
		Bottom: snap(p.Bottom, m.LineHeightPx),
		Left:   snap(p.Left, m.CharWidthPx),
	}
}

// fractionalWarning reports a length that does not land on a cell
// boundary. It returns "" when the remainder is within tolerance.
func fractionalWarning(label string, px, unitPx float64) string {
	if unitPx <= 0 {
		return ""
	}
	raw := px / unitPx
	remainder := math.Abs(raw - math.Round(raw))
	if remainder <= fractionalTolerance {
		return ""
	}
	return fmt.Sprintf("%s snaps with remainder %.2f cells", label, remainder)
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
