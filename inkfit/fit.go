// Package inkfit computes the affine transform that stretches the ink of
// rendered box art onto its target pixel box.
package inkfit

import (
	"math"
	"strings"

	"github.com/drake/glyphbox/layout"
	"github.com/drake/glyphbox/text"
)

// Fit is the ink bounding box of some art and the transform mapping it onto
// the target box: x' = x·ScaleX + OffsetX, y' = y·ScaleY + OffsetY.
// Callers translate then scale from the top-left origin.
type Fit struct {
	MinX, MinY, MaxX, MaxY float64
	InkWidth, InkHeight    float64
	ScaleX, ScaleY         float64
	OffsetX, OffsetY       float64
}

// Apply maps a point through the fit.
func (f Fit) Apply(x, y float64) (float64, float64) {
	return x*f.ScaleX + f.OffsetX, y*f.ScaleY + f.OffsetY
}

// Target is the pixel box the art must fill.
type Target struct {
	Width  float64
	Height float64
}

// TargetFor returns the pixel box of a cols×rows grid.
func TargetFor(cols, rows int, cell layout.CellMetrics) Target {
	return Target{Width: cell.ColsToPx(cols), Height: cell.RowsToPx(rows)}
}

// Input is one ink-fit computation.
type Input struct {
	Text     string
	Cols     int
	Rows     int
	Cell     layout.CellMetrics
	Provider MetricsProvider
}

type fontMetrics struct {
	ascent   float64
	descent  float64
	baseline float64
}

func probe(p MetricsProvider, lineHeight float64) fontMetrics {
	m := p.Measure(ProbeText)
	ascent := first(lineHeight*0.8, m.Ascent, m.FontAscent)
	descent := first(math.Max(1, lineHeight*0.2), m.Descent, m.FontDescent)
	leading := math.Max(0, lineHeight-(ascent+descent))
	return fontMetrics{ascent: ascent, descent: descent, baseline: leading/2 + ascent}
}

// Baseline returns the distance from the top of a line box to the
// baseline, with leading split evenly above and below the probe glyphs.
func Baseline(p MetricsProvider, lineHeight float64) float64 {
	return probe(p, lineHeight).baseline
}

type glyphBox struct {
	ascent, descent, left, right float64
}

// Compute returns the fit of in.Text onto its cols×rows target. It returns
// nil when the text has no non-space glyph.
func Compute(in Input) *Fit {
	if in.Text == "" {
		return nil
	}
	cell := in.Cell
	fm := probe(in.Provider, cell.LineHeightPx)
	advance := cell.Advance()

	glyphs := make(map[rune]glyphBox)
	lookup := func(r rune) glyphBox {
		if g, ok := glyphs[r]; ok {
			return g
		}
		m := in.Provider.Measure(string(r))
		g := glyphBox{
			ascent:  first(fm.ascent, m.Ascent, m.FontAscent),
			descent: first(fm.descent, m.Descent, m.FontDescent),
			left:    first(0, m.Left),
			right:   first(cell.CharWidthPx, m.Right, m.Width),
		}
		glyphs[r] = g
		return g
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for row, line := range strings.Split(in.Text, "\n") {
		rowTop := float64(row) * cell.LineHeightPx
		col := 0
		for _, r := range line {
			if r != ' ' {
				g := lookup(r)
				x := float64(col) * advance
				minX = math.Min(minX, x-g.left)
				maxX = math.Max(maxX, x+g.right)
				minY = math.Min(minY, rowTop+fm.baseline-g.ascent)
				maxY = math.Max(maxY, rowTop+fm.baseline+g.descent)
			}
			col += text.RuneWidth(r)
		}
	}
	if math.IsInf(minX, 0) || math.IsInf(minY, 0) {
		return nil
	}
	return newFit(minX, minY, maxX, maxY, TargetFor(in.Cols, in.Rows, cell))
}

// newFit builds the transform taking the ink box onto t. Ink extents are
// floored at one pixel.
func newFit(minX, minY, maxX, maxY float64, t Target) *Fit {
	f := &Fit{
		MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY,
		InkWidth:  math.Max(1, maxX-minX),
		InkHeight: math.Max(1, maxY-minY),
	}
	f.ScaleX = t.Width / f.InkWidth
	f.ScaleY = t.Height / f.InkHeight
	f.OffsetX = -minX * f.ScaleX
	f.OffsetY = -minY * f.ScaleY
	return f
}
