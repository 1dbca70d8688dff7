package inkfit

import (
	"fmt"
	"image"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/drake/glyphbox/layout"
	"github.com/drake/glyphbox/text"
)

// FaceProvider measures glyphs with a real font face.
type FaceProvider struct {
	face font.Face
}

// Compile-time check that FaceProvider implements MetricsProvider
var _ MetricsProvider = (*FaceProvider)(nil)

// NewFaceProvider wraps face.
func NewFaceProvider(face font.Face) *FaceProvider {
	return &FaceProvider{face: face}
}

// MonoFace opens the bundled Go Mono font at sizePx pixels.
func MonoFace(sizePx float64) (font.Face, error) {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

// Face returns the underlying face.
func (p *FaceProvider) Face() font.Face { return p.face }

// Cell returns the grid geometry of the face: the advance of 'M' and the
// face height.
func (p *FaceProvider) Cell(letterSpacingPx float64) layout.CellMetrics {
	m := p.face.Metrics()
	adv, _ := p.face.GlyphAdvance('M')
	size := toFloat(m.Ascent + m.Descent)
	return layout.CellMetrics{
		CharWidthPx:     toFloat(adv),
		LineHeightPx:    toFloat(m.Height),
		LetterSpacingPx: letterSpacingPx,
		FontPx:          size,
		RootFontPx:      size,
	}
}

// Measure implements MetricsProvider. The probe string reports the union of
// its glyphs' ink; any other string reports its first glyph.
func (p *FaceProvider) Measure(s string) GlyphMetrics {
	fm := p.face.Metrics()
	out := GlyphMetrics{
		FontAscent:  F(toFloat(fm.Ascent)),
		FontDescent: F(toFloat(fm.Descent)),
	}
	if s == ProbeText {
		b, adv := font.BoundString(p.face, s)
		if b.Empty() {
			return out
		}
		out.Ascent = F(-toFloat(b.Min.Y))
		out.Descent = F(toFloat(b.Max.Y))
		out.Width = F(toFloat(adv))
		return out
	}
	for _, r := range s {
		b, adv, ok := p.face.GlyphBounds(r)
		if !ok {
			return out
		}
		out.Width = F(toFloat(adv))
		if b.Empty() {
			return out
		}
		out.Ascent = F(-toFloat(b.Min.Y))
		out.Descent = F(toFloat(b.Max.Y))
		out.Left = F(-toFloat(b.Min.X))
		out.Right = F(toFloat(b.Max.X))
		break
	}
	return out
}

// Raster draws in.Text with face on the cell grid and returns the fit of the
// pixels actually covered. It is the measured candidate for Reconcile. It
// returns nil when nothing was drawn.
func Raster(face font.Face, in Input) *Fit {
	if in.Text == "" {
		return nil
	}
	cell := in.Cell
	lines := strings.Split(in.Text, "\n")
	cols := 0
	for _, line := range lines {
		cols = max(cols, text.DisplayWidth(line))
	}

	baseline := probe(NewFaceProvider(face), cell.LineHeightPx).baseline

	// Glyphs may overhang their cells; draw with a margin so nothing clips.
	margin := int(math.Ceil(cell.LineHeightPx)) + 2
	w := int(math.Ceil(float64(cols)*cell.Advance())) + 2*margin
	h := int(math.Ceil(float64(len(lines))*cell.LineHeightPx)) + 2*margin
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	d := &font.Drawer{Dst: img, Src: image.Opaque, Face: face}

	for row, line := range lines {
		col := 0
		for _, r := range line {
			if r != ' ' {
				x := float64(margin) + float64(col)*cell.Advance()
				y := float64(margin) + float64(row)*cell.LineHeightPx + baseline
				d.Dot = fixed.Point26_6{X: toFixed(x), Y: toFixed(y)}
				d.DrawString(string(r))
			}
			col += text.RuneWidth(r)
		}
	}

	ink, ok := coverage(img)
	if !ok {
		return nil
	}
	m := float64(margin)
	return newFit(float64(ink.Min.X)-m, float64(ink.Min.Y)-m, float64(ink.Max.X)-m, float64(ink.Max.Y)-m,
		TargetFor(in.Cols, in.Rows, cell))
}

// coverage returns the bounding box of non-zero alpha pixels.
func coverage(img *image.Alpha) (image.Rectangle, bool) {
	b := img.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.AlphaAt(x, y).A == 0 {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }
