// Package export rasterizes fitted box art to images.
package export

import (
	"errors"
	"image"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/drake/glyphbox/inkfit"
	"github.com/drake/glyphbox/layout"
	"github.com/drake/glyphbox/text"
)

// Options controls rasterization.
type Options struct {
	Face       font.Face
	Cell       layout.CellMetrics
	Cols, Rows int
	Fit        *inkfit.Fit // nil draws the art unscaled
	Scale      float64     // device pixels per CSS pixel, default 1
	Foreground color.Color
	Background color.Color
}

// Size returns the pixel size of the output image.
func (o Options) Size() (w, h int) {
	t := inkfit.TargetFor(o.Cols, o.Rows, o.Cell)
	s := o.scale()
	return max(1, int(math.Ceil(t.Width*s))), max(1, int(math.Ceil(t.Height*s)))
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

// Render draws art onto a new image of o.Size().
func Render(art string, o Options) (image.Image, error) {
	dc, err := draw(art, o)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// PNG renders art and writes it to w as PNG.
func PNG(w io.Writer, art string, o Options) error {
	dc, err := draw(art, o)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func draw(art string, o Options) (*gg.Context, error) {
	if o.Face == nil {
		return nil, errors.New("export: no font face")
	}
	fg, bg := o.Foreground, o.Background
	if fg == nil {
		fg = color.Black
	}
	if bg == nil {
		bg = color.White
	}

	w, h := o.Size()
	dc := gg.NewContext(w, h)
	dc.SetColor(bg)
	dc.Clear()
	dc.SetFontFace(o.Face)
	dc.SetColor(fg)

	s := o.scale()
	dc.Scale(s, s)
	if o.Fit != nil {
		dc.Translate(o.Fit.OffsetX, o.Fit.OffsetY)
		dc.Scale(o.Fit.ScaleX, o.Fit.ScaleY)
	}

	cell := o.Cell
	baseline := inkfit.Baseline(inkfit.NewFaceProvider(o.Face), cell.LineHeightPx)
	for row, line := range strings.Split(art, "\n") {
		col := 0
		for _, r := range line {
			if r != ' ' {
				dc.DrawString(string(r), float64(col)*cell.Advance(), float64(row)*cell.LineHeightPx+baseline)
			}
			col += text.RuneWidth(r)
		}
	}
	return dc, nil
}
