package inkfit

import "math"

// ProbeText is measured once per fit to find the font's ascent and descent.
const ProbeText = "Hg"

// GlyphMetrics is what a provider knows about a string. Any field may be
// nil when the provider cannot report it; Compute then falls back to the
// probe metrics or the cell geometry.
type GlyphMetrics struct {
	Ascent      *float64 // ink above the baseline
	Descent     *float64 // ink below the baseline
	FontAscent  *float64 // font-wide ascent, used when Ascent is nil
	FontDescent *float64 // font-wide descent, used when Descent is nil
	Left        *float64 // ink left of the pen position
	Right       *float64 // ink right of the pen position
	Width       *float64 // advance, used when Right is nil
}

// MetricsProvider measures rendered text. It stands in for the canvas
// measureText call of a browser.
type MetricsProvider interface {
	Measure(s string) GlyphMetrics
}

// F returns a pointer to v, for filling GlyphMetrics literals.
func F(v float64) *float64 { return &v }

func first(fallback float64, vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) {
			return *v
		}
	}
	return fallback
}

// TableProvider answers from fixed tables. It lets servers and tests run
// the fit without a font.
type TableProvider struct {
	Probe   GlyphMetrics
	Glyphs  map[rune]GlyphMetrics
	Default GlyphMetrics
}

// Compile-time check that TableProvider implements MetricsProvider
var _ MetricsProvider = (*TableProvider)(nil)

// Measure implements MetricsProvider.
func (p *TableProvider) Measure(s string) GlyphMetrics {
	if s == ProbeText {
		return p.Probe
	}
	for _, r := range s {
		if m, ok := p.Glyphs[r]; ok {
			return m
		}
		break
	}
	return p.Default
}

// MonospaceTable returns a TableProvider for an idealized monospace font at
// fontPx: every glyph fills its advance of 0.6em with ascent 0.8em and
// descent 0.2em.
func MonospaceTable(fontPx float64) *TableProvider {
	glyph := GlyphMetrics{
		Ascent:  F(fontPx * 0.8),
		Descent: F(fontPx * 0.2),
		Left:    F(0),
		Right:   F(fontPx * 0.6),
		Width:   F(fontPx * 0.6),
	}
	return &TableProvider{Probe: glyph, Default: glyph}
}
