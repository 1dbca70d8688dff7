package inkfit

import "math"

// DefaultTolerance is how many pixels less overflow a lower-priority fit
// must produce before it replaces a higher-priority one. Tuned by eye.
const DefaultTolerance = 0.25

// Source says where a fit came from.
type Source int

// Fit sources, in tie-break priority order.
const (
	SourceNone Source = iota
	SourceMeasured
	SourceFramed
	SourceWhole
)

func (s Source) String() string {
	switch s {
	case SourceMeasured:
		return "measured"
	case SourceFramed:
		return "framed"
	case SourceWhole:
		return "whole"
	}
	return "none"
}

// Candidates are the competing fits for one piece of art. Any may be nil.
//   - Measured comes from actually rasterized ink.
//   - Framed is computed on the art masked to its detected frame.
//   - Whole is computed on the unmasked art.
type Candidates struct {
	Measured *Fit
	Framed   *Fit
	Whole    *Fit
}

// Overflow returns how far, in pixels, basis spills outside t once fit is
// applied to it. The largest spill over the four sides is reported.
func Overflow(fit, basis Fit, t Target) float64 {
	minX, minY := fit.Apply(basis.MinX, basis.MinY)
	maxX, maxY := fit.Apply(basis.MaxX, basis.MaxY)
	return max(
		math.Max(0, -minX),
		math.Max(0, maxX-t.Width),
		math.Max(0, -minY),
		math.Max(0, maxY-t.Height),
	)
}

// Reconcile picks the candidate with the least overflow against t. Every
// candidate is scored on the same basis box, the framed fit when present,
// else the whole-art fit. A candidate only beats a higher-priority one if
// it overflows by more than tolerance pixels less.
func Reconcile(t Target, c Candidates, tolerance float64) (*Fit, Source) {
	basis := c.Framed
	if basis == nil {
		basis = c.Whole
	}
	score := func(f *Fit) float64 {
		if basis == nil {
			return math.Inf(1)
		}
		return Overflow(*f, *basis, t)
	}

	var best *Fit
	bestSrc, bestScore := SourceNone, math.Inf(1)
	for _, cand := range []struct {
		fit *Fit
		src Source
	}{
		{c.Measured, SourceMeasured},
		{c.Framed, SourceFramed},
		{c.Whole, SourceWhole},
	} {
		if cand.fit == nil {
			continue
		}
		s := score(cand.fit)
		if best == nil || s+tolerance < bestScore {
			best, bestSrc, bestScore = cand.fit, cand.src, s
		}
	}
	return best, bestSrc
}
