// Package engine runs the fitting pipeline: plan the grid, negotiate the
// render, recover the frame and content rectangle, and fit the ink.
package engine

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font"

	"github.com/drake/glyphbox/boxes"
	"github.com/drake/glyphbox/designs"
	"github.com/drake/glyphbox/frame"
	"github.com/drake/glyphbox/inkfit"
	"github.com/drake/glyphbox/layout"
	"github.com/drake/glyphbox/solver"
)

// Result is everything known about one laid-out box. Frame, Inner and Fit
// are nil when their stage found nothing usable.
type Result struct {
	Plan      layout.Plan
	Art       boxes.Response
	Frame     *frame.Frame
	Inner     *frame.Bounds
	Fit       *inkfit.Fit
	FitSource inkfit.Source
	Fallback  bool  // Art is the plain wrapped text, drawn without a border
	Err       error // the render failure behind a fallback
}

// Engine wires the pipeline stages together.
type Engine struct {
	solver    *solver.Solver
	catalog   *designs.Catalog
	provider  inkfit.MetricsProvider
	face      font.Face
	tolerance float64
	logger    *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalog sets the design catalog used for border glyph sets.
func WithCatalog(c *designs.Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithProvider sets the glyph metrics provider for ink fitting.
func WithProvider(p inkfit.MetricsProvider) Option {
	return func(e *Engine) { e.provider = p }
}

// WithFace measures glyphs with face and adds a rasterized candidate to
// fit reconciliation.
func WithFace(face font.Face) Option {
	return func(e *Engine) {
		e.face = face
		e.provider = inkfit.NewFaceProvider(face)
	}
}

// WithTolerance overrides the reconciliation tolerance in pixels.
func WithTolerance(px float64) Option {
	return func(e *Engine) { e.tolerance = px }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine that renders through s.
func New(s *solver.Solver, opts ...Option) *Engine {
	e := &Engine{
		solver:    s,
		catalog:   designs.Builtin(),
		tolerance: inkfit.DefaultTolerance,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Layout runs req through the whole pipeline. A failed render degrades to
// the wrapped text without a border; detection and fitting failures are
// not errors.
func (e *Engine) Layout(ctx context.Context, req layout.Request, m layout.CellMetrics, container layout.Container) Result {
	plan := m.Plan(req, container)
	for _, w := range plan.Warnings {
		e.logger.Warn("fractional snap", "design", req.Design, "detail", w)
	}
	res := Result{Plan: plan}

	art, err := e.solver.Solve(ctx, RenderRequest(req, plan))
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			e.logger.Warn("render failed", "design", req.Design, "err", err)
		}
		res.Art = boxes.Response{BoxText: plan.Text}
		res.Fallback = true
		res.Err = err
		return res
	}
	res.Art = art

	res.Frame = frame.Detect(art.BoxText)
	if res.Frame != nil {
		res.Inner = frame.DetectInner(art.BoxText, *res.Frame, e.catalog.Glyphs(req.Design))
	}
	res.Fit, res.FitSource = e.fit(art, plan.Grid, res.Frame, m)
	return res
}

// RenderRequest is the renderer request for a planned layout.
func RenderRequest(req layout.Request, plan layout.Plan) boxes.Request {
	pad := plan.Grid.Padding
	return boxes.Request{
		Design:  req.Design,
		Text:    plan.Text,
		Size:    boxes.Size{Cols: plan.Grid.Cols, Rows: plan.Grid.Rows},
		Padding: boxes.Padding{Top: pad.Top, Right: pad.Right, Bottom: pad.Bottom, Left: pad.Left},
		Align:   req.Align,
		Tabs:    max(0, plan.Tabs),
		EOL:     boxes.EOLLF,
	}
}

func (e *Engine) fit(art boxes.Response, grid layout.Grid, f *frame.Frame, m layout.CellMetrics) (*inkfit.Fit, inkfit.Source) {
	provider := e.provider
	if provider == nil {
		provider = inkfit.MonospaceTable(m.LineHeightPx * 0.8)
	}
	cols, rows := grid.Cols, grid.Rows
	if art.Measured != nil {
		cols, rows = art.Measured.Cols, art.Measured.Rows
	}

	var c inkfit.Candidates
	measuredText := art.BoxText
	if f != nil {
		// With a frame the art is fitted onto the planned grid.
		masked := frame.Mask(art.BoxText, *f)
		measuredText = masked
		c.Framed = inkfit.Compute(inkfit.Input{Text: masked, Cols: grid.Cols, Rows: grid.Rows, Cell: m, Provider: provider})
		c.Whole = inkfit.Compute(inkfit.Input{Text: art.BoxText, Cols: grid.Cols, Rows: grid.Rows, Cell: m, Provider: provider})
	} else {
		c.Whole = inkfit.Compute(inkfit.Input{Text: art.BoxText, Cols: cols, Rows: rows, Cell: m, Provider: provider})
	}
	if e.face != nil {
		c.Measured = inkfit.Raster(e.face, inkfit.Input{Text: measuredText, Cols: grid.Cols, Rows: grid.Rows, Cell: m})
	}
	return inkfit.Reconcile(inkfit.TargetFor(cols, rows, m), c, e.tolerance)
}
