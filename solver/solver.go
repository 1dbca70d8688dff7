// Package solver negotiates a render request with a box renderer until the
// renderer's reported grid matches the target.
package solver

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/drake/glyphbox/boxes"
	"github.com/drake/glyphbox/cache"
	"github.com/drake/glyphbox/text"
)

// DefaultMaxIterations bounds the convergence loop.
const DefaultMaxIterations = 5

const defaultTabs = 8

// Solver drives a Renderer toward a target size. Renders are memoized in a
// cache owned by the Solver, so identical requests skip the renderer.
type Solver struct {
	renderer      boxes.Renderer
	results       *cache.LRU[string, boxes.Response]
	MaxIterations int
	Logger        *log.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithMaxIterations overrides the iteration limit.
func WithMaxIterations(n int) Option {
	return func(s *Solver) { s.MaxIterations = n }
}

// WithCacheSize sets the solver cache capacity.
func WithCacheSize(n int) Option {
	return func(s *Solver) { s.results = cache.New[string, boxes.Response](n) }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Solver) { s.Logger = l }
}

// New creates a Solver over r.
func New(r boxes.Renderer, opts ...Option) *Solver {
	s := &Solver{
		renderer:      r,
		results:       cache.New[string, boxes.Response](cache.DefaultCapacity),
		MaxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve renders req, resizing the request by the renderer's shortfall until
// the measured size equals req.Size. When the loop cannot improve or runs
// out of iterations it returns the last response without error.
func (s *Solver) Solve(ctx context.Context, req boxes.Request) (boxes.Response, error) {
	tabs := req.Tabs
	if tabs <= 0 {
		tabs = defaultTabs
	}
	req.Text = text.Normalize(req.Text, tabs)
	if req.EOL == "" {
		req.EOL = boxes.EOLLF
	}

	target := req.Size
	current := target
	var last *boxes.Response

	for i := 0; i < s.MaxIterations; i++ {
		attempt := req
		attempt.Size = current
		resp, err := s.Render(ctx, attempt)
		if err != nil {
			return boxes.Response{}, err
		}
		last = &resp

		measured := current
		if resp.Measured != nil {
			measured = *resp.Measured
		}
		if measured == target {
			return resp, nil
		}

		next := boxes.Size{
			Cols: max(2, current.Cols+target.Cols-measured.Cols),
			Rows: max(2, current.Rows+target.Rows-measured.Rows),
		}
		if next == current {
			break
		}
		current = next
	}

	if last == nil {
		return boxes.Response{Warnings: []string{"no response from solver"}}, nil
	}
	measured := current
	if last.Measured != nil {
		measured = *last.Measured
	}
	s.logger().Debug("size mismatch", "design", req.Design,
		"target", boxes.FormatSize(target), "measured", boxes.FormatSize(measured))
	return *last, nil
}

// Render performs a single cached render. Cancelled calls never touch the
// cache.
func (s *Solver) Render(ctx context.Context, req boxes.Request) (boxes.Response, error) {
	if err := ctx.Err(); err != nil {
		return boxes.Response{}, err
	}
	key := req.Key()
	if resp, ok := s.results.Get(key); ok {
		return resp, nil
	}
	resp, err := s.renderer.Render(ctx, req)
	if err != nil {
		return boxes.Response{}, err
	}
	if err := ctx.Err(); err != nil {
		return boxes.Response{}, err
	}
	s.results.Set(key, resp)
	return resp, nil
}

// CacheLen returns the number of memoized renders.
func (s *Solver) CacheLen() int {
	return s.results.Len()
}

func (s *Solver) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}
