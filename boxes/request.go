// Package boxes talks to the external box-drawing renderer. It owns the
// render request model, its validation, and the renderer clients.
package boxes

import (
	"context"
	"strconv"
	"strings"
)

// EOLLF is the only line ending the renderer is asked to produce.
const EOLLF = "LF"

// Size is a character grid size.
type Size struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

// Padding is the space, in cells, between the border and the text.
type Padding struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Request asks the renderer to draw Text inside Design at Size. Text must
// already be wrapped, tab-expanded and LF-only.
type Request struct {
	Design  string  `json:"design"`
	Text    string  `json:"text"`
	Size    Size    `json:"size"`
	Padding Padding `json:"padding"`
	Align   string  `json:"align,omitempty"`
	Tabs    int     `json:"tabs,omitempty"` // 0 leaves the renderer default
	EOL     string  `json:"eol,omitempty"`
}

// Response is the renderer output. Measured is the grid the renderer
// actually produced, which may differ from the requested Size.
type Response struct {
	BoxText  string   `json:"boxText"`
	Measured *Size    `json:"measured,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Renderer draws boxes. Implementations must honor ctx cancellation and
// must not return partial output on failure.
type Renderer interface {
	Render(ctx context.Context, req Request) (Response, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, req Request) (Response, error)

// Render implements Renderer.
func (f RendererFunc) Render(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}

// Key returns a fingerprint that is identical for logically identical
// requests. Fields are written in a fixed order so the key never depends
// on how the request was built or serialized.
func (r Request) Key() string {
	eol := r.EOL
	if eol == "" {
		eol = EOLLF
	}
	tabs := ""
	if r.Tabs > 0 {
		tabs = strconv.Itoa(r.Tabs)
	}
	return strings.Join([]string{
		r.Design,
		FormatSize(r.Size),
		FormatPadding(r.Padding),
		r.Align,
		tabs,
		eol,
		r.Text,
	}, "|")
}

// FormatPadding renders padding in the renderer's -p syntax, e.g. t1r2b1l2.
func FormatPadding(p Padding) string {
	return "t" + strconv.Itoa(p.Top) +
		"r" + strconv.Itoa(p.Right) +
		"b" + strconv.Itoa(p.Bottom) +
		"l" + strconv.Itoa(p.Left)
}

// FormatSize renders a size in the renderer's -s syntax: "40x7", "40" when
// only columns are set, "x7" when only rows are set, "" when neither is.
func FormatSize(s Size) string {
	switch {
	case s.Cols > 0 && s.Rows > 0:
		return strconv.Itoa(s.Cols) + "x" + strconv.Itoa(s.Rows)
	case s.Cols > 0:
		return strconv.Itoa(s.Cols)
	case s.Rows > 0:
		return "x" + strconv.Itoa(s.Rows)
	}
	return ""
}
