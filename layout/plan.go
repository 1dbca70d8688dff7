package layout

import (
	"strings"

	"github.com/drake/glyphbox/text"
)

// DefaultTabs is the tab width used when a Request leaves Tabs unset.
const DefaultTabs = 8

// minGrid is the smallest grid the renderer accepts on either axis.
const minGrid = 2

// borderCells is the number of columns reserved for the border glyphs.
const borderCells = 2

// Request describes one box to lay out. It is built per render and never
// retained.
type Request struct {
	Content  string
	Design   string
	Width    Length
	Height   Length
	Padding  Padding
	Align    string
	Tabs     *int // nil selects DefaultTabs, zero or less strips tabs
	Wrap     text.WrapPolicy
	Overflow text.OverflowPolicy
	Cols     int // explicit grid width, 0 when derived
	Rows     int // explicit grid height, 0 when derived
}

// Tabs returns a tab width for Request.Tabs.
func Tabs(n int) *int { return &n }

// TabWidth returns the effective tab expansion width. Zero or less means
// tabs are stripped.
func (r Request) TabWidth() int {
	if r.Tabs == nil {
		return DefaultTabs
	}
	return *r.Tabs
}

// Container is the measured pixel size of the element hosting the box. It
// is used when the request carries no resolvable width or height.
type Container struct {
	Width, Height float64
}

// Grid is the target character grid for the renderer.
type Grid struct {
	Cols, Rows int
	Padding    Insets
}

// Plan is the result of laying out a Request: the grid to request and the
// wrapped text to place inside it.
type Plan struct {
	Grid      Grid
	Text      string
	InnerCols int
	Tabs      int
	Warnings  []string // non-fatal snap diagnostics
}

// Plan converts a Request into a target grid and wrapped content.
func (m CellMetrics) Plan(req Request, container Container) Plan {
	var warnings []string
	warn := func(msg string) {
		if msg != "" {
			warnings = append(warnings, msg)
		}
	}

	var widthPx, heightPx float64
	widthOK, heightOK := true, true
	if req.Cols > 0 {
		widthPx = m.ColsToPx(req.Cols)
	} else {
		widthPx, widthOK = m.Resolve(req.Width)
	}
	if req.Rows > 0 {
		heightPx = m.RowsToPx(req.Rows)
	} else {
		heightPx, heightOK = m.Resolve(req.Height)
	}
	if widthOK {
		warn(fractionalWarning("width", widthPx, m.Advance()))
	} else {
		widthPx = container.Width
	}
	if heightOK {
		warn(fractionalWarning("height", heightPx, m.LineHeightPx))
	} else {
		heightPx = container.Height
	}

	pad := m.SnapPadding(req.Padding)
	sides := []struct {
		label string
		l     Length
		unit  float64
	}{
		{"padding-top", req.Padding.Top, m.LineHeightPx},
		{"padding-right", req.Padding.Right, m.Advance()},
		{"padding-bottom", req.Padding.Bottom, m.LineHeightPx},
		{"padding-left", req.Padding.Left, m.Advance()},
	}
	for _, side := range sides {
		if px, ok := m.Resolve(side.l); ok && px != 0 {
			warn(fractionalWarning(side.label, px, side.unit))
		}
	}

	cols := req.Cols
	if cols <= 0 {
		cols = m.SnapCols(widthPx)
	}
	cols = max(minGrid, cols)
	rows := req.Rows
	if rows <= 0 {
		rows = m.SnapRows(heightPx)
	}
	rows = max(minGrid, rows)

	innerCols := max(1, cols-pad.Left-pad.Right-borderCells)
	tabs := req.TabWidth()
	wrapped := text.Wrap(text.Normalize(req.Content, tabs), innerCols, req.Wrap, req.Overflow)
	if req.Rows <= 0 {
		lines := strings.Count(wrapped, "\n") + 1
		rows = max(rows, lines+pad.Top+pad.Bottom+borderCells)
	}

	return Plan{
		Grid:      Grid{Cols: cols, Rows: rows, Padding: pad},
		Text:      wrapped,
		InnerCols: innerCols,
		Tabs:      tabs,
		Warnings:  warnings,
	}
}
