// Package designs reads box designs from boxes-config syntax: their glyph
// sets, samples, border thickness and padding.
package designs

import (
	_ "embed"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/drake/glyphbox/text"
)

// Sides holds a per-side cell count.
type Sides struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Add returns the side-wise sum.
func (s Sides) Add(o Sides) Sides {
	return Sides{s.Top + o.Top, s.Right + o.Right, s.Bottom + o.Bottom, s.Left + o.Left}
}

// Design is one BOX definition.
type Design struct {
	Name    string
	Aliases []string
	Sample  string
	Shapes  map[string][]string
	Padding Sides
	Border  Sides
}

// shapes contributing to each side's thickness.
var sideShapes = struct{ top, right, bottom, left []string }{
	top:    []string{"nw", "nnw", "n", "nne", "ne"},
	right:  []string{"ne", "ene", "e", "ese", "se"},
	bottom: []string{"sw", "ssw", "s", "sse", "se"},
	left:   []string{"nw", "wnw", "w", "wsw", "sw"},
}

// Glyphs returns every distinct non-space character used by the design's
// shapes, in code point order.
func (d *Design) Glyphs() string {
	var rs []rune
	for _, lines := range d.Shapes {
		for _, line := range lines {
			for _, r := range line {
				if r != ' ' && !slices.Contains(rs, r) {
					rs = append(rs, r)
				}
			}
		}
	}
	slices.Sort(rs)
	return string(rs)
}

// ContentInset is the distance from the outer edge of the box to its text.
func (d *Design) ContentInset() Sides {
	return d.Border.Add(d.Padding)
}

// shapeSize is the display width and line count of a shape. Shapes made
// only of spaces have no width.
func shapeSize(lines []string) (w, h int) {
	blank := true
	for _, line := range lines {
		w = max(w, text.DisplayWidth(text.StripANSI(line)))
		if strings.TrimSpace(line) != "" {
			blank = false
		}
	}
	if blank {
		w = 0
	}
	return w, len(lines)
}

func (d *Design) computeBorder() {
	thick := func(names []string, height bool) int {
		n := 0
		for _, name := range names {
			lines, ok := d.Shapes[name]
			if !ok {
				continue
			}
			w, h := shapeSize(lines)
			if height {
				n = max(n, h)
			} else {
				n = max(n, w)
			}
		}
		return n
	}
	d.Border = Sides{
		Top:    thick(sideShapes.top, true),
		Right:  thick(sideShapes.right, false),
		Bottom: thick(sideShapes.bottom, true),
		Left:   thick(sideShapes.left, false),
	}
}

func applyPadding(p *Sides, area string, v int) {
	switch strings.ToLower(area) {
	case "all", "a":
		*p = Sides{v, v, v, v}
	case "horizontal", "horiz", "h":
		p.Left, p.Right = v, v
	case "vertical", "vert", "v":
		p.Top, p.Bottom = v, v
	case "top", "t":
		p.Top = v
	case "right", "r":
		p.Right = v
	case "bottom", "b":
		p.Bottom = v
	case "left", "l":
		p.Left = v
	}
}

// Catalog is a set of designs addressable by name or alias.
type Catalog struct {
	byName map[string]*Design
	names  []string
}

// Parse reads a boxes-config file.
func Parse(r io.Reader) (*Catalog, error) {
	file, err := parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parse designs: %w", err)
	}
	c := &Catalog{byName: make(map[string]*Design)}
	for _, item := range file.Items {
		if item.Box == nil {
			continue
		}
		d, err := buildDesign(item.Box)
		if err != nil {
			return nil, err
		}
		for _, n := range append([]string{d.Name}, d.Aliases...) {
			if _, dup := c.byName[n]; dup {
				return nil, fmt.Errorf("%s: design %q defined twice", item.Box.Pos, n)
			}
			c.byName[n] = d
		}
		c.names = append(c.names, d.Name)
	}
	return c, nil
}

// ParseString reads a boxes-config document held in a string.
func ParseString(s string) (*Catalog, error) {
	return Parse(strings.NewReader(s))
}

func buildDesign(b *boxDecl) (*Design, error) {
	if b.End != b.Names[0] {
		return nil, fmt.Errorf("%s: BOX %s closed by END %s", b.Pos, b.Names[0], b.End)
	}
	d := &Design{Name: b.Names[0], Aliases: b.Names[1:], Shapes: make(map[string][]string)}
	for _, item := range b.Items {
		switch {
		case item.Sample != nil:
			lines := make([]string, len(item.Sample.Lines))
			for i, l := range item.Sample.Lines {
				lines[i] = string(l)
			}
			d.Sample = strings.Join(lines, "\n")
		case item.Shapes != nil:
			for _, s := range item.Shapes.Shapes {
				lines := make([]string, len(s.Lines))
				for i, l := range s.Lines {
					lines[i] = string(l)
				}
				d.Shapes[strings.ToLower(s.Name)] = lines
			}
		case item.Padding != nil:
			for _, e := range item.Padding.Entries {
				applyPadding(&d.Padding, e.Area, e.Value)
			}
		}
	}
	d.computeBorder()
	return d, nil
}

// Lookup returns the design registered under name or one of its aliases.
func (c *Catalog) Lookup(name string) (*Design, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// Names returns the primary design names in file order.
func (c *Catalog) Names() []string {
	return slices.Clone(c.names)
}

// Glyphs returns the glyph set of the named design, or "" if unknown.
func (c *Catalog) Glyphs(name string) string {
	if d, ok := c.Lookup(name); ok {
		return d.Glyphs()
	}
	return ""
}

//go:embed builtin.cfg
var builtinConfig string

var (
	builtinOnce sync.Once
	builtin     *Catalog
)

// Builtin returns the catalog of designs glyphbox ships with. It panics if
// the embedded file does not parse.
func Builtin() *Catalog {
	builtinOnce.Do(func() {
		c, err := ParseString(builtinConfig)
		if err != nil {
			panic(fmt.Sprintf("designs: builtin catalog: %v", err))
		}
		builtin = c
	})
	return builtin
}

// BuiltinConfig returns the embedded boxes-config source, suitable for
// passing to the renderer with -f.
func BuiltinConfig() string {
	return builtinConfig
}
