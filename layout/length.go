package layout

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Units understood by CellMetrics.Resolve. Anything else parses but stays
// unresolved.
const (
	UnitPx  = "px"
	UnitRem = "rem"
	UnitEm  = "em"
	UnitCh  = "ch"
	UnitLh  = "lh"
)

var lengthPattern = regexp.MustCompile(`(?i)^(-?\d*\.?\d+)([a-z%]+)?$`)

// Length preserves a CSS length with its original unit. The zero Length is
// unset and never constrains layout.
type Length struct {
	Value float64
	Unit  string
	Set   bool
}

// Px returns a pixel length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPx, Set: true} }

// Cells returns a length in character cells (ch).
func Cells(n float64) Length { return Length{Value: n, Unit: UnitCh, Set: true} }

// Lines returns a length in line heights (lh).
func Lines(n float64) Length { return Length{Value: n, Unit: UnitLh, Set: true} }

// String formats the length the way it was written.
func (l Length) String() string {
	if !l.Set {
		return ""
	}
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit
}

// ParseLength parses a bare number (pixels) or a "<num><unit>" string.
// An empty string yields the unset Length.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Length{}, nil
	}
	m := lengthPattern.FindStringSubmatch(s)
	if m == nil {
		return Length{}, fmt.Errorf("invalid length %q", s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q: %w", s, err)
	}
	unit := strings.ToLower(m[2])
	if unit == "" {
		unit = UnitPx
	}
	return Length{Value: v, Unit: unit, Set: true}, nil
}

// Padding holds one length per side.
type Padding struct {
	Top, Right, Bottom, Left Length
}

// ParsePadding accepts CSS shorthand: one to four space-separated lengths
// in top, right, bottom, left order.
func ParsePadding(s string) (Padding, error) {
	fields := strings.Fields(s)
	vals := make([]Length, len(fields))
	for i, f := range fields {
		l, err := ParseLength(f)
		if err != nil {
			return Padding{}, fmt.Errorf("padding: %w", err)
		}
		vals[i] = l
	}
	switch len(vals) {
	case 0:
		return Padding{}, nil
	case 1:
		return Padding{vals[0], vals[0], vals[0], vals[0]}, nil
	case 2:
		return Padding{vals[0], vals[1], vals[0], vals[1]}, nil
	case 3:
		return Padding{vals[0], vals[1], vals[2], vals[1]}, nil
	case 4:
		return Padding{vals[0], vals[1], vals[2], vals[3]}, nil
	}
	return Padding{}, fmt.Errorf("padding %q: want 1 to 4 lengths, got %d", s, len(vals))
}
