package boxes

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/drake/glyphbox/layout"
)

// DefaultDesigns is the renderer allow-list. Any other design is rejected
// before the renderer is invoked.
var DefaultDesigns = []string{
	"simple",
	"parchment",
	"ansi",
	"ansi-rounded",
	"ansi-double",
	"boxquote",
	"shell",
}

// ValidationError names the request constraint that was violated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid render request: %s: %s", e.Field, e.Reason)
}

// Limits bounds the work a single render may ask for.
type Limits struct {
	MaxTextLen int
	MaxLines   int
	MaxCols    int
	MaxRows    int
}

// DefaultLimits returns the production bounds.
func DefaultLimits() Limits {
	return Limits{MaxTextLen: 10000, MaxLines: 200, MaxCols: 200, MaxRows: 200}
}

// Validator checks requests against an allow-list and size limits.
type Validator struct {
	Designs []string
	Limits  Limits
}

// DefaultValidator returns a Validator with the default allow-list and
// limits.
func DefaultValidator() Validator {
	return Validator{Designs: DefaultDesigns, Limits: DefaultLimits()}
}

// Validate returns a *ValidationError for the first violated constraint.
func (v Validator) Validate(req Request) error {
	lim := v.Limits
	if n := utf8.RuneCountInString(req.Text); lim.MaxTextLen > 0 && n > lim.MaxTextLen {
		return &ValidationError{"text", fmt.Sprintf("%d characters exceeds %d", n, lim.MaxTextLen)}
	}
	if n := countLines(req.Text); lim.MaxLines > 0 && n > lim.MaxLines {
		return &ValidationError{"text", fmt.Sprintf("%d lines exceeds %d", n, lim.MaxLines)}
	}
	if !slices.Contains(v.Designs, req.Design) {
		return &ValidationError{"design", fmt.Sprintf("design not allowed: %q", req.Design)}
	}
	if err := ValidateAlign(req.Align); err != nil {
		return err
	}
	if req.Tabs < 0 {
		return &ValidationError{"tabs", "must not be negative"}
	}
	if req.EOL != "" && req.EOL != EOLLF {
		return &ValidationError{"eol", fmt.Sprintf("unsupported line ending %q", req.EOL)}
	}
	if req.Size.Cols < 0 || req.Size.Rows < 0 {
		return &ValidationError{"size", "must not be negative"}
	}
	if lim.MaxCols > 0 && req.Size.Cols > lim.MaxCols {
		return &ValidationError{"size.cols", fmt.Sprintf("%d exceeds %d", req.Size.Cols, lim.MaxCols)}
	}
	if lim.MaxRows > 0 && req.Size.Rows > lim.MaxRows {
		return &ValidationError{"size.rows", fmt.Sprintf("%d exceeds %d", req.Size.Rows, lim.MaxRows)}
	}
	p := req.Padding
	if p.Top < 0 || p.Right < 0 || p.Bottom < 0 || p.Left < 0 {
		return &ValidationError{"padding", "must not be negative"}
	}
	return nil
}

// ValidateAlign accepts "", a single l/c/r, or any ordered combination of
// h[lcr], v[tcb] and j[lcr].
func ValidateAlign(align string) error {
	if _, err := layout.ParseAlign(align); err != nil {
		return &ValidationError{"align", err.Error()}
	}
	return nil
}

func countLines(s string) int {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Count(s, "\n") + strings.Count(s, "\r") + 1
}
