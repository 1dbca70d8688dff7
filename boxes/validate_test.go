package boxes

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	v := DefaultValidator()
	ok := Request{Design: "parchment", Text: "Hello", Size: Size{20, 6}, Align: "hcvc", EOL: "LF"}
	if err := v.Validate(ok); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	tests := []struct {
		name  string
		mut   func(r *Request)
		field string
	}{
		{"unknown design", func(r *Request) { r.Design = "unicornsay" }, "design"},
		{"text too long", func(r *Request) { r.Text = strings.Repeat("x", 10001) }, "text"},
		{"too many lines", func(r *Request) { r.Text = strings.Repeat("x\n", 200) }, "text"},
		{"bad align", func(r *Request) { r.Align = "center" }, "align"},
		{"bad eol", func(r *Request) { r.EOL = "CRLF" }, "eol"},
		{"cols too large", func(r *Request) { r.Size.Cols = 201 }, "size.cols"},
		{"rows too large", func(r *Request) { r.Size.Rows = 201 }, "size.rows"},
		{"negative padding", func(r *Request) { r.Padding.Left = -1 }, "padding"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ok
			tt.mut(&req)
			err := v.Validate(req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("got %v, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestValidateAlign(t *testing.T) {
	for _, good := range []string{"", "l", "c", "r", "hc", "vt", "jl", "hcvc", "hrvbjr", "vcjc"} {
		if err := ValidateAlign(good); err != nil {
			t.Errorf("ValidateAlign(%q) = %v", good, err)
		}
	}
	for _, bad := range []string{"x", "vchc", "hx", "lc", "center"} {
		if err := ValidateAlign(bad); err == nil {
			t.Errorf("ValidateAlign(%q) accepted", bad)
		}
	}
}
