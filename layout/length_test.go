package layout

import "testing"

func TestParseLength(t *testing.T) {
	tests := []struct {
		in      string
		want    Length
		wantErr bool
	}{
		{"", Length{}, false},
		{"12", Px(12), false},
		{"20ch", Cells(20), false},
		{"1.5REM", Length{Value: 1.5, Unit: UnitRem, Set: true}, false},
		{".5em", Length{Value: 0.5, Unit: UnitEm, Set: true}, false},
		{"50%", Length{Value: 50, Unit: "%", Set: true}, false},
		{"wide", Length{}, true},
		{"12 px", Length{}, true},
	}
	for _, tt := range tests {
		got, err := ParseLength(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLength(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLength(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParsePaddingShorthand(t *testing.T) {
	p, err := ParsePadding("1lh 2ch")
	if err != nil {
		t.Fatal(err)
	}
	if p.Top != Lines(1) || p.Bottom != Lines(1) || p.Left != Cells(2) || p.Right != Cells(2) {
		t.Errorf("two-value shorthand = %+v", p)
	}
	p, err = ParsePadding("1px 2px 3px")
	if err != nil {
		t.Fatal(err)
	}
	if p.Bottom != Px(3) || p.Left != Px(2) {
		t.Errorf("three-value shorthand = %+v", p)
	}
	if _, err := ParsePadding("1 2 3 4 5"); err == nil {
		t.Error("five values should fail")
	}
}
