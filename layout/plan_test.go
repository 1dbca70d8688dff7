package layout

import (
	"testing"

	"github.com/drake/glyphbox/text"
)

var testMetrics = CellMetrics{CharWidthPx: 10, LineHeightPx: 20, FontPx: 16, RootFontPx: 16}

func TestPlanSnapsSizeAndPadding(t *testing.T) {
	plan := testMetrics.Plan(Request{
		Content: "Hi\tThere",
		Width:   Cells(20),
		Height:  Lines(6),
		Padding: Padding{Cells(1), Cells(1), Cells(1), Cells(1)},
		Tabs:    Tabs(2),
	}, Container{})

	want := Grid{Cols: 20, Rows: 6, Padding: Insets{1, 1, 1, 1}}
	if plan.Grid != want {
		t.Errorf("Grid = %+v, want %+v", plan.Grid, want)
	}
	if plan.Text != "Hi  There" {
		t.Errorf("Text = %q", plan.Text)
	}
	if plan.InnerCols != 16 {
		t.Errorf("InnerCols = %d, want 16", plan.InnerCols)
	}
	// 1ch of vertical padding is half a line.
	if len(plan.Warnings) != 2 {
		t.Errorf("Warnings = %q, want top and bottom padding", plan.Warnings)
	}
}

func TestPlanWordWrapIndentInBox(t *testing.T) {
	plan := testMetrics.Plan(Request{
		Content: "  two words",
		Width:   Cells(12),
		Height:  Lines(3),
		Wrap:    text.WrapWord,
	}, Container{})
	if plan.Text != "  two\n  words" {
		t.Errorf("Text = %q", plan.Text)
	}
	// Two lines plus the border rows exceed the requested three rows.
	if plan.Grid.Rows != 4 {
		t.Errorf("Rows = %d, want 4", plan.Grid.Rows)
	}
}

func TestPlanClipsUnicodeWithWrapOff(t *testing.T) {
	plan := testMetrics.Plan(Request{
		Content: "A🙂B",
		Width:   Cells(2),
		Height:  Lines(2),
		Wrap:    text.WrapOff,
	}, Container{})
	if plan.Text != "A" {
		t.Errorf("Text = %q, want %q", plan.Text, "A")
	}
	if plan.Grid.Cols != 2 || plan.InnerCols != 1 {
		t.Errorf("Cols = %d InnerCols = %d", plan.Grid.Cols, plan.InnerCols)
	}
}

func TestPlanExplicitGridWins(t *testing.T) {
	plan := testMetrics.Plan(Request{
		Content: "one\ntwo\nthree\nfour",
		Width:   Px(500),
		Cols:    12,
		Rows:    3,
	}, Container{})
	if plan.Grid.Cols != 12 || plan.Grid.Rows != 3 {
		t.Errorf("Grid = %+v, want 12x3 kept", plan.Grid)
	}
}

func TestPlanFallsBackToContainerAndFloor(t *testing.T) {
	plan := testMetrics.Plan(Request{Content: ""}, Container{Width: 5, Height: 5})
	if plan.Grid.Cols != 2 || plan.Grid.Rows != 3 {
		t.Errorf("Grid = %+v, want 2x3", plan.Grid)
	}

	plan = testMetrics.Plan(Request{Content: "x"}, Container{Width: 400, Height: 100})
	if plan.Grid.Cols != 40 || plan.Grid.Rows != 5 {
		t.Errorf("Grid = %+v, want 40x5", plan.Grid)
	}
}

func TestPlanInfersRowsFromWrappedLines(t *testing.T) {
	plan := testMetrics.Plan(Request{
		Content: "abcdefghij",
		Cols:    6,
		Padding: Padding{Top: Lines(1), Bottom: Lines(1)},
	}, Container{})
	// inner 4 cols: abcd / efgh / ij -> 3 lines + 2 padding + 2 border.
	if plan.Grid.Rows != 7 {
		t.Errorf("Rows = %d, want 7", plan.Grid.Rows)
	}
}

func TestTabWidth(t *testing.T) {
	tests := []struct {
		name string
		tabs *int
		want int
	}{
		{"unset", nil, DefaultTabs},
		{"explicit", Tabs(4), 4},
		{"zero strips", Tabs(0), 0},
		{"negative strips", Tabs(-1), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Request{Tabs: tt.tabs}).TabWidth(); got != tt.want {
				t.Errorf("TabWidth = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPlanZeroTabsStrips(t *testing.T) {
	plan := testMetrics.Plan(Request{Content: "a\tb", Cols: 10, Rows: 3, Tabs: Tabs(0)}, Container{})
	if plan.Text != "ab" {
		t.Errorf("Text = %q, want tabs stripped", plan.Text)
	}
	plan = testMetrics.Plan(Request{Content: "a\tb", Cols: 20, Rows: 3}, Container{})
	if plan.Text != "a        b" {
		t.Errorf("Text = %q, want default tab expansion", plan.Text)
	}
}
