package layout

import "testing"

func TestResolveUnits(t *testing.T) {
	m := CellMetrics{CharWidthPx: 10, LineHeightPx: 20, FontPx: 14, RootFontPx: 16}
	tests := []struct {
		l      Length
		want   float64
		wantOK bool
	}{
		{Px(33), 33, true},
		{Length{Value: 2, Unit: UnitRem, Set: true}, 32, true},
		{Length{Value: 2, Unit: UnitEm, Set: true}, 28, true},
		{Cells(3), 30, true},
		{Lines(3), 60, true},
		{Length{Value: 50, Unit: "%", Set: true}, 0, false},
		{Length{}, 0, false},
	}
	for _, tt := range tests {
		got, ok := m.Resolve(tt.l)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Resolve(%v) = %v, %v; want %v, %v", tt.l, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSnap(t *testing.T) {
	m := CellMetrics{CharWidthPx: 8, LineHeightPx: 16}
	if got := m.SnapCols(0); got != 1 {
		t.Errorf("SnapCols(0) = %d, want 1", got)
	}
	if got := m.SnapCols(83); got != 10 {
		t.Errorf("SnapCols(83) = %d, want 10", got)
	}
	if got := m.SnapRows(40); got != 3 {
		t.Errorf("SnapRows(40) = %d, want 3", got)
	}
}

func TestSnapPaddingPerAxis(t *testing.T) {
	m := CellMetrics{CharWidthPx: 10, LineHeightPx: 20}
	got := m.SnapPadding(Padding{Top: Px(40), Right: Px(30), Bottom: Length{Value: 1, Unit: "vw", Set: true}, Left: Px(-10)})
	want := Insets{Top: 2, Right: 3, Bottom: 0, Left: 0}
	if got != want {
		t.Errorf("SnapPadding = %+v, want %+v", got, want)
	}
}

func TestColsToPxLetterSpacing(t *testing.T) {
	m := CellMetrics{CharWidthPx: 10, LineHeightPx: 20, LetterSpacingPx: 1}
	if got := m.ColsToPx(4); got != 43 {
		t.Errorf("ColsToPx(4) = %v, want 43", got)
	}
	if got := m.ColsToPx(0); got != 0 {
		t.Errorf("ColsToPx(0) = %v, want 0", got)
	}
}

func TestFractionalWarning(t *testing.T) {
	if msg := fractionalWarning("width", 100, 10); msg != "" {
		t.Errorf("exact multiple warned: %q", msg)
	}
	if msg := fractionalWarning("width", 102, 10); msg != "" {
		t.Errorf("0.2 cell remainder warned: %q", msg)
	}
	if msg := fractionalWarning("width", 104, 10); msg == "" {
		t.Error("0.4 cell remainder should warn")
	}
}
