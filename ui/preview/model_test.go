package preview

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/glyphbox/boxes"
	"github.com/drake/glyphbox/engine"
	"github.com/drake/glyphbox/layout"
	"github.com/drake/glyphbox/solver"
)

// bracketRenderer wraps the text in brackets and records designs.
type bracketRenderer struct {
	mu      sync.Mutex
	designs []string
	err     error
}

func (r *bracketRenderer) Render(ctx context.Context, req boxes.Request) (boxes.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.designs = append(r.designs, req.Design)
	if r.err != nil {
		return boxes.Response{}, r.err
	}
	return boxes.Response{BoxText: "[" + req.Text + "]"}, nil
}

func newModel(t *testing.T, r boxes.Renderer, opts ...Option) *Model {
	t.Helper()
	l := log.New(os.Stderr)
	l.SetLevel(log.FatalLevel)
	e := engine.New(solver.New(r, solver.WithLogger(l), solver.WithMaxIterations(1)), engine.WithLogger(l))
	opts = append([]Option{WithDelay(time.Millisecond)}, opts...)
	m := New(e, layout.Request{Content: "hi", Design: "simple"}, layout.DefaultMetrics(), opts...)
	t.Cleanup(m.debouncer.Stop)
	return m
}

// awaitResult blocks until the next layout is delivered.
func awaitResult(t *testing.T, m *Model) {
	t.Helper()
	msgs := make(chan tea.Msg, 1)
	go func() { msgs <- m.waitForResult()() }()
	select {
	case msg := <-msgs:
		m.Update(msg)
	case <-time.After(2 * time.Second):
		t.Fatal("no layout delivered")
	}
}

func TestPreviewLaysOutOnResize(t *testing.T) {
	m := newModel(t, &bracketRenderer{})
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	awaitResult(t, m)

	res, ok := m.Result()
	if !ok {
		t.Fatal("no result")
	}
	if res.Art.BoxText != "[hi]" {
		t.Errorf("art = %q, want %q", res.Art.BoxText, "[hi]")
	}
	if res.Plan.Grid.Cols != 40 {
		t.Errorf("cols = %d, want 40", res.Plan.Grid.Cols)
	}
	if !strings.Contains(m.View(), "[hi]") {
		t.Errorf("view missing art:\n%s", m.View())
	}
}

func TestPreviewTypingRelayouts(t *testing.T) {
	m := newModel(t, &bracketRenderer{})
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	awaitResult(t, m)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})
	awaitResult(t, m)

	res, _ := m.Result()
	if res.Art.BoxText != "[hi!]" {
		t.Errorf("art = %q, want %q", res.Art.BoxText, "[hi!]")
	}
}

func TestPreviewCyclesDesign(t *testing.T) {
	r := &bracketRenderer{}
	m := newModel(t, r)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.Design() != "parchment" {
		t.Errorf("design = %q, want parchment", m.Design())
	}
	awaitResult(t, m)

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if want := boxes.DefaultDesigns[len(boxes.DefaultDesigns)-1]; m.Design() != want {
		t.Errorf("design = %q, want %q", m.Design(), want)
	}
}

func TestPreviewCopy(t *testing.T) {
	var copied string
	m := newModel(t, &bracketRenderer{}, WithClipboard(func(s string) error {
		copied = s
		return nil
	}))
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if copied != "" {
		t.Error("copied before any layout")
	}

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	awaitResult(t, m)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if copied != "[hi]" {
		t.Errorf("copied %q, want %q", copied, "[hi]")
	}
	if !strings.Contains(m.View(), "copied") {
		t.Error("no copy notice")
	}
}

func TestPreviewFallback(t *testing.T) {
	m := newModel(t, &bracketRenderer{err: errors.New("boxes missing")})
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	awaitResult(t, m)

	res, _ := m.Result()
	if !res.Fallback {
		t.Fatal("expected fallback")
	}
	view := m.View()
	if !strings.Contains(view, "plain text") || !strings.Contains(view, "boxes missing") {
		t.Errorf("status missing fallback:\n%s", view)
	}
}

func TestPreviewQuit(t *testing.T) {
	m := newModel(t, &bracketRenderer{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc did not quit")
	}
	if m.debouncer.Pending() {
		t.Error("layout still pending after quit")
	}
}
