// Package preview is a terminal editor that re-lays out box art as the
// text changes.
package preview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drake/glyphbox/boxes"
	"github.com/drake/glyphbox/engine"
	"github.com/drake/glyphbox/internal/timer"
	"github.com/drake/glyphbox/layout"
	"github.com/drake/glyphbox/ui/style"
)

const editorHeight = 5

// ResultMsg carries a finished layout into the update loop.
type ResultMsg engine.Result

// Model is the bubbletea model for the live preview.
type Model struct {
	editor    textarea.Model
	engine    *engine.Engine
	debouncer *timer.Debouncer[engine.Result]
	results   chan engine.Result

	req     layout.Request
	metrics layout.CellMetrics
	designs []string
	design  int

	result  engine.Result
	ready   bool
	pending bool
	notice  string

	width, height int
	styles        style.Styles
	copy          func(string) error
}

// Option configures a Model.
type Option func(*Model)

// WithDelay sets the debounce delay between edits and layout.
func WithDelay(d time.Duration) Option {
	return func(m *Model) { m.debouncer = timer.NewDebouncer(d, m.deliver) }
}

// WithDesigns sets the designs cycled with tab.
func WithDesigns(names []string) Option {
	return func(m *Model) { m.designs = names }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copy = write }
}

// New creates a preview editing text in the given request's design.
func New(e *engine.Engine, req layout.Request, metrics layout.CellMetrics, opts ...Option) *Model {
	ta := textarea.New()
	ta.Placeholder = "Type box contents..."
	ta.ShowLineNumbers = false
	ta.SetHeight(editorHeight)
	ta.SetValue(req.Content)
	ta.Focus()

	m := &Model{
		editor:  ta,
		engine:  e,
		results: make(chan engine.Result, 1),
		req:     req,
		metrics: metrics,
		designs: boxes.DefaultDesigns,
		styles:  style.DefaultStyles(),
		copy:    clipboard.WriteAll,
	}
	m.debouncer = timer.NewDebouncer(timer.DefaultDelay, m.deliver)
	for _, opt := range opts {
		opt(m)
	}
	for i, name := range m.designs {
		if name == req.Design {
			m.design = i
		}
	}
	if req.Design == "" && len(m.designs) > 0 {
		m.req.Design = m.designs[0]
	}
	return m
}

// deliver runs on the debouncer's goroutine. Only the newest result is
// kept.
func (m *Model) deliver(res engine.Result, _ error) {
	select {
	case <-m.results:
	default:
	}
	m.results <- res
}

func (m *Model) waitForResult() tea.Cmd {
	return func() tea.Msg {
		return ResultMsg(<-m.results)
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.schedule()
	return tea.Batch(textarea.Blink, m.waitForResult())
}

// schedule queues a layout of the current text at the current width.
func (m *Model) schedule() {
	req := m.req
	req.Content = m.editor.Value()
	if m.width > 0 {
		req.Cols = min(boxes.DefaultLimits().MaxCols, m.width)
	}
	e, metrics := m.engine, m.metrics
	m.pending = true
	m.debouncer.Trigger(func(ctx context.Context) (engine.Result, error) {
		return e.Layout(ctx, req, metrics, layout.Container{}), nil
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.editor.SetWidth(max(10, msg.Width-2))
		m.schedule()
		return m, nil

	case ResultMsg:
		m.result = engine.Result(msg)
		m.ready = true
		m.pending = m.debouncer.Pending()
		return m, m.waitForResult()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.debouncer.Stop()
			return m, tea.Quit
		case tea.KeyTab:
			m.cycleDesign(1)
			return m, nil
		case tea.KeyShiftTab:
			m.cycleDesign(-1)
			return m, nil
		case tea.KeyCtrlY:
			m.copyArt()
			return m, nil
		}
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if m.editor.Value() != before {
		m.notice = ""
		m.schedule()
	}
	return m, cmd
}

func (m *Model) cycleDesign(step int) {
	if len(m.designs) == 0 {
		return
	}
	m.design = (m.design + step + len(m.designs)) % len(m.designs)
	m.req.Design = m.designs[m.design]
	m.schedule()
}

func (m *Model) copyArt() {
	if !m.ready {
		return
	}
	if err := m.copy(m.result.Art.BoxText); err != nil {
		m.notice = "copy failed: " + err.Error()
		return
	}
	m.notice = "copied"
}

// Design returns the active design name.
func (m *Model) Design() string { return m.req.Design }

// Result returns the latest delivered layout and whether there is one.
func (m *Model) Result() (engine.Result, bool) { return m.result, m.ready }

// View implements tea.Model.
func (m *Model) View() string {
	s := m.styles
	art := s.Muted.Render("laying out...")
	if m.ready {
		if m.result.Fallback {
			art = s.StatusFallback.Render(m.result.Art.BoxText)
		} else {
			art = s.Art.Render(m.result.Art.BoxText)
		}
	}
	return s.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.Editor.Render(m.editor.View()),
		art,
		m.statusLine(),
	))
}

func (m *Model) statusLine() string {
	s := m.styles
	parts := []string{s.StatusKey.Render(m.req.Design)}

	switch {
	case m.pending:
		parts = append(parts, s.StatusPending.Render("pending"))
	case m.ready && m.result.Fallback:
		parts = append(parts, s.StatusFallback.Render("plain text"), s.Error.Render(errText(m.result.Err)))
	case m.ready:
		parts = append(parts, s.StatusOK.Render("ok"))
	}

	if m.ready {
		g := m.result.Plan.Grid
		parts = append(parts, s.StatusBar.Render(fmt.Sprintf("%dx%d", g.Cols, g.Rows)))
		if f := m.result.Frame; f != nil {
			parts = append(parts, s.Muted.Render(fmt.Sprintf("frame %.2f", f.Confidence)))
		}
		if m.result.Fit != nil {
			parts = append(parts, s.Muted.Render("fit "+m.result.FitSource.String()))
		}
		for _, w := range m.result.Plan.Warnings {
			parts = append(parts, s.Warning.Render(w))
		}
	}
	if m.notice != "" {
		parts = append(parts, s.Muted.Render(m.notice))
	}
	parts = append(parts, s.Muted.Render("tab design · ctrl+y copy · esc quit"))
	return strings.Join(parts, " ")
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Run starts the preview on the terminal and blocks until it exits.
func Run(m *Model) error {
	defer m.debouncer.Stop()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
