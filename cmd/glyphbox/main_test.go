package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/drake/glyphbox/designs"
	"github.com/drake/glyphbox/layout"
	"github.com/drake/glyphbox/text"
)

func parseLayoutFlags(t *testing.T, args ...string) *layoutFlags {
	t.Helper()
	var lf layoutFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	lf.register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return &lf
}

func TestLayoutFlagsRequest(t *testing.T) {
	lf := parseLayoutFlags(t,
		"--design", "parchment",
		"--width", "20rem",
		"--padding", "1lh 2ch",
		"--align", "hcvc",
		"--wrap", "hard",
		"--overflow", "ellipsis",
		"--tabs", "4",
	)
	req, err := lf.request(strings.NewReader("two words\n"))
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	want := layout.Request{
		Content:  "two words",
		Design:   "parchment",
		Width:    layout.Length{Value: 20, Unit: layout.UnitRem, Set: true},
		Padding:  layout.Padding{Top: layout.Lines(1), Right: layout.Cells(2), Bottom: layout.Lines(1), Left: layout.Cells(2)},
		Align:    "hcvc",
		Tabs:     layout.Tabs(4),
		Wrap:     text.WrapHard,
		Overflow: text.OverflowEllipsis,
	}
	if diff := cmp.Diff(want, req); diff != "" {
		t.Errorf("request (-want +got):\n%s", diff)
	}
}

func TestLayoutFlagsTextFlagWins(t *testing.T) {
	lf := parseLayoutFlags(t, "-t", "hello", "-c", "30", "-r", "5")
	req, err := lf.request(strings.NewReader("ignored"))
	if err != nil {
		t.Fatal(err)
	}
	if req.Content != "hello" || req.Cols != 30 || req.Rows != 5 {
		t.Errorf("request = %+v", req)
	}
	if req.Wrap != text.WrapWord {
		t.Errorf("default wrap = %v, want word", req.Wrap)
	}
	if req.Tabs != nil {
		t.Errorf("Tabs = %d, want unset", *req.Tabs)
	}
}

func TestLayoutFlagsZeroTabsStrips(t *testing.T) {
	lf := parseLayoutFlags(t, "-t", "a\tb", "--tabs", "0")
	req, err := lf.request(nil)
	if err != nil {
		t.Fatal(err)
	}
	if req.Tabs == nil || req.TabWidth() != 0 {
		t.Errorf("Tabs = %v, want explicit 0", req.Tabs)
	}
}

func TestLayoutFlagsErrors(t *testing.T) {
	tests := [][]string{
		{"--width", "wide"},
		{"--padding", "1 2 3 4 5"},
		{"--align", "sideways"},
		{"--wrap", "maybe"},
		{"--overflow", "spill"},
	}
	for _, args := range tests {
		lf := parseLayoutFlags(t, append(args, "-t", "x")...)
		if _, err := lf.request(nil); err == nil {
			t.Errorf("%v: expected error", args)
		} else if !strings.Contains(err.Error(), args[0]) {
			t.Errorf("%v: error %q does not name the flag", args, err)
		}
	}
}

func TestContentContainer(t *testing.T) {
	m := layout.DefaultMetrics()

	req := layout.Request{Content: "Hello\nparchment world", Padding: layout.Padding{Left: layout.Cells(1), Right: layout.Cells(1)}}
	c := contentContainer(req, m)
	if got, want := m.SnapCols(c.Width), 15+2+2; got != want {
		t.Errorf("cols = %d, want %d", got, want)
	}
	plan := m.Plan(req, c)
	if plan.Text != "Hello\nparchment world" {
		t.Errorf("content rewrapped: %q", plan.Text)
	}

	if c := contentContainer(layout.Request{Content: strings.Repeat("x", 500)}, m); m.SnapCols(c.Width) != 200 {
		t.Errorf("wide content not capped: %v", c)
	}
	if c := contentContainer(layout.Request{Content: "x", Cols: 30}, m); c != (layout.Container{}) {
		t.Errorf("explicit cols should not be overridden: %v", c)
	}
	if c := contentContainer(layout.Request{Content: "x", Width: layout.Px(100)}, m); c != (layout.Container{}) {
		t.Errorf("explicit width should not be overridden: %v", c)
	}
}

func TestDesignsCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "init.lua"), "--log-level", "error", "designs"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("designs: %v", err)
	}
	got := out.String()
	for _, want := range []string{"parchment", "inset t2 r4 b2 l4", "ansi-rounded", "rounded"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestDesignsDump(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "init.lua"), "--log-level", "error", "designs", "--dump"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("designs --dump: %v", err)
	}
	if out.String() != designs.BuiltinConfig() {
		t.Error("dump differs from the builtin config")
	}
	if _, err := designs.ParseString(out.String()); err != nil {
		t.Errorf("dumped config does not parse: %v", err)
	}
}

func TestUnknownCommand(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"explode"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for unknown command")
	}
}
