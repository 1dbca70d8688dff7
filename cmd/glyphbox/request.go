package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/drake/glyphbox/boxes"
	"github.com/drake/glyphbox/layout"
	"github.com/drake/glyphbox/text"
)

// layoutFlags are the flags shared by commands that lay out a box.
type layoutFlags struct {
	text     string
	design   string
	width    string
	height   string
	padding  string
	align    string
	wrap     string
	overflow string
	cols     int
	rows     int
	tabs     int

	fs *pflag.FlagSet
}

func (f *layoutFlags) register(fs *pflag.FlagSet) {
	f.fs = fs
	fs.StringVarP(&f.text, "text", "t", "", "box contents (default: stdin)")
	fs.StringVarP(&f.design, "design", "d", "simple", "box design")
	fs.StringVar(&f.width, "width", "", "box width as a CSS length (px, rem, em, ch, lh)")
	fs.StringVar(&f.height, "height", "", "box height as a CSS length")
	fs.StringVarP(&f.padding, "padding", "p", "", "CSS padding shorthand, e.g. \"1lh 2ch\"")
	fs.StringVarP(&f.align, "align", "a", "", "alignment, e.g. hcvc")
	fs.StringVar(&f.wrap, "wrap", "word", "wrap policy: word, hard, off")
	fs.StringVar(&f.overflow, "overflow", "clip", "overflow policy: clip, ellipsis")
	fs.IntVarP(&f.cols, "cols", "c", 0, "grid columns, overrides --width")
	fs.IntVarP(&f.rows, "rows", "r", 0, "grid rows, overrides --height")
	fs.IntVar(&f.tabs, "tabs", layout.DefaultTabs, "tab width, 0 or less strips tabs")
}

// request builds a layout request from the flags, reading the text from
// stdin when --text is empty.
func (f *layoutFlags) request(stdin io.Reader) (layout.Request, error) {
	req := layout.Request{
		Design: f.design,
		Cols:   f.cols,
		Rows:   f.rows,
	}
	if f.fs != nil && f.fs.Changed("tabs") {
		req.Tabs = layout.Tabs(f.tabs)
	}
	var err error
	if req.Width, err = layout.ParseLength(f.width); err != nil {
		return req, fmt.Errorf("--width: %w", err)
	}
	if req.Height, err = layout.ParseLength(f.height); err != nil {
		return req, fmt.Errorf("--height: %w", err)
	}
	if f.padding != "" {
		if req.Padding, err = layout.ParsePadding(f.padding); err != nil {
			return req, fmt.Errorf("--padding: %w", err)
		}
	}
	if req.Align, err = layout.ParseAlign(f.align); err != nil {
		return req, fmt.Errorf("--align: %w", err)
	}
	if req.Wrap, err = text.ParseWrap(f.wrap); err != nil {
		return req, fmt.Errorf("--wrap: %w", err)
	}
	if req.Overflow, err = text.ParseOverflow(f.overflow); err != nil {
		return req, fmt.Errorf("--overflow: %w", err)
	}

	req.Content = f.text
	if req.Content == "" {
		content, err := readContent(stdin)
		if err != nil {
			return req, err
		}
		req.Content = content
	}
	return req, nil
}

// readContent reads the box text from r. An interactive terminal is never
// read, so a missing --text fails instead of hanging.
func readContent(r io.Reader) (string, error) {
	if f, ok := r.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return "", fmt.Errorf("no text: pass --text or pipe it on stdin")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

// contentContainer sizes the box to its content when no width was given:
// the widest line plus padding and the two border cells, capped at the
// renderer's column limit.
func contentContainer(req layout.Request, m layout.CellMetrics) layout.Container {
	if req.Cols > 0 || req.Width.Set {
		return layout.Container{}
	}
	widest := 0
	for _, line := range strings.Split(text.Normalize(req.Content, req.TabWidth()), "\n") {
		widest = max(widest, text.DisplayWidth(line))
	}
	pad := m.SnapPadding(req.Padding)
	cols := min(boxes.DefaultLimits().MaxCols, widest+pad.Left+pad.Right+2)
	return layout.Container{Width: m.ColsToPx(cols)}
}
