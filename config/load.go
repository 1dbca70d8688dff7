package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	glua "github.com/yuin/gopher-lua"

	"github.com/drake/glyphbox/boxes"
	"github.com/drake/glyphbox/internal/timer"
	"github.com/drake/glyphbox/layout"
	"github.com/drake/glyphbox/solver"
)

// Renderer configures the boxes process and the server-side result cache.
type Renderer struct {
	Binary     string
	ConfigPath string
	Timeout    time.Duration
	MaxOutput  int
	CacheSize  int
}

// Solver configures the convergence loop.
type Solver struct {
	MaxIterations int
	CacheSize     int
}

// Layout configures cell metrics and the layout debounce.
type Layout struct {
	Debounce      time.Duration
	CharWidth     float64
	LineHeight    float64
	LetterSpacing float64
	FontSize      float64
}

// Config is the full glyphbox configuration.
type Config struct {
	Renderer Renderer
	Solver   Solver
	Layout   Layout
	Addr     string
	LogLevel string
}

// Default returns the built-in configuration.
func Default() Config {
	m := layout.DefaultMetrics()
	return Config{
		Renderer: Renderer{
			Binary:    boxes.DefaultBinary,
			Timeout:   boxes.DefaultTimeout,
			MaxOutput: boxes.DefaultMaxOutput,
			CacheSize: 200,
		},
		Solver: Solver{
			MaxIterations: solver.DefaultMaxIterations,
			CacheSize:     200,
		},
		Layout: Layout{
			Debounce:   timer.DefaultDelay,
			CharWidth:  m.CharWidthPx,
			LineHeight: m.LineHeightPx,
			FontSize:   m.FontPx,
		},
		Addr:     ":8787",
		LogLevel: "info",
	}
}

// Metrics returns the configured cell metrics.
func (c Config) Metrics() layout.CellMetrics {
	return layout.CellMetrics{
		CharWidthPx:     c.Layout.CharWidth,
		LineHeightPx:    c.Layout.LineHeight,
		LetterSpacingPx: c.Layout.LetterSpacing,
		FontPx:          c.Layout.FontSize,
		RootFontPx:      16,
	}
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Load evaluates the Lua script at path against the defaults. A missing
// file is not an error.
func Load(path string) (Config, error) {
	code, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return LoadString(path, string(code))
}

// LoadString evaluates a Lua config script. The script sees a global
// glyphbox table pre-filled with defaults and may change any field.
func LoadString(name, code string) (Config, error) {
	cfg := Default()

	L := glua.NewState()
	defer L.Close()

	root := toTable(L, cfg)
	L.SetGlobal("glyphbox", root)

	fn, err := L.Load(strings.NewReader(code), name)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	L.Push(fn)
	if err := L.PCall(0, 0, nil); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	// The script may have replaced the table wholesale.
	t, ok := L.GetGlobal("glyphbox").(*glua.LTable)
	if !ok {
		return Config{}, fmt.Errorf("config: glyphbox must be a table")
	}
	return fromTable(t, cfg)
}

func toTable(L *glua.LState, c Config) *glua.LTable {
	renderer := L.NewTable()
	renderer.RawSetString("binary", glua.LString(c.Renderer.Binary))
	renderer.RawSetString("config_path", glua.LString(c.Renderer.ConfigPath))
	renderer.RawSetString("timeout_ms", glua.LNumber(c.Renderer.Timeout.Milliseconds()))
	renderer.RawSetString("max_output_bytes", glua.LNumber(c.Renderer.MaxOutput))
	renderer.RawSetString("cache_size", glua.LNumber(c.Renderer.CacheSize))

	slv := L.NewTable()
	slv.RawSetString("max_iterations", glua.LNumber(c.Solver.MaxIterations))
	slv.RawSetString("cache_size", glua.LNumber(c.Solver.CacheSize))

	lay := L.NewTable()
	lay.RawSetString("debounce_ms", glua.LNumber(c.Layout.Debounce.Milliseconds()))
	lay.RawSetString("char_width", glua.LNumber(c.Layout.CharWidth))
	lay.RawSetString("line_height", glua.LNumber(c.Layout.LineHeight))
	lay.RawSetString("letter_spacing", glua.LNumber(c.Layout.LetterSpacing))
	lay.RawSetString("font_size", glua.LNumber(c.Layout.FontSize))

	server := L.NewTable()
	server.RawSetString("addr", glua.LString(c.Addr))

	lg := L.NewTable()
	lg.RawSetString("level", glua.LString(c.LogLevel))

	root := L.NewTable()
	root.RawSetString("renderer", renderer)
	root.RawSetString("solver", slv)
	root.RawSetString("layout", lay)
	root.RawSetString("server", server)
	root.RawSetString("log", lg)
	return root
}

// reader pulls typed fields out of nested tables, keeping the first error.
type reader struct {
	err error
}

func (r *reader) section(root *glua.LTable, name string) *glua.LTable {
	switch v := root.RawGetString(name).(type) {
	case *glua.LTable:
		return v
	case *glua.LNilType:
		return nil
	default:
		r.fail(name, "table", v)
		return nil
	}
}

func (r *reader) str(t *glua.LTable, path, key string, dst *string) {
	if t == nil {
		return
	}
	switch v := t.RawGetString(key).(type) {
	case glua.LString:
		*dst = string(v)
	case *glua.LNilType:
	default:
		r.fail(path+"."+key, "string", v)
	}
}

// num reads a non-negative number. With positive set, zero is rejected too.
func (r *reader) num(t *glua.LTable, path, key string, dst *float64, positive bool) {
	if t == nil {
		return
	}
	switch v := t.RawGetString(key).(type) {
	case glua.LNumber:
		switch {
		case positive && v <= 0:
			r.fail(path+"."+key, "positive number", v)
		case v < 0:
			r.fail(path+"."+key, "non-negative number", v)
		default:
			*dst = float64(v)
		}
	case *glua.LNilType:
	default:
		r.fail(path+"."+key, "number", v)
	}
}

func (r *reader) integer(t *glua.LTable, path, key string, dst *int, positive bool) {
	f := float64(*dst)
	r.num(t, path, key, &f, positive)
	if positive && f < 1 {
		r.fail(path+"."+key, "positive integer", glua.LNumber(f))
		return
	}
	*dst = int(f)
}

func (r *reader) millis(t *glua.LTable, path, key string, dst *time.Duration, positive bool) {
	f := float64(dst.Milliseconds())
	r.num(t, path, key, &f, positive)
	*dst = time.Duration(f * float64(time.Millisecond))
}

func (r *reader) fail(field, want string, got glua.LValue) {
	if r.err == nil {
		r.err = fmt.Errorf("config: glyphbox.%s: want %s, got %s", field, want, got.Type())
	}
}

func fromTable(root *glua.LTable, c Config) (Config, error) {
	var r reader

	rt := r.section(root, "renderer")
	r.str(rt, "renderer", "binary", &c.Renderer.Binary)
	r.str(rt, "renderer", "config_path", &c.Renderer.ConfigPath)
	r.millis(rt, "renderer", "timeout_ms", &c.Renderer.Timeout, true)
	r.integer(rt, "renderer", "max_output_bytes", &c.Renderer.MaxOutput, true)
	r.integer(rt, "renderer", "cache_size", &c.Renderer.CacheSize, true)

	st := r.section(root, "solver")
	r.integer(st, "solver", "max_iterations", &c.Solver.MaxIterations, true)
	r.integer(st, "solver", "cache_size", &c.Solver.CacheSize, true)

	lt := r.section(root, "layout")
	r.millis(lt, "layout", "debounce_ms", &c.Layout.Debounce, false)
	r.num(lt, "layout", "char_width", &c.Layout.CharWidth, true)
	r.num(lt, "layout", "line_height", &c.Layout.LineHeight, true)
	r.num(lt, "layout", "letter_spacing", &c.Layout.LetterSpacing, false)
	r.num(lt, "layout", "font_size", &c.Layout.FontSize, true)

	r.str(r.section(root, "server"), "server", "addr", &c.Addr)
	r.str(r.section(root, "log"), "log", "level", &c.LogLevel)

	if r.err != nil {
		return Config{}, r.err
	}
	return c, nil
}
