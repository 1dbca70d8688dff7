package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "init.lua"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.lua")
	script := `
glyphbox.renderer.binary = "/opt/boxes/bin/boxes"
glyphbox.renderer.timeout_ms = 500
glyphbox.solver.max_iterations = 3
glyphbox.layout.char_width = 9.5
glyphbox.layout.letter_spacing = glyphbox.layout.char_width / 19
glyphbox.server.addr = "127.0.0.1:9000"
glyphbox.log.level = "debug"
`
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Renderer.Binary = "/opt/boxes/bin/boxes"
	want.Renderer.Timeout = 500 * time.Millisecond
	want.Solver.MaxIterations = 3
	want.Layout.CharWidth = 9.5
	want.Layout.LetterSpacing = 0.5
	want.Addr = "127.0.0.1:9000"
	want.LogLevel = "debug"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
	if cfg.Level() != log.DebugLevel {
		t.Errorf("Level = %v, want debug", cfg.Level())
	}
	if m := cfg.Metrics(); m.Advance() != 10 {
		t.Errorf("Advance = %v, want 10", m.Advance())
	}
}

func TestLoadStringReplacedSection(t *testing.T) {
	cfg, err := LoadString("init.lua", `glyphbox.solver = { cache_size = 10 }`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	if cfg.Solver.CacheSize != 10 {
		t.Errorf("CacheSize = %d, want 10", cfg.Solver.CacheSize)
	}
	if cfg.Solver.MaxIterations != Default().Solver.MaxIterations {
		t.Errorf("MaxIterations = %d, want default", cfg.Solver.MaxIterations)
	}
}

func TestLoadStringErrors(t *testing.T) {
	tests := []struct {
		name, code, want string
	}{
		{"syntax", `glyphbox.solver =`, "config:"},
		{"runtime", `error("boom")`, "boom"},
		{"wrong type", `glyphbox.renderer.timeout_ms = "fast"`, "glyphbox.renderer.timeout_ms: want number, got string"},
		{"negative", `glyphbox.layout.letter_spacing = -1`, "glyphbox.layout.letter_spacing: want non-negative number"},
		{"zero char width", `glyphbox.layout.char_width = 0`, "glyphbox.layout.char_width: want positive number"},
		{"zero line height", `glyphbox.layout.line_height = 0`, "glyphbox.layout.line_height: want positive number"},
		{"zero font size", `glyphbox.layout.font_size = 0`, "glyphbox.layout.font_size: want positive number"},
		{"zero iterations", `glyphbox.solver.max_iterations = 0`, "glyphbox.solver.max_iterations: want positive number"},
		{"fractional iterations", `glyphbox.solver.max_iterations = 0.5`, "glyphbox.solver.max_iterations: want positive integer"},
		{"zero timeout", `glyphbox.renderer.timeout_ms = 0`, "glyphbox.renderer.timeout_ms: want positive number"},
		{"zero output cap", `glyphbox.renderer.max_output_bytes = 0`, "glyphbox.renderer.max_output_bytes: want positive number"},
		{"zero cache", `glyphbox.solver.cache_size = 0`, "glyphbox.solver.cache_size: want positive number"},
		{"not a table", `glyphbox = 5`, "glyphbox must be a table"},
		{"bad section", `glyphbox.server = "x"`, "glyphbox.server: want table"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadString("init.lua", tt.code)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestLoadStringAllowsZeroDebounceAndSpacing(t *testing.T) {
	cfg, err := LoadString("init.lua", "glyphbox.layout.debounce_ms = 0\nglyphbox.layout.letter_spacing = 0")
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	if cfg.Layout.Debounce != 0 || cfg.Layout.LetterSpacing != 0 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
}

func TestLevelFallback(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "chatty"
	if cfg.Level() != log.InfoLevel {
		t.Errorf("Level = %v, want info", cfg.Level())
	}
}

func TestDirHonorsXDG(t *testing.T) {
	if os.Getenv("APPDATA") != "" {
		t.Skip("windows layout")
	}
	t.Setenv(EnvFile, "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := InitFile(); got != filepath.Join("/tmp/xdg", "glyphbox", "init.lua") {
		t.Errorf("InitFile = %q", got)
	}
}

func TestInitFileEnvOverride(t *testing.T) {
	t.Setenv(EnvFile, "/etc/glyphbox.lua")
	if got := InitFile(); got != "/etc/glyphbox.lua" {
		t.Errorf("InitFile = %q, want the %s path", got, EnvFile)
	}
}
