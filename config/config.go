// Package config loads glyphbox settings from a Lua script.
//
// The script runs with a global glyphbox table already holding the
// defaults, grouped the way the pipeline consumes them:
//
//	glyphbox.renderer  boxes binary, its -f config, timeout_ms,
//	                   max_output_bytes and the result cache_size
//	glyphbox.solver    max_iterations and the memo cache_size
//	glyphbox.layout    char_width, line_height, font_size (px, > 0),
//	                   letter_spacing (px, >= 0), debounce_ms
//	glyphbox.server    addr
//	glyphbox.log       level
//
// Sizes, counts and timeouts must be positive. A script that only sets
// glyphbox.layout.char_width = 9 keeps every other default.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// EnvFile names the environment variable that overrides InitFile.
const EnvFile = "GLYPHBOX_CONFIG"

// Dir returns the directory holding init.lua: $XDG_CONFIG_HOME/glyphbox
// (or ~/.config/glyphbox) on Unix and %APPDATA%\glyphbox on Windows.
func Dir() string {
	var base string

	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	} else {
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, "glyphbox")
}

// InitFile returns the script Load reads when no --config flag is given.
// $GLYPHBOX_CONFIG wins over the init.lua in Dir.
func InitFile() string {
	if p := os.Getenv(EnvFile); p != "" {
		return p
	}
	return filepath.Join(Dir(), "init.lua")
}
