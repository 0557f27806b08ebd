// Package config loads and saves Sui's TOML configuration file, per
// the interpreter/debugger/transpiler defaults spec section 4.3, 4.4
// and 4.5 leave to the host to set.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds interpreter, debugger and transpiler settings.
type Config struct {
	Interpreter struct {
		MaxStackDepth int  `toml:"max_stack_depth"`
		EnableTrace   bool `toml:"enable_trace"`
	} `toml:"interpreter"`

	Debugger struct {
		HistorySize   int  `toml:"history_size"`
		ShowSource    bool `toml:"show_source"`
		SourceContext int  `toml:"source_context"`
	} `toml:"debugger"`

	Transpiler struct {
		IndentWidth  int    `toml:"indent_width"`
		TargetStyle  string `toml:"target_style"` // "py" or "js"
		EmitComments bool   `toml:"emit_comments"`
	} `toml:"transpiler"`
}

// Default returns a Config with Sui's built-in defaults: a 1000-deep
// call stack, a 1000-entry debugger history, and a 4-space transpiler
// indent.
func Default() *Config {
	cfg := &Config{}
	cfg.Interpreter.MaxStackDepth = 1000
	cfg.Interpreter.EnableTrace = false

	cfg.Debugger.HistorySize = 1000
	cfg.Debugger.ShowSource = true
	cfg.Debugger.SourceContext = 5

	cfg.Transpiler.IndentWidth = 4
	cfg.Transpiler.TargetStyle = "py"
	cfg.Transpiler.EmitComments = false

	return cfg
}

// Path returns the platform-specific config file location,
// ~/.config/sui/config.toml on Linux/macOS and
// %APPDATA%\sui\config.toml on Windows.
func Path() string {
	var dir string
	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		dir = filepath.Join(dir, "sui")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		dir = filepath.Join(home, ".config", "sui")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "config.toml")
}

// Load reads the config file at Path, falling back to Default when it
// does not exist.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads and decodes a TOML config file at path, falling back
// to Default when the file is missing.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes c to Path in TOML form.
func (c *Config) Save() error { return c.SaveTo(Path()) }

// SaveTo writes c to path in TOML form, creating parent directories as
// needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
