// Package config loads and saves the assembler's user-tunable settings
// via TOML, following the teacher's config package (config/config.go):
// a struct of grouped settings, a DefaultConfig, and OS-specific config
// directory resolution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the assembler's tunable settings. Defaults reproduce the
// behaviour of the original implementation exactly; only Diagnostics and
// Output are expected to be overridden in practice.
type Config struct {
	Assembly struct {
		CodeOrigin     int64 `toml:"code_origin"`      // IC starting value (spec.md §3: 100)
		MaxLineLength  int   `toml:"max_line_length"`  // spec.md §4.4 step 1: 80
		MaxLabelLength int   `toml:"max_label_length"` // spec.md §4.1: 31
	} `toml:"assembly"`

	Diagnostics struct {
		WarnOnExternShadow bool `toml:"warn_on_extern_shadow"` // original_source/src/directives.c: label preceding .extern is dropped silently
		StopOnFirstFile    bool `toml:"stop_on_first_file"`
	} `toml:"diagnostics"`

	Output struct {
		Directory  string `toml:"directory"` // empty means alongside the source file
		EmitObject bool   `toml:"emit_object"`
		EmitExtern bool   `toml:"emit_extern"`
		EmitEntry  bool   `toml:"emit_entry"`
	} `toml:"output"`
}

// DefaultConfig returns a configuration matching spec.md's defaults.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Assembly.CodeOrigin = 100
	cfg.Assembly.MaxLineLength = 80
	cfg.Assembly.MaxLabelLength = 31

	cfg.Diagnostics.WarnOnExternShadow = false
	cfg.Diagnostics.StopOnFirstFile = false

	cfg.Output.Directory = ""
	cfg.Output.EmitObject = true
	cfg.Output.EmitExtern = true
	cfg.Output.EmitEntry = true

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "r32asm")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "r32asm")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file is
// not an error: it yields DefaultConfig.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
