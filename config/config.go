package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
)

// Config represents the harness configuration. Environment variables override
// the defaults; values from a config file override both.
type Config struct {
	// Core settings
	Core struct {
		VLEN int `toml:"vlen"` // vector register length in bits
		XLEN int `toml:"xlen"` // scalar register width in bits
	} `toml:"core"`

	// Golden-case harness settings
	Golden struct {
		CaseDir     string `toml:"case_dir"`
		LogDir      string `toml:"log_dir"`
		StopOnFail  bool   `toml:"stop_on_fail"`
		WriteLogs   bool   `toml:"write_logs"`
		PlotFile    string `toml:"plot_file"`
		PlotResults bool   `toml:"plot_results"`
	} `toml:"golden"`

	// Display settings
	Display struct {
		ColorOutput  bool   `toml:"color_output"`
		BytesPerLine int    `toml:"bytes_per_line"`
		NumberFormat string `toml:"number_format"` // hex, dec, both
	} `toml:"display"`
}

// DefaultConfig returns a configuration with default values, after applying
// any environment-variable overrides
func DefaultConfig() *Config {
	cfg := &Config{}

	// Core defaults
	cfg.Core.VLEN = env.Int("RVV_VLEN", 128)
	cfg.Core.XLEN = env.Int("RVV_XLEN", 32)

	// Golden harness defaults
	cfg.Golden.CaseDir = env.Str("RVV_GOLDEN_DIR", "golden-cases")
	cfg.Golden.LogDir = env.Str("RVV_LOG_DIR", GetLogPath())
	cfg.Golden.StopOnFail = env.Bool("RVV_STOP_ON_FAIL")
	cfg.Golden.WriteLogs = true
	cfg.Golden.PlotFile = env.Str("RVV_PLOT_FILE", "results.png")
	cfg.Golden.PlotResults = false

	// Display defaults
	cfg.Display.ColorOutput = true
	cfg.Display.BytesPerLine = 16
	cfg.Display.NumberFormat = "hex"

	return cfg
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Core.VLEN <= 0 || c.Core.VLEN%8 != 0 {
		return fmt.Errorf("invalid VLEN %d: must be a positive multiple of 8", c.Core.VLEN)
	}
	if c.Core.XLEN != 32 && c.Core.XLEN != 64 {
		return fmt.Errorf("invalid XLEN %d: must be 32 or 64", c.Core.XLEN)
	}
	switch c.Display.NumberFormat {
	case "hex", "dec", "both":
	default:
		return fmt.Errorf("invalid number format %q", c.Display.NumberFormat)
	}
	return nil
}

// GetConfigPath returns the platform-specific config file path
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "rvv-emu")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "rvv-emu")

	default:
		// Unknown platform: use current directory
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// GetLogPath returns the platform-specific log directory path
func GetLogPath() string {
	var logDir string

	switch runtime.GOOS {
	case "windows":
		logDir = os.Getenv("APPDATA")
		if logDir == "" {
			logDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		logDir = filepath.Join(logDir, "rvv-emu", "logs")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "logs"
		}
		logDir = filepath.Join(homeDir, ".local", "share", "rvv-emu", "logs")

	default:
		return "logs"
	}

	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "logs"
	}

	return logDir
}

// Load loads configuration from the default config file
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file
// yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
