// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/pillars/internal/schedule"
)

// Config holds the application configuration.
type Config struct {
	Grid    GridConfig    `toml:"grid"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`
}

// GridConfig holds the time slot granularity.
type GridConfig struct {
	SlotMinutes int `toml:"slot_minutes"` // 30 or 60 typical, must divide a day
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Debug bool   `toml:"debug"`
	Dir   string `toml:"dir"`
}

// UIConfig holds terminal output settings.
type UIConfig struct {
	Color     bool   `toml:"color"`
	ViewStart string `toml:"view_start"` // first row shown by "show", e.g. "06:00"
	ViewEnd   string `toml:"view_end"`   // last row shown by "show", e.g. "23:00"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			SlotMinutes: 60,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Log: LogConfig{
			Debug: false,
			Dir:   defaultLogDir(),
		},
		UI: UIConfig{
			Color:     true,
			ViewStart: "00:00",
			ViewEnd:   "23:59",
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pillars.db"
	}
	return filepath.Join(home, ".local", "share", "pillars", "pillars.db")
}

func defaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "state", "pillars")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "pillars", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	// Expand paths
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.Dir = expandPath(cfg.Log.Dir)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PILLARS_SLOT_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PILLARS_SLOT_MINUTES: %w", err)
		}
		cfg.Grid.SlotMinutes = n
	}

	if v := os.Getenv("PILLARS_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("PILLARS_LOG_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PILLARS_LOG_DEBUG: %w", err)
		}
		cfg.Log.Debug = b
	}
	if v := os.Getenv("PILLARS_LOG_DIR"); v != "" {
		cfg.Log.Dir = v
	}

	// Any value disables color, following the NO_COLOR convention.
	if v := os.Getenv("PILLARS_NO_COLOR"); v != "" {
		cfg.UI.Color = false
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := schedule.NewGrid(c.Grid.SlotMinutes); err != nil {
		return fmt.Errorf("slot_minutes: %w", err)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.Log.Dir == "" {
		return errors.New("log dir must be set")
	}
	if err := validateTime(c.UI.ViewStart, "view_start"); err != nil {
		return err
	}
	if err := validateTime(c.UI.ViewEnd, "view_end"); err != nil {
		return err
	}
	if c.UI.ViewStart >= c.UI.ViewEnd {
		return errors.New("view_start must be before view_end")
	}
	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if _, err := schedule.ParseClock(t); err != nil {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

// SlotGrid returns the time grid for the configured granularity.
func (c *Config) SlotGrid() schedule.Grid {
	return schedule.MustGrid(c.Grid.SlotMinutes)
}

// LogFile returns the path of the rotating log file.
func (c *Config) LogFile() string {
	return filepath.Join(c.Log.Dir, "pillars.log")
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
