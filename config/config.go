// ABOUTME: Configuration for the assistant, the LLM endpoint, and the store backend
// ABOUTME: JSON file in the XDG config dir, overridden by .env and environment variables

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

const (
	// AppName names the XDG directories.
	AppName = "inscrm"

	// ConfigFileName is where we store local config.
	ConfigFileName = "config.json"
)

// Chat modes.
const (
	ModeLocal  = "local"
	ModeRemote = "remote"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.7
	DefaultTimeout     = 8 * time.Second
	DefaultLocalDelay  = 600 * time.Millisecond
	DefaultRPS         = 1.0
)

// Config holds assistant settings.
type Config struct {
	// Mode is the initial dispatcher mode (local or remote).
	Mode string `json:"mode"`

	// Provider is the remote LLM provider (openai or gemini).
	Provider string `json:"provider"`

	Model       string  `json:"model"`
	BaseURL     string  `json:"base_url,omitempty"`
	Temperature float64 `json:"temperature"`

	// Timeout bounds each remote attempt.
	Timeout time.Duration `json:"timeout"`

	// LocalDelay simulates latency before a local answer.
	LocalDelay time.Duration `json:"local_delay"`

	// RequestsPerSecond throttles calls to the remote endpoint.
	RequestsPerSecond float64 `json:"requests_per_second"`

	// Store selects the data backend (memory or sqlite).
	Store string `json:"store"`

	// DatabasePath is the SQLite path; ":memory:" keeps it in the process.
	DatabasePath string `json:"database_path,omitempty"`

	LogLevel string `json:"log_level,omitempty"`

	// APIKey comes only from the environment and is never saved.
	APIKey string `json:"-"`
}

// DefaultConfig returns a new config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode:              ModeLocal,
		Provider:          "openai",
		Model:             DefaultModel,
		Temperature:       DefaultTemperature,
		Timeout:           DefaultTimeout,
		LocalDelay:        DefaultLocalDelay,
		RequestsPerSecond: DefaultRPS,
		Store:             StoreMemory,
		DatabasePath:      ":memory:",
		LogLevel:          "info",
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir := filepath.Join(xdg.ConfigHome, AppName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// LoadConfig loads the config file, then .env, then the environment.
func LoadConfig() (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	path, err := Path()
	if err != nil {
		// Can't determine config path, use defaults
		cfg := DefaultConfig()
		cfg.ApplyEnv(os.Getenv)
		return cfg, nil
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, cfg.Validate()
}

// LoadFile reads the config at path, or returns defaults if it does not exist.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Mode == "" {
		c.Mode = d.Mode
	}
	if c.Provider == "" {
		c.Provider = d.Provider
	}
	if c.Model == "" {
		c.Model = d.Model
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.LocalDelay < 0 {
		c.LocalDelay = 0
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = d.RequestsPerSecond
	}
	if c.Store == "" {
		c.Store = d.Store
	}
	if c.DatabasePath == "" {
		c.DatabasePath = d.DatabasePath
	}
}

// ApplyEnv overrides fields from environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("INSCRM_MODE"); v != "" {
		c.Mode = v
	}
	if v := getenv("INSCRM_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := getenv("INSCRM_MODEL"); v != "" {
		c.Model = v
	}
	if v := getenv("INSCRM_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := getenv("INSCRM_STORE"); v != "" {
		c.Store = v
	}
	if v := getenv("INSCRM_DB"); v != "" {
		c.DatabasePath = v
	}
	if v := getenv("INSCRM_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("INSCRM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Timeout = d
		} else if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.Timeout = time.Duration(secs) * time.Second
		}
	}

	// Provider-specific keys win over the generic one.
	c.APIKey = getenv("INSCRM_API_KEY")
	switch c.Provider {
	case "gemini":
		if v := getenv("GEMINI_API_KEY"); v != "" {
			c.APIKey = v
		}
	default:
		if v := getenv("OPENAI_API_KEY"); v != "" {
			c.APIKey = v
		}
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeLocal, ModeRemote:
	default:
		return fmt.Errorf("invalid mode %q (want %s or %s)", c.Mode, ModeLocal, ModeRemote)
	}
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("invalid store %q (want %s or %s)", c.Store, StoreMemory, StoreSQLite)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature %v out of range [0, 2]", c.Temperature)
	}
	return nil
}

// Save persists the config to disk. The API key is not written.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// SetMode sets the initial chat mode and saves.
func (c *Config) SetMode(mode string) error {
	c.Mode = mode
	if err := c.Validate(); err != nil {
		return err
	}
	return c.Save()
}
