package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/thenoetrevino/countwave/internal/config/colors"
	"github.com/thenoetrevino/countwave/internal/database"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file
const (
	EnvConfig    = "COUNTWAVE_CONFIG"
	EnvThemeFile = "COUNTWAVE_THEME_FILE"
	EnvAddr      = "COUNTWAVE_ADDR"
	EnvDB        = "COUNTWAVE_DB"
	EnvLogLevel  = "COUNTWAVE_LOG_LEVEL"
	EnvAuthMode  = "COUNTWAVE_AUTH_MODE"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Database DatabaseConfig `yaml:"database" toml:"database"`
	Log      LogConfig      `yaml:"log" toml:"log"`
	Auth     AuthConfig     `yaml:"auth" toml:"auth"`
	Theme    ThemeConfig    `yaml:"theme" toml:"theme"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`

	// BaseURL prefixes share links; defaults to http://<addr>
	BaseURL string `yaml:"base_url" toml:"base_url"`

	ReadTimeout     time.Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" toml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

// DatabaseConfig configures the SQLite store
type DatabaseConfig struct {
	// Path to the database file, or ":memory:"
	Path string `yaml:"path" toml:"path"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `yaml:"level" toml:"level"`

	// File is an optional log file; "" logs to the console only
	File string `yaml:"file" toml:"file"`
}

// AuthConfig configures how requests are tied to users
type AuthConfig struct {
	// Mode is none, dev or header
	Mode string `yaml:"mode" toml:"mode"`

	// DevUser is the identity every request gets in dev mode
	DevUser DevUser `yaml:"dev_user" toml:"dev_user"`
}

// DevUser is the fixed identity used in dev auth mode
type DevUser struct {
	ID       string `yaml:"id" toml:"id"`
	Name     string `yaml:"name" toml:"name"`
	Email    string `yaml:"email" toml:"email"`
	ImageURL string `yaml:"image_url" toml:"image_url"`
}

// ThemeConfig configures appearance
type ThemeConfig struct {
	// Default is the web theme before the browser reports one: system, dark or light
	Default string `yaml:"default" toml:"default"`

	// Colors styles CLI output
	Colors colors.ColorScheme `yaml:"colors" toml:"colors"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// loadThemeFile merges colors from COUNTWAVE_THEME_FILE, if set
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ThemeConfig `yaml:"theme"`
	}
	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.Theme.Colors.MergeFrom(themeConfig.Theme.Colors)
	}
}

// Load loads config from COUNTWAVE_CONFIG or the user's config directory.
// A missing file yields the defaults. Environment overrides apply last.
func Load() (*Config, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			// Fall back to defaults if we can't determine config path
			config := Default()
			loadThemeFile(config)
			config.applyEnv()
			return config, config.Validate()
		}
		path = p
	}
	return LoadFile(path)
}

// LoadFile loads config from path. Files ending in .toml are decoded as TOML,
// everything else as YAML.
func LoadFile(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, err
	case strings.EqualFold(filepath.Ext(path), ".toml"):
		if _, err := toml.Decode(string(data), &config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	loadThemeFile(&config)
	config.applyDefaults()
	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save writes the config as YAML to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0o644)
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr is empty")
	}
	switch c.Auth.Mode {
	case "none", "header":
	case "dev":
		if c.Auth.DevUser.ID == "" {
			return errors.New("config: auth.dev_user.id is required in dev mode")
		}
	default:
		return fmt.Errorf("config: invalid auth.mode %q (expected none|dev|header)", c.Auth.Mode)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid log.level %q", c.Log.Level)
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "countwave", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "countwave", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = "localhost:8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	// SSE streams stay open, so no write timeout unless configured
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Database.Path == "" {
		if p, err := database.DefaultPath(); err == nil {
			c.Database.Path = p
		} else {
			c.Database.Path = "countwave.db"
		}
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.Auth.Mode = strings.ToLower(strings.TrimSpace(c.Auth.Mode))
	if c.Auth.Mode == "" {
		c.Auth.Mode = "none"
	}
	if c.Theme.Default == "" {
		c.Theme.Default = "system"
	}
	c.Theme.Colors.ApplyDefaults()
}

// applyEnv applies COUNTWAVE_* overrides
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvDB); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvAuthMode); v != "" {
		c.Auth.Mode = strings.ToLower(strings.TrimSpace(v))
	}
}

// PublicBaseURL returns the prefix for share links
func (c *Config) PublicBaseURL() string {
	if c.Server.BaseURL != "" {
		return strings.TrimRight(c.Server.BaseURL, "/")
	}
	return "http://" + c.Server.Addr
}
