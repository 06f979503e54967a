// Package config handles the XDG configuration directory and the optional
// config.toml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// AppName is the application directory name.
	AppName = "tasksync"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.toml"

	// OAuthClientFile is the OAuth client credentials filename (googletasks backend).
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename (googletasks backend).
	TokenFile = "token.json"

	// DefaultBaseURL is used by the rest backend when nothing is configured.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultListID is the Google Tasks list used when list_id is unset.
	DefaultListID = "@default"
)

// Backend names.
const (
	BackendREST        = "rest"
	BackendGoogleTasks = "googletasks"
)

// Environment overrides.
const (
	EnvBaseURL = "TASKSYNC_BASE_URL"
	EnvToken   = "TASKSYNC_TOKEN"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Backend selects the gateway implementation ("rest" or "googletasks").
	Backend string

	// BaseURL is the remote store root for the rest backend.
	BaseURL string

	// Token is an optional bearer token for the rest backend.
	Token string

	// ListID is the Google Tasks list for the googletasks backend.
	ListID string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// fileConfig mirrors config.toml.
type fileConfig struct {
	Backend  string `toml:"backend"`
	BaseURL  string `toml:"base_url"`
	Token    string `toml:"token"`
	ListID   string `toml:"list_id"`
	LogLevel string `toml:"log_level"`
}

// New creates a new Config with defaults and the default or specified config
// directory. If configDir is empty, uses XDG_CONFIG_HOME/tasksync or
// $HOME/.config/tasksync.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:      dir,
		Backend:  BackendREST,
		BaseURL:  DefaultBaseURL,
		ListID:   DefaultListID,
		LogLevel: "info",
	}, nil
}

// Load creates a Config like New, then applies config.toml (if present) and
// environment overrides, in that order.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cfg.FilePath())
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No file; defaults stand.
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", ConfigFile, err)
	default:
		var fc fileConfig
		if err := toml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", ConfigFile, err)
		}
		cfg.merge(fc)
	}

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Token = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(fc fileConfig) {
	if fc.Backend != "" {
		c.Backend = strings.ToLower(strings.TrimSpace(fc.Backend))
	}
	if fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}
	if fc.Token != "" {
		c.Token = fc.Token
	}
	if fc.ListID != "" {
		c.ListID = fc.ListID
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendREST:
		if strings.TrimSpace(c.BaseURL) == "" {
			return errors.New("base_url must not be empty")
		}
	case BackendGoogleTasks:
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
