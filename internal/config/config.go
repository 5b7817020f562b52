// Package config loads producttable settings from
// $PRODUCTTABLE_HOME/config.yaml, applies environment overrides and exposes
// the result to the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/producttable/internal/cache"
	"github.com/rshade/producttable/internal/catalog"
	"github.com/rshade/producttable/internal/logging"
	"github.com/rshade/producttable/internal/pagination"
)

// Environment variables read by New.
const (
	EnvHome         = "PRODUCTTABLE_HOME"
	EnvAPIURL       = "PRODUCTTABLE_API_URL"
	EnvLogLevel     = "PRODUCTTABLE_LOG_LEVEL"
	EnvLogFormat    = "PRODUCTTABLE_LOG_FORMAT"
	EnvCacheEnabled = "PRODUCTTABLE_CACHE_ENABLED"
	EnvCacheTTL     = "PRODUCTTABLE_CACHE_TTL"
)

const (
	configDirName  = ".producttable"
	configFileName = "config.yaml"
	cacheDirName   = "cache"

	// DefaultServerAddr is where `serve` listens unless configured otherwise.
	DefaultServerAddr = "127.0.0.1:8080"
)

// Validation errors.
var (
	ErrInvalidPageSize  = errors.New("page size must be positive")
	ErrInvalidLogFormat = errors.New("log format must be console or json")
	ErrEmptyAPIURL      = errors.New("api url cannot be empty")
)

// APIConfig locates the product endpoint.
type APIConfig struct {
	URL     string        `yaml:"url"     json:"url"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// TableConfig holds the table presentation defaults.
type TableConfig struct {
	PageSize         int    `yaml:"page_size"         json:"page_size"`
	PageSizeOptions  []int  `yaml:"page_size_options" json:"page_size_options"`
	PlaceholderImage string `yaml:"placeholder_image" json:"placeholder_image"`
}

// CacheConfig controls the on-disk response cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"     json:"enabled"`
	TTLSeconds int    `yaml:"ttl_seconds" json:"ttl_seconds"`
	Directory  string `yaml:"directory"   json:"directory,omitempty"`
}

// ServerConfig configures the `serve` command.
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// Config is the complete producttable configuration.
type Config struct {
	API     APIConfig     `yaml:"api"     json:"api"`
	Table   TableConfig   `yaml:"table"   json:"table"`
	Cache   CacheConfig   `yaml:"cache"   json:"cache"`
	Server  ServerConfig  `yaml:"server"  json:"server"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	configPath string
	loadErr    error
}

// Default returns the built-in configuration without reading any file or
// environment variable.
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:     catalog.DefaultAPIURL,
			Timeout: catalog.DefaultTimeout,
		},
		Table: TableConfig{
			PageSize:         pagination.DefaultPageSize,
			PageSizeOptions:  []int{5, 10, 20, 50},
			PlaceholderImage: "https://placehold.co/160x120?text=No+Image",
		},
		Cache: CacheConfig{
			Enabled:    false,
			TTLSeconds: cache.DefaultTTLSeconds,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// New returns the effective configuration: defaults, then the config file
// when it exists, then environment overrides. A config file that cannot be
// parsed is skipped and reported through LoadError.
func New() *Config {
	cfg := Default()

	if path, err := GetConfigPath(); err == nil {
		cfg.configPath = path
		if _, statErr := os.Stat(path); statErr == nil {
			loaded := Default()
			if mergeErr := ShallowMergeYAML(loaded, path); mergeErr != nil {
				cfg.loadErr = fmt.Errorf("ignoring config file %s: %w", path, mergeErr)
			} else {
				loaded.configPath = path
				cfg = loaded
			}
		}
	}

	cfg.ApplyEnvOverrides()
	return cfg
}

// LoadError returns why New fell back to the defaults, or nil when the config
// file was absent or read cleanly.
func (c *Config) LoadError() error {
	return c.loadErr
}

// Load reads the config file at path on top of the defaults. Unlike New it
// reports parse errors and ignores the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := ShallowMergeYAML(cfg, path); err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// ApplyEnvOverrides applies PRODUCTTABLE_* variables. Unparseable values are
// skipped.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.URL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvCacheEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Cache.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		if ttl, err := cache.ParseTTL(v); err == nil {
			c.Cache.TTLSeconds = ttl
		}
	}
}

// Validate checks the values the commands depend on.
func (c *Config) Validate() error {
	if c.API.URL == "" {
		return ErrEmptyAPIURL
	}
	if c.Table.PageSize <= 0 {
		return fmt.Errorf("%w: table.page_size=%d", ErrInvalidPageSize, c.Table.PageSize)
	}
	for _, n := range c.Table.PageSizeOptions {
		if n <= 0 {
			return fmt.Errorf("%w: table.page_size_options contains %d", ErrInvalidPageSize, n)
		}
	}
	if c.Cache.Enabled {
		if err := cache.ValidateTTL(c.Cache.TTLSeconds); err != nil {
			return fmt.Errorf("cache.ttl_seconds: %w", err)
		}
	}
	switch c.Logging.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	return nil
}

// Save writes the configuration as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

// Path is the file this configuration was loaded from or saved to.
func (c *Config) Path() string {
	return c.configPath
}

// CacheDirectory returns the configured cache directory or
// $PRODUCTTABLE_HOME/cache.
func (c *Config) CacheDirectory() (string, error) {
	if c.Cache.Directory != "" {
		return c.Cache.Directory, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, cacheDirName), nil
}

// GetConfigDir returns $PRODUCTTABLE_HOME or ~/.producttable.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}

// GetConfigPath returns the path of config.yaml inside GetConfigDir.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
