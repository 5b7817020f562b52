package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/producttable/internal/cache"
	"github.com/rshade/producttable/internal/config"
	"github.com/rshade/producttable/internal/logging"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "https://api.escuelajs.co/api/v1/products", cfg.API.URL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 10, cfg.Table.PageSize)
	assert.Equal(t, []int{5, 10, 20, 50}, cfg.Table.PageSizeOptions)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, cache.DefaultTTLSeconds, cfg.Cache.TTLSeconds)
	assert.Equal(t, config.DefaultServerAddr, cfg.Server.Addr)
	require.NoError(t, cfg.Validate())
}

func TestNew_MissingFileUsesDefaults(t *testing.T) {
	home := isolate(t)

	cfg := config.New()
	assert.Equal(t, config.Default().Table, cfg.Table)
	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.Path())
	assert.NoError(t, cfg.LoadError())
}

func TestNew_BrokenFileUsesDefaults(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("api: [\n"), 0600))

	cfg := config.New()
	assert.Equal(t, config.Default().API, cfg.API)
	require.Error(t, cfg.LoadError())
	assert.Contains(t, cfg.LoadError().Error(), filepath.Join(home, "config.yaml"))
}

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvAPIURL, "https://mirror.test/products")
	t.Setenv(config.EnvLogLevel, "warn")
	t.Setenv(config.EnvLogFormat, "json")
	t.Setenv(config.EnvCacheEnabled, "true")
	t.Setenv(config.EnvCacheTTL, "2h")

	cfg := config.New()
	assert.Equal(t, "https://mirror.test/products", cfg.API.URL)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 7200, cfg.Cache.TTLSeconds)
}

func TestApplyEnvOverrides_InvalidValuesSkipped(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvCacheEnabled, "maybe")
	t.Setenv(config.EnvCacheTTL, "1s")

	cfg := config.New()
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, cache.DefaultTTLSeconds, cfg.Cache.TTLSeconds)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{"empty url", func(c *config.Config) { c.API.URL = "" }, config.ErrEmptyAPIURL},
		{"zero page size", func(c *config.Config) { c.Table.PageSize = 0 }, config.ErrInvalidPageSize},
		{"negative option", func(c *config.Config) { c.Table.PageSizeOptions = []int{5, -1} }, config.ErrInvalidPageSize},
		{"bad ttl", func(c *config.Config) {
			c.Cache.Enabled = true
			c.Cache.TTLSeconds = 1
		}, cache.ErrInvalidTTL},
		{"bad format", func(c *config.Config) { c.Logging.Format = "xml" }, config.ErrInvalidLogFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := config.Default()
	cfg.Table.PageSize = 20
	cfg.API.Timeout = 5 * time.Second
	require.NoError(t, cfg.Save(path))
	assert.Equal(t, path, cfg.Path())

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, loaded.Table.PageSize)
	assert.Equal(t, 5*time.Second, loaded.API.Timeout)
	assert.Equal(t, cfg.Logging, loaded.Logging)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCacheDirectory(t *testing.T) {
	home := isolate(t)

	cfg := config.Default()
	dir, err := cfg.CacheDirectory()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cache"), dir)

	cfg.Cache.Directory = "/var/cache/pt"
	dir, err = cfg.CacheDirectory()
	require.NoError(t, err)
	assert.Equal(t, "/var/cache/pt", dir)
}

func TestGetConfigDir_DefaultsToHome(t *testing.T) {
	t.Setenv(config.EnvHome, "")
	t.Setenv("HOME", "/home/tester")

	dir, err := config.GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".producttable"), dir)
}

func TestToLoggingConfig(t *testing.T) {
	stderr := config.LoggingConfig{Level: "debug", Format: "json"}
	got := stderr.ToLoggingConfig()
	assert.Equal(t, logging.OutputStderr, got.Output)
	assert.Equal(t, "debug", got.Level)
	assert.Equal(t, "json", got.Format)

	file := config.LoggingConfig{Level: "info", File: "/tmp/pt.log"}
	got = file.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/tmp/pt.log", got.File)
}
