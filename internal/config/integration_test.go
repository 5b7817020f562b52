package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/producttable/internal/catalog"
	"github.com/rshade/producttable/internal/config"
)

// isolate points PRODUCTTABLE_HOME at a temp dir and clears the overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	for _, env := range []string{
		config.EnvAPIURL, config.EnvLogLevel, config.EnvLogFormat,
		config.EnvCacheEnabled, config.EnvCacheTTL,
	} {
		t.Setenv(env, "")
	}
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

func TestGlobalConfig_Defaults(t *testing.T) {
	isolate(t)

	cfg := config.GetGlobalConfig()
	assert.Equal(t, catalog.DefaultAPIURL, cfg.API.URL)
	assert.Equal(t, 10, cfg.Table.PageSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, config.LoggingConfig{Level: "info", Format: "console"}, config.GetLoggingConfig())
}

func TestGlobalConfig_ReadsHomeConfig(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("table:\n  page_size: 25\n"), 0600))

	assert.Equal(t, 25, config.GetGlobalConfig().Table.PageSize)
	assert.Same(t, config.GetGlobalConfig(), config.GetGlobalConfig())
}

func TestGlobalConfig_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvLogLevel, "debug")

	assert.Equal(t, "debug", config.GetGlobalConfig().Logging.Level)
}

func TestEnsureConfigDir(t *testing.T) {
	home := filepath.Join(t.TempDir(), "nested", "home")
	t.Setenv(config.EnvHome, home)

	require.NoError(t, config.EnsureConfigDir())
	info, err := os.Stat(home)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureLogDir(t *testing.T) {
	home := isolate(t)
	logFile := filepath.Join(home, "logs", "producttable.log")
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"),
		[]byte("logging:\n  level: info\n  file: "+logFile+"\n"), 0600))

	require.NoError(t, config.EnsureLogDir())
	_, err := os.Stat(filepath.Dir(logFile))
	assert.NoError(t, err)
}
