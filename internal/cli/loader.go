package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/producttable/internal/cache"
	"github.com/rshade/producttable/internal/catalog"
	"github.com/rshade/producttable/internal/config"
)

// effectiveConfig returns a copy of the global configuration with the
// persistent flag overrides applied.
func effectiveConfig(cmd *cobra.Command) *config.Config {
	cfg := *config.GetGlobalConfig()

	if url, _ := cmd.Flags().GetString(flagAPIURL); url != "" {
		cfg.API.URL = url
	}
	if ttl, _ := cmd.Flags().GetInt(flagCacheTTL); ttl > 0 {
		cfg.Cache.Enabled = true
		cfg.Cache.TTLSeconds = ttl
	}
	return &cfg
}

// newLoader builds the catalog loader for cfg: a plain HTTP loader, wrapped
// with the response cache when caching is enabled.
func newLoader(cfg *config.Config, log zerolog.Logger) (catalog.Loader, error) {
	httpLoader := catalog.NewHTTPLoader(cfg.API.URL, cfg.API.Timeout, log)
	if !cfg.Cache.Enabled {
		return httpLoader, nil
	}

	if err := cache.ValidateTTL(cfg.Cache.TTLSeconds); err != nil {
		return nil, fmt.Errorf("cache ttl: %w", err)
	}
	dir, err := cfg.CacheDirectory()
	if err != nil {
		return nil, err
	}
	store, err := cache.NewFileStore(dir, true, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("opening response cache: %w", err)
	}

	log.Debug().
		Str("operation", "new_loader").
		Str("cache_dir", dir).
		Int("ttl_seconds", cfg.Cache.TTLSeconds).
		Msg("response cache enabled")
	return catalog.NewCachedLoader(httpLoader, store, log), nil
}
