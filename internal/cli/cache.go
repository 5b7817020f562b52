package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/producttable/internal/cache"
)

// NewCacheCmd creates the cache command group for the catalog response cache.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clear the catalog response cache",
	}

	cmd.AddCommand(newCacheClearCmd(), newCachePruneCmd(), newCacheStatusCmd())
	return cmd
}

// openCache opens the cache directory regardless of whether caching is
// enabled for fetches, so stale entries can always be removed.
func openCache(cmd *cobra.Command) (*cache.FileStore, error) {
	cfg := effectiveConfig(cmd)
	dir, err := cfg.CacheDirectory()
	if err != nil {
		return nil, err
	}
	ttl := cfg.Cache.TTLSeconds
	if ttl <= 0 {
		ttl = cache.DefaultTTLSeconds
	}
	return cache.NewFileStore(dir, true, ttl)
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached response",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(cmd)
			if err != nil {
				return err
			}
			removed, err := store.Clear()
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			cmd.Printf("Removed %d cached responses from %s\n", removed, store.Directory())
			return nil
		},
	}
}

func newCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired cached responses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(cmd)
			if err != nil {
				return err
			}
			removed, err := store.CleanupExpired()
			if err != nil {
				return fmt.Errorf("pruning cache: %w", err)
			}
			cmd.Printf("Removed %d expired responses\n", removed)
			return nil
		},
	}
}

func newCacheStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the cache location and entry count",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := effectiveConfig(cmd)
			store, err := openCache(cmd)
			if err != nil {
				return err
			}
			count, err := store.Count()
			if err != nil {
				return fmt.Errorf("reading cache: %w", err)
			}

			ttl := cache.FormatDuration(time.Duration(store.TTL()) * time.Second)
			cmd.Printf("Directory: %s\n", store.Directory())
			cmd.Printf("Enabled:   %t\n", cfg.Cache.Enabled)
			cmd.Printf("TTL:       %s\n", ttl)
			cmd.Printf("Entries:   %d\n", count)
			return nil
		},
	}
}
