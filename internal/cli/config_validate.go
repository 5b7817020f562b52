package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/producttable/internal/config"
)

// NewConfigValidateCmd creates the config validate command.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Parses the configuration file and checks the values the commands depend on:
a non-empty API URL, positive page sizes, a cache TTL in range when the
cache is enabled, and a known log format.`,
		Example: `  # Validate current configuration
  producttable config validate

  # Validate and show the effective values
  producttable config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	cfg := config.Default()
	if _, statErr := os.Stat(path); statErr == nil {
		if cfg, err = config.Load(path); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	} else {
		cmd.Printf("No configuration file at %s, checking defaults\n", path)
	}
	cfg.ApplyEnvOverrides()

	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")
	if verbose {
		cmd.Printf("  File:       %s\n", cfg.Path())
		cmd.Printf("  API URL:    %s\n", cfg.API.URL)
		cmd.Printf("  Timeout:    %s\n", cfg.API.Timeout)
		cmd.Printf("  Page size:  %d (options %v)\n", cfg.Table.PageSize, cfg.Table.PageSizeOptions)
		cmd.Printf("  Cache:      enabled=%t ttl=%ds\n", cfg.Cache.Enabled, cfg.Cache.TTLSeconds)
		cmd.Printf("  Server:     %s\n", cfg.Server.Addr)
		cmd.Printf("  Log level:  %s\n", cfg.Logging.Level)
	}
	return nil
}
