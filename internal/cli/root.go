// Package cli implements the producttable cobra commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/producttable/internal/logging"
)

// Persistent flag names.
const (
	flagDebug    = "debug"
	flagCacheTTL = "cache-ttl"
	flagAPIURL   = "api-url"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// logResult holds the log file opened by setupLogging until CloseLogging.
var logResult *logging.LogPathResult //nolint:gochecknoglobals // Paired with logger

// CloseLogging closes the log file opened for the current command, if any.
func CloseLogging() error {
	err := logResult.Close()
	logResult = nil
	return err
}

// Execute runs root and closes the log file afterwards, including when the
// command fails and PersistentPostRunE is skipped.
func Execute(ctx context.Context, root *cobra.Command) error {
	defer func() { _ = CloseLogging() }()
	return root.ExecuteContext(ctx)
}

// NewRootCmd creates the root Cobra command for the producttable CLI.
// It wires up logging and the table, serve, browse, config and cache
// subcommands.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "producttable",
		Short:         "Browse a remote product catalog as a paginated table",
		Long:          "producttable fetches a product catalog once and lets you search, sort and page through it.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cacheTTL, _ := cmd.Flags().GetInt(flagCacheTTL)
			if cacheTTL < 0 {
				return fmt.Errorf("cache-ttl must be >= 0, got %d", cacheTTL)
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return CloseLogging()
		},
	}

	cmd.PersistentFlags().Bool(flagDebug, false, "enable debug logging")
	cmd.PersistentFlags().
		Int(flagCacheTTL, 0, "cache the catalog response for this many seconds (0 = use config)")
	cmd.PersistentFlags().String(flagAPIURL, "", "product endpoint (overrides config file and env var)")

	cmd.AddCommand(
		NewTableCmd(),
		NewServeCmd(),
		NewBrowseCmd(),
		NewConfigCmd(),
		NewCacheCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Print the first page of products
  producttable table

  # Search, sort by price descending and show page 2
  producttable table --query shirt --sort price:desc --page 2

  # Emit the current page as JSON
  producttable table --output json

  # Serve the HTML table
  producttable serve --addr 127.0.0.1:8080

  # Browse interactively
  producttable browse

  # Initialize configuration
  producttable config init`
