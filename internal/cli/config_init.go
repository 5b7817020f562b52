package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/producttable/internal/config"
)

// ErrConfigExists is returned by config init when the file is already present.
var ErrConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// NewConfigInitCmd creates the config init command, which writes the default
// configuration to $PRODUCTTABLE_HOME/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Example: `  # Create ~/.producttable/config.yaml
  producttable config init

  # Overwrite an existing configuration
  producttable config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.EnsureConfigDir(); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			return initConfig(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

func initConfig(cmd *cobra.Command, path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return ErrConfigExists
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	if err := config.Default().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", path)
	return nil
}
