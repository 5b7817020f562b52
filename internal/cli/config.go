package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage producttable configuration",
	}

	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration after file, environment and flag overrides.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Example: `  # Show as YAML
  producttable config show

  # Show as JSON
  producttable config show --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := effectiveConfig(cmd)

			var (
				data []byte
				err  error
			)
			switch output {
			case "yaml", "yml":
				data, err = yaml.Marshal(cfg)
			case "json":
				data, err = json.MarshalIndent(cfg, "", "  ")
				data = append(data, '\n')
			default:
				return fmt.Errorf("unsupported output format: %s (valid: yaml, json)", output)
			}
			if err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml or json")

	return cmd
}
