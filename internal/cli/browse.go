package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/producttable/internal/tui"
)

// ErrNotTerminal is returned when browse runs without an interactive terminal.
var ErrNotTerminal = errors.New("browse needs an interactive terminal; use `producttable table` instead")

// NewBrowseCmd creates the browse command, an interactive terminal table.
func NewBrowseCmd() *cobra.Command {
	var opts tableOptions

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the product table interactively",
		Long: `Opens an interactive table. The catalog loads in the background while an
empty table is shown.

Keys: / search, p sort by price, t sort by title (again to reverse),
←/→ page, z page size, ↑/↓ select, enter details, y copy page, q quit.`,
		Example: `  # Start browsing
  producttable browse

  # Start with a search and price sort applied
  producttable browse --query shirt --sort price:desc`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return ErrNotTerminal
			}

			cfg := effectiveConfig(cmd)
			opts.page = 1
			state, err := buildViewState(opts, cfg.Table.PageSize)
			if err != nil {
				return err
			}

			loader, err := newLoader(cfg, logger.With().Str("operation", "browse").Logger())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			model := tui.NewBrowseModel(ctx, loader, tui.BrowseOptions{
				PageSizeOptions: cfg.Table.PageSizeOptions,
				InitialState:    state,
			})

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err = p.Run(); err != nil {
				return fmt.Errorf("failed to run interactive TUI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "initial search text")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "initial sort as 'field' or 'field:order'")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "initial rows per page (0 = use config)")

	return cmd
}
