package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/producttable/internal/engine"
	"github.com/rshade/producttable/internal/pagination"
	"github.com/rshade/producttable/internal/render"
)

// ErrNegativePageSize is returned when --page-size is below zero.
var ErrNegativePageSize = errors.New("page size cannot be negative")

// tableOptions holds the flags of the table command.
type tableOptions struct {
	query    string
	sort     string
	page     int
	pageSize int
	output   string
}

// NewTableCmd creates the table command, which fetches the catalog once and
// prints one page of it.
func NewTableCmd() *cobra.Command {
	var opts tableOptions

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print one page of the product table",
		Long: `Fetches the product catalog and prints the page selected by the flags.

The rows are filtered by --query (case-insensitive title match), ordered by
--sort and paged with --page and --page-size. A page past the end prints an
empty table.`,
		Example: `  # First page with the configured page size
  producttable table

  # Titles containing "shirt", cheapest first
  producttable table --query shirt --sort price

  # Third page of 5 rows sorted by title descending, as JSON
  producttable table --sort title:desc --page 3 --page-size 5 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTable(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "filter rows whose title contains this text")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort as 'field' or 'field:order' (fields: price, title)")
	cmd.Flags().IntVar(&opts.page, "page", pagination.DefaultPage, "page number to print")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "rows per page (0 = use config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", string(render.FormatText),
		"output format: text, json, ndjson or html")

	return cmd
}

func runTable(cmd *cobra.Command, opts tableOptions) error {
	format, err := render.ParseFormat(opts.output)
	if err != nil {
		return err
	}

	cfg := effectiveConfig(cmd)
	state, err := buildViewState(opts, cfg.Table.PageSize)
	if err != nil {
		return err
	}

	log := logger.With().Str("operation", "table").Logger()
	loader, err := newLoader(cfg, log)
	if err != nil {
		return err
	}

	result := loader.Load(cmd.Context())
	log.Debug().
		Str("source", result.Source).
		Int("count", len(result.Products)).
		Msg("catalog ready")

	frame := render.Frame{
		State:           state,
		Output:          engine.Compute(result.Products, state),
		PageSizeOptions: cfg.Table.PageSizeOptions,
		Placeholder:     cfg.Table.PlaceholderImage,
	}
	if err = render.Render(cmd.OutOrStdout(), format, frame); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	return nil
}

// buildViewState turns the table flags into a ViewState. A zero page size
// uses defaultSize.
func buildViewState(opts tableOptions, defaultSize int) (engine.ViewState, error) {
	state := engine.NewViewState()

	if opts.pageSize < 0 {
		return state, fmt.Errorf("%w: %d", ErrNegativePageSize, opts.pageSize)
	}
	size := opts.pageSize
	if size == 0 {
		size = defaultSize
	}
	state.SetPageSize(size)
	state.SetQuery(opts.query)

	field, order, err := pagination.ParseSort(opts.sort)
	if err != nil {
		return state, fmt.Errorf("parsing --sort: %w", err)
	}
	sortField, err := engine.ParseSortField(field)
	if err != nil {
		return state, fmt.Errorf("parsing --sort: %w", err)
	}
	state.SetSort(sortField, engine.ParseSortDirection(order))

	state.SetPage(opts.page)
	return state, nil
}
