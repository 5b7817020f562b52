package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/producttable/internal/catalog"
	"github.com/rshade/producttable/internal/server"
)

// NewServeCmd creates the serve command, which renders the table as an HTML
// page with Bootstrap pagination.
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the product table over HTTP",
		Long: `Starts an HTTP server showing the product table.

The catalog is fetched once in the background; until it arrives the page
shows an empty table with a loading notice. Search, page size, sort and
page are query parameters, so every view has its own URL. The same data is
available as JSON at /api/products.`,
		Example: `  # Serve on the configured address
  producttable serve

  # Serve on all interfaces
  producttable serve --addr :8080`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := effectiveConfig(cmd)
			if addr == "" {
				addr = cfg.Server.Addr
			}

			log := logger.With().Str("operation", "serve").Logger()
			loader, err := newLoader(cfg, log)
			if err != nil {
				return err
			}

			store := catalog.NewStore()
			srv := server.New(store, server.Options{
				PageSize:        cfg.Table.PageSize,
				PageSizeOptions: cfg.Table.PageSizeOptions,
				Placeholder:     cfg.Table.PlaceholderImage,
			}, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cmd.Printf("Serving products on http://%s\n", addr)
			return serve(ctx, loader, store, srv, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")

	return cmd
}

// serve loads the catalog into store while srv is already listening. It
// returns when ctx is cancelled or the listener fails.
func serve(ctx context.Context, loader catalog.Loader, store *catalog.Store, srv *server.Server, addr string) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result := loader.Load(gCtx)
		store.Fill(result.Products)
		logger.Info().
			Str("operation", "serve").
			Str("source", result.Source).
			Int("count", len(result.Products)).
			Msg("catalog available")
		return nil
	})

	g.Go(func() error {
		return srv.ListenAndServe(gCtx, addr)
	})

	return g.Wait()
}
