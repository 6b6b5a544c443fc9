package cli

import (
	"context"
	"net"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kitshelf/kitshelf/pkg/config"
	"github.com/kitshelf/kitshelf/pkg/server"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog API with periodic refresh",
		Long: `Start the HTTP API and refresh the catalog's stats once at startup and
then every refresh TTL. POST /api/refresh requests an extra pass.

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Example: `  kitshelf serve
  kitshelf serve --addr :9000 -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			l, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			return serve(ctx, a, l)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr, "+config.DefaultServerAddr+")")
	return cmd
}

// serve runs the refresh loop and the API on l until ctx is done.
func serve(ctx context.Context, a *app, l net.Listener) error {
	logger := loggerFromContext(ctx)
	srv := server.New(a.enricher, l.Addr().String(), logger)

	a.enricher.Start(ctx)
	kits, _ := a.enricher.Snapshot()
	printSuccess("Serving %d kits on %s", len(kits), StyleLink.Render("http://"+l.Addr().String()+"/api/kits"))
	printDetail("refresh every %s", a.enricher.TTL())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(l)
	})
	g.Go(func() error {
		<-gctx.Done()
		a.enricher.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if ctx.Err() != nil {
		logger.Info("stopped")
		return nil
	}
	return err
}
