package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crabby-lang/website/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Serve a live preview of the features section",
		Long: `Start a development server that renders the homepage features.

When a features file is configured and development.hot_reload is enabled,
the file is watched and connected browsers reload after every change.

Examples:
  crabbysite serve                             # http://localhost:3000
  crabbysite serve -p 8080 --host 0.0.0.0      # Custom address
  crabbysite serve --features features.yml     # Preview an edited list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := server.New(a.cfg, a.logger)
			if err != nil {
				return err
			}

			a.logger.Info(ctx, "Starting preview server", "addr", a.cfg.Addr(), "features_file", a.cfg.Site.FeaturesFile)
			return srv.Start(ctx)
		},
	}

	serveCmd.Flags().IntP("port", "p", 3000, "port to listen on")
	serveCmd.Flags().String("host", "localhost", "host to bind to")
	addFeaturesFlag(serveCmd.Flags())

	return serveCmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
