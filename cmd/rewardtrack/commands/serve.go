package commands

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"rewardtrack/internal/httpapi"
)

// serve: run the HTTP API until interrupted.
func serveCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if appCtx == nil {
				return errors.New("serve needs local storage; drop --remote")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr := appCtx.Config.HTTP.Listen
			if cmd.Flags().Changed("listen") {
				addr = listen
			}
			srv := httpapi.New(httpapi.Config{
				Catalog: appCtx.Catalog,
				Rewards: appCtx.Rewards,
				Metrics: appCtx.Metrics.Handler(),
				Logger:  appCtx.Log,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config, 127.0.0.1:8080)")
	return cmd
}
