package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pluginpulse/pluginpulse/internal/adapters/inbound/httpapi"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scoring API over HTTP",
		Long:  "Run a local HTTP server exposing the search and score endpoints as JSON, for dashboards or editor integrations.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := buildServices(opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := httpapi.New(svcs.search, svcs.score)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", httpapi.DefaultAddr, "Listen address")

	return cmd
}
