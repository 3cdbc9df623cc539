package handlers

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"yfetch/internal/config"
	"yfetch/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the CORS edge proxy in front of the Perplexity API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.New(config.Get().Proxy).Start(ctx)
		},
	}
}
