package cli

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/muster/internal/httpapi"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the eligibility report and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" && app.Config != nil {
				addr = app.Config.ListenAddr
			}
			if addr == "" {
				return fmt.Errorf("no listen address: pass --addr or set listen_addr")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}

			handler := httpapi.New(app.Eligibility, app.logger(), app.Recorder)
			printf(cmd, "Serving on http://%s\n", ln.Addr())
			return httpapi.Serve(ctx, ln, handler.Router(), app.logger())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to listen_addr)")
	return cmd
}
