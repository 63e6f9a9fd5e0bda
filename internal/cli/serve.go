package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/resfold/resfold/pkg/errors"
	"github.com/resfold/resfold/pkg/scan"
	"github.com/resfold/resfold/pkg/serve"
)

// serveCommand creates the serve command exposing a scanned tree over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <path>",
		Short: "Serve a resource tree over HTTP",
		Long: `Serve scans a file or directory once and exposes the snapshot over
HTTP: resources under their tree paths, and a JSON index at /api/tree.
Changes on disk after startup are not reflected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := scan.Scan(args[0], scan.Options{Logger: c.Logger})
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           serve.NewHandler(tree, c.Logger),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()
			printInfo("Serving %s on http://%s", args[0], addr)

			select {
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			case err := <-errCh:
				return errors.Wrap(errors.ErrCodeInternal, err, "server stopped")
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8417", "listen address")

	return cmd
}
