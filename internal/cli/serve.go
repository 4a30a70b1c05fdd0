package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/ankitrathi85/Test-Resources-Github/internal/server"
)

// serveCommand creates the serve command: a local preview of the
// generated site plus the JSON API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated site and a JSON API locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			st, err := c.newStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			printInfo("Serving %s on http://%s", cfg.SiteDir, addr)
			printDetail("API: /api/repos, /api/status")

			srv := server.New(st, cfg.SiteDir, c.Logger)
			err = srv.ListenAndServe(ctx, addr)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")

	return cmd
}
