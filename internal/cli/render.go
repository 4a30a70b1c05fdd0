package cli

import (
	"github.com/spf13/cobra"

	"github.com/ankitrathi85/Test-Resources-Github/pkg/site"
)

// renderCommand creates the render command: generate the static site
// from the persisted dataset.
func (c *CLI) renderCommand() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Generate the static website from scanned data",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.SiteDir
			}

			st, err := c.newStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			repos, err := st.LoadRepos(ctx)
			if err != nil {
				return err
			}
			status, err := st.LoadStatus(ctx)
			if err != nil {
				return err
			}

			gen, err := site.New(outDir)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			if err := gen.Render(cfg.Categories, repos, status); err != nil {
				return err
			}
			prog.done("Rendered site")

			printSuccess("Rendered %d repositories across %d categories", len(repos), len(cfg.Categories))
			printFile(outDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "", "output directory (default: site_dir from config)")

	return cmd
}
