package cli

import (
	"github.com/spf13/cobra"

	"github.com/ankitrathi85/Test-Resources-Github/pkg/scan"
)

// scanCommand creates the scan command: one coordinator step per run.
func (c *CLI) scanCommand() *cobra.Command {
	var categoryID string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan one category and merge the results",
		Long: `Scan runs a single step of the category rotation: it picks the least
recently scanned category, searches GitHub with that category's terms,
enriches and scores every hit, and replaces the category's records in
the persisted dataset. Run it repeatedly (cron works well) to keep the
whole dataset fresh one category at a time.`,
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

			var selector scan.Selector
			if categoryID != "" {
				selector = scan.Forced{CategoryID: categoryID}
			}

			coord, err := c.newCoordinator(ctx, cfg, st, selector)
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Scanning...")
			spinner.Start()
			res, err := coord.RunStep(ctx)
			spinner.Stop()
			if err != nil {
				if spinner.Cancelled() {
					printWarning("Scan interrupted, previous state kept")
				}
				return err
			}

			printSuccess("Scanned %s", StyleValue.Render(res.Category.Name))
			printDetail("Repositories: %d in category, %d total", res.RepoCount, res.TotalRepos)
			printDetail("Duration: %s", formatDuration(res.Duration))
			if res.CycleCompleted {
				printInfo("Full scan cycle complete (cycle %d)", res.CycleCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryID, "category", "", "force a rescan of this category instead of rotating")
	cmd.Flags().BoolVar(&c.noCache, "no-cache", false, "bypass the HTTP response cache")

	return cmd
}
