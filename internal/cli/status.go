package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCommand creates the status command: a per-category summary of
// the persisted dataset.
func (c *CLI) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show per-category scan state and record counts",
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

			status, err := st.LoadStatus(ctx)
			if err != nil {
				return err
			}
			repos, err := st.LoadRepos(ctx)
			if err != nil {
				return err
			}

			counts := make(map[string]int)
			for _, rec := range repos {
				counts[rec.Category]++
			}

			fmt.Println(StyleTitle.Render("Scan status"))
			printDetail("Cycle %d, %d repositories total", status.CycleCount, len(repos))
			printDetail("Last scan: %s", formatTime(status.LastScanTime))
			printDetail("Last full pass: %s", formatTime(status.LastFullScanTime))
			fmt.Println()

			fmt.Printf("  %s %s %s %s\n",
				styleHeader.Render(pad("CATEGORY", 24)),
				styleHeader.Render(pad("REPOS", 6)),
				styleHeader.Render(pad("LAST SCANNED", 17)),
				styleHeader.Render("DONE"))

			for _, cat := range cfg.Categories {
				done := " "
				if status.IsCompleted(cat.ID) {
					done = styleIconSuccess.Render(iconSuccess)
				}
				fmt.Printf("  %s %s %s %s\n",
					pad(cat.ID, 24),
					pad(fmt.Sprintf("%d", counts[cat.ID]), 6),
					pad(formatTime(status.LastScanned[cat.ID]), 17),
					done)
			}
			return nil
		},
	}
}

// pad right-pads or truncates s to width.
func pad(s string, width int) string {
	if len(s) > width {
		return s[:width]
	}
	return fmt.Sprintf("%-*s", width, s)
}
