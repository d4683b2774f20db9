package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"renshu/internal/datekey"
	"renshu/internal/ui"
)

func newWeekCmd() *cobra.Command {
	var startFlag string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show a seven-day progress strip",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			start := datekey.Today().AddDays(-6)
			if startFlag != "" {
				start, err = datekey.Parse(startFlag)
				if err != nil {
					return err
				}
			}

			days, err := a.Store.WeekProgress(ctx, start)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconCalendar, fmt.Sprintf("Week of %s", start)))
			today := datekey.Today()
			for _, d := range days {
				name := d.Date.Weekday().String()[:3]
				marker := " "
				if d.Date == today {
					marker = ui.Gold.Render("▶")
				}
				dot := ui.Muted.Render("·")
				if d.HasTasks {
					dot = ui.Good.Render("●")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s  %s %s\n",
					marker, ui.Key.Render(name), ui.Muted.Render(d.Date.String()), ui.ProgressFraction(d.Completed, d.Total), dot)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "First day of the strip (YYYY-MM-DD, default six days ago)")
	return cmd
}
