package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"renshu/internal/ui"
)

func newRmCmd() *cobra.Command {
	var (
		recurring bool
		dateFlag  string
	)

	cmd := &cobra.Command{
		Use:   "rm <task>",
		Short: "Remove a custom task from the day (or its recurring template with --recurring)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := selectDate(a.Store, dateFlag); err != nil {
				return err
			}
			eff, _, err := a.Store.Effective(ctx)
			if err != nil {
				return err
			}
			task, err := resolveCustomTask(eff, args[0])
			if err != nil {
				return err
			}

			if recurring {
				if err := a.Store.RemoveRecurringTask(ctx, task.ID); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("removed recurring task ")+task.Label+" "+ui.Muted.Render("(template and today's instance)"))
				return nil
			}
			if err := a.Store.RemoveCustomTask(ctx, task.ID); err != nil {
				return err
			}
			note := ""
			if task.Recurring {
				note = " " + ui.Muted.Render("(this day only; template kept)")
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("removed ")+task.Label+note)
			return nil
		},
	}

	cmd.Flags().BoolVar(&recurring, "recurring", false, "Also remove the recurring template")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Date to edit (YYYY-MM-DD, default today)")
	return cmd
}
