package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"renshu/internal/datekey"
	"renshu/internal/ui"
)

func newTodayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's checklist (reconciling auto-detected activity)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			today := datekey.Today()
			a.Store.SetSelectedDate(today)

			marked, err := a.Bridge.Reconcile(ctx, today)
			if err != nil {
				return err
			}
			if marked > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s %d item(s) auto-completed from today's activity", ui.IconSparkle, marked)))
			}

			eff, settings, err := a.Store.Effective(ctx)
			if err != nil {
				return err
			}
			renderDay(cmd.OutOrStdout(), eff, settings)
			return nil
		},
	}
	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <date>",
		Short: "Show the checklist for any date (read-only, no reconciliation)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			date, err := datekey.Parse(args[0])
			if err != nil {
				return err
			}
			eff, settings, err := a.Store.EffectiveForDate(ctx, date)
			if err != nil {
				return err
			}
			renderDay(cmd.OutOrStdout(), eff, settings)
			return nil
		},
	}
	return cmd
}
