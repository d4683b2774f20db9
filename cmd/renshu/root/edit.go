package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"renshu/internal/datekey"
	"renshu/internal/progress"
	"renshu/internal/ui"
)

func newEditCmd() *cobra.Command {
	var (
		label     string
		sublabel  string
		timeOfDay string
		days      string
		dateFlag  string
	)

	cmd := &cobra.Command{
		Use:   "edit <task>",
		Short: "Edit a custom task (recurring edits also update the template)",
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

			var patch progress.TaskPatch
			if cmd.Flags().Changed("label") {
				patch.Label = &label
			}
			if cmd.Flags().Changed("sublabel") {
				patch.Sublabel = &sublabel
			}
			if cmd.Flags().Changed("at") {
				tod := progress.ParseTimeOfDay(timeOfDay)
				patch.TimeOfDay = &tod
			}
			if cmd.Flags().Changed("days") {
				activeDays, err := datekey.ParseWeekdays(days)
				if err != nil {
					return err
				}
				patch.ActiveDays = &activeDays
			}
			if patch == (progress.TaskPatch{}) {
				return fmt.Errorf("nothing to change; pass --label, --sublabel, --at or --days")
			}

			if err := a.Store.EditCustomTask(ctx, task.ID, patch); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("updated ")+task.Label)
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "New label")
	cmd.Flags().StringVar(&sublabel, "sublabel", "", "New secondary label")
	cmd.Flags().StringVar(&timeOfDay, "at", "", "New time of day (morning|afternoon|evening)")
	cmd.Flags().StringVar(&days, "days", "", "New weekday set for a recurring task")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Date to edit (YYYY-MM-DD, default today)")
	return cmd
}
