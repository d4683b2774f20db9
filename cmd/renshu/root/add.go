package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"renshu/internal/datekey"
	"renshu/internal/progress"
	"renshu/internal/ui"
)

func newAddCmd() *cobra.Command {
	var (
		sublabel  string
		timeOfDay string
		recurring bool
		days      string
		subs      []string
		dateFlag  string
	)

	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Add a custom task (optionally recurring on selected weekdays)",
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
			activeDays, err := datekey.ParseWeekdays(days)
			if err != nil {
				return err
			}
			if len(activeDays) > 0 && !recurring {
				return fmt.Errorf("--days only applies to recurring tasks (add --recurring)")
			}

			task, err := a.Store.AddCustomTask(ctx, progress.AddTaskInput{
				Label:        args[0],
				Sublabel:     sublabel,
				TimeOfDay:    progress.ParseTimeOfDay(timeOfDay),
				Recurring:    recurring,
				ActiveDays:   activeDays,
				SubChecklist: subs,
			})
			if err != nil {
				return err
			}

			loop := ""
			if task.Recurring {
				loop = " " + ui.IconLoop
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconPlus+" added ")+task.Label+loop+"  "+ui.Dim.Render(shortID(task.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&sublabel, "sublabel", "", "Secondary label")
	cmd.Flags().StringVar(&timeOfDay, "at", string(progress.DefaultTimeOfDay), "Time of day (morning|afternoon|evening)")
	cmd.Flags().BoolVar(&recurring, "recurring", false, "Repeat this task on future days")
	cmd.Flags().StringVar(&days, "days", "", "Weekdays for a recurring task (e.g. mon,wed,fri; empty = every day)")
	cmd.Flags().StringArrayVar(&subs, "sub", nil, "Sub-checklist entry (repeatable)")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Date to add to (YYYY-MM-DD, default today)")
	return cmd
}
