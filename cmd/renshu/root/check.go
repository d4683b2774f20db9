package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"renshu/internal/progress"
	"renshu/internal/ui"
)

func newCheckCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "check <task> <n>",
		Short: "Toggle the n-th sub-item of a custom task",
		Long:  "Toggle the n-th sub-item of a custom task. Sub-items are informational; the parent task is completed separately.",
		Args:  cobra.ExactArgs(2),
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

			i, err := subItemIndex(task, args[1])
			if err != nil {
				return err
			}
			sub := task.SubChecklist[i]

			if err := a.Store.ToggleSubCheckItem(ctx, task.ID, sub.ID); err != nil {
				return err
			}

			box := "[x]"
			if sub.Checked {
				box = "[ ]"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(box), task.Label, ui.Muted.Render("· "+sub.Text))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Date to edit (YYYY-MM-DD, default today)")
	return cmd
}

// subItemIndex resolves the 1-based sub-item argument to a slice index.
func subItemIndex(task progress.CustomTask, arg string) (int, error) {
	if len(task.SubChecklist) == 0 {
		return 0, fmt.Errorf("task %q has no sub-items", task.Label)
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(task.SubChecklist) {
		return 0, fmt.Errorf("sub-item number must be 1-%d", len(task.SubChecklist))
	}
	return n - 1, nil
}
