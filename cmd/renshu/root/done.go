package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"renshu/internal/progress"
	"renshu/internal/ui"
)

func newDoneCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "done <item>",
		Short: "Complete a built-in item or toggle a custom task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(cmd, args[0], dateFlag, true)
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "Date to edit (YYYY-MM-DD, default today)")
	return cmd
}

func newUndoCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "undo <item>",
		Short: "Uncomplete a built-in item or toggle a custom task back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(cmd, args[0], dateFlag, false)
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "Date to edit (YYYY-MM-DD, default today)")
	return cmd
}

func runToggle(cmd *cobra.Command, arg, dateFlag string, done bool) error {
	ctx := context.Background()
	a, cleanup, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := selectDate(a.Store, dateFlag); err != nil {
		return err
	}

	id := progress.BuiltinID(arg)
	if progress.IsBuiltin(id) {
		if done {
			_, err = a.Store.CompleteItem(ctx, id)
		} else {
			_, err = a.Store.UncompleteItem(ctx, id)
		}
		if err != nil {
			return err
		}
	} else {
		eff, _, err := a.Store.Effective(ctx)
		if err != nil {
			return err
		}
		task, err := resolveCustomTask(eff, arg)
		if err != nil {
			return err
		}
		if task.Done() == done {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("already in that state"))
			return nil
		}
		if _, err := a.Store.ToggleCustomTask(ctx, task.ID); err != nil {
			return err
		}
	}

	eff, settings, err := a.Store.Effective(ctx)
	if err != nil {
		return err
	}
	renderDay(cmd.OutOrStdout(), eff, settings)
	return nil
}
