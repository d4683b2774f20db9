package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"renshu/internal/progress"
	"renshu/internal/ui"
)

func newHideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hide <built-in>",
		Short: "Toggle a built-in item's visibility",
		Long:  "Toggle a built-in item's visibility. Hidden items are excluded from counts and display; past completions stay stored.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id := progress.BuiltinID(args[0])
			if err := a.Store.ToggleDefaultItemVisibility(ctx, id); err != nil {
				return err
			}

			settings, err := a.Store.Settings(ctx)
			if err != nil {
				return err
			}
			if settings.IsHidden(id) {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconHidden+" hidden ")+string(id))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("visible ")+string(id))
			}
			return nil
		},
	}
	return cmd
}
