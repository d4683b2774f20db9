package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"renshu/internal/ui"
)

func newStreakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show the current streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			settings, err := a.Store.Settings(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Streak(settings.StreakCount))
			if settings.LastCompletedDate != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Last completed day", settings.LastCompletedDate))
			}
			return nil
		},
	}
	return cmd
}
