package root

import (
	"context"

	"github.com/spf13/cobra"

	"renshu/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive checklist board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, a.Store, a.Bridge, cmd.OutOrStdout())
		},
	}
	return cmd
}
