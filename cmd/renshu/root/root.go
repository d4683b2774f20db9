package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"renshu/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "renshu",
	Short:         "renshu — daily language-practice checklist and streak tracker",
	Long:          "renshu tracks a learner's daily checklist: built-in core tasks, custom (optionally recurring) tasks, and a multi-day streak.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newTodayCmd(),
		newShowCmd(),
		newDoneCmd(),
		newUndoCmd(),
		newAddCmd(),
		newRmCmd(),
		newEditCmd(),
		newCheckCmd(),
		newHideCmd(),
		newStreakCmd(),
		newWeekCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
