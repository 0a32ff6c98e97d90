package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lifequest/internal/ui"
)

const Version = "0.1.0"

var (
	flagDBPath string
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:           "lq",
	Short:         "LifeQuest — gamified life tracker",
	Long:          "LifeQuest is a local-first CLI/TUI life tracker: quests with streaks and penalties, plus a gold/mana ledger feeding player progression.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Database file (overrides config and LQ_DB)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.config/lifequest/config.yaml)")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoCmd(),
		newListCmd(),
		newDayCmd(),
		newResetAllCmd(),
		newStatusCmd(),
		newGoldCmd(),
		newManaCmd(),
		newLedgerCmd(),
		newArtifactCmd(),
		newBuffCmd(),
		newSummaryCmd(),
		newHistoryCmd(),
		newBreakdownCmd(),
		newReflectCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
