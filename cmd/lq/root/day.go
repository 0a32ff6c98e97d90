package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/ui"
)

func newDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Daily lifecycle operations",
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Un-complete daily quests not completed today",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, _, cleanup, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := svc.ResetDailyQuests(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d daily quest(s) reset for a new day\n", ui.Good.Render(ui.IconLoop), n)
			return nil
		},
	}

	check := &cobra.Command{
		Use:   "check",
		Short: "Check unfinished dailies and issue a penalty quest",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, _, cleanup, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CheckUnfinishedDailyQuests(ctx)
			if err != nil {
				return err
			}
			if res.Missed == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" All daily quests handled."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d daily quest(s) missed\n", ui.Warn.Render(ui.IconWarn), res.Missed)
			if res.Penalty != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s\n",
					ui.Bad.Render(ui.IconSkull+" Penalty issued:"),
					res.Penalty.ID, res.Penalty.Title,
					ui.Muted.Render(fmt.Sprintf("(stats: %v)", res.Penalty.Stats)))
			}
			return nil
		},
	}

	cmd.AddCommand(reset, check)
	return cmd
}
