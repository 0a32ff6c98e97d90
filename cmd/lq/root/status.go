package root

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"lifequest/internal/ledger"
	"lifequest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show player level, XP, stats and net worth",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, led, _, cleanup, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.PlayerRepo().GetOrCreateMain(ctx)
			if err != nil {
				return err
			}
			toNext := p.XPNext - p.XPTotal
			if toNext < 0 {
				toNext = 0
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Player Status"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", p.Level))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Total XP", fmt.Sprintf("%d (next level at %d, %d to go)", p.XPTotal, p.XPNext, toNext)))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconChart+" Stats"))
			if len(p.Stats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("- none yet, complete quests to train stats"))
			}
			names := make([]string, 0, len(p.Stats))
			for name := range p.Stats {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %d\n", ui.Key.Render(name+":"), p.Stats[name])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")

			sum, err := led.Summary(ctx, ledger.WindowAllTime)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconGem+" Wealth"))
			fmt.Fprintf(cmd.OutOrStdout(), "- %s %s\n", ui.Key.Render("Net worth:"), ui.Gold.Render(ui.Money(sum.NetWorth)))
			fmt.Fprintf(cmd.OutOrStdout(), "- %s %s\n", ui.Key.Render("Passive income:"), ui.Money(sum.TotalPassiveIncome)+ui.Muted.Render("/month"))
			fmt.Fprintf(cmd.OutOrStdout(), "- %s %s\n", ui.Key.Render("Artifacts:"), ui.Money(sum.TotalArtifactValue))

			return nil
		},
	}

	return cmd
}
