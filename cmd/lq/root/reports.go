package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/config"
	"lifequest/internal/ledger"
	"lifequest/internal/ui"
)

func pickWindow(flag string, cfg *config.Config) (ledger.Window, error) {
	input := flag
	if input == "" {
		input = cfg.DefaultWindow
	}
	if input == "" {
		input = string(ledger.WindowWeekly)
	}
	return ledger.ParseWindow(input)
}

func newSummaryCmd() *cobra.Command {
	var window string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income, expense and net worth for a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, led, cfg, cleanup, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			w, err := pickWindow(window, cfg)
			if err != nil {
				return err
			}
			sum, err := led.Summary(ctx, w)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconChart, fmt.Sprintf("Summary (%s)", w)))
			fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n", ui.IconGold, ui.Key.Render("Income:"), ui.Good.Render(ui.Money(sum.TotalIncome)))
			fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n", ui.IconMana, ui.Key.Render("Expense:"), ui.Bad.Render(ui.Money(sum.TotalExpense)))
			fmt.Fprintf(cmd.OutOrStdout(), "- %s %s\n", ui.Key.Render("Net worth:"), ui.Gold.Render(ui.Money(sum.NetWorth)))
			fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n", ui.IconBolt, ui.Key.Render("Passive income:"), ui.Money(sum.TotalPassiveIncome)+ui.Muted.Render("/month"))
			fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n", ui.IconGem, ui.Key.Render("Artifact value:"), ui.Money(sum.TotalArtifactValue))
			return nil
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", "", "Window (weekly|monthly|all)")

	return cmd
}

func newHistoryCmd() *cobra.Command {
	var window string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show income/expense history buckets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, led, cfg, cleanup, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			w, err := pickWindow(window, cfg)
			if err != nil {
				return err
			}
			buckets, err := led.HistorySeries(ctx, w)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconChart, fmt.Sprintf("History (%s)", w)))
			var peak float64
			for i := range buckets {
				if buckets[i].Income > peak {
					peak = buckets[i].Income
				}
				if buckets[i].Expense > peak {
					peak = buckets[i].Expense
				}
			}
			for i := range buckets {
				b := &buckets[i]
				inBar, exBar := "", ""
				if peak > 0 {
					inBar = ui.Good.Render(ui.Bar(b.Income/peak*100, 12))
					exBar = ui.Bad.Render(ui.Bar(b.Expense/peak*100, 12))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s %8s  %s %8s  %s %s\n",
					b.Label,
					ui.IconGold, ui.Money(b.Income), inBar,
					ui.Money(b.Expense), exBar,
					ui.Muted.Render("net "+ui.Money(b.Net)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", "", "Window (weekly|monthly|all)")

	return cmd
}

func newBreakdownCmd() *cobra.Command {
	var window string

	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Show expenses by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, led, cfg, cleanup, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			w, err := pickWindow(window, cfg)
			if err != nil {
				return err
			}
			shares, err := led.CategoryBreakdown(ctx, w)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconMana, fmt.Sprintf("Expense Breakdown (%s)", w)))
			if len(shares) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No expenses in this window."))
				return nil
			}
			for i := range shares {
				s := &shares[i]
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %8s %5.1f%% %s\n",
					s.Category, ui.Money(s.Amount), s.Percentage,
					ui.Bad.Render(ui.Bar(s.Percentage, 20)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", "", "Window (weekly|monthly|all)")

	return cmd
}
