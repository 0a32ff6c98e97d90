package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"lifequest/internal/clock"
	"lifequest/internal/ledger"
	"lifequest/internal/ui"
)

func newGoldCmd() *cobra.Command {
	return newEntryLogCmd("gold", ledger.KindIncome, ui.IconGold, "Log gold (income)")
}

func newManaCmd() *cobra.Command {
	return newEntryLogCmd("mana", ledger.KindExpense, ui.IconMana, "Log mana (expense)")
}

func newEntryLogCmd(name string, kind ledger.EntryKind, icon string, short string) *cobra.Command {
	var note string
	var tags []string
	var date string

	cmd := &cobra.Command{
		Use:   name + " <amount> [category]",
		Short: short,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("amount is required, category optional")
			}
			if _, err := strconv.ParseFloat(args[0], 64); err != nil {
				return errors.New("amount must be a number")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, led, _, cleanup, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			amount, _ := strconv.ParseFloat(args[0], 64)
			category := ledger.CategoryOther
			if len(args) == 2 {
				category, err = ledger.ParseCategory(args[1], kind)
				if err != nil {
					return err
				}
			}

			draft := ledger.EntryDraft{
				Kind:     kind,
				Amount:   amount,
				Category: category,
				Notes:    note,
				Tags:     tags,
			}
			if date != "" {
				t, err := time.ParseInLocation(clock.DayFormat, date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
				}
				draft.Date = t
			}

			e, err := led.AddEntry(ctx, draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(icon+" Logged"),
				ui.Gold.Render(ui.Money(e.Amount)),
				ui.Key.Render(e.Category),
				ui.Muted.Render("("+e.ID[:8]+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "Free-form note")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag(s)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Backdate the entry (YYYY-MM-DD)")

	return cmd
}
