package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lifequest/internal/clock"
	"lifequest/internal/ledger"
	"lifequest/internal/ui"
)

func newLedgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect and edit the transaction log",
	}
	cmd.AddCommand(newLedgerListCmd(), newLedgerEditCmd(), newLedgerRmCmd())
	return cmd
}

func newLedgerListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, led, _, cleanup, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := led.Entries(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconScroll, "Ledger"))
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No transactions yet. Try: lq gold 100 salary"))
				return nil
			}
			shown := 0
			for i := range entries {
				if limit > 0 && shown >= limit {
					break
				}
				e := &entries[i]
				icon := ui.IconGold
				amount := ui.Good.Render("+" + ui.Money(e.Amount))
				if e.Kind == string(ledger.KindExpense) {
					icon = ui.IconMana
					amount = ui.Bad.Render("-" + ui.Money(e.Amount))
				}
				line := fmt.Sprintf("%s %s %s %s %s", icon, e.Date.Format(clock.DayFormat), amount, ui.Key.Render(e.Category), ui.Muted.Render("("+e.ID[:8]+")"))
				if e.Notes != "" {
					line += " " + ui.Dim.Render(e.Notes)
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
				shown++
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Max rows (0 = all)")

	return cmd
}

func newLedgerEditCmd() *cobra.Command {
	var amount float64
	var category string
	var note string
	var date string
	var tags []string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a transaction in place",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
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

			id, err := resolveEntryID(ctx, led, args[0])
			if err != nil {
				return err
			}

			var patch ledger.EntryPatch
			if cmd.Flags().Changed("amount") {
				patch.Amount = &amount
			}
			if cmd.Flags().Changed("category") {
				c := ledger.Category(category)
				patch.Category = &c
			}
			if cmd.Flags().Changed("note") {
				patch.Notes = &note
			}
			if cmd.Flags().Changed("tag") {
				patch.Tags = tags
			}
			if cmd.Flags().Changed("date") {
				t, err := time.ParseInLocation(clock.DayFormat, date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
				}
				patch.Date = &t
			}

			e, err := led.UpdateEntry(ctx, id, patch)
			if err != nil {
				return err
			}
			if e == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No such entry, nothing changed."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconDone+" Updated"),
				ui.Money(e.Amount), ui.Key.Render(e.Category),
				ui.Muted.Render("("+e.ID[:8]+")"))
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "New amount")
	cmd.Flags().StringVar(&category, "category", "", "New category")
	cmd.Flags().StringVar(&note, "note", "", "New note")
	cmd.Flags().StringVar(&date, "date", "", "New date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Replacement tag set")

	return cmd
}

func newLedgerRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a transaction",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
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

			id, err := resolveEntryID(ctx, led, args[0])
			if err != nil {
				return err
			}
			if err := led.DeleteEntry(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render("🗑 Removed"), ui.Muted.Render("("+shortID(id)+")"))
			return nil
		},
	}

	return cmd
}

func resolveEntryID(ctx context.Context, led *ledger.Service, input string) (string, error) {
	entries, err := led.Entries(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(entries))
	for i := range entries {
		ids[i] = entries[i].ID
	}
	return resolvePrefix(input, ids, "entry")
}

// resolvePrefix accepts a full uuid or an unambiguous prefix of one.
func resolvePrefix(input string, ids []string, noun string) (string, error) {
	match := ""
	for _, id := range ids {
		if id == input {
			return id, nil
		}
		if len(input) < len(id) && id[:len(input)] == input {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous", input)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("no %s matching %q", noun, input)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
