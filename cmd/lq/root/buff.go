package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lifequest/internal/ledger"
	"lifequest/internal/ui"
)

func newBuffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buff",
		Short: "Manage buffs (recurring monthly income)",
	}
	cmd.AddCommand(newBuffAddCmd(), newBuffListCmd(), newBuffToggleCmd(), newBuffRmCmd())
	return cmd
}

func newBuffAddCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "add <name> <value-per-month>",
		Short: "Record a new buff, active immediately",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("name and value-per-month are required")
			}
			if _, err := strconv.ParseFloat(args[1], 64); err != nil {
				return errors.New("value-per-month must be a number")
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

			value, _ := strconv.ParseFloat(args[1], 64)
			b, err := led.AddBuff(ctx, ledger.BuffDraft{
				Name:          args[0],
				ValuePerMonth: value,
				Source:        source,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconBolt+" Buff active"), b.Name,
				ui.Gold.Render(ui.Money(b.ValuePerMonth))+ui.Muted.Render("/month"),
				ui.Muted.Render("("+shortID(b.ID)+")"))
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Where the income comes from")

	return cmd
}

func newBuffListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List buffs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, led, _, cleanup, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			buffs, err := led.Buffs(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBolt, "Buffs"))
			var active float64
			for i := range buffs {
				b := &buffs[i]
				state := ui.Good.Render("active")
				if !b.Active {
					state = ui.Muted.Render("paused")
				} else {
					active += b.ValuePerMonth
				}
				line := fmt.Sprintf("- %s %s %s %s", b.Name,
					ui.Gold.Render(ui.Money(b.ValuePerMonth))+ui.Muted.Render("/month"),
					state, ui.Muted.Render("("+shortID(b.ID)+")"))
				if b.Source != "" {
					line += " " + ui.Dim.Render("from "+b.Source)
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			if len(buffs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No buffs yet."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Active total", ui.Money(active)+"/month"))
			return nil
		},
	}

	return cmd
}

func newBuffToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Pause or resume a buff",
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

			id, err := resolveBuffID(ctx, led, args[0])
			if err != nil {
				return err
			}
			b, err := led.ToggleBuff(ctx, id)
			if err != nil {
				return err
			}
			if b == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No such buff, nothing changed."))
				return nil
			}
			state := ui.Good.Render("active")
			if !b.Active {
				state = ui.Muted.Render("paused")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now %s\n", ui.IconBolt, b.Name, state)
			return nil
		},
	}

	return cmd
}

func newBuffRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a buff",
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

			id, err := resolveBuffID(ctx, led, args[0])
			if err != nil {
				return err
			}
			if err := led.DeleteBuff(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render("🗑 Removed"), ui.Muted.Render("("+shortID(id)+")"))
			return nil
		},
	}

	return cmd
}

func resolveBuffID(ctx context.Context, led *ledger.Service, input string) (string, error) {
	buffs, err := led.Buffs(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(buffs))
	for i := range buffs {
		ids[i] = buffs[i].ID
	}
	return resolvePrefix(input, ids, "buff")
}
