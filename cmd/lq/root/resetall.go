package root

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"lifequest/internal/ui"
)

func newResetAllCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset-all",
		Short: "Wipe every quest and re-seed the starter set",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				var confirmed bool
				err := huh.NewConfirm().
					Title("Delete ALL quests and start over?").
					Description("Player level, XP, stats and the ledger are kept.").
					Value(&confirmed).
					Run()
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Aborted."))
					return nil
				}
			}

			ctx := context.Background()
			svc, _, _, cleanup, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.ResetAllQuests(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconLoop+" Quest log wiped and re-seeded with the starter quests."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}
