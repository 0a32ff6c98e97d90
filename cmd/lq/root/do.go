package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lifequest/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("id must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, _, cleanup, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			res, err := svc.CompleteQuest(ctx, id)
			if err != nil {
				return err
			}
			if res.AlreadyCompleted {
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d already completed, nothing to do\n", ui.Muted.Render(ui.IconDone), id)
				return nil
			}

			q := res.Quest
			line := fmt.Sprintf("%s %s #%d %s %s",
				ui.Good.Render(ui.IconDone+" Completed"),
				ui.KindIcon(q.Kind), q.ID, q.Title,
				ui.Muted.Render(fmt.Sprintf("(+%d XP)", res.XPAwarded)))
			fmt.Fprintln(cmd.OutOrStdout(), line)
			if q.Kind == "daily" && q.Streak > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", ui.Gold.Render(fmt.Sprintf("🔥 Streak: %d days", q.Streak)))
			}
			for _, stat := range res.StatsAwarded {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s +1\n", ui.Key.Render(stat))
			}
			if res.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.BadgeLevelUp, ui.Muted.Render(fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
			}
			return nil
		},
	}

	return cmd
}
