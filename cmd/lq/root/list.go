package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/storage"
	"lifequest/internal/ui"
)

func newListCmd() *cobra.Command {
	var kind string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, _, cleanup, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var quests []storage.Quest
			if kind != "" {
				k, err := engine.ParseKind(kind)
				if err != nil {
					return err
				}
				quests, err = svc.QuestRepo().ListByKind(ctx, string(k))
				if err != nil {
					return err
				}
			} else {
				quests, err = svc.QuestRepo().ListAll(ctx)
				if err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconQuest, "Quest Log"))
			shown := 0
			for i := range quests {
				q := &quests[i]
				if q.Completed && !all {
					continue
				}
				printQuestRow(cmd, q)
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing here. Try: lq add \"Do the thing\""))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Filter by kind (daily|main|dungeon|penalty|reward)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed quests")

	return cmd
}

func printQuestRow(cmd *cobra.Command, q *storage.Quest) {
	mark := "[ ]"
	if q.Completed {
		mark = "[x]"
	}
	extra := ""
	if q.Kind == "daily" && q.Streak > 0 {
		extra = " " + ui.Gold.Render(fmt.Sprintf("🔥%d", q.Streak))
	}
	if q.Difficulty != nil {
		extra += " " + ui.Warn.Render("rank "+*q.Difficulty)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s #%d %s %s%s\n",
		mark, ui.KindIcon(q.Kind), q.ID, q.Title,
		ui.Muted.Render(fmt.Sprintf("(xp=%d)", q.XPReward)), extra)
}
