package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newAddCmd() *cobra.Command {
	var kind string
	var xp int
	var stats []string
	var tags []string
	var desc string
	var difficulty string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return nil
			}
			if len(args) != 1 {
				return errors.New("title is required (or use -i)")
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

			draft := engine.QuestDraft{
				Description: desc,
				XPReward:    xp,
				Stats:       stats,
				Tags:        tags,
			}
			if len(args) == 1 {
				draft.Title = args[0]
			}

			if interactive {
				if err := runAddForm(&draft); err != nil {
					return err
				}
			} else {
				k, err := engine.ParseKind(kind)
				if err != nil {
					return err
				}
				draft.Kind = k
				if k == engine.KindDungeon {
					d, err := engine.ParseDifficulty(difficulty)
					if err != nil {
						return err
					}
					draft.Difficulty = d
				}
			}

			q, err := svc.AddQuest(ctx, draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s #%d %s %s\n",
				ui.Good.Render(ui.IconQuest+" Added"),
				ui.KindIcon(q.Kind), q.ID, q.Title,
				ui.Muted.Render(fmt.Sprintf("(xp=%d)", q.XPReward)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "daily", "Quest kind (daily|main|dungeon|penalty|reward)")
	cmd.Flags().IntVar(&xp, "xp", 10, "XP reward (ignored for dungeon quests)")
	cmd.Flags().StringSliceVarP(&stats, "stat", "s", nil, "Stat(s) trained on completion (STR|INT|WIS|VIT|CHA|WIL)")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag(s)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVarP(&difficulty, "rank", "r", "E", "Dungeon rank (E|D|C|B|A|S)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the quest via a form")

	return cmd
}

func runAddForm(draft *engine.QuestDraft) error {
	kindStr := string(engine.KindDaily)
	if draft.Kind != "" {
		kindStr = string(draft.Kind)
	}
	rankStr := string(engine.DifficultyE)
	xpStr := strconv.Itoa(draft.XPReward)
	statsStr := strings.Join(draft.Stats, ",")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&draft.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Kind").
				Options(
					huh.NewOption("Daily quest", string(engine.KindDaily)),
					huh.NewOption("Main quest", string(engine.KindMain)),
					huh.NewOption("Dungeon", string(engine.KindDungeon)),
					huh.NewOption("Reward", string(engine.KindReward)),
				).
				Value(&kindStr),
			huh.NewSelect[string]().
				Title("Dungeon rank").
				Description("Only used for dungeons").
				Options(
					huh.NewOption("E", string(engine.DifficultyE)),
					huh.NewOption("D", string(engine.DifficultyD)),
					huh.NewOption("C", string(engine.DifficultyC)),
					huh.NewOption("B", string(engine.DifficultyB)),
					huh.NewOption("A", string(engine.DifficultyA)),
					huh.NewOption("S", string(engine.DifficultyS)),
				).
				Value(&rankStr),
			huh.NewInput().
				Title("XP reward").
				Description("Ignored for dungeons").
				Value(&xpStr).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 {
						return errors.New("must be a non-negative integer")
					}
					return nil
				}),
			huh.NewInput().
				Title("Stats").
				Description("Comma-separated, e.g. STR,VIT").
				Value(&statsStr),
			huh.NewInput().
				Title("Description").
				Value(&draft.Description),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	k, err := engine.ParseKind(kindStr)
	if err != nil {
		return err
	}
	draft.Kind = k
	if k == engine.KindDungeon {
		d, err := engine.ParseDifficulty(rankStr)
		if err != nil {
			return err
		}
		draft.Difficulty = d
	}
	draft.XPReward, _ = strconv.Atoi(strings.TrimSpace(xpStr))
	draft.Stats = splitList(statsStr)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
