package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"lifequest/internal/clock"
	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newReflectCmd() *cobra.Command {
	var event string
	var insight string
	var stats []string

	cmd := &cobra.Command{
		Use:   "reflect [name]",
		Short: "Record a lessons-learned entry",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one name argument")
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

			draft := engine.ReflectionDraft{
				Event:   event,
				Insight: insight,
				Stats:   stats,
			}
			if len(args) == 1 {
				draft.Name = args[0]
			}

			if draft.Name == "" {
				if err := runReflectForm(&draft); err != nil {
					return err
				}
			} else {
				// Without a form the body comes from stdin-free flags; keep
				// the reflection text equal to the insight if not provided.
				draft.Reflection = insight
			}

			r, err := svc.AddReflection(ctx, draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconScroll+" Recorded"), r.Name,
				ui.Muted.Render("("+r.Date.Format(clock.DayFormat)+")"))
			return nil
		},
	}

	cmd.Flags().StringVar(&event, "event", "", "What happened")
	cmd.Flags().StringVar(&insight, "insight", "", "What you take away")
	cmd.Flags().StringSliceVarP(&stats, "stat", "s", nil, "Related stat(s)")

	return cmd
}

func runReflectForm(draft *engine.ReflectionDraft) error {
	statsStr := strings.Join(draft.Stats, ",")
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&draft.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Event").
				Description("What happened").
				Value(&draft.Event),
			huh.NewText().
				Title("Reflection").
				Description("How it went, in your own words").
				Value(&draft.Reflection),
			huh.NewInput().
				Title("Insight").
				Description("The takeaway").
				Value(&draft.Insight),
			huh.NewInput().
				Title("Stats").
				Description("Comma-separated, e.g. WIS,WIL").
				Value(&statsStr),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	draft.Stats = splitList(statsStr)
	return nil
}
