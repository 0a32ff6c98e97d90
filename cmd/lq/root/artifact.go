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

func newArtifactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifact",
		Short: "Manage owned artifacts (valued assets)",
	}
	cmd.AddCommand(newArtifactAddCmd(), newArtifactListCmd(), newArtifactRmCmd())
	return cmd
}

func newArtifactAddCmd() *cobra.Command {
	var desc string

	cmd := &cobra.Command{
		Use:   "add <name> <value>",
		Short: "Record a new artifact",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("name and value are required")
			}
			if _, err := strconv.ParseFloat(args[1], 64); err != nil {
				return errors.New("value must be a number")
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
			a, err := led.AddArtifact(ctx, ledger.ArtifactDraft{
				Name:        args[0],
				Value:       value,
				Description: desc,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconGem+" Acquired"), a.Name,
				ui.Gold.Render(ui.Money(a.Value)),
				ui.Muted.Render("("+shortID(a.ID)+")"))
			return nil
		},
	}

	cmd.Flags().StringVar(&desc, "desc", "", "Description")

	return cmd
}

func newArtifactListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, led, _, cleanup, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			artifacts, err := led.Artifacts(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconGem, "Artifacts"))
			var total float64
			for i := range artifacts {
				a := &artifacts[i]
				total += a.Value
				line := fmt.Sprintf("- %s %s %s", a.Name, ui.Gold.Render(ui.Money(a.Value)), ui.Muted.Render("("+shortID(a.ID)+")"))
				if a.Description != "" {
					line += " " + ui.Dim.Render(a.Description)
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			if len(artifacts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No artifacts yet."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Total", ui.Money(total)))
			return nil
		},
	}

	return cmd
}

func newArtifactRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an artifact",
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

			id, err := resolveArtifactID(ctx, led, args[0])
			if err != nil {
				return err
			}
			if err := led.DeleteArtifact(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render("🗑 Removed"), ui.Muted.Render("("+shortID(id)+")"))
			return nil
		},
	}

	return cmd
}

func resolveArtifactID(ctx context.Context, led *ledger.Service, input string) (string, error) {
	artifacts, err := led.Artifacts(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(artifacts))
	for i := range artifacts {
		ids[i] = artifacts[i].ID
	}
	return resolvePrefix(input, ids, "artifact")
}
